package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"restaurant-backoffice/internal/domain"
)

// In-memory stores implementing the repository interfaces. fakeTables
// mirrors the store contract the real implementation provides: Reserve is a
// check-and-set performed under one lock per store, so concurrent calls on
// the same table serialize exactly like the conditional UPDATE does.

type fakeUsers struct {
	mu   sync.Mutex
	seq  int64
	byID map[int64]domain.User

	tables  *fakeTables
	reviews *fakeReviews
	orders  *fakeOrders
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[int64]domain.User{}}
}

func (f *fakeUsers) Create(_ context.Context, user domain.User) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == user.Email {
			return domain.User{}, domain.Conflict("user", user.Email, "email already exists")
		}
	}
	f.seq++
	user.ID = f.seq
	f.byID[user.ID] = user
	return user, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.NotFound("user", id)
	}
	return u, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, domain.NotFound("user", email)
}

func (f *fakeUsers) Update(_ context.Context, user domain.User) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[user.ID]; !ok {
		return domain.User{}, domain.NotFound("user", user.ID)
	}
	f.byID[user.ID] = user
	return user, nil
}

func (f *fakeUsers) List(_ context.Context) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	users := make([]domain.User, 0, len(f.byID))
	for _, u := range f.byID {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (f *fakeUsers) DeleteCascade(ctx context.Context, id int64) error {
	f.mu.Lock()
	if _, ok := f.byID[id]; !ok {
		f.mu.Unlock()
		return domain.NotFound("user", id)
	}
	delete(f.byID, id)
	f.mu.Unlock()

	if f.tables != nil {
		f.tables.releaseAllBy(id)
	}
	if f.reviews != nil {
		f.reviews.detachAllBy(id)
	}
	if f.orders != nil {
		f.orders.deleteAllBy(id)
	}
	return nil
}

type fakeDishes struct {
	mu   sync.Mutex
	seq  int64
	byID map[int64]domain.Dish
}

func newFakeDishes(dishes ...domain.Dish) *fakeDishes {
	f := &fakeDishes{byID: map[int64]domain.Dish{}}
	for _, d := range dishes {
		f.byID[d.ID] = d
		if d.ID > f.seq {
			f.seq = d.ID
		}
	}
	return f
}

func (f *fakeDishes) Create(_ context.Context, dish domain.Dish) (domain.Dish, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	dish.ID = f.seq
	f.byID[dish.ID] = dish
	return dish, nil
}

func (f *fakeDishes) GetByID(_ context.Context, id int64) (domain.Dish, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.byID[id]
	if !ok {
		return domain.Dish{}, domain.NotFound("dish", id)
	}
	return d, nil
}

func (f *fakeDishes) Update(_ context.Context, dish domain.Dish) (domain.Dish, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[dish.ID]; !ok {
		return domain.Dish{}, domain.NotFound("dish", dish.ID)
	}
	f.byID[dish.ID] = dish
	return dish, nil
}

func (f *fakeDishes) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return domain.NotFound("dish", id)
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeDishes) List(_ context.Context) ([]domain.Dish, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	dishes := make([]domain.Dish, 0, len(f.byID))
	for _, d := range f.byID {
		dishes = append(dishes, d)
	}
	sort.Slice(dishes, func(i, j int) bool { return dishes[i].ID < dishes[j].ID })
	return dishes, nil
}

func (f *fakeDishes) ResolveByIDs(_ context.Context, ids []int64) (map[int64]domain.Dish, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	resolved := make(map[int64]domain.Dish, len(ids))
	for _, id := range ids {
		if d, ok := f.byID[id]; ok {
			resolved[id] = d
		}
	}
	return resolved, nil
}

type fakeOrders struct {
	mu   sync.Mutex
	seq  int64
	byID map[int64]domain.Order
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{byID: map[int64]domain.Order{}}
}

func (f *fakeOrders) Create(_ context.Context, order domain.Order) (domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	order.ID = f.seq
	order.DishIDs = append([]int64(nil), order.DishIDs...)
	f.byID[order.ID] = order
	return order, nil
}

func (f *fakeOrders) GetByID(_ context.Context, id int64) (domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.byID[id]
	if !ok {
		return domain.Order{}, domain.NotFound("order", id)
	}
	return o, nil
}

func (f *fakeOrders) Update(_ context.Context, order domain.Order) (domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[order.ID]; !ok {
		return domain.Order{}, domain.NotFound("order", order.ID)
	}
	order.DishIDs = append([]int64(nil), order.DishIDs...)
	f.byID[order.ID] = order
	return order, nil
}

func (f *fakeOrders) SetStatus(_ context.Context, id int64, status domain.OrderStatus) (domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.byID[id]
	if !ok {
		return domain.Order{}, domain.NotFound("order", id)
	}
	o.Status = status
	f.byID[id] = o
	return o, nil
}

func (f *fakeOrders) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return domain.NotFound("order", id)
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeOrders) List(_ context.Context, status *domain.OrderStatus, page, size int) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var orders []domain.Order
	for _, o := range f.byID {
		if status == nil || o.Status == *status {
			orders = append(orders, o)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	return paginate(orders, page, size), nil
}

func (f *fakeOrders) ListByUser(_ context.Context, userID int64, page, size int) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var orders []domain.Order
	for _, o := range f.byID {
		if o.UserID == userID {
			orders = append(orders, o)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	return paginate(orders, page, size), nil
}

func (f *fakeOrders) deleteAllBy(userID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, o := range f.byID {
		if o.UserID == userID {
			delete(f.byID, id)
		}
	}
}

func paginate(orders []domain.Order, page, size int) []domain.Order {
	start := page * size
	if start >= len(orders) {
		return nil
	}
	end := start + size
	if end > len(orders) {
		end = len(orders)
	}
	return orders[start:end]
}

type fakeTables struct {
	mu   sync.Mutex
	seq  int64
	byID map[int64]domain.Table
}

func newFakeTables() *fakeTables {
	return &fakeTables{byID: map[int64]domain.Table{}}
}

func (f *fakeTables) Create(_ context.Context, table domain.Table) (domain.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.byID {
		if t.TableNumber == table.TableNumber {
			return domain.Table{}, domain.Conflict("table", table.TableNumber, "table number already exists")
		}
	}
	f.seq++
	table.ID = f.seq
	f.byID[table.ID] = table
	return table, nil
}

func (f *fakeTables) GetByID(_ context.Context, id int64) (domain.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.byID[id]
	if !ok {
		return domain.Table{}, domain.NotFound("table", id)
	}
	return t, nil
}

func (f *fakeTables) Update(_ context.Context, table domain.Table) (domain.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[table.ID]; !ok {
		return domain.Table{}, domain.NotFound("table", table.ID)
	}
	f.byID[table.ID] = table
	return table, nil
}

func (f *fakeTables) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return domain.NotFound("table", id)
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeTables) List(_ context.Context) ([]domain.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	tables := make([]domain.Table, 0, len(f.byID))
	for _, t := range f.byID {
		tables = append(tables, t)
	}
	sort.Slice(tables, func(i, j int) bool { return tables[i].TableNumber < tables[j].TableNumber })
	return tables, nil
}

func (f *fakeTables) ListAvailable(_ context.Context) ([]domain.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var tables []domain.Table
	for _, t := range f.byID {
		if !t.IsReserved {
			tables = append(tables, t)
		}
	}
	sort.Slice(tables, func(i, j int) bool { return tables[i].TableNumber < tables[j].TableNumber })
	return tables, nil
}

func (f *fakeTables) ExistsByNumber(_ context.Context, tableNumber int, excludeID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.byID {
		if t.TableNumber == tableNumber && t.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTables) Reserve(_ context.Context, tableID, userID int64, at time.Time) (domain.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.byID[tableID]
	if !ok {
		return domain.Table{}, domain.NotFound("table", tableID)
	}
	if t.IsReserved {
		return domain.Table{}, domain.Conflict("table", tableID, "already reserved")
	}
	t.IsReserved = true
	t.ReservedBy = &userID
	t.ReservedAt = &at
	f.byID[tableID] = t
	return t, nil
}

func (f *fakeTables) Release(_ context.Context, tableID int64) (domain.Table, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.byID[tableID]
	if !ok {
		return domain.Table{}, domain.NotFound("table", tableID)
	}
	if !t.IsReserved {
		return domain.Table{}, domain.Conflict("table", tableID, "not reserved")
	}
	t.IsReserved = false
	t.ReservedBy = nil
	t.ReservedAt = nil
	f.byID[tableID] = t
	return t, nil
}

func (f *fakeTables) releaseAllBy(userID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, t := range f.byID {
		if t.ReservedBy != nil && *t.ReservedBy == userID {
			t.IsReserved = false
			t.ReservedBy = nil
			t.ReservedAt = nil
			f.byID[id] = t
		}
	}
}

type fakeReviews struct {
	mu   sync.Mutex
	seq  int64
	byID map[int64]domain.Review
}

func newFakeReviews() *fakeReviews {
	return &fakeReviews{byID: map[int64]domain.Review{}}
}

func (f *fakeReviews) Create(_ context.Context, review domain.Review) (domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	review.ID = f.seq
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now()
	}
	f.byID[review.ID] = review
	return review, nil
}

func (f *fakeReviews) GetByID(_ context.Context, id int64) (domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rv, ok := f.byID[id]
	if !ok {
		return domain.Review{}, domain.NotFound("review", id)
	}
	return rv, nil
}

func (f *fakeReviews) Update(_ context.Context, review domain.Review) (domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.byID[review.ID]
	if !ok {
		return domain.Review{}, domain.NotFound("review", review.ID)
	}
	existing.Rating = review.Rating
	existing.Comment = review.Comment
	f.byID[review.ID] = existing
	return existing, nil
}

func (f *fakeReviews) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return domain.NotFound("review", id)
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeReviews) List(_ context.Context) ([]domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	reviews := make([]domain.Review, 0, len(f.byID))
	for _, rv := range f.byID {
		reviews = append(reviews, rv)
	}
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].ID < reviews[j].ID })
	return reviews, nil
}

func (f *fakeReviews) ListByUser(_ context.Context, userID int64) ([]domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var reviews []domain.Review
	for _, rv := range f.byID {
		if rv.UserID != nil && *rv.UserID == userID {
			reviews = append(reviews, rv)
		}
	}
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].ID < reviews[j].ID })
	return reviews, nil
}

func (f *fakeReviews) ListByDish(_ context.Context, dishID int64) ([]domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var reviews []domain.Review
	for _, rv := range f.byID {
		if rv.DishID == dishID {
			reviews = append(reviews, rv)
		}
	}
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].ID < reviews[j].ID })
	return reviews, nil
}

func (f *fakeReviews) detachAllBy(userID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, rv := range f.byID {
		if rv.UserID != nil && *rv.UserID == userID {
			rv.UserID = nil
			f.byID[id] = rv
		}
	}
}
