package service

import (
	"context"

	"restaurant-backoffice/internal/domain"
	"restaurant-backoffice/internal/events"
	"restaurant-backoffice/internal/logger"
	"restaurant-backoffice/internal/repository"
)

type CreateOrderRequest struct {
	UserID   int64
	DishIDs  []int64
	Addition string
	Status   string // optional; empty means PENDING
}

type UpdateOrderRequest struct {
	DishIDs  []int64
	Addition string
	Status   string // optional; empty keeps the current status
}

type OrderServiceInterface interface {
	Create(ctx context.Context, req CreateOrderRequest) (domain.Order, error)
	Update(ctx context.Context, orderID int64, req UpdateOrderRequest) (domain.Order, error)
	UpdateAsOwner(ctx context.Context, orderID int64, req UpdateOrderRequest, actingUserEmail string) (domain.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status string) (domain.Order, error)
	Delete(ctx context.Context, orderID int64) error
	GetByID(ctx context.Context, orderID int64) (domain.Order, error)
	List(ctx context.Context, filterStatus string, page, size int) ([]domain.Order, error)
	ListByOwner(ctx context.Context, email string, page, size int) ([]domain.Order, error)
}

// OrderService owns price aggregation and the order status machine.
// StrictTransitions makes the forward-only rule apply on every mutation
// path; with it off, update paths assign any valid status, which matches
// the historical behavior this system replaces.
type OrderService struct {
	orders            repository.OrderRepositoryInterface
	users             repository.UserRepositoryInterface
	dishes            repository.DishRepositoryInterface
	publisher         events.Publisher
	log               *logger.Logger
	strictTransitions bool
}

func NewOrderService(
	orders repository.OrderRepositoryInterface,
	users repository.UserRepositoryInterface,
	dishes repository.DishRepositoryInterface,
	publisher events.Publisher,
	log *logger.Logger,
	strictTransitions bool,
) OrderServiceInterface {
	return &OrderService{
		orders:            orders,
		users:             users,
		dishes:            dishes,
		publisher:         publisher,
		log:               log,
		strictTransitions: strictTransitions,
	}
}

// resolveFullPrice resolves every dish id in one batch read and sums the
// prices counting multiplicity. The whole operation aborts on the first id
// the catalog cannot resolve; a partial price is never produced.
func (s *OrderService) resolveFullPrice(ctx context.Context, dishIDs []int64) (float64, error) {
	if len(dishIDs) == 0 {
		return 0, domain.InvalidArgument("order", "dish list must not be empty")
	}
	resolved, err := s.dishes.ResolveByIDs(ctx, dishIDs)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, id := range dishIDs {
		dish, ok := resolved[id]
		if !ok {
			return 0, domain.InvalidReference("dish", id)
		}
		total += dish.Price
	}
	return total, nil
}

func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (domain.Order, error) {
	user, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		return domain.Order{}, err
	}

	fullPrice, err := s.resolveFullPrice(ctx, req.DishIDs)
	if err != nil {
		return domain.Order{}, err
	}

	// An explicitly supplied status becomes the initial state; the default
	// is PENDING.
	status := domain.StatusPending
	if req.Status != "" {
		parsed, ok := domain.ParseOrderStatus(req.Status)
		if !ok {
			return domain.Order{}, domain.InvalidArgument("order", "unknown status "+req.Status)
		}
		status = parsed
	}

	order, err := s.orders.Create(ctx, domain.Order{
		UserID:    user.ID,
		DishIDs:   append([]int64(nil), req.DishIDs...),
		FullPrice: fullPrice,
		Addition:  req.Addition,
		Status:    status,
	})
	if err != nil {
		return domain.Order{}, err
	}
	s.publish(ctx, "created", order)
	return order, nil
}

func (s *OrderService) Update(ctx context.Context, orderID int64, req UpdateOrderRequest) (domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	return s.applyUpdate(ctx, order, req)
}

// UpdateAsOwner verifies the acting user owns the order. The check runs
// after the order is loaded and before any mutation, so a rejected caller
// never leaves a partial update behind.
func (s *OrderService) UpdateAsOwner(ctx context.Context, orderID int64, req UpdateOrderRequest, actingUserEmail string) (domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	acting, err := s.users.GetByEmail(ctx, actingUserEmail)
	if err != nil {
		return domain.Order{}, err
	}
	if acting.ID != order.UserID {
		return domain.Order{}, domain.Forbidden("order", orderID, "not the order owner")
	}
	return s.applyUpdate(ctx, order, req)
}

func (s *OrderService) applyUpdate(ctx context.Context, order domain.Order, req UpdateOrderRequest) (domain.Order, error) {
	// fullPrice is recomputed from scratch against one catalog snapshot,
	// never adjusted incrementally.
	fullPrice, err := s.resolveFullPrice(ctx, req.DishIDs)
	if err != nil {
		return domain.Order{}, err
	}

	statusChanged := false
	if req.Status != "" {
		next, ok := domain.ParseOrderStatus(req.Status)
		if !ok {
			return domain.Order{}, domain.InvalidArgument("order", "unknown status "+req.Status)
		}
		if s.strictTransitions && !order.Status.CanTransition(next) {
			return domain.Order{}, domain.Conflict("order", order.ID,
				"illegal status transition "+string(order.Status)+" -> "+string(next))
		}
		statusChanged = next != order.Status
		order.Status = next
	}

	order.DishIDs = append([]int64(nil), req.DishIDs...)
	order.FullPrice = fullPrice
	order.Addition = req.Addition

	updated, err := s.orders.Update(ctx, order)
	if err != nil {
		return domain.Order{}, err
	}
	if statusChanged {
		s.publish(ctx, "status_changed", updated)
	}
	return updated, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, orderID int64, status string) (domain.Order, error) {
	next, ok := domain.ParseOrderStatus(status)
	if !ok {
		return domain.Order{}, domain.InvalidArgument("order", "unknown status "+status)
	}
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if next == order.Status {
		// Same-status assignment is a no-op.
		return order, nil
	}
	if s.strictTransitions && !order.Status.CanTransition(next) {
		return domain.Order{}, domain.Conflict("order", orderID,
			"illegal status transition "+string(order.Status)+" -> "+string(next))
	}
	updated, err := s.orders.SetStatus(ctx, orderID, next)
	if err != nil {
		return domain.Order{}, err
	}
	s.publish(ctx, "status_changed", updated)
	return updated, nil
}

func (s *OrderService) Delete(ctx context.Context, orderID int64) error {
	return s.orders.Delete(ctx, orderID)
}

func (s *OrderService) GetByID(ctx context.Context, orderID int64) (domain.Order, error) {
	return s.orders.GetByID(ctx, orderID)
}

func (s *OrderService) List(ctx context.Context, filterStatus string, page, size int) ([]domain.Order, error) {
	if err := validatePage(page, size); err != nil {
		return nil, err
	}
	var status *domain.OrderStatus
	if filterStatus != "" {
		parsed, ok := domain.ParseOrderStatus(filterStatus)
		if !ok {
			return nil, domain.InvalidArgument("order", "unknown status "+filterStatus)
		}
		status = &parsed
	}
	return s.orders.List(ctx, status, page, size)
}

func (s *OrderService) ListByOwner(ctx context.Context, email string, page, size int) ([]domain.Order, error) {
	if err := validatePage(page, size); err != nil {
		return nil, err
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.orders.ListByUser(ctx, user.ID, page, size)
}

func validatePage(page, size int) error {
	if page < 0 {
		return domain.InvalidArgument("page", "page must not be negative")
	}
	if size <= 0 {
		return domain.InvalidArgument("page", "size must be positive")
	}
	return nil
}

// publish is best-effort: a broker outage must not fail an operation whose
// state is already durable.
func (s *OrderService) publish(ctx context.Context, event string, order domain.Order) {
	if err := s.publisher.PublishOrderEvent(ctx, event, order); err != nil {
		s.log.Error("order_event_publish_failed", err, map[string]any{
			"event":    event,
			"order_id": order.ID,
		})
	}
}
