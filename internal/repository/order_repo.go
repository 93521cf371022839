package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"restaurant-backoffice/internal/domain"
)

type OrderRepositoryInterface interface {
	Create(ctx context.Context, order domain.Order) (domain.Order, error)
	GetByID(ctx context.Context, id int64) (domain.Order, error)
	Update(ctx context.Context, order domain.Order) (domain.Order, error)
	SetStatus(ctx context.Context, id int64, status domain.OrderStatus) (domain.Order, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, status *domain.OrderStatus, page, size int) ([]domain.Order, error)
	ListByUser(ctx context.Context, userID int64, page, size int) ([]domain.Order, error)
}

type OrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) OrderRepositoryInterface {
	return &OrderRepository{db: db}
}

const orderColumns = `id, user_id, dish_ids, full_price, addition, status`

func scanOrder(row pgx.Row) (domain.Order, error) {
	var o domain.Order
	var status string
	if err := row.Scan(&o.ID, &o.UserID, &o.DishIDs, &o.FullPrice, &o.Addition, &status); err != nil {
		return domain.Order{}, err
	}
	o.Status = domain.OrderStatus(status)
	return o, nil
}

func (r *OrderRepository) Create(ctx context.Context, order domain.Order) (domain.Order, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO orders (user_id, dish_ids, full_price, addition, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+orderColumns,
		order.UserID, order.DishIDs, order.FullPrice, order.Addition, string(order.Status),
	)
	o, err := scanOrder(row)
	if err != nil {
		return domain.Order{}, fmt.Errorf("insert order: %w", err)
	}
	return o, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id int64) (domain.Order, error) {
	row := r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, domain.NotFound("order", id)
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("select order: %w", err)
	}
	return o, nil
}

func (r *OrderRepository) Update(ctx context.Context, order domain.Order) (domain.Order, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE orders
		SET dish_ids = $2, full_price = $3, addition = $4, status = $5
		WHERE id = $1
		RETURNING `+orderColumns,
		order.ID, order.DishIDs, order.FullPrice, order.Addition, string(order.Status),
	)
	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, domain.NotFound("order", order.ID)
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("update order: %w", err)
	}
	return o, nil
}

func (r *OrderRepository) SetStatus(ctx context.Context, id int64, status domain.OrderStatus) (domain.Order, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE orders SET status = $2 WHERE id = $1
		RETURNING `+orderColumns,
		id, string(status),
	)
	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, domain.NotFound("order", id)
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("update order status: %w", err)
	}
	return o, nil
}

func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("order", id)
	}
	return nil
}

func (r *OrderRepository) List(ctx context.Context, status *domain.OrderStatus, page, size int) ([]domain.Order, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if status != nil {
		rows, err = r.db.Query(ctx, `
			SELECT `+orderColumns+` FROM orders
			WHERE status = $1
			LIMIT $2 OFFSET $3`,
			string(*status), size, page*size)
	} else {
		rows, err = r.db.Query(ctx, `
			SELECT `+orderColumns+` FROM orders
			LIMIT $1 OFFSET $2`,
			size, page*size)
	}
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	return collectOrders(rows)
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID int64, page, size int) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE user_id = $1
		LIMIT $2 OFFSET $3`,
		userID, size, page*size)
	if err != nil {
		return nil, fmt.Errorf("query orders by user: %w", err)
	}
	return collectOrders(rows)
}

func collectOrders(rows pgx.Rows) ([]domain.Order, error) {
	defer rows.Close()
	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return orders, nil
}
