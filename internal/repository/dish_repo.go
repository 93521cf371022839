package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"restaurant-backoffice/internal/domain"
)

type DishRepositoryInterface interface {
	Create(ctx context.Context, dish domain.Dish) (domain.Dish, error)
	GetByID(ctx context.Context, id int64) (domain.Dish, error)
	Update(ctx context.Context, dish domain.Dish) (domain.Dish, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Dish, error)
	// ResolveByIDs returns the dishes matching ids in one batch read.
	// Missing ids are simply absent from the result; detecting them is the
	// caller's job.
	ResolveByIDs(ctx context.Context, ids []int64) (map[int64]domain.Dish, error)
}

type DishRepository struct {
	db *pgxpool.Pool
}

func NewDishRepository(db *pgxpool.Pool) DishRepositoryInterface {
	return &DishRepository{db: db}
}

func (r *DishRepository) Create(ctx context.Context, dish domain.Dish) (domain.Dish, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO dishes (name, price, category)
		VALUES ($1, $2, $3)
		RETURNING id, name, price, category`,
		dish.Name, dish.Price, dish.Category,
	)
	var d domain.Dish
	if err := row.Scan(&d.ID, &d.Name, &d.Price, &d.Category); err != nil {
		return domain.Dish{}, fmt.Errorf("insert dish: %w", err)
	}
	return d, nil
}

func (r *DishRepository) GetByID(ctx context.Context, id int64) (domain.Dish, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, price, category FROM dishes WHERE id = $1`, id)
	var d domain.Dish
	err := row.Scan(&d.ID, &d.Name, &d.Price, &d.Category)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Dish{}, domain.NotFound("dish", id)
	}
	if err != nil {
		return domain.Dish{}, fmt.Errorf("select dish: %w", err)
	}
	return d, nil
}

func (r *DishRepository) Update(ctx context.Context, dish domain.Dish) (domain.Dish, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE dishes SET name = $2, price = $3, category = $4
		WHERE id = $1
		RETURNING id, name, price, category`,
		dish.ID, dish.Name, dish.Price, dish.Category,
	)
	var d domain.Dish
	err := row.Scan(&d.ID, &d.Name, &d.Price, &d.Category)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Dish{}, domain.NotFound("dish", dish.ID)
	}
	if err != nil {
		return domain.Dish{}, fmt.Errorf("update dish: %w", err)
	}
	return d, nil
}

func (r *DishRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM dishes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete dish: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("dish", id)
	}
	return nil
}

func (r *DishRepository) List(ctx context.Context) ([]domain.Dish, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, price, category FROM dishes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query dishes: %w", err)
	}
	defer rows.Close()
	var dishes []domain.Dish
	for rows.Next() {
		var d domain.Dish
		if err := rows.Scan(&d.ID, &d.Name, &d.Price, &d.Category); err != nil {
			return nil, fmt.Errorf("scan dish: %w", err)
		}
		dishes = append(dishes, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return dishes, nil
}

func (r *DishRepository) ResolveByIDs(ctx context.Context, ids []int64) (map[int64]domain.Dish, error) {
	if len(ids) == 0 {
		return map[int64]domain.Dish{}, nil
	}
	rows, err := r.db.Query(ctx, `SELECT id, name, price, category FROM dishes WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve dishes: %w", err)
	}
	defer rows.Close()
	resolved := make(map[int64]domain.Dish, len(ids))
	for rows.Next() {
		var d domain.Dish
		if err := rows.Scan(&d.ID, &d.Name, &d.Price, &d.Category); err != nil {
			return nil, fmt.Errorf("scan dish: %w", err)
		}
		resolved[d.ID] = d
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return resolved, nil
}
