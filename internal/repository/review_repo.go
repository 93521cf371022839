package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"restaurant-backoffice/internal/domain"
)

type ReviewRepositoryInterface interface {
	Create(ctx context.Context, review domain.Review) (domain.Review, error)
	GetByID(ctx context.Context, id int64) (domain.Review, error)
	Update(ctx context.Context, review domain.Review) (domain.Review, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Review, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Review, error)
	ListByDish(ctx context.Context, dishID int64) ([]domain.Review, error)
}

type ReviewRepository struct {
	db *pgxpool.Pool
}

func NewReviewRepository(db *pgxpool.Pool) ReviewRepositoryInterface {
	return &ReviewRepository{db: db}
}

const reviewColumns = `id, user_id, dish_id, rating, comment, created_at`

func scanReview(row pgx.Row) (domain.Review, error) {
	var rv domain.Review
	if err := row.Scan(&rv.ID, &rv.UserID, &rv.DishID, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
		return domain.Review{}, err
	}
	return rv, nil
}

func (r *ReviewRepository) Create(ctx context.Context, review domain.Review) (domain.Review, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO reviews (user_id, dish_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING `+reviewColumns,
		review.UserID, review.DishID, review.Rating, review.Comment,
	)
	rv, err := scanReview(row)
	if err != nil {
		return domain.Review{}, fmt.Errorf("insert review: %w", err)
	}
	return rv, nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (domain.Review, error) {
	row := r.db.QueryRow(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id)
	rv, err := scanReview(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Review{}, domain.NotFound("review", id)
	}
	if err != nil {
		return domain.Review{}, fmt.Errorf("select review: %w", err)
	}
	return rv, nil
}

func (r *ReviewRepository) Update(ctx context.Context, review domain.Review) (domain.Review, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE reviews SET rating = $2, comment = $3
		WHERE id = $1
		RETURNING `+reviewColumns,
		review.ID, review.Rating, review.Comment,
	)
	rv, err := scanReview(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Review{}, domain.NotFound("review", review.ID)
	}
	if err != nil {
		return domain.Review{}, fmt.Errorf("update review: %w", err)
	}
	return rv, nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("review", id)
	}
	return nil
}

func (r *ReviewRepository) List(ctx context.Context) ([]domain.Review, error) {
	rows, err := r.db.Query(ctx, `SELECT `+reviewColumns+` FROM reviews ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	return collectReviews(rows)
}

func (r *ReviewRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Review, error) {
	rows, err := r.db.Query(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query reviews by user: %w", err)
	}
	return collectReviews(rows)
}

func (r *ReviewRepository) ListByDish(ctx context.Context, dishID int64) ([]domain.Review, error) {
	rows, err := r.db.Query(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE dish_id = $1 ORDER BY id`, dishID)
	if err != nil {
		return nil, fmt.Errorf("query reviews by dish: %w", err)
	}
	return collectReviews(rows)
}

func collectReviews(rows pgx.Rows) ([]domain.Review, error) {
	defer rows.Close()
	var reviews []domain.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return reviews, nil
}
