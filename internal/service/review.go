package service

import (
	"context"
	"sort"
	"strings"

	"restaurant-backoffice/internal/domain"
	"restaurant-backoffice/internal/repository"
)

type CreateReviewRequest struct {
	ActingUserEmail string
	DishID          int64
	Rating          int
	Comment         string
}

type UpdateReviewRequest struct {
	ActingUserEmail string
	Rating          int
	Comment         string
}

type ReviewServiceInterface interface {
	Create(ctx context.Context, req CreateReviewRequest) (domain.Review, error)
	Update(ctx context.Context, reviewID int64, req UpdateReviewRequest) (domain.Review, error)
	Delete(ctx context.Context, reviewID int64) error
	List(ctx context.Context) ([]domain.Review, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Review, error)
	ListByDish(ctx context.Context, dishID int64) ([]domain.Review, error)
	ListSorted(ctx context.Context, sortBy, order string) ([]domain.Review, error)
}

type ReviewService struct {
	reviews repository.ReviewRepositoryInterface
	users   repository.UserRepositoryInterface
	dishes  repository.DishRepositoryInterface
}

func NewReviewService(
	reviews repository.ReviewRepositoryInterface,
	users repository.UserRepositoryInterface,
	dishes repository.DishRepositoryInterface,
) ReviewServiceInterface {
	return &ReviewService{reviews: reviews, users: users, dishes: dishes}
}

func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return domain.InvalidArgument("review", "rating must be between 1 and 5")
	}
	return nil
}

func (s *ReviewService) Create(ctx context.Context, req CreateReviewRequest) (domain.Review, error) {
	if err := validateRating(req.Rating); err != nil {
		return domain.Review{}, err
	}
	user, err := s.users.GetByEmail(ctx, req.ActingUserEmail)
	if err != nil {
		return domain.Review{}, err
	}
	if _, err := s.dishes.GetByID(ctx, req.DishID); err != nil {
		return domain.Review{}, err
	}
	return s.reviews.Create(ctx, domain.Review{
		UserID:  &user.ID,
		DishID:  req.DishID,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
}

// Update is owner-only: a review whose author was deleted, or one authored
// by somebody else, cannot be edited.
func (s *ReviewService) Update(ctx context.Context, reviewID int64, req UpdateReviewRequest) (domain.Review, error) {
	if err := validateRating(req.Rating); err != nil {
		return domain.Review{}, err
	}
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return domain.Review{}, err
	}
	acting, err := s.users.GetByEmail(ctx, req.ActingUserEmail)
	if err != nil {
		return domain.Review{}, err
	}
	if review.UserID == nil || *review.UserID != acting.ID {
		return domain.Review{}, domain.Forbidden("review", reviewID, "not the review author")
	}
	review.Rating = req.Rating
	review.Comment = req.Comment
	return s.reviews.Update(ctx, review)
}

func (s *ReviewService) Delete(ctx context.Context, reviewID int64) error {
	return s.reviews.Delete(ctx, reviewID)
}

func (s *ReviewService) List(ctx context.Context) ([]domain.Review, error) {
	return s.reviews.List(ctx)
}

func (s *ReviewService) ListByUser(ctx context.Context, userID int64) ([]domain.Review, error) {
	return s.reviews.ListByUser(ctx, userID)
}

func (s *ReviewService) ListByDish(ctx context.Context, dishID int64) ([]domain.Review, error) {
	return s.reviews.ListByDish(ctx, dishID)
}

func (s *ReviewService) ListSorted(ctx context.Context, sortBy, order string) ([]domain.Review, error) {
	reviews, err := s.reviews.List(ctx)
	if err != nil {
		return nil, err
	}
	var less func(a, b domain.Review) bool
	switch strings.ToLower(sortBy) {
	case "date":
		less = func(a, b domain.Review) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case "rating":
		less = func(a, b domain.Review) bool { return a.Rating < b.Rating }
	default:
		return nil, domain.InvalidArgument("review", "unknown sort field "+sortBy)
	}
	desc := strings.EqualFold(order, "desc")
	sort.SliceStable(reviews, func(i, j int) bool {
		if desc {
			return less(reviews[j], reviews[i])
		}
		return less(reviews[i], reviews[j])
	})
	return reviews, nil
}
