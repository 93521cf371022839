package service

import (
	"context"

	"restaurant-backoffice/internal/domain"
	"restaurant-backoffice/internal/repository"
)

type DishRequest struct {
	Name     string
	Price    float64
	Category string
}

type DishServiceInterface interface {
	Create(ctx context.Context, req DishRequest) (domain.Dish, error)
	GetByID(ctx context.Context, id int64) (domain.Dish, error)
	List(ctx context.Context) ([]domain.Dish, error)
	Update(ctx context.Context, id int64, req DishRequest) (domain.Dish, error)
	Delete(ctx context.Context, id int64) error
	// Resolve is the catalog lookup contract consumed by the order
	// manager: one batch read, missing ids absent from the result.
	Resolve(ctx context.Context, ids []int64) (map[int64]domain.Dish, error)
}

type DishService struct {
	dishes repository.DishRepositoryInterface
}

func NewDishService(dishes repository.DishRepositoryInterface) DishServiceInterface {
	return &DishService{dishes: dishes}
}

func validateDish(req DishRequest) error {
	if req.Name == "" {
		return domain.InvalidArgument("dish", "name is required")
	}
	if req.Price < 0 {
		return domain.InvalidArgument("dish", "price must not be negative")
	}
	return nil
}

func (s *DishService) Create(ctx context.Context, req DishRequest) (domain.Dish, error) {
	if err := validateDish(req); err != nil {
		return domain.Dish{}, err
	}
	return s.dishes.Create(ctx, domain.Dish{Name: req.Name, Price: req.Price, Category: req.Category})
}

func (s *DishService) GetByID(ctx context.Context, id int64) (domain.Dish, error) {
	return s.dishes.GetByID(ctx, id)
}

func (s *DishService) List(ctx context.Context) ([]domain.Dish, error) {
	return s.dishes.List(ctx)
}

func (s *DishService) Update(ctx context.Context, id int64, req DishRequest) (domain.Dish, error) {
	if err := validateDish(req); err != nil {
		return domain.Dish{}, err
	}
	dish, err := s.dishes.GetByID(ctx, id)
	if err != nil {
		return domain.Dish{}, err
	}
	dish.Name = req.Name
	dish.Price = req.Price
	dish.Category = req.Category
	return s.dishes.Update(ctx, dish)
}

func (s *DishService) Delete(ctx context.Context, id int64) error {
	return s.dishes.Delete(ctx, id)
}

func (s *DishService) Resolve(ctx context.Context, ids []int64) (map[int64]domain.Dish, error) {
	return s.dishes.ResolveByIDs(ctx, ids)
}
