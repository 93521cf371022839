package app

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"restaurant-backoffice/internal/config"
	"restaurant-backoffice/internal/events"
	"restaurant-backoffice/internal/logger"
	"restaurant-backoffice/internal/repository"
	"restaurant-backoffice/internal/service"
)

// App is the composed core. The API layer mounts on top of these services;
// nothing below them is reachable from outside.
type App struct {
	Orders  service.OrderServiceInterface
	Tables  service.TableServiceInterface
	Dishes  service.DishServiceInterface
	Users   service.UserServiceInterface
	Reviews service.ReviewServiceInterface
}

func New(db *pgxpool.Pool, publisher events.Publisher, lg *logger.Logger, cfg config.Orders) *App {
	orderRepo := repository.NewOrderRepository(db)
	tableRepo := repository.NewTableRepository(db)
	dishRepo := repository.NewDishRepository(db)
	userRepo := repository.NewUserRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	return &App{
		Orders:  service.NewOrderService(orderRepo, userRepo, dishRepo, publisher, lg, cfg.StrictStatusTransitions),
		Tables:  service.NewTableService(tableRepo, userRepo),
		Dishes:  service.NewDishService(dishRepo),
		Users:   service.NewUserService(userRepo),
		Reviews: service.NewReviewService(reviewRepo, userRepo, dishRepo),
	}
}
