package service

import (
	"context"
	"fmt"
	"time"

	"restaurant-backoffice/internal/domain"
	"restaurant-backoffice/internal/repository"
)

type UpdateTableRequest struct {
	TableNumber int
	Seats       int
	IsReserved  bool
	ReservedBy  int64 // required when IsReserved is true
}

type TableServiceInterface interface {
	Create(ctx context.Context, tableNumber, seats int) (domain.Table, error)
	Update(ctx context.Context, tableID int64, req UpdateTableRequest) (domain.Table, error)
	Delete(ctx context.Context, tableID int64) error
	Reserve(ctx context.Context, tableID, actingUserID int64) (domain.Table, error)
	ReserveByEmail(ctx context.Context, tableID int64, actingUserEmail string) (domain.Table, error)
	CancelReservation(ctx context.Context, tableID int64) (domain.Table, error)
	GetByID(ctx context.Context, tableID int64) (domain.Table, error)
	List(ctx context.Context) ([]domain.Table, error)
	ListAvailable(ctx context.Context) ([]domain.Table, error)
}

// TableService owns the reservation slot of every dining table. All writes
// to the reservation fields go through here.
type TableService struct {
	tables repository.TableRepositoryInterface
	users  repository.UserRepositoryInterface
	now    func() time.Time
}

func NewTableService(tables repository.TableRepositoryInterface, users repository.UserRepositoryInterface) TableServiceInterface {
	return &TableService{tables: tables, users: users, now: time.Now}
}

func validateSeats(seats int) error {
	if seats < 1 {
		return domain.InvalidArgument("table", "seats must be positive")
	}
	if seats > domain.MaxSeats {
		return domain.InvalidArgument("table", fmt.Sprintf("seats must not exceed %d", domain.MaxSeats))
	}
	return nil
}

func (s *TableService) Create(ctx context.Context, tableNumber, seats int) (domain.Table, error) {
	if err := validateSeats(seats); err != nil {
		return domain.Table{}, err
	}
	exists, err := s.tables.ExistsByNumber(ctx, tableNumber, 0)
	if err != nil {
		return domain.Table{}, err
	}
	if exists {
		return domain.Table{}, domain.Conflict("table", tableNumber, "table number already exists")
	}
	// New tables start free.
	return s.tables.Create(ctx, domain.Table{TableNumber: tableNumber, Seats: seats})
}

// Update is an administrative override: it can force any reservation state
// without going through Reserve/CancelReservation.
func (s *TableService) Update(ctx context.Context, tableID int64, req UpdateTableRequest) (domain.Table, error) {
	if err := validateSeats(req.Seats); err != nil {
		return domain.Table{}, err
	}
	collides, err := s.tables.ExistsByNumber(ctx, req.TableNumber, tableID)
	if err != nil {
		return domain.Table{}, err
	}
	if collides {
		return domain.Table{}, domain.Conflict("table", req.TableNumber, "table number already exists")
	}

	table, err := s.tables.GetByID(ctx, tableID)
	if err != nil {
		return domain.Table{}, err
	}
	table.TableNumber = req.TableNumber
	table.Seats = req.Seats
	table.IsReserved = req.IsReserved
	if req.IsReserved {
		user, err := s.users.GetByID(ctx, req.ReservedBy)
		if err != nil {
			return domain.Table{}, err
		}
		at := s.now()
		table.ReservedBy = &user.ID
		table.ReservedAt = &at
	} else {
		table.ReservedBy = nil
		table.ReservedAt = nil
	}
	return s.tables.Update(ctx, table)
}

// Delete does not check the reservation state: removing a reserved table is
// permitted and has no side effect on the reserving user.
func (s *TableService) Delete(ctx context.Context, tableID int64) error {
	return s.tables.Delete(ctx, tableID)
}

// Reserve transitions FREE → RESERVED. The check-and-set is atomic per
// table id, so concurrent calls on the same table serialize and at most one
// succeeds; calls on different tables proceed independently.
func (s *TableService) Reserve(ctx context.Context, tableID, actingUserID int64) (domain.Table, error) {
	user, err := s.users.GetByID(ctx, actingUserID)
	if err != nil {
		return domain.Table{}, err
	}
	return s.tables.Reserve(ctx, tableID, user.ID, s.now())
}

// ReserveByEmail resolves the acting user by authenticated principal name.
func (s *TableService) ReserveByEmail(ctx context.Context, tableID int64, actingUserEmail string) (domain.Table, error) {
	user, err := s.users.GetByEmail(ctx, actingUserEmail)
	if err != nil {
		return domain.Table{}, err
	}
	return s.tables.Reserve(ctx, tableID, user.ID, s.now())
}

// CancelReservation transitions RESERVED → FREE; cancelling a free table is
// a Conflict, not a silent no-op.
func (s *TableService) CancelReservation(ctx context.Context, tableID int64) (domain.Table, error) {
	return s.tables.Release(ctx, tableID)
}

func (s *TableService) GetByID(ctx context.Context, tableID int64) (domain.Table, error) {
	return s.tables.GetByID(ctx, tableID)
}

func (s *TableService) List(ctx context.Context) ([]domain.Table, error) {
	return s.tables.List(ctx)
}

func (s *TableService) ListAvailable(ctx context.Context) ([]domain.Table, error) {
	return s.tables.ListAvailable(ctx)
}
