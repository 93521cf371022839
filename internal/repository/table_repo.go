package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"restaurant-backoffice/internal/domain"
)

type TableRepositoryInterface interface {
	Create(ctx context.Context, table domain.Table) (domain.Table, error)
	GetByID(ctx context.Context, id int64) (domain.Table, error)
	Update(ctx context.Context, table domain.Table) (domain.Table, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Table, error)
	ListAvailable(ctx context.Context) ([]domain.Table, error)
	ExistsByNumber(ctx context.Context, tableNumber int, excludeID int64) (bool, error)
	Reserve(ctx context.Context, tableID, userID int64, at time.Time) (domain.Table, error)
	Release(ctx context.Context, tableID int64) (domain.Table, error)
}

type TableRepository struct {
	db *pgxpool.Pool
}

func NewTableRepository(db *pgxpool.Pool) TableRepositoryInterface {
	return &TableRepository{db: db}
}

const tableColumns = `id, table_number, seats, is_reserved, reserved_by, reserved_at`

func scanTable(row pgx.Row) (domain.Table, error) {
	var t domain.Table
	if err := row.Scan(&t.ID, &t.TableNumber, &t.Seats, &t.IsReserved, &t.ReservedBy, &t.ReservedAt); err != nil {
		return domain.Table{}, err
	}
	return t, nil
}

func (r *TableRepository) Create(ctx context.Context, table domain.Table) (domain.Table, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO dining_tables (table_number, seats, is_reserved, reserved_by, reserved_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+tableColumns,
		table.TableNumber, table.Seats, table.IsReserved, table.ReservedBy, table.ReservedAt,
	)
	t, err := scanTable(row)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.Table{}, domain.Conflict("table", table.TableNumber, "table number already exists")
		}
		return domain.Table{}, fmt.Errorf("insert table: %w", err)
	}
	return t, nil
}

func (r *TableRepository) GetByID(ctx context.Context, id int64) (domain.Table, error) {
	row := r.db.QueryRow(ctx, `SELECT `+tableColumns+` FROM dining_tables WHERE id = $1`, id)
	t, err := scanTable(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Table{}, domain.NotFound("table", id)
	}
	if err != nil {
		return domain.Table{}, fmt.Errorf("select table: %w", err)
	}
	return t, nil
}

func (r *TableRepository) Update(ctx context.Context, table domain.Table) (domain.Table, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE dining_tables
		SET table_number = $2, seats = $3, is_reserved = $4, reserved_by = $5, reserved_at = $6
		WHERE id = $1
		RETURNING `+tableColumns,
		table.ID, table.TableNumber, table.Seats, table.IsReserved, table.ReservedBy, table.ReservedAt,
	)
	t, err := scanTable(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Table{}, domain.NotFound("table", table.ID)
	}
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.Table{}, domain.Conflict("table", table.TableNumber, "table number already exists")
		}
		return domain.Table{}, fmt.Errorf("update table: %w", err)
	}
	return t, nil
}

func (r *TableRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM dining_tables WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete table: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("table", id)
	}
	return nil
}

func (r *TableRepository) List(ctx context.Context) ([]domain.Table, error) {
	rows, err := r.db.Query(ctx, `SELECT `+tableColumns+` FROM dining_tables ORDER BY table_number`)
	if err != nil {
		return nil, fmt.Errorf("query tables: %w", err)
	}
	return collectTables(rows)
}

func (r *TableRepository) ListAvailable(ctx context.Context) ([]domain.Table, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+tableColumns+` FROM dining_tables
		WHERE is_reserved = FALSE
		ORDER BY table_number`)
	if err != nil {
		return nil, fmt.Errorf("query available tables: %w", err)
	}
	return collectTables(rows)
}

func (r *TableRepository) ExistsByNumber(ctx context.Context, tableNumber int, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM dining_tables WHERE table_number = $1 AND id <> $2
		)`, tableNumber, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check table number: %w", err)
	}
	return exists, nil
}

// Reserve is the atomic check-and-set behind reservation exclusivity: the
// conditional UPDATE serializes per row, so of N concurrent calls on one
// free table exactly one matches is_reserved = FALSE. The losing callers
// are re-probed to tell a missing table from an already reserved one.
func (r *TableRepository) Reserve(ctx context.Context, tableID, userID int64, at time.Time) (domain.Table, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE dining_tables
		SET is_reserved = TRUE, reserved_by = $2, reserved_at = $3
		WHERE id = $1 AND is_reserved = FALSE
		RETURNING `+tableColumns,
		tableID, userID, at,
	)
	t, err := scanTable(row)
	if errors.Is(err, pgx.ErrNoRows) {
		if _, probeErr := r.GetByID(ctx, tableID); probeErr != nil {
			return domain.Table{}, probeErr
		}
		return domain.Table{}, domain.Conflict("table", tableID, "already reserved")
	}
	if err != nil {
		return domain.Table{}, fmt.Errorf("reserve table: %w", err)
	}
	return t, nil
}

// Release is the inverse conditional update; a row that is not currently
// reserved is a Conflict, not a silent no-op.
func (r *TableRepository) Release(ctx context.Context, tableID int64) (domain.Table, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE dining_tables
		SET is_reserved = FALSE, reserved_by = NULL, reserved_at = NULL
		WHERE id = $1 AND is_reserved = TRUE
		RETURNING `+tableColumns,
		tableID,
	)
	t, err := scanTable(row)
	if errors.Is(err, pgx.ErrNoRows) {
		if _, probeErr := r.GetByID(ctx, tableID); probeErr != nil {
			return domain.Table{}, probeErr
		}
		return domain.Table{}, domain.Conflict("table", tableID, "not reserved")
	}
	if err != nil {
		return domain.Table{}, fmt.Errorf("release table: %w", err)
	}
	return t, nil
}

func collectTables(rows pgx.Rows) ([]domain.Table, error) {
	defer rows.Close()
	var tables []domain.Table
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, fmt.Errorf("scan table: %w", err)
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return tables, nil
}
