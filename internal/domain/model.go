package domain

import "time"

// Role is the closed set of user roles. Authorization decisions belong to
// the API layer; the core only stores and reports the role.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleUser:
		return Role(s), true
	}
	return "", false
}

type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash []byte
	Role         Role
}

type Dish struct {
	ID       int64
	Name     string
	Price    float64
	Category string
}

// Order bundles one user, an ordered multiset of dish references and a
// status. DishIDs is a snapshot copy: a dish ordered twice appears twice,
// and FullPrice always reflects the last recompute over exactly this list.
type Order struct {
	ID        int64
	UserID    int64
	DishIDs   []int64
	FullPrice float64
	Addition  string
	Status    OrderStatus
}

// Table is a physical seating unit with a single-holder reservation slot.
// ReservedBy and ReservedAt are both set or both nil, consistently with
// IsReserved.
type Table struct {
	ID          int64
	TableNumber int
	Seats       int
	IsReserved  bool
	ReservedBy  *int64
	ReservedAt  *time.Time
}

// MaxSeats bounds table capacity (1..MaxSeats).
const MaxSeats = 30

type Review struct {
	ID        int64
	UserID    *int64 // nil once the author's account is deleted
	DishID    int64
	Rating    int
	Comment   string
	CreatedAt time.Time
}
