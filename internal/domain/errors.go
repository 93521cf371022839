package domain

import (
	"errors"
	"fmt"
)

// Failure kinds. Callers match with errors.Is; the API layer maps them to
// transport responses.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrConflict         = errors.New("conflict")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidReference = errors.New("invalid reference")
)

// Error carries a failure kind together with the entity and identifier it
// refers to, so every failure is enough to produce a precise message.
type Error struct {
	Kind   error
	Entity string
	Ref    string
	Reason string
}

func (e *Error) Error() string {
	msg := e.Entity
	if e.Ref != "" {
		msg += " " + e.Ref
	}
	msg += ": " + e.Kind.Error()
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Kind }

func NotFound(entity string, ref any) error {
	return &Error{Kind: ErrNotFound, Entity: entity, Ref: fmt.Sprint(ref)}
}

func InvalidArgument(entity, reason string) error {
	return &Error{Kind: ErrInvalidArgument, Entity: entity, Reason: reason}
}

func Conflict(entity string, ref any, reason string) error {
	return &Error{Kind: ErrConflict, Entity: entity, Ref: fmt.Sprint(ref), Reason: reason}
}

func Forbidden(entity string, ref any, reason string) error {
	return &Error{Kind: ErrForbidden, Entity: entity, Ref: fmt.Sprint(ref), Reason: reason}
}

func InvalidReference(entity string, ref any) error {
	return &Error{Kind: ErrInvalidReference, Entity: entity, Ref: fmt.Sprint(ref)}
}
