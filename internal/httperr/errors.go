package httperr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Kind classifies a domain error. Anything without a kind is an
// infrastructure failure.
type Kind string

const (
	KindNotFound          Kind = "not_found"
	KindInvalidTransition Kind = "invalid_transition"
	KindValidation        Kind = "validation"
	KindBusinessRule      Kind = "business_rule"
	KindConflict          Kind = "conflict"
)

type Error struct {
	Kind      Kind
	Code      string
	Message   string
	EntityIDs []string
	Details   any
	Retryable bool
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Code + ": " + e.Message
}

func newError(kind Kind, code, message string, ids []string) *Error {
	return &Error{Kind: kind, Code: code, Message: message, EntityIDs: ids}
}

func ErrNotFound(code, message string, ids ...string) error {
	return newError(KindNotFound, code, message, ids)
}

func ErrValidation(code, message string, ids ...string) error {
	return newError(KindValidation, code, message, ids)
}

func ErrBusiness(code, message string, ids ...string) error {
	return newError(KindBusinessRule, code, message, ids)
}

// ErrInvalidTransition always names the current status.
func ErrInvalidTransition(action, current string, ids ...string) error {
	return newError(
		KindInvalidTransition,
		"invalid_transition",
		fmt.Sprintf("cannot %s from status %s", action, current),
		ids,
	)
}

// ErrConflict carries the conflicting entities in Details so callers can
// offer keep/cancel resolution.
func ErrConflict(code, message string, details any, ids ...string) error {
	e := newError(KindConflict, code, message, ids)
	e.Details = details
	return e
}

func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return ""
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func IsBusiness(err error, code string) bool {
	if e, ok := As(err); ok {
		return e.Code == code
	}
	return false
}

// IsExclusionConflict reports postgres failures that mean another
// transaction booked the same slot first: exclusion constraint violations and
// serialization failures.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "23P01" || pgErr.Code == "40001"
}

// FromStore turns a late-detected scheduling race into a retryable conflict.
// Other errors come back unchanged.
func FromStore(err error) error {
	if err == nil || !IsExclusionConflict(err) {
		return err
	}
	return &Error{
		Kind:      KindConflict,
		Code:      "concurrent_booking",
		Message:   "the slot was taken by a concurrent request, please retry",
		Retryable: true,
	}
}
