package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Kind classifies a service failure so the HTTP layer can pick a status code.
type Kind string

const (
	KindInvalid      Kind = "invalid"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
)

// Error is an expected, client-facing failure.
type Error struct {
	Kind    Kind
	Message string
	Details []string
}

func (e *Error) Error() string { return e.Message }

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Invalid(format string, args ...any) *Error { return newError(KindInvalid, format, args...) }

func Unauthorized(format string, args ...any) *Error {
	return newError(KindUnauthorized, format, args...)
}

func Forbidden(format string, args ...any) *Error { return newError(KindForbidden, format, args...) }

func NotFound(format string, args ...any) *Error { return newError(KindNotFound, format, args...) }

func Conflict(format string, args ...any) *Error { return newError(KindConflict, format, args...) }

// ValidationFailed wraps the ordered messages of a validators.Result.
func ValidationFailed(messages []string) *Error {
	return &Error{Kind: KindInvalid, Message: strings.Join(messages, "; "), Details: messages}
}

// KindOf returns the kind of err, or "" for unexpected errors.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}

// isDuplicateKey reports unique-constraint violations from either driver.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// glebarez/sqlite surfaces constraint failures as plain driver errors
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
