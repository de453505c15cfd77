package xerrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func ParsePGErrorCode(err error) string {
	if pgErr, ok := err.(*pgconn.PgError); ok {
		return pgErr.Code // e.g. 23505 for unique_violation
	}
	return "unknown"
}

// Generic
var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrInternalServer = errors.New("internal server error")
	ErrNotFound       = errors.New("not found")
	ErrInvalidInput   = errors.New("invalid input provided")
)

// Delivery
var (
	ErrQuotaExceeded  = errors.New("daily sms quota exceeded")
	ErrInvalidToken   = errors.New("device token invalid or unregistered")
	ErrNoActiveTokens = errors.New("no active device tokens")
	ErrNoPhoneNumber  = errors.New("farmer has no phone number")
)

// Templates
var (
	ErrNoTemplate = errors.New("no template family for key")
)

// Dispatch
var (
	ErrDuplicateEvent   = errors.New("event already processed")
	ErrUnknownEventType = errors.New("unknown event type")
)
