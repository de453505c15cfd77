package provider

import (
	"context"
	"errors"

	"github.com/cropfresh/cropfresh-service-notification/pkg/xerrors"
)

// SMSProvider is the opaque SMS send capability. Implementations return the
// provider message id on success; errors are transient unless stated.
type SMSProvider interface {
	Send(ctx context.Context, phoneNumber, messageText string) (messageID string, err error)
}

// PushPayload is one push message to one device token.
type PushPayload struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// PushProvider is the opaque push send capability. An invalid/unregistered
// token must surface as an error wrapping xerrors.ErrInvalidToken so the
// channel can prune the registry.
type PushProvider interface {
	Send(ctx context.Context, deviceToken string, payload PushPayload, highPriority bool) (messageID string, err error)
}

// IsInvalidToken reports whether a push error carries the permanent
// invalid-token signature rather than a transient failure.
func IsInvalidToken(err error) bool {
	return errors.Is(err, xerrors.ErrInvalidToken)
}
