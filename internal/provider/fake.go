package provider

import (
	"context"
	"log"

	"github.com/cropfresh/cropfresh-service-notification/pkg/id"
)

// Log-only providers so the service boots without gateway credentials.

type LogSMSProvider struct{}

func (LogSMSProvider) Send(_ context.Context, phoneNumber, messageText string) (string, error) {
	mid := id.New("smsmock")
	log.Printf("[SMS][MOCK] to=%s id=%s text=%q", maskPhone(phoneNumber), mid, messageText)
	return mid, nil
}

type LogPushProvider struct{}

func (LogPushProvider) Send(_ context.Context, deviceToken string, payload PushPayload, highPriority bool) (string, error) {
	mid := id.New("pushmock")
	log.Printf("[PUSH][MOCK] token=%.12s... id=%s high=%t title=%q", deviceToken, mid, highPriority, payload.Title)
	return mid, nil
}
