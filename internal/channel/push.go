package channel

import (
	"context"
	"fmt"
	"log"

	"github.com/cropfresh/cropfresh-service-notification/internal/domain"
	"github.com/cropfresh/cropfresh-service-notification/internal/provider"
	"github.com/cropfresh/cropfresh-service-notification/internal/repository"
)

// QuietHoursChecker gates non-critical pushes. Implemented by the
// preference usecase.
type QuietHoursChecker interface {
	QuietHoursActiveFor(ctx context.Context, farmerID string) bool
}

// PushRequest fans one notification out to every active device of a farmer.
type PushRequest struct {
	FarmerID         string
	Type             domain.NotificationType
	Title            string
	Body             string
	Deeplink         string
	Metadata         map[string]interface{}
	HighPriority     bool
	BypassQuietHours bool
}

type PushResult struct {
	Success       bool
	SuccessCount  int
	FailureCount  int
	InvalidTokens []string
}

// PushChannel sends push notifications concurrently to all of a farmer's
// active tokens. Invalid-token errors are permanent and self-heal the
// registry; transient failures surface as counts and are not retried here.
type PushChannel struct {
	provider provider.PushProvider
	devices  repository.DeviceRepository
	quiet    QuietHoursChecker
}

func NewPushChannel(p provider.PushProvider, devices repository.DeviceRepository, quiet QuietHoursChecker) *PushChannel {
	return &PushChannel{provider: p, devices: devices, quiet: quiet}
}

func (c *PushChannel) SendToFarmer(ctx context.Context, req PushRequest) PushResult {
	if !req.BypassQuietHours && c.quiet != nil && c.quiet.QuietHoursActiveFor(ctx, req.FarmerID) {
		// A deliberate no-op, not a failure.
		log.Printf("[PUSH] quiet hours active, skipping for %s (type=%s)", req.FarmerID, req.Type)
		return PushResult{Success: true}
	}

	tokens, err := c.devices.ListActiveByFarmer(ctx, req.FarmerID)
	if err != nil {
		log.Printf("[PUSH] ⚠️ token lookup failed for %s: %v", req.FarmerID, err)
		return PushResult{}
	}
	if len(tokens) == 0 {
		return PushResult{Success: true}
	}

	payload := provider.PushPayload{
		Title: req.Title,
		Body:  req.Body,
		Data:  pushData(req),
	}

	type outcome struct {
		ok           bool
		invalidToken string
	}
	results := make(chan outcome, len(tokens))

	for _, t := range tokens {
		go func(token string) {
			_, err := c.provider.Send(ctx, token, payload, req.HighPriority)
			if err == nil {
				results <- outcome{ok: true}
				return
			}
			if provider.IsInvalidToken(err) {
				results <- outcome{invalidToken: token}
				return
			}
			log.Printf("[PUSH] send failed for %s: %v", req.FarmerID, err)
			results <- outcome{}
		}(t.Token)
	}

	var res PushResult
	for range tokens {
		o := <-results
		switch {
		case o.ok:
			res.SuccessCount++
		case o.invalidToken != "":
			res.FailureCount++
			res.InvalidTokens = append(res.InvalidTokens, o.invalidToken)
		default:
			res.FailureCount++
		}
	}

	if len(res.InvalidTokens) > 0 {
		if err := c.devices.DeactivateTokens(ctx, res.InvalidTokens); err != nil {
			log.Printf("[PUSH] ⚠️ failed to deactivate %d invalid tokens: %v", len(res.InvalidTokens), err)
		} else {
			log.Printf("[PUSH] deactivated %d invalid tokens for %s", len(res.InvalidTokens), req.FarmerID)
		}
	}

	res.Success = res.SuccessCount > 0
	return res
}

func pushData(req PushRequest) map[string]string {
	data := map[string]string{"type": string(req.Type)}
	if req.Deeplink != "" {
		data["deeplink"] = req.Deeplink
	}
	for k, v := range req.Metadata {
		data[k] = fmt.Sprintf("%v", v)
	}
	return data
}
