package channel

import (
	"context"
	"log"
	"time"

	"github.com/cropfresh/cropfresh-service-notification/internal/domain"
	"github.com/cropfresh/cropfresh-service-notification/internal/provider"
	"github.com/cropfresh/cropfresh-service-notification/internal/repository"
	"github.com/cropfresh/cropfresh-service-notification/pkg/id"
	"github.com/cropfresh/cropfresh-service-notification/pkg/quota"
	"github.com/cropfresh/cropfresh-service-notification/pkg/template"
	"github.com/cropfresh/cropfresh-service-notification/pkg/xerrors"
)

// SMSRequest is one SMS send through the channel.
type SMSRequest struct {
	FarmerID    string
	Phone       string
	TemplateKey string
	Language    domain.Language
	Variables   map[string]interface{}
}

// SMSResult is the structured outcome; expected failures (quota, retries
// exhausted) are reported here, never as a raised error.
type SMSResult struct {
	Success      bool
	MessageID    string
	LogID        string
	ErrorMessage string
}

type SMSConfig struct {
	DailyQuota int
	MaxRetries int
	Backoff    []time.Duration
	Location   *time.Location
}

// SMSChannel sends SMS with daily quota enforcement and bounded
// retry-with-backoff. Retries are sequential per send; repeated sends to
// one phone number must not race each other.
type SMSChannel struct {
	provider provider.SMSProvider
	logs     repository.SmsLogRepository
	quota    quota.Reserver
	cfg      SMSConfig
	now      func() time.Time
}

func NewSMSChannel(p provider.SMSProvider, logs repository.SmsLogRepository, q quota.Reserver, cfg SMSConfig) *SMSChannel {
	if cfg.DailyQuota <= 0 {
		cfg.DailyQuota = 20
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if len(cfg.Backoff) == 0 {
		cfg.Backoff = []time.Duration{1 * time.Second, 5 * time.Second, 15 * time.Second}
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &SMSChannel{provider: p, logs: logs, quota: q, cfg: cfg, now: time.Now}
}

func (c *SMSChannel) Send(ctx context.Context, req SMSRequest) SMSResult {
	now := c.now().In(c.cfg.Location)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, c.cfg.Location)

	// Atomic slot reservation closes the race between concurrent sends for
	// one farmer; the durable count below stays the source of truth.
	if c.quota != nil {
		if err := c.quota.Reserve(ctx, req.FarmerID, now); err != nil {
			log.Printf("[SMS] quota slot denied for %s", req.FarmerID)
			return SMSResult{ErrorMessage: xerrors.ErrQuotaExceeded.Error()}
		}
	}

	sentToday, err := c.logs.CountDeliveredSince(ctx, req.FarmerID, midnight)
	if err != nil {
		c.releaseSlot(ctx, req.FarmerID, now)
		log.Printf("[SMS] ⚠️ quota count failed for %s: %v", req.FarmerID, err)
		return SMSResult{ErrorMessage: err.Error()}
	}
	if sentToday >= c.cfg.DailyQuota {
		c.releaseSlot(ctx, req.FarmerID, now)
		log.Printf("[SMS] daily quota reached for %s (%d/%d)", req.FarmerID, sentToday, c.cfg.DailyQuota)
		return SMSResult{ErrorMessage: xerrors.ErrQuotaExceeded.Error()}
	}

	text := template.Render(req.TemplateKey, req.Language, req.Variables)

	// One log row per send, created before the first attempt and updated
	// after every attempt; quota accounting and audit both hang off it.
	entry := &domain.SmsDeliveryLog{
		ID:          id.New("sms"),
		FarmerID:    req.FarmerID,
		PhoneNumber: req.Phone,
		TemplateKey: req.TemplateKey,
		Status:      domain.SmsStatusPending,
	}
	if err := c.logs.Create(ctx, entry); err != nil {
		c.releaseSlot(ctx, req.FarmerID, now)
		log.Printf("[SMS] ⚠️ failed to create delivery log for %s: %v", req.FarmerID, err)
		return SMSResult{ErrorMessage: err.Error()}
	}

	var lastErr error
	for attempt := 1; attempt <= c.cfg.MaxRetries; attempt++ {
		messageID, err := c.provider.Send(ctx, req.Phone, text)
		if err == nil {
			if uerr := c.logs.MarkSent(ctx, entry.ID, attempt, messageID); uerr != nil {
				log.Printf("[SMS] ⚠️ failed to mark log %s sent: %v", entry.ID, uerr)
			}
			return SMSResult{Success: true, MessageID: messageID, LogID: entry.ID}
		}

		lastErr = err
		log.Printf("[SMS] attempt %d/%d failed for %s: %v", attempt, c.cfg.MaxRetries, req.FarmerID, err)
		if uerr := c.logs.UpdateAttempt(ctx, entry.ID, attempt, err.Error()); uerr != nil {
			log.Printf("[SMS] ⚠️ failed to record attempt on log %s: %v", entry.ID, uerr)
		}

		if attempt < c.cfg.MaxRetries {
			if !c.sleep(ctx, c.backoffFor(attempt)) {
				lastErr = ctx.Err()
				break
			}
		}
	}

	c.releaseSlot(ctx, req.FarmerID, now)
	errMsg := "send failed"
	if lastErr != nil {
		errMsg = lastErr.Error()
	}
	if uerr := c.logs.MarkFailed(ctx, entry.ID, c.cfg.MaxRetries, errMsg); uerr != nil {
		log.Printf("[SMS] ⚠️ failed to mark log %s failed: %v", entry.ID, uerr)
	}
	return SMSResult{LogID: entry.ID, ErrorMessage: errMsg}
}

func (c *SMSChannel) backoffFor(attempt int) time.Duration {
	if attempt-1 < len(c.cfg.Backoff) {
		return c.cfg.Backoff[attempt-1]
	}
	return c.cfg.Backoff[len(c.cfg.Backoff)-1]
}

// releaseSlot gives a reserved quota slot back so only SENT messages count.
func (c *SMSChannel) releaseSlot(ctx context.Context, farmerID string, day time.Time) {
	if c.quota != nil {
		c.quota.Release(ctx, farmerID, day)
	}
}

func (c *SMSChannel) sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
