package usecase

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/cropfresh/cropfresh-service-notification/internal/domain"
	"github.com/cropfresh/cropfresh-service-notification/internal/repository"
	"github.com/cropfresh/cropfresh-service-notification/pkg/xerrors"
)

// PreferenceUsecase loads farmer preferences (creating defaults lazily) and
// decides which channels a notification may use.
type PreferenceUsecase struct {
	repo repository.PreferenceRepository
	loc  *time.Location
	now  func() time.Time
}

func NewPreferenceUsecase(repo repository.PreferenceRepository, loc *time.Location) *PreferenceUsecase {
	return &PreferenceUsecase{repo: repo, loc: loc, now: time.Now}
}

// GetOrCreate returns the farmer's preferences, creating the default row on
// first read. Preferences are never deleted.
func (uc *PreferenceUsecase) GetOrCreate(ctx context.Context, farmerID string) (*domain.FarmerPreferences, error) {
	prefs, err := uc.repo.GetByFarmer(ctx, farmerID)
	if err == nil {
		return prefs, nil
	}
	if err != xerrors.ErrNotFound {
		return nil, err
	}
	return uc.repo.Upsert(ctx, domain.DefaultPreferences(farmerID))
}

// Update validates and persists new preference values.
func (uc *PreferenceUsecase) Update(ctx context.Context, prefs *domain.FarmerPreferences) (*domain.FarmerPreferences, error) {
	if prefs.FarmerID == "" {
		return nil, xerrors.ErrInvalidInput
	}
	switch prefs.NotificationLevel {
	case domain.LevelAll, domain.LevelCritical, domain.LevelMute:
	default:
		return nil, fmt.Errorf("notification level %q: %w", prefs.NotificationLevel, xerrors.ErrInvalidInput)
	}
	if _, err := parseClock(prefs.QuietHoursStart); err != nil {
		return nil, fmt.Errorf("quiet hours start: %w", xerrors.ErrInvalidInput)
	}
	if _, err := parseClock(prefs.QuietHoursEnd); err != nil {
		return nil, fmt.Errorf("quiet hours end: %w", xerrors.ErrInvalidInput)
	}
	return uc.repo.Upsert(ctx, prefs)
}

// ShouldSend applies the decision ladder: mute, critical-only level,
// category toggle (non-critical only), then per-channel rules. SMS is
// reserved for critical notifications; critical pushes bypass quiet hours.
// A preference load failure degrades to the defaults rather than dropping
// the notification.
func (uc *PreferenceUsecase) ShouldSend(ctx context.Context, farmerID string, isCritical bool, category domain.Category) domain.ChannelDecision {
	prefs, err := uc.GetOrCreate(ctx, farmerID)
	if err != nil {
		log.Printf("[PREFS] ⚠️ load failed for %s, using defaults: %v", farmerID, err)
		prefs = domain.DefaultPreferences(farmerID)
	}

	if prefs.NotificationLevel == domain.LevelMute {
		return domain.ChannelDecision{}
	}
	if prefs.NotificationLevel == domain.LevelCritical && !isCritical {
		return domain.ChannelDecision{}
	}
	if !isCritical && !categoryEnabled(prefs, category) {
		return domain.ChannelDecision{}
	}

	quiet := uc.QuietHoursActive(prefs)
	return domain.ChannelDecision{
		SMS:  prefs.SmsEnabled && isCritical,
		Push: prefs.PushEnabled && (!quiet || isCritical),
	}
}

// QuietHoursActive reports whether the farmer's configured window covers the
// current local time. A window whose start is after its end wraps midnight.
func (uc *PreferenceUsecase) QuietHoursActive(prefs *domain.FarmerPreferences) bool {
	if !prefs.QuietHoursEnabled {
		return false
	}

	start, err := parseClock(prefs.QuietHoursStart)
	if err != nil {
		return false
	}
	end, err := parseClock(prefs.QuietHoursEnd)
	if err != nil {
		return false
	}

	now := uc.now().In(uc.loc)
	nowMin := now.Hour()*60 + now.Minute()
	return quietWindowActive(nowMin, start, end)
}

// QuietHoursActiveFor is the push channel's gate: it only needs a farmer id.
func (uc *PreferenceUsecase) QuietHoursActiveFor(ctx context.Context, farmerID string) bool {
	prefs, err := uc.GetOrCreate(ctx, farmerID)
	if err != nil {
		log.Printf("[PREFS] ⚠️ quiet-hours load failed for %s: %v", farmerID, err)
		prefs = domain.DefaultPreferences(farmerID)
	}
	return uc.QuietHoursActive(prefs)
}

func categoryEnabled(prefs *domain.FarmerPreferences, category domain.Category) bool {
	switch category {
	case domain.CategoryOrder:
		return prefs.OrderUpdates
	case domain.CategoryPayment:
		return prefs.PaymentAlerts
	case domain.CategoryEducational:
		return prefs.EducationalContent
	default:
		return true
	}
}

func quietWindowActive(nowMin, startMin, endMin int) bool {
	if startMin > endMin {
		// wraps midnight, e.g. 22:00-06:00
		return nowMin >= startMin || nowMin < endMin
	}
	return nowMin >= startMin && nowMin < endMin
}

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("bad clock value %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("bad hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("bad minute in %q", s)
	}
	return h*60 + m, nil
}
