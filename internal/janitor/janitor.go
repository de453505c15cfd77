package janitor

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/cropfresh/cropfresh-service-notification/internal/usecase"
)

const (
	deviceMaxAge       = 90 * 24 * time.Hour
	notificationMaxAge = 30 * 24 * time.Hour
)

// Janitor runs nightly retention: inactive device tokens past 90 days are
// hard-deleted, read in-app notifications past 30 days are reaped. Unread
// notifications are never touched.
type Janitor struct {
	cron          *cron.Cron
	devices       *usecase.DeviceUsecase
	notifications *usecase.NotificationUsecase
}

func New(devices *usecase.DeviceUsecase, notifications *usecase.NotificationUsecase, loc *time.Location) *Janitor {
	return &Janitor{
		cron:          cron.New(cron.WithLocation(loc)),
		devices:       devices,
		notifications: notifications,
	}
}

func (j *Janitor) Start() error {
	if _, err := j.cron.AddFunc("0 3 * * *", j.run); err != nil {
		return err
	}
	j.cron.Start()
	log.Println("[JANITOR] retention schedule started (daily 03:00)")
	return nil
}

func (j *Janitor) Stop() {
	<-j.cron.Stop().Done()
}

func (j *Janitor) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if n, err := j.devices.PruneInactive(ctx, deviceMaxAge); err != nil {
		log.Printf("[JANITOR] ⚠️ device prune failed: %v", err)
	} else if n > 0 {
		log.Printf("[JANITOR] pruned %d stale device tokens", n)
	}

	if n, err := j.notifications.PruneRead(ctx, notificationMaxAge); err != nil {
		log.Printf("[JANITOR] ⚠️ notification prune failed: %v", err)
	} else if n > 0 {
		log.Printf("[JANITOR] pruned %d read notifications", n)
	}
}
