package dispatcher

import (
	"context"
	"log"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/cropfresh/cropfresh-service-notification/internal/domain"
	"github.com/cropfresh/cropfresh-service-notification/internal/repository"
	"github.com/cropfresh/cropfresh-service-notification/pkg/xerrors"
)

// Router is the dispatcher's view of the notification router.
type Router interface {
	SendNotification(ctx context.Context, params domain.SendParams) domain.NotificationResult
}

// Dispatcher turns at-least-once upstream delivery into at-most-one
// notification per event. The LRU is a latency tier only; the durable
// check is the in-app record carrying the event id in its metadata.
type Dispatcher struct {
	router Router
	store  repository.NotificationRepository
	seen   *lru.Cache[string, struct{}]
}

func New(router Router, store repository.NotificationRepository, cacheSize int) (*Dispatcher, error) {
	if cacheSize <= 0 {
		cacheSize = 4096
	}
	seen, err := lru.New[string, struct{}](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Dispatcher{router: router, store: store, seen: seen}, nil
}

// Dispatch routes one upstream event. Returns false for duplicates, unknown
// types and handler failures; it never panics or raises past this boundary.
func (d *Dispatcher) Dispatch(ctx context.Context, event *domain.NotificationEvent) bool {
	if event == nil || event.EventID == "" || event.FarmerID == "" {
		log.Printf("[DISPATCH] rejected malformed event: %+v", event)
		return false
	}

	build, ok := handlers[event.Type]
	if !ok {
		log.Printf("[DISPATCH] unknown event type %q (event=%s)", event.Type, event.EventID)
		return false
	}

	if d.seen.Contains(event.EventID) {
		log.Printf("[DISPATCH] duplicate event %s (cache)", event.EventID)
		return false
	}
	if _, err := d.store.FindByEventID(ctx, event.EventID); err == nil {
		d.seen.Add(event.EventID, struct{}{})
		log.Printf("[DISPATCH] duplicate event %s (store)", event.EventID)
		return false
	} else if err != xerrors.ErrNotFound {
		log.Printf("[DISPATCH] ⚠️ durable dedup lookup failed for %s: %v", event.EventID, err)
	}

	// Mark before dispatch to narrow the concurrent-redelivery window;
	// unmark on failure so a redelivery can retry.
	d.seen.Add(event.EventID, struct{}{})

	params := build(event)
	params.FarmerID = event.FarmerID
	if params.Metadata == nil {
		params.Metadata = map[string]interface{}{}
	}
	params.Metadata[domain.MetaEventID] = event.EventID

	result := d.router.SendNotification(ctx, params)
	if !result.Success {
		d.seen.Remove(event.EventID)
		log.Printf("[DISPATCH] event %s failed (type=%s)", event.EventID, event.Type)
	}
	return result.Success
}
