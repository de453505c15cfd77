package dispatcher

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cropfresh/cropfresh-service-notification/internal/domain"
	"github.com/cropfresh/cropfresh-service-notification/pkg/xerrors"
)

type routerStub struct {
	mu    sync.Mutex
	calls []domain.SendParams
	fail  bool
	store *storeStub // when set, successful sends register their event id
}

func (r *routerStub) SendNotification(_ context.Context, params domain.SendParams) domain.NotificationResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, params)
	if r.fail {
		return domain.NotificationResult{}
	}
	if r.store != nil {
		if id, ok := params.Metadata[domain.MetaEventID].(string); ok {
			r.store.add(id)
		}
	}
	return domain.NotificationResult{Success: true, Stored: true}
}

type storeStub struct {
	mu      sync.Mutex
	byEvent map[string]*domain.InAppNotification
}

func newStoreStub() *storeStub {
	return &storeStub{byEvent: map[string]*domain.InAppNotification{}}
}

func (s *storeStub) add(eventID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byEvent[eventID] = &domain.InAppNotification{
		Metadata: map[string]interface{}{domain.MetaEventID: eventID},
	}
}

func (s *storeStub) FindByEventID(_ context.Context, eventID string) (*domain.InAppNotification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n, ok := s.byEvent[eventID]; ok {
		return n, nil
	}
	return nil, xerrors.ErrNotFound
}

func (s *storeStub) Create(_ context.Context, n *domain.InAppNotification) (*domain.InAppNotification, error) {
	return n, nil
}

func (s *storeStub) GetByID(_ context.Context, _ int64) (*domain.InAppNotification, error) {
	return nil, xerrors.ErrNotFound
}

func (s *storeStub) ListByFarmer(_ context.Context, _ string, _, _ int) ([]*domain.InAppNotification, error) {
	return nil, nil
}

func (s *storeStub) ListUnread(_ context.Context, _ string, _, _ int) ([]*domain.InAppNotification, error) {
	return nil, nil
}

func (s *storeStub) CountUnread(_ context.Context, _ string) (int, error) { return 0, nil }

func (s *storeStub) MarkAsRead(_ context.Context, _ int64, _ string) error { return nil }

func (s *storeStub) MarkAllRead(_ context.Context, _ string) (int64, error) { return 0, nil }

func (s *storeStub) DeleteByID(_ context.Context, _ int64, _ string) error { return nil }

func (s *storeStub) DeleteReadBefore(_ context.Context, _ time.Time) (int64, error) { return 0, nil }

func orderMatchedEvent(eventID string) *domain.NotificationEvent {
	return &domain.NotificationEvent{
		EventID:  eventID,
		Type:     domain.OrderMatched,
		FarmerID: "farmer-1",
		Payload: map[string]interface{}{
			"matchId": "match-7", "orderId": "ord-9",
			"crop": "Tomato", "quantity": 50, "price": 25, "total": 1250,
			"phone": "+919876500001", "language": "kn",
		},
	}
}

func TestDispatchRoutesEvent(t *testing.T) {
	store := newStoreStub()
	router := &routerStub{store: store}
	d, err := New(router, store, 16)
	require.NoError(t, err)

	ok := d.Dispatch(context.Background(), orderMatchedEvent("evt-1"))
	require.True(t, ok)

	require.Len(t, router.calls, 1)
	params := router.calls[0]
	assert.Equal(t, "farmer-1", params.FarmerID)
	assert.Equal(t, domain.OrderMatched, params.Type)
	assert.Equal(t, domain.Kannada, params.Language)
	assert.Equal(t, "+919876500001", params.Phone)
	assert.Equal(t, "cropfresh://matches/match-7", params.Deeplink)
	assert.Equal(t, "evt-1", params.Metadata[domain.MetaEventID])
	assert.Equal(t, 50, params.Variables["quantity"])
}

func TestDispatchDuplicateEvent(t *testing.T) {
	store := newStoreStub()
	router := &routerStub{store: store}
	d, err := New(router, store, 16)
	require.NoError(t, err)

	evt := orderMatchedEvent("evt-dup")
	require.True(t, d.Dispatch(context.Background(), evt))
	require.False(t, d.Dispatch(context.Background(), evt))

	assert.Len(t, router.calls, 1, "the duplicate must not reach the router")
}

func TestDispatchDurableDedupSurvivesCacheEviction(t *testing.T) {
	store := newStoreStub()
	router := &routerStub{store: store}
	d, err := New(router, store, 1) // single-slot cache evicts on every add
	require.NoError(t, err)

	require.True(t, d.Dispatch(context.Background(), orderMatchedEvent("evt-a")))
	require.True(t, d.Dispatch(context.Background(), orderMatchedEvent("evt-b"))) // evicts evt-a

	// evt-a is gone from the cache; the stored record must still block it.
	require.False(t, d.Dispatch(context.Background(), orderMatchedEvent("evt-a")))
	assert.Len(t, router.calls, 2)
}

func TestDispatchUnknownType(t *testing.T) {
	router := &routerStub{}
	d, err := New(router, newStoreStub(), 16)
	require.NoError(t, err)

	ok := d.Dispatch(context.Background(), &domain.NotificationEvent{
		EventID:  "evt-1",
		Type:     domain.NotificationType("WEATHER_ALERT"),
		FarmerID: "farmer-1",
	})

	assert.False(t, ok)
	assert.Empty(t, router.calls)
}

func TestDispatchMalformedEvent(t *testing.T) {
	router := &routerStub{}
	d, err := New(router, newStoreStub(), 16)
	require.NoError(t, err)

	assert.False(t, d.Dispatch(context.Background(), nil))
	assert.False(t, d.Dispatch(context.Background(), &domain.NotificationEvent{
		Type: domain.OrderMatched, FarmerID: "farmer-1",
	}))
	assert.False(t, d.Dispatch(context.Background(), &domain.NotificationEvent{
		EventID: "evt-1", Type: domain.OrderMatched,
	}))
	assert.Empty(t, router.calls)
}

func TestDispatchHandlerFailureAllowsRetry(t *testing.T) {
	store := newStoreStub()
	router := &routerStub{store: store, fail: true}
	d, err := New(router, store, 16)
	require.NoError(t, err)

	evt := orderMatchedEvent("evt-retry")
	require.False(t, d.Dispatch(context.Background(), evt))

	// The upstream redelivers after the transient failure clears.
	router.fail = false
	require.True(t, d.Dispatch(context.Background(), evt))
	assert.Len(t, router.calls, 2)
}

func TestHandlerDeeplinks(t *testing.T) {
	cases := []struct {
		typ    domain.NotificationType
		prefix string
	}{
		{domain.OrderMatched, "cropfresh://matches/"},
		{domain.PaymentReceived, "cropfresh://payments/"},
		{domain.MatchExpiring, "cropfresh://matches/"},
		{domain.OrderCancelled, "cropfresh://orders/"},
		{domain.HaulerEnRoute, "cropfresh://pickups/"},
		{domain.PickupComplete, "cropfresh://pickups/"},
		{domain.OrderDelivered, "cropfresh://orders/"},
		{domain.DropPointAssigned, "cropfresh://droppoints/"},
	}
	for _, c := range cases {
		build, ok := handlers[c.typ]
		require.True(t, ok, "no handler for %s", c.typ)
		params := build(&domain.NotificationEvent{Type: c.typ, Payload: map[string]interface{}{}})
		assert.True(t, strings.HasPrefix(params.Deeplink, c.prefix), "type=%s deeplink=%s", c.typ, params.Deeplink)
	}
}
