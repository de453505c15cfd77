package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/cropfresh/cropfresh-service-notification/internal/domain"
	"github.com/cropfresh/cropfresh-service-notification/internal/provider"
	"github.com/cropfresh/cropfresh-service-notification/pkg/xerrors"
)

// In-memory stand-ins for the postgres repositories and providers, shared by
// the usecase tests.

type fakePrefRepo struct {
	mu     sync.Mutex
	rows   map[string]*domain.FarmerPreferences
	getErr error
}

func newFakePrefRepo() *fakePrefRepo {
	return &fakePrefRepo{rows: map[string]*domain.FarmerPreferences{}}
}

func (f *fakePrefRepo) GetByFarmer(_ context.Context, farmerID string) (*domain.FarmerPreferences, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.rows[farmerID]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePrefRepo) Upsert(_ context.Context, p *domain.FarmerPreferences) (*domain.FarmerPreferences, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *p
	cp.UpdatedAt = time.Now()
	f.rows[p.FarmerID] = &cp
	out := cp
	return &out, nil
}

type fakeNotifRepo struct {
	mu        sync.Mutex
	nextID    int64
	rows      []*domain.InAppNotification
	createErr error
}

func (f *fakeNotifRepo) Create(_ context.Context, n *domain.InAppNotification) (*domain.InAppNotification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	cp := *n
	cp.ID = f.nextID
	cp.CreatedAt = time.Now()
	f.rows = append(f.rows, &cp)
	out := cp
	return &out, nil
}

func (f *fakeNotifRepo) GetByID(_ context.Context, id int64) (*domain.InAppNotification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.rows {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (f *fakeNotifRepo) FindByEventID(_ context.Context, eventID string) (*domain.InAppNotification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.rows {
		if n.Metadata != nil && n.Metadata[domain.MetaEventID] == eventID {
			return n, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (f *fakeNotifRepo) ListByFarmer(_ context.Context, farmerID string, _, _ int) ([]*domain.InAppNotification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.InAppNotification
	for _, n := range f.rows {
		if n.FarmerID == farmerID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotifRepo) ListUnread(ctx context.Context, farmerID string, limit, offset int) ([]*domain.InAppNotification, error) {
	all, _ := f.ListByFarmer(ctx, farmerID, limit, offset)
	var out []*domain.InAppNotification
	for _, n := range all {
		if !n.IsRead {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotifRepo) CountUnread(ctx context.Context, farmerID string) (int, error) {
	unread, _ := f.ListUnread(ctx, farmerID, 0, 0)
	return len(unread), nil
}

func (f *fakeNotifRepo) MarkAsRead(_ context.Context, id int64, farmerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.rows {
		if n.ID == id && n.FarmerID == farmerID {
			n.IsRead = true
			return nil
		}
	}
	return xerrors.ErrNotFound
}

func (f *fakeNotifRepo) MarkAllRead(_ context.Context, farmerID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, r := range f.rows {
		if r.FarmerID == farmerID && !r.IsRead {
			r.IsRead = true
			n++
		}
	}
	return n, nil
}

func (f *fakeNotifRepo) DeleteByID(_ context.Context, id int64, farmerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, n := range f.rows {
		if n.ID == id && n.FarmerID == farmerID {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return xerrors.ErrNotFound
}

func (f *fakeNotifRepo) DeleteReadBefore(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

type fakeSmsLogRepo struct {
	mu        sync.Mutex
	rows      map[string]*domain.SmsDeliveryLog
	delivered int
}

func newFakeSmsLogRepo() *fakeSmsLogRepo {
	return &fakeSmsLogRepo{rows: map[string]*domain.SmsDeliveryLog{}}
}

func (f *fakeSmsLogRepo) Create(_ context.Context, l *domain.SmsDeliveryLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *l
	cp.CreatedAt = time.Now()
	f.rows[l.ID] = &cp
	l.CreatedAt = cp.CreatedAt
	return nil
}

func (f *fakeSmsLogRepo) UpdateAttempt(_ context.Context, id string, retryCount int, lastError string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.rows[id]; ok {
		r.RetryCount = retryCount
		r.ErrorMessage = lastError
	}
	return nil
}

func (f *fakeSmsLogRepo) MarkSent(_ context.Context, id string, retryCount int, messageID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.rows[id]; ok {
		r.Status = domain.SmsStatusSent
		r.RetryCount = retryCount
		r.MessageID = messageID
	}
	return nil
}

func (f *fakeSmsLogRepo) MarkFailed(_ context.Context, id string, retryCount int, lastError string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.rows[id]; ok {
		r.Status = domain.SmsStatusFailed
		r.RetryCount = retryCount
		r.ErrorMessage = lastError
	}
	return nil
}

func (f *fakeSmsLogRepo) MarkDelivered(_ context.Context, providerMessageID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.MessageID == providerMessageID && r.Status == domain.SmsStatusSent {
			r.Status = domain.SmsStatusDelivered
		}
	}
	return nil
}

func (f *fakeSmsLogRepo) CountDeliveredSince(_ context.Context, _ string, _ time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.delivered, nil
}

func (f *fakeSmsLogRepo) ListByFarmer(_ context.Context, farmerID string, _, _ int) ([]*domain.SmsDeliveryLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.SmsDeliveryLog
	for _, r := range f.rows {
		if r.FarmerID == farmerID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeSmsProvider struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeSmsProvider) Send(_ context.Context, _, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return "msg-1", nil
}

type fakeDeviceRepo struct {
	mu          sync.Mutex
	tokens      []*domain.DeviceToken
	deactivated []string
}

func (f *fakeDeviceRepo) Upsert(_ context.Context, t *domain.DeviceToken) (*domain.DeviceToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *t
	cp.IsActive = true
	f.tokens = append(f.tokens, &cp)
	return &cp, nil
}

func (f *fakeDeviceRepo) ListActiveByFarmer(_ context.Context, farmerID string) ([]*domain.DeviceToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.DeviceToken
	for _, t := range f.tokens {
		if t.FarmerID == farmerID && t.IsActive {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeDeviceRepo) Deactivate(_ context.Context, farmerID, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tokens {
		if t.FarmerID == farmerID && t.Token == token {
			t.IsActive = false
		}
	}
	return nil
}

func (f *fakeDeviceRepo) DeactivateTokens(_ context.Context, tokens []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, tok := range tokens {
		f.deactivated = append(f.deactivated, tok)
		for _, t := range f.tokens {
			if t.Token == tok {
				t.IsActive = false
			}
		}
	}
	return nil
}

func (f *fakeDeviceRepo) DeleteInactiveBefore(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

type fakePushProvider struct {
	mu    sync.Mutex
	calls int
	errs  map[string]error
}

func (f *fakePushProvider) Send(_ context.Context, token string, _ provider.PushPayload, _ bool) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err, ok := f.errs[token]; ok {
		return "", err
	}
	return "push-1", nil
}
