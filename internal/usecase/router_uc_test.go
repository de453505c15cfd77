package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cropfresh/cropfresh-service-notification/internal/channel"
	"github.com/cropfresh/cropfresh-service-notification/internal/domain"
)

type routerFixture struct {
	uc       *RouterUsecase
	prefs    *fakePrefRepo
	notifs   *fakeNotifRepo
	smsLogs  *fakeSmsLogRepo
	smsProv  *fakeSmsProvider
	devices  *fakeDeviceRepo
	pushProv *fakePushProvider
}

func newRouterFixture(hour, minute int) *routerFixture {
	f := &routerFixture{
		prefs:    newFakePrefRepo(),
		notifs:   &fakeNotifRepo{},
		smsLogs:  newFakeSmsLogRepo(),
		smsProv:  &fakeSmsProvider{},
		devices:  &fakeDeviceRepo{},
		pushProv: &fakePushProvider{},
	}
	prefUC := prefUCAt(f.prefs, hour, minute)
	sms := channel.NewSMSChannel(f.smsProv, f.smsLogs, nil, channel.SMSConfig{
		Backoff: []time.Duration{time.Millisecond, time.Millisecond},
	})
	push := channel.NewPushChannel(f.pushProv, f.devices, prefUC)
	f.uc = NewRouterUsecase(prefUC, sms, push, f.notifs, nil)
	return f
}

func TestIsCritical(t *testing.T) {
	assert.True(t, IsCritical(domain.OrderMatched))
	assert.True(t, IsCritical(domain.PaymentReceived))
	assert.True(t, IsCritical(domain.MatchExpiring))
	assert.True(t, IsCritical(domain.OrderCancelled))
	assert.True(t, IsCritical(domain.QualityDispute))
	assert.False(t, IsCritical(domain.HaulerEnRoute))
	assert.False(t, IsCritical(domain.EducationalTip))
}

func TestCategoryOf(t *testing.T) {
	assert.Equal(t, domain.CategoryPayment, CategoryOf(domain.PaymentReceived))
	assert.Equal(t, domain.CategoryEducational, CategoryOf(domain.EducationalTip))
	assert.Equal(t, domain.CategoryOrder, CategoryOf(domain.OrderMatched))
	assert.Equal(t, domain.CategoryOrder, CategoryOf(domain.NotificationType("SOMETHING_ELSE")))
}

func TestSendNotificationAlwaysStoresInApp(t *testing.T) {
	f := newRouterFixture(10, 0)

	res := f.uc.SendNotification(context.Background(), domain.SendParams{
		FarmerID: "farmer-1",
		Type:     domain.HaulerEnRoute,
		Language: domain.English,
		Variables: map[string]interface{}{
			"eta": "20 min",
		},
	})

	require.True(t, res.Stored)
	assert.True(t, res.Success)
	assert.False(t, res.SMSAttempted)

	require.Len(t, f.notifs.rows, 1)
	stored := f.notifs.rows[0]
	assert.Equal(t, domain.HaulerEnRoute, stored.Type)
	assert.NotEmpty(t, stored.Title)
	assert.NotEmpty(t, stored.Body)
	assert.Contains(t, stored.Body, "20 min")
}

func TestSendNotificationCriticalSendsSms(t *testing.T) {
	f := newRouterFixture(10, 0)

	res := f.uc.SendNotification(context.Background(), domain.SendParams{
		FarmerID: "farmer-1",
		Type:     domain.OrderMatched,
		Phone:    "+919876500001",
		Language: domain.Kannada,
		Variables: map[string]interface{}{
			"crop": "Tomato", "quantity": 50, "price": 25, "total": 1250,
		},
	})

	assert.True(t, res.Success)
	assert.True(t, res.SMSAttempted)
	assert.True(t, res.SMSSent)

	logs, _ := f.smsLogs.ListByFarmer(context.Background(), "farmer-1", 0, 0)
	require.Len(t, logs, 1)
	assert.Equal(t, domain.SmsStatusSent, logs[0].Status)
}

func TestSendNotificationNonCriticalSkipsSms(t *testing.T) {
	f := newRouterFixture(10, 0)

	res := f.uc.SendNotification(context.Background(), domain.SendParams{
		FarmerID: "farmer-1",
		Type:     domain.PickupComplete,
		Phone:    "+919876500001",
		Language: domain.English,
	})

	assert.True(t, res.Success)
	assert.False(t, res.SMSAttempted)
	assert.Equal(t, 0, f.smsProv.calls)
}

func TestSendNotificationSuccessWhenOnlyStored(t *testing.T) {
	f := newRouterFixture(10, 0)
	f.smsProv.err = errors.New("gateway down")

	res := f.uc.SendNotification(context.Background(), domain.SendParams{
		FarmerID: "farmer-1",
		Type:     domain.PaymentReceived,
		Phone:    "+919876500001",
		Language: domain.English,
		Variables: map[string]interface{}{
			"amount": 1250, "orderId": "ord-9",
		},
	})

	assert.True(t, res.SMSAttempted)
	assert.False(t, res.SMSSent)
	assert.True(t, res.Stored)
	assert.True(t, res.Success, "in-app storage alone counts as delivery")
}

func TestSendNotificationSmsRecoversFromStorageFailure(t *testing.T) {
	f := newRouterFixture(10, 0)
	f.notifs.createErr = errors.New("db down")

	res := f.uc.SendNotification(context.Background(), domain.SendParams{
		FarmerID: "farmer-1",
		Type:     domain.OrderMatched,
		Phone:    "+919876500001",
		Language: domain.English,
	})

	assert.False(t, res.Stored)
	assert.True(t, res.SMSSent)
	assert.True(t, res.Success)
}

func TestSendNotificationMutedStillStores(t *testing.T) {
	f := newRouterFixture(10, 0)
	prefs := domain.DefaultPreferences("farmer-1")
	prefs.NotificationLevel = domain.LevelMute
	f.prefs.rows["farmer-1"] = prefs

	res := f.uc.SendNotification(context.Background(), domain.SendParams{
		FarmerID: "farmer-1",
		Type:     domain.OrderMatched,
		Phone:    "+919876500001",
		Language: domain.English,
	})

	assert.False(t, res.SMSAttempted)
	assert.False(t, res.PushAttempted)
	assert.True(t, res.Stored)
	assert.True(t, res.Success)
	assert.Equal(t, 0, f.smsProv.calls)
	assert.Equal(t, 0, f.pushProv.calls)
}

func TestSendNotificationCriticalPushBypassesQuietHours(t *testing.T) {
	f := newRouterFixture(23, 30)
	f.devices.tokens = append(f.devices.tokens, &domain.DeviceToken{
		FarmerID: "farmer-1", Token: "tok-1", IsActive: true,
	})

	res := f.uc.SendNotification(context.Background(), domain.SendParams{
		FarmerID: "farmer-1",
		Type:     domain.OrderMatched,
		Language: domain.English,
	})

	assert.True(t, res.PushAttempted)
	assert.Equal(t, 1, res.PushSuccessCount)
	assert.Equal(t, 1, f.pushProv.calls)
}

func TestSendNotificationQuietHoursSuppressNonCriticalPush(t *testing.T) {
	f := newRouterFixture(23, 30)
	f.devices.tokens = append(f.devices.tokens, &domain.DeviceToken{
		FarmerID: "farmer-1", Token: "tok-1", IsActive: true,
	})

	res := f.uc.SendNotification(context.Background(), domain.SendParams{
		FarmerID: "farmer-1",
		Type:     domain.OrderDelivered,
		Language: domain.English,
	})

	assert.False(t, res.PushAttempted)
	assert.Equal(t, 0, f.pushProv.calls)
	assert.True(t, res.Stored)
}

func TestSendNotificationForceSmsTreatsAsCritical(t *testing.T) {
	f := newRouterFixture(10, 0)

	res := f.uc.SendNotification(context.Background(), domain.SendParams{
		FarmerID: "farmer-1",
		Type:     domain.EducationalTip,
		Phone:    "+919876500001",
		Language: domain.English,
		ForceSMS: true,
	})

	assert.True(t, res.SMSAttempted)
	assert.True(t, res.SMSSent)
}
