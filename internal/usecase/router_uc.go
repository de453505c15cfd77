package usecase

import (
	"context"
	"log"

	"github.com/cropfresh/cropfresh-service-notification/internal/channel"
	"github.com/cropfresh/cropfresh-service-notification/internal/domain"
	"github.com/cropfresh/cropfresh-service-notification/internal/repository"
	"github.com/cropfresh/cropfresh-service-notification/pkg/template"
	"github.com/cropfresh/cropfresh-service-notification/pkg/ws"
)

// criticalTypes require SMS as well as push: timely action is needed.
var criticalTypes = map[domain.NotificationType]bool{
	domain.OrderMatched:    true,
	domain.PaymentReceived: true,
	domain.MatchExpiring:   true,
	domain.OrderCancelled:  true,
	domain.QualityDispute:  true,
}

var typeCategories = map[domain.NotificationType]domain.Category{
	domain.OrderMatched:      domain.CategoryOrder,
	domain.MatchExpiring:     domain.CategoryOrder,
	domain.OrderCancelled:    domain.CategoryOrder,
	domain.QualityDispute:    domain.CategoryOrder,
	domain.HaulerEnRoute:     domain.CategoryOrder,
	domain.PickupComplete:    domain.CategoryOrder,
	domain.OrderDelivered:    domain.CategoryOrder,
	domain.DropPointAssigned: domain.CategoryOrder,
	domain.PaymentReceived:   domain.CategoryPayment,
	domain.EducationalTip:    domain.CategoryEducational,
}

// IsCritical reports whether a type is in the fixed critical set.
func IsCritical(t domain.NotificationType) bool { return criticalTypes[t] }

// CategoryOf maps a type to its preference category.
func CategoryOf(t domain.NotificationType) domain.Category {
	if c, ok := typeCategories[t]; ok {
		return c
	}
	return domain.CategoryOrder
}

// RouterUsecase decides criticality, consults preferences, persists the
// in-app record and drives the delivery channels. Channel failures never
// propagate out; the caller always gets a structured result.
type RouterUsecase struct {
	prefs *PreferenceUsecase
	sms   *channel.SMSChannel
	push  *channel.PushChannel
	repo  repository.NotificationRepository
	live  *ws.Manager
}

func NewRouterUsecase(
	prefs *PreferenceUsecase,
	sms *channel.SMSChannel,
	push *channel.PushChannel,
	repo repository.NotificationRepository,
	live *ws.Manager,
) *RouterUsecase {
	return &RouterUsecase{prefs: prefs, sms: sms, push: push, repo: repo, live: live}
}

func (uc *RouterUsecase) SendNotification(ctx context.Context, params domain.SendParams) domain.NotificationResult {
	isCritical := IsCritical(params.Type) || params.ForceSMS
	category := CategoryOf(params.Type)

	decision := uc.prefs.ShouldSend(ctx, params.FarmerID, isCritical, category)

	title := params.Title
	if title == "" {
		title = template.Render(template.PushTitleKey(params.Type), params.Language, params.Variables)
	}
	body := params.Body
	if body == "" {
		body = template.Render(template.PushBodyKey(params.Type), params.Language, params.Variables)
	}

	var result domain.NotificationResult

	// The in-app record is its own durability guarantee: written whatever
	// the channels do, and its loss never blocks the channel attempts.
	stored, err := uc.repo.Create(ctx, &domain.InAppNotification{
		FarmerID: params.FarmerID,
		Type:     params.Type,
		Title:    title,
		Body:     body,
		Deeplink: params.Deeplink,
		Metadata: params.Metadata,
	})
	if err != nil {
		log.Printf("[ROUTER] ⚠️ failed to store in-app record for %s: %v", params.FarmerID, err)
	} else {
		result.Stored = true
		result.NotificationID = stored.ID
		if uc.live != nil {
			uc.live.Send(params.FarmerID, stored)
		}
	}

	if decision.SMS && params.Phone != "" {
		result.SMSAttempted = true
		templateKey := params.TemplateKey
		if templateKey == "" {
			templateKey = template.SMSKey(params.Type)
		}
		smsRes := uc.sms.Send(ctx, channel.SMSRequest{
			FarmerID:    params.FarmerID,
			Phone:       params.Phone,
			TemplateKey: templateKey,
			Language:    params.Language,
			Variables:   params.Variables,
		})
		result.SMSSent = smsRes.Success
		result.SMSError = smsRes.ErrorMessage
	}

	if decision.Push {
		result.PushAttempted = true
		pushRes := uc.push.SendToFarmer(ctx, channel.PushRequest{
			FarmerID:         params.FarmerID,
			Type:             params.Type,
			Title:            title,
			Body:             body,
			Deeplink:         params.Deeplink,
			Metadata:         params.Metadata,
			HighPriority:     isCritical,
			BypassQuietHours: isCritical,
		})
		result.PushSuccessCount = pushRes.SuccessCount
		result.PushFailureCount = pushRes.FailureCount
	}

	pushOK := result.PushSuccessCount > 0
	result.Success = result.SMSSent || pushOK || result.Stored

	if isCritical && result.SMSAttempted && !result.SMSSent && result.PushAttempted && !pushOK {
		log.Printf("[ROUTER] ⚠️ critical notification degraded for %s (type=%s): SMS and push both failed, in-app stored=%t",
			params.FarmerID, params.Type, result.Stored)
	}

	return result
}
