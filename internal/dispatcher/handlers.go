package dispatcher

import (
	"fmt"

	"github.com/cropfresh/cropfresh-service-notification/internal/domain"
	"github.com/cropfresh/cropfresh-service-notification/pkg/template"
)

// Fixed event-to-notification mapping. Each builder pulls the fields its
// templates need from the event payload; titles and bodies are left empty
// so the router renders them in the farmer's language.
var handlers = map[domain.NotificationType]func(*domain.NotificationEvent) domain.SendParams{
	domain.OrderMatched: func(e *domain.NotificationEvent) domain.SendParams {
		return domain.SendParams{
			Type:     domain.OrderMatched,
			Phone:    str(e.Payload, "phone"),
			Language: lang(e.Payload),
			Deeplink: "cropfresh://matches/" + str(e.Payload, "matchId"),
			Variables: vars(e.Payload, "crop", "quantity", "price", "total"),
			Metadata: meta(e.Payload, "matchId", "orderId"),
		}
	},
	domain.PaymentReceived: func(e *domain.NotificationEvent) domain.SendParams {
		return domain.SendParams{
			Type:     domain.PaymentReceived,
			Phone:    str(e.Payload, "phone"),
			Language: lang(e.Payload),
			Deeplink: "cropfresh://payments/" + str(e.Payload, "orderId"),
			Variables: vars(e.Payload, "amount", "orderId"),
			Metadata: meta(e.Payload, "orderId", "paymentId"),
		}
	},
	domain.MatchExpiring: func(e *domain.NotificationEvent) domain.SendParams {
		return domain.SendParams{
			Type:     domain.MatchExpiring,
			Phone:    str(e.Payload, "phone"),
			Language: lang(e.Payload),
			Deeplink: "cropfresh://matches/" + str(e.Payload, "matchId"),
			Variables: vars(e.Payload, "crop", "hours"),
			Metadata: meta(e.Payload, "matchId"),
		}
	},
	domain.OrderCancelled: func(e *domain.NotificationEvent) domain.SendParams {
		return domain.SendParams{
			Type:     domain.OrderCancelled,
			Phone:    str(e.Payload, "phone"),
			Language: lang(e.Payload),
			Deeplink: "cropfresh://orders/" + str(e.Payload, "orderId"),
			Variables: vars(e.Payload, "orderId", "crop"),
			Metadata: meta(e.Payload, "orderId"),
		}
	},
	domain.HaulerEnRoute: func(e *domain.NotificationEvent) domain.SendParams {
		return domain.SendParams{
			Type:     domain.HaulerEnRoute,
			Language: lang(e.Payload),
			Deeplink: "cropfresh://pickups/" + str(e.Payload, "pickupId"),
			Variables: vars(e.Payload, "eta"),
			Metadata: meta(e.Payload, "pickupId", "orderId"),
		}
	},
	domain.PickupComplete: func(e *domain.NotificationEvent) domain.SendParams {
		return domain.SendParams{
			Type:     domain.PickupComplete,
			Language: lang(e.Payload),
			Deeplink: "cropfresh://pickups/" + str(e.Payload, "pickupId"),
			Variables: vars(e.Payload, "crop", "quantity"),
			Metadata: meta(e.Payload, "pickupId", "orderId"),
		}
	},
	domain.OrderDelivered: func(e *domain.NotificationEvent) domain.SendParams {
		return domain.SendParams{
			Type:     domain.OrderDelivered,
			Language: lang(e.Payload),
			Deeplink: "cropfresh://orders/" + str(e.Payload, "orderId"),
			Variables: vars(e.Payload, "orderId"),
			Metadata: meta(e.Payload, "orderId"),
		}
	},
	domain.DropPointAssigned: func(e *domain.NotificationEvent) domain.SendParams {
		return domain.SendParams{
			Type:     domain.DropPointAssigned,
			Language: lang(e.Payload),
			Deeplink: "cropfresh://droppoints/" + str(e.Payload, "dropPointId"),
			Variables: vars(e.Payload, "dropPoint", "deadline"),
			Metadata: meta(e.Payload, "dropPointId", "orderId"),
		}
	},
}

func str(payload map[string]interface{}, key string) string {
	if v, ok := payload[key]; ok && v != nil {
		return fmt.Sprintf("%v", v)
	}
	return ""
}

func lang(payload map[string]interface{}) domain.Language {
	return template.ParseLanguage(str(payload, "language"))
}

func vars(payload map[string]interface{}, keys ...string) map[string]interface{} {
	out := make(map[string]interface{}, len(keys))
	for _, k := range keys {
		if v, ok := payload[k]; ok {
			out[k] = v
		}
	}
	return out
}

func meta(payload map[string]interface{}, keys ...string) map[string]interface{} {
	out := map[string]interface{}{}
	for _, k := range keys {
		if v, ok := payload[k]; ok && v != nil {
			out[k] = v
		}
	}
	return out
}
