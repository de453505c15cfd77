package domain

import "time"

// NotificationEvent is one upstream business occurrence. EventID is the
// idempotency key: at most one in-app record may reference it.
type NotificationEvent struct {
	EventID    string                 `json:"event_id"`
	Type       NotificationType       `json:"type"`
	FarmerID   string                 `json:"farmer_id"`
	Payload    map[string]interface{} `json:"payload"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// MetaEventID is the metadata key under which a routed event's id is stored
// on the in-app record. The dispatcher's durable dedup looks it up.
const MetaEventID = "event_id"
