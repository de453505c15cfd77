package domain

import "time"

// NotificationType identifies the business event a notification was born from.
// It doubles as the template key for localized message text.
type NotificationType string

const (
	OrderMatched      NotificationType = "ORDER_MATCHED"
	PaymentReceived   NotificationType = "PAYMENT_RECEIVED"
	MatchExpiring     NotificationType = "MATCH_EXPIRING"
	OrderCancelled    NotificationType = "ORDER_CANCELLED"
	QualityDispute    NotificationType = "QUALITY_DISPUTE"
	HaulerEnRoute     NotificationType = "HAULER_EN_ROUTE"
	PickupComplete    NotificationType = "PICKUP_COMPLETE"
	OrderDelivered    NotificationType = "ORDER_DELIVERED"
	DropPointAssigned NotificationType = "DROP_POINT_ASSIGNED"
	EducationalTip    NotificationType = "EDUCATIONAL_TIP"
)

// Category groups notification types for the per-farmer category toggles.
type Category string

const (
	CategoryOrder       Category = "ORDER"
	CategoryPayment     Category = "PAYMENT"
	CategoryEducational Category = "EDUCATIONAL"
)

// InAppNotification is the durable in-app record. It is written on every
// routed notification regardless of SMS/push outcome.
type InAppNotification struct {
	ID        int64                  `json:"id"`
	RequestID string                 `json:"request_id"`
	FarmerID  string                 `json:"farmer_id"`
	Type      NotificationType       `json:"type"`
	Title     string                 `json:"title"`
	Body      string                 `json:"body"`
	Deeplink  string                 `json:"deeplink,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	IsRead    bool                   `json:"is_read"`
	CreatedAt time.Time              `json:"created_at"`
}

// SMS delivery log statuses.
const (
	SmsStatusPending   = "PENDING"
	SmsStatusSent      = "SENT"
	SmsStatusDelivered = "DELIVERED"
	SmsStatusFailed    = "FAILED"
)

// SmsDeliveryLog tracks one SMS send through its retries. One row per send,
// updated in place; used for both quota accounting and audit.
type SmsDeliveryLog struct {
	ID           string    `json:"id"`
	FarmerID     string    `json:"farmer_id"`
	PhoneNumber  string    `json:"phone_number"`
	TemplateKey  string    `json:"template_key"`
	Status       string    `json:"status"`
	RetryCount   int       `json:"retry_count"`
	MessageID    string    `json:"message_id,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// SendParams is the router's input for one notification.
type SendParams struct {
	FarmerID    string
	Type        NotificationType
	Title       string
	Body        string
	Deeplink    string
	Metadata    map[string]interface{}
	Phone       string
	Language    Language
	TemplateKey string
	Variables   map[string]interface{}
	ForceSMS    bool
}

// NotificationResult reports per-channel outcomes of one routed notification.
type NotificationResult struct {
	Success          bool   `json:"success"`
	Stored           bool   `json:"stored"`
	NotificationID   int64  `json:"notification_id,omitempty"`
	SMSAttempted     bool   `json:"sms_attempted"`
	SMSSent          bool   `json:"sms_sent"`
	SMSError         string `json:"sms_error,omitempty"`
	PushAttempted    bool   `json:"push_attempted"`
	PushSuccessCount int    `json:"push_success_count"`
	PushFailureCount int    `json:"push_failure_count"`
}
