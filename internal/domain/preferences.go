package domain

import "time"

// NotificationLevel controls how much a farmer wants to hear from us.
type NotificationLevel string

const (
	LevelAll      NotificationLevel = "ALL"
	LevelCritical NotificationLevel = "CRITICAL"
	LevelMute     NotificationLevel = "MUTE"
)

// FarmerPreferences holds per-farmer delivery settings. Rows are created
// lazily with defaults on first read and never deleted.
type FarmerPreferences struct {
	FarmerID           string            `json:"farmer_id"`
	SmsEnabled         bool              `json:"sms_enabled"`
	PushEnabled        bool              `json:"push_enabled"`
	QuietHoursEnabled  bool              `json:"quiet_hours_enabled"`
	QuietHoursStart    string            `json:"quiet_hours_start"` // HH:MM, may wrap midnight
	QuietHoursEnd      string            `json:"quiet_hours_end"`
	NotificationLevel  NotificationLevel `json:"notification_level"`
	OrderUpdates       bool              `json:"order_updates"`
	PaymentAlerts      bool              `json:"payment_alerts"`
	EducationalContent bool              `json:"educational_content"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// DefaultPreferences returns the lazily-created defaults for a farmer.
func DefaultPreferences(farmerID string) *FarmerPreferences {
	return &FarmerPreferences{
		FarmerID:           farmerID,
		SmsEnabled:         true,
		PushEnabled:        true,
		QuietHoursEnabled:  true,
		QuietHoursStart:    "22:00",
		QuietHoursEnd:      "06:00",
		NotificationLevel:  LevelAll,
		OrderUpdates:       true,
		PaymentAlerts:      true,
		EducationalContent: true,
	}
}

// ChannelDecision is the preference evaluator's verdict for one notification.
type ChannelDecision struct {
	SMS  bool `json:"sms"`
	Push bool `json:"push"`
}
