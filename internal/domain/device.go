package domain

import "time"

// DeviceToken is one push registration. A farmer may hold several (one per
// device). Tokens are upserted on registration and deactivated when the
// provider reports them invalid or the farmer unregisters.
type DeviceToken struct {
	ID         string    `json:"id"`
	FarmerID   string    `json:"farmer_id"`
	Token      string    `json:"token"`
	DeviceType string    `json:"device_type"` // android, ios
	IsActive   bool      `json:"is_active"`
	UpdatedAt  time.Time `json:"updated_at"`
}
