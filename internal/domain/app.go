package domain

import "time"

// App is a sending application. Exactly one app carries System = true: the
// app the platform uses to send its own email. It is visible to every
// authenticated admin so they can query deliveries of system notifications.
type App struct {
	ID                   int64     `json:"id" db:"id"`
	TeamID               int64     `json:"team_id" db:"team_id"`
	Name                 string    `json:"name" db:"name"`
	System               bool      `json:"system" db:"system"`
	OpenTrackingEnabled  bool      `json:"open_tracking_enabled" db:"open_tracking_enabled"`
	ClickTrackingEnabled bool      `json:"click_tracking_enabled" db:"click_tracking_enabled"`
	CustomTrackingDomain string    `json:"custom_tracking_domain,omitempty" db:"custom_tracking_domain"`
	FromDomain           string    `json:"from_domain,omitempty" db:"from_domain"`
	CreatedAt            time.Time `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time `json:"updated_at" db:"updated_at"`
}
