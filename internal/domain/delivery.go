package domain

import "time"

// DeliveryStatus enumerates the lifecycle states of an outbound send attempt.
type DeliveryStatus string

const (
	StatusQueued    DeliveryStatus = "queued"
	StatusSent      DeliveryStatus = "sent"
	StatusDelivered DeliveryStatus = "delivered"
	StatusDeferred  DeliveryStatus = "deferred"
	StatusBounced   DeliveryStatus = "bounced"
	StatusRejected  DeliveryStatus = "rejected"
	// StatusHeld marks deliveries withheld by a deny-list hit.
	StatusHeld DeliveryStatus = "held"
)

// Valid reports whether s is one of the known delivery statuses.
func (s DeliveryStatus) Valid() bool {
	switch s {
	case StatusQueued, StatusSent, StatusDelivered, StatusDeferred,
		StatusBounced, StatusRejected, StatusHeld:
		return true
	}
	return false
}

// Delivery is one outbound email send attempt. Every delivery belongs to
// exactly one app, transitively through its email; app_id is denormalized
// onto the delivery row and the email row must agree.
type Delivery struct {
	ID        int64          `json:"id" db:"id"`
	EmailID   int64          `json:"email_id" db:"email_id"`
	AppID     int64          `json:"app_id" db:"app_id"`
	AddressID int64          `json:"-" db:"address_id"`
	Status    DeliveryStatus `json:"status" db:"status"`
	From      string         `json:"from"`
	To        string         `json:"to"`
	Subject   string         `json:"subject,omitempty"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`

	// LogLines is populated on the detail view only.
	LogLines []PostfixLogLine `json:"log_lines,omitempty"`
}

// Email is the logical message a delivery attempt belongs to. One email can
// fan out into several deliveries (one per recipient).
type Email struct {
	ID            int64     `json:"id" db:"id"`
	AppID         int64     `json:"app_id" db:"app_id"`
	FromAddressID int64     `json:"from_address_id" db:"from_address_id"`
	Subject       string    `json:"subject" db:"subject"`
	MessageID     string    `json:"message_id" db:"message_id"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// MetaValue is a key/value annotation attached to an email. It exists only
// to be filtered on.
type MetaValue struct {
	EmailID int64  `json:"email_id" db:"email_id"`
	Key     string `json:"key" db:"key"`
	Value   string `json:"value" db:"value"`
}

// PostfixLogLine is one parsed mail-log line associated with a delivery.
type PostfixLogLine struct {
	ID             int64     `json:"id" db:"id"`
	DeliveryID     int64     `json:"delivery_id" db:"delivery_id"`
	Time           time.Time `json:"time" db:"time"`
	Relay          string    `json:"relay" db:"relay"`
	DSN            string    `json:"dsn" db:"dsn"`
	ExtendedStatus string    `json:"extended_status" db:"extended_status"`
}
