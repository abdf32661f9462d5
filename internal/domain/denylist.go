package domain

import "time"

// DenyListEntry is a suppression record for an address. AppID is nil for
// entries on the global deny list and set for app-scoped entries. While an
// entry exists, further sends to the address (within its scope) are withheld.
//
// Entries are created and expired by the bounce-processing subsystem; this
// service only reads them.
type DenyListEntry struct {
	ID          int64     `json:"id" db:"id"`
	AppID       *int64    `json:"app_id,omitempty" db:"app_id"`
	AddressID   int64     `json:"-" db:"address_id"`
	Address     string    `json:"address"`
	BounceCount int       `json:"bounce_count" db:"bounce_count"`
	WindowStart time.Time `json:"window_start" db:"window_start"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Global reports whether the entry suppresses sends across all apps.
func (e *DenyListEntry) Global() bool { return e.AppID == nil }
