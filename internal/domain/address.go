package domain

// Address is a deduplicated, normalized (lowercased, trimmed) email address.
// Deliveries reference it as sender/recipient and deny-list entries key on it.
type Address struct {
	ID   int64  `json:"id" db:"id"`
	Text string `json:"text" db:"text"`
}
