package domain

import "time"

// HistoryEntry is an append-only audit record of a single field change
// on an order. Entries are never updated and are removed only when the
// parent order is deleted.
type HistoryEntry struct {
	ID       uint64
	OrderID  uint64
	Field    string
	OldValue string
	NewValue string
	Date     time.Time
	User     string
}
