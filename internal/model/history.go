package model

import "time"

// StatusHistory is an immutable record of one status transition.
// Entries are append-only and never edited or deleted.
type StatusHistory struct {
	ID        int64     `json:"id"`
	ItemID    string    `json:"item_id"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	ChangedBy string    `json:"changed_by"`
	Notes     string    `json:"notes,omitempty"`
	ChangedAt time.Time `json:"changed_at"`
}
