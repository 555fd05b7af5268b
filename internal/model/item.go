package model

import "time"

// Item represents a found object tracked through its return lifecycle.
// Descriptive and finder fields are set at creation and never change;
// status and the claimant pair are mutated only through conditioned
// status updates.
type Item struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Location    string     `json:"location"`
	Category    string     `json:"category"`
	ImageURL    string     `json:"image_url,omitempty"`
	FinderName  string     `json:"finder_name"`
	FinderEmail string     `json:"finder_email"`
	FinderPhone string     `json:"finder_phone,omitempty"`
	Status      string     `json:"status"`
	ClaimedBy   string     `json:"claimed_by,omitempty"`
	ClaimedAt   *time.Time `json:"claimed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Item statuses.
const (
	StatusFound   = "found"
	StatusPending = "pending"
	StatusClaimed = "claimed"
)

// Item categories.
const (
	CategoryElectronics = "electronics"
	CategoryDocuments   = "documents"
	CategoryAccessories = "accessories"
	CategoryOthers      = "others"
)

// ValidStatus reports whether s is a known item status.
func ValidStatus(s string) bool {
	return s == StatusFound || s == StatusPending || s == StatusClaimed
}

// ValidCategory reports whether c is a known item category.
func ValidCategory(c string) bool {
	switch c {
	case CategoryElectronics, CategoryDocuments, CategoryAccessories, CategoryOthers:
		return true
	}
	return false
}
