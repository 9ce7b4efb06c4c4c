package model

import "time"

// Item represents a single lost-or-found posting.
type Item struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Status      string    `json:"status"`
	ContactInfo string    `json:"contact_info,omitempty"`
	ImagePath   string    `json:"image_path"`
	UserID      int64     `json:"user_id"`
	DatePosted  time.Time `json:"date_posted"`

	// OwnerName is the poster's display name, populated only by queries
	// that join against users.
	OwnerName string `json:"owner_name,omitempty"`
}

// Item statuses. Lost and Found are the open states a posting is created
// with; Recovered and Returned are their respective terminal states.
const (
	StatusLost      = "Lost"
	StatusFound     = "Found"
	StatusRecovered = "Recovered"
	StatusReturned  = "Returned"
)

// OpenStatus reports whether status is one of the two creatable states.
func OpenStatus(status string) bool {
	return status == StatusLost || status == StatusFound
}

// ResolvedStatus returns the terminal status for an open one, or "" if the
// current status has no defined transition.
func ResolvedStatus(current string) string {
	switch current {
	case StatusLost:
		return StatusRecovered
	case StatusFound:
		return StatusReturned
	default:
		return ""
	}
}
