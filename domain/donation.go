package domain

import "time"

// DonationStatus is the closed set of lifecycle states for a donation.
type DonationStatus string

const (
	StatusAvailable DonationStatus = "available"
	StatusClaimed   DonationStatus = "claimed"
	StatusCompleted DonationStatus = "completed"
	StatusExpired   DonationStatus = "expired"
)

// ValidStatus reports whether s is one of the four lifecycle states.
func ValidStatus(s DonationStatus) bool {
	switch s {
	case StatusAvailable, StatusClaimed, StatusCompleted, StatusExpired:
		return true
	}
	return false
}

// Donation represents a posted food donation.
type Donation struct {
	ID            string            `json:"id"`
	DonorID       string            `json:"donor_id"`
	DonorName     string            `json:"donor_name"`
	DonorPhone    string            `json:"donor_phone"`
	FoodType      string            `json:"food_type"`
	Category      string            `json:"category,omitempty"`
	Quantity      string            `json:"quantity"`
	Description   string            `json:"description"`
	PickupAddress string            `json:"pickup_address"`
	Status        DonationStatus    `json:"status"`
	ExpiryTime    time.Time         `json:"expiry_time"`
	ClaimedBy     string            `json:"claimed_by,omitempty"`
	ClaimedAt     *time.Time        `json:"claimed_at,omitempty"`
	CompletedAt   *time.Time        `json:"completed_at,omitempty"`
	Feedback      string            `json:"feedback,omitempty"`
	Preferences   map[string]string `json:"preferences,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// IsExpired reports whether the donation's stated expiry has passed.
func (d *Donation) IsExpired(now time.Time) bool {
	if d == nil || d.ExpiryTime.IsZero() {
		return false
	}
	return !d.ExpiryTime.After(now)
}

// EffectiveStatus derives the read-time status. A donation whose stored
// status is still "available" but whose expiry has passed reads as
// expired; expiry is never written back by reads.
func (d *Donation) EffectiveStatus(now time.Time) DonationStatus {
	if d == nil {
		return ""
	}
	if d.Status == StatusAvailable && d.IsExpired(now) {
		return StatusExpired
	}
	return d.Status
}
