package domain

import (
	"fmt"
	"strings"
	"time"
)

// RawDonation is a donation record as fetched from storage or submitted by
// a client, before any shape guarantees hold.
type RawDonation struct {
	ID            string            `json:"id"`
	DonorID       string            `json:"donor_id"`
	DonorName     string            `json:"donor_name"`
	DonorPhone    string            `json:"donor_phone"`
	FoodType      string            `json:"food_type"`
	Category      string            `json:"category"`
	Quantity      string            `json:"quantity"`
	Description   string            `json:"description"`
	PickupAddress string            `json:"pickup_address"`
	Status        string            `json:"status"`
	ExpiryTime    string            `json:"expiry_time"`
	ClaimedBy     string            `json:"claimed_by"`
	ClaimedAt     string            `json:"claimed_at"`
	CompletedAt   string            `json:"completed_at"`
	Feedback      string            `json:"feedback"`
	CreatedAt     string            `json:"created_at"`
	UpdatedAt     string            `json:"updated_at"`
	Preferences   map[string]string `json:"preferences"`
}

// ValidationError reports the required fields a raw record is missing or
// an unparseable field value. It never accompanies partially-valid output.
type ValidationError struct {
	Missing []string
	Reason  string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("invalid donation: missing %s", strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("invalid donation: %s", e.Reason)
}

// StatusWarning is emitted by ValidateDonation alongside a valid result
// when the stored status string was unrecognized and defaulted.
type StatusWarning struct {
	ID     string
	Status string
}

// ValidateDonation normalizes raw into a well-formed Donation.
//
// Required fields are id, donor_id, food_type, quantity and
// pickup_address; missing any of them rejects the record with a
// *ValidationError naming the gaps. An unrecognized status string defaults
// to "available" and is reported through the returned warning. Absent
// timestamps default to now.
func ValidateDonation(raw RawDonation, now time.Time) (*Donation, *StatusWarning, error) {
	var missing []string
	if raw.ID == "" {
		missing = append(missing, "id")
	}
	if raw.FoodType == "" {
		missing = append(missing, "food_type")
	}
	if raw.Quantity == "" {
		missing = append(missing, "quantity")
	}
	if raw.PickupAddress == "" {
		missing = append(missing, "pickup_address")
	}
	if raw.DonorID == "" {
		missing = append(missing, "donor_id")
	}
	if len(missing) > 0 {
		return nil, nil, &ValidationError{Missing: missing}
	}

	var warning *StatusWarning
	status := DonationStatus(strings.ToLower(raw.Status))
	if !ValidStatus(status) {
		warning = &StatusWarning{ID: raw.ID, Status: raw.Status}
		status = StatusAvailable
	}

	expiry, err := parseTimeOr(raw.ExpiryTime, now)
	if err != nil {
		return nil, nil, &ValidationError{Reason: fmt.Sprintf("bad expiry_time %q", raw.ExpiryTime)}
	}
	createdAt, err := parseTimeOr(raw.CreatedAt, now)
	if err != nil {
		return nil, nil, &ValidationError{Reason: fmt.Sprintf("bad created_at %q", raw.CreatedAt)}
	}
	updatedAt, err := parseTimeOr(raw.UpdatedAt, createdAt)
	if err != nil {
		return nil, nil, &ValidationError{Reason: fmt.Sprintf("bad updated_at %q", raw.UpdatedAt)}
	}
	claimedAt, err := parseOptionalTime(raw.ClaimedAt)
	if err != nil {
		return nil, nil, &ValidationError{Reason: fmt.Sprintf("bad claimed_at %q", raw.ClaimedAt)}
	}
	completedAt, err := parseOptionalTime(raw.CompletedAt)
	if err != nil {
		return nil, nil, &ValidationError{Reason: fmt.Sprintf("bad completed_at %q", raw.CompletedAt)}
	}

	return &Donation{
		ID:            raw.ID,
		DonorID:       raw.DonorID,
		DonorName:     raw.DonorName,
		DonorPhone:    raw.DonorPhone,
		FoodType:      raw.FoodType,
		Category:      raw.Category,
		Quantity:      raw.Quantity,
		Description:   raw.Description,
		PickupAddress: raw.PickupAddress,
		Status:        status,
		ExpiryTime:    expiry,
		ClaimedBy:     raw.ClaimedBy,
		ClaimedAt:     claimedAt,
		CompletedAt:   completedAt,
		Feedback:      raw.Feedback,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
		Preferences:   raw.Preferences,
	}, warning, nil
}

// ValidateNewDonation checks a donor-submitted posting before it is
// assigned an id and persisted. Unlike stored records, a new posting must
// carry an expiry strictly in the future.
func ValidateNewDonation(raw RawDonation, now time.Time) error {
	var missing []string
	if raw.FoodType == "" {
		missing = append(missing, "food_type")
	}
	if raw.Quantity == "" {
		missing = append(missing, "quantity")
	}
	if raw.PickupAddress == "" {
		missing = append(missing, "pickup_address")
	}
	if raw.DonorID == "" {
		missing = append(missing, "donor_id")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}

	if raw.ExpiryTime != "" {
		expiry, err := time.Parse(time.RFC3339, raw.ExpiryTime)
		if err != nil {
			return &ValidationError{Reason: fmt.Sprintf("bad expiry_time %q", raw.ExpiryTime)}
		}
		if !expiry.After(now) {
			return &ValidationError{Reason: "expiry_time must be in the future"}
		}
	}
	return nil
}

func parseTimeOr(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return fallback, nil
	}
	return time.Parse(time.RFC3339, value)
}

func parseOptionalTime(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
