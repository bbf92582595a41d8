package domain

import (
	"errors"
	"strings"
	"testing"
	"time"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func validRaw() RawDonation {
	return RawDonation{
		ID:            "d-1",
		DonorID:       "u-1",
		DonorName:     "Green Kitchen",
		FoodType:      "Cooked Meals",
		Quantity:      "20 plates",
		PickupAddress: "12 Hill Road",
		Status:        "available",
		ExpiryTime:    testNow.Add(6 * time.Hour).Format(time.RFC3339),
		CreatedAt:     testNow.Add(-time.Hour).Format(time.RFC3339),
	}
}

func TestValidateDonation(t *testing.T) {
	d, warning, err := ValidateDonation(validRaw(), testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if warning != nil {
		t.Fatalf("unexpected warning: %+v", warning)
	}
	if d.Status != StatusAvailable {
		t.Errorf("status = %s, want available", d.Status)
	}
	if !d.ExpiryTime.Equal(testNow.Add(6 * time.Hour)) {
		t.Errorf("expiry = %v", d.ExpiryTime)
	}
}

func TestValidateDonationMissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RawDonation)
		want   string
	}{
		{"no id", func(r *RawDonation) { r.ID = "" }, "id"},
		{"no donor", func(r *RawDonation) { r.DonorID = "" }, "donor_id"},
		{"no food type", func(r *RawDonation) { r.FoodType = "" }, "food_type"},
		{"no quantity", func(r *RawDonation) { r.Quantity = "" }, "quantity"},
		{"no address", func(r *RawDonation) { r.PickupAddress = "" }, "pickup_address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRaw()
			tt.mutate(&raw)

			_, _, err := ValidateDonation(raw, testNow)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("want ValidationError, got %v", err)
			}
			found := false
			for _, m := range vErr.Missing {
				if m == tt.want {
					found = true
				}
			}
			if !found {
				t.Errorf("missing = %v, want to contain %s", vErr.Missing, tt.want)
			}
		})
	}
}

func TestValidateDonationReportsAllMissingFields(t *testing.T) {
	_, _, err := ValidateDonation(RawDonation{ID: "d-1", DonorID: "u-1"}, testNow)

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if len(vErr.Missing) != 3 {
		t.Errorf("missing = %v, want 3 fields", vErr.Missing)
	}
}

func TestValidateDonationStatusDefaulting(t *testing.T) {
	tests := []struct {
		raw        string
		want       DonationStatus
		wantWarn   bool
	}{
		{"available", StatusAvailable, false},
		{"CLAIMED", StatusClaimed, false},
		{"Completed", StatusCompleted, false},
		{"expired", StatusExpired, false},
		{"", StatusAvailable, true},
		{"pending", StatusAvailable, true},
		{"deleted", StatusAvailable, true},
	}

	for _, tt := range tests {
		t.Run("status "+tt.raw, func(t *testing.T) {
			raw := validRaw()
			raw.Status = tt.raw

			d, warning, err := ValidateDonation(raw, testNow)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d.Status != tt.want {
				t.Errorf("status = %s, want %s", d.Status, tt.want)
			}
			if (warning != nil) != tt.wantWarn {
				t.Errorf("warning = %+v, wantWarn = %v", warning, tt.wantWarn)
			}
			if warning != nil && warning.ID != raw.ID {
				t.Errorf("warning.ID = %s, want %s", warning.ID, raw.ID)
			}
		})
	}
}

func TestValidateDonationTimestampDefaults(t *testing.T) {
	raw := validRaw()
	raw.ExpiryTime = ""
	raw.CreatedAt = ""

	d, _, err := ValidateDonation(raw, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.ExpiryTime.Equal(testNow) {
		t.Errorf("expiry = %v, want now", d.ExpiryTime)
	}
	if !d.CreatedAt.Equal(testNow) {
		t.Errorf("created_at = %v, want now", d.CreatedAt)
	}
}

func TestValidateDonationCarriesLifecycleFields(t *testing.T) {
	claimedAt := testNow.Add(-2 * time.Hour)
	completedAt := testNow.Add(-time.Hour)

	raw := validRaw()
	raw.Status = "completed"
	raw.ClaimedBy = "ngo-1"
	raw.ClaimedAt = claimedAt.Format(time.RFC3339)
	raw.CompletedAt = completedAt.Format(time.RFC3339)
	raw.Feedback = "picked up on time"
	raw.UpdatedAt = completedAt.Format(time.RFC3339)

	d, _, err := ValidateDonation(raw, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ClaimedAt == nil || !d.ClaimedAt.Equal(claimedAt) {
		t.Errorf("claimed_at = %v, want %v", d.ClaimedAt, claimedAt)
	}
	if d.CompletedAt == nil || !d.CompletedAt.Equal(completedAt) {
		t.Errorf("completed_at = %v, want %v", d.CompletedAt, completedAt)
	}
	if d.Feedback != "picked up on time" {
		t.Errorf("feedback = %q", d.Feedback)
	}
	if !d.UpdatedAt.Equal(completedAt) {
		t.Errorf("updated_at = %v, want %v", d.UpdatedAt, completedAt)
	}
}

func TestValidateDonationLifecycleFieldsAbsent(t *testing.T) {
	d, _, err := ValidateDonation(validRaw(), testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ClaimedAt != nil || d.CompletedAt != nil {
		t.Errorf("claimed_at = %v, completed_at = %v, want both nil", d.ClaimedAt, d.CompletedAt)
	}
	// updated_at falls back to created_at, not to the zero value.
	if !d.UpdatedAt.Equal(d.CreatedAt) {
		t.Errorf("updated_at = %v, want %v", d.UpdatedAt, d.CreatedAt)
	}
}

func TestValidateDonationBadTimestamp(t *testing.T) {
	raw := validRaw()
	raw.ExpiryTime = "tomorrow at noon"

	_, _, err := ValidateDonation(raw, testNow)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if !strings.Contains(vErr.Error(), "expiry_time") {
		t.Errorf("error = %q, want mention of expiry_time", vErr.Error())
	}
}

func TestValidateNewDonation(t *testing.T) {
	raw := validRaw()
	raw.ID = ""
	if err := ValidateNewDonation(raw, testNow); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateNewDonationPastExpiry(t *testing.T) {
	raw := validRaw()
	raw.ExpiryTime = testNow.Add(-time.Minute).Format(time.RFC3339)

	err := ValidateNewDonation(raw, testNow)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
}

func TestEffectiveStatus(t *testing.T) {
	past := testNow.Add(-time.Hour)
	future := testNow.Add(time.Hour)

	tests := []struct {
		name   string
		status DonationStatus
		expiry time.Time
		want   DonationStatus
	}{
		{"available fresh", StatusAvailable, future, StatusAvailable},
		{"available past expiry", StatusAvailable, past, StatusExpired},
		{"claimed past expiry keeps status", StatusClaimed, past, StatusClaimed},
		{"completed past expiry keeps status", StatusCompleted, past, StatusCompleted},
		{"available zero expiry", StatusAvailable, time.Time{}, StatusAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Donation{Status: tt.status, ExpiryTime: tt.expiry}
			if got := d.EffectiveStatus(testNow); got != tt.want {
				t.Errorf("EffectiveStatus = %s, want %s", got, tt.want)
			}
			if d.Status != tt.status {
				t.Errorf("stored status mutated to %s", d.Status)
			}
		})
	}
}
