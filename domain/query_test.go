package domain

import (
	"testing"
	"time"
)

func sampleDonations() []Donation {
	return []Donation{
		{
			ID: "d-1", DonorID: "u-1", DonorName: "Annapurna Mess",
			FoodType: "Cooked Meals", PickupAddress: "MG Road",
			Status: StatusAvailable, ExpiryTime: testNow.Add(2 * time.Hour),
			CreatedAt: testNow.Add(-3 * time.Hour),
		},
		{
			ID: "d-2", DonorID: "u-2", DonorName: "City Bakery",
			FoodType: "Bread", PickupAddress: "Park Street",
			Status: StatusAvailable, ExpiryTime: testNow.Add(-time.Hour),
			CreatedAt: testNow.Add(-2 * time.Hour),
		},
		{
			ID: "d-3", DonorID: "u-1", DonorName: "Annapurna Mess",
			FoodType: "Rice", PickupAddress: "MG Road",
			Status: StatusClaimed, ClaimedBy: "ngo-1", ExpiryTime: testNow.Add(5 * time.Hour),
			CreatedAt: testNow.Add(-time.Hour),
		},
	}
}

func ids(ds []Donation) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.ID
	}
	return out
}

func TestFilterDonationsNoQuery(t *testing.T) {
	in := sampleDonations()
	got := FilterDonations(in, Query{}, testNow)
	if len(got) != 3 {
		t.Fatalf("got %d donations, want 3", len(got))
	}
}

func TestFilterDonationsAvailableExcludesPastExpiry(t *testing.T) {
	got := FilterDonations(sampleDonations(), Query{StatusIn: []DonationStatus{StatusAvailable}}, testNow)
	if len(got) != 1 || got[0].ID != "d-1" {
		t.Fatalf("available view = %v, want [d-1]", ids(got))
	}
}

func TestFilterDonationsExpiredViewIncludesDerived(t *testing.T) {
	// d-2 is stored as available but reads as expired.
	got := FilterDonations(sampleDonations(), Query{StatusIn: []DonationStatus{StatusExpired}}, testNow)
	if len(got) != 1 || got[0].ID != "d-2" {
		t.Fatalf("expired view = %v, want [d-2]", ids(got))
	}
}

func TestFilterDonationsSearchTerm(t *testing.T) {
	tests := []struct {
		term string
		want []string
	}{
		{"annapurna", []string{"d-1", "d-3"}},
		{"BREAD", []string{"d-2"}},
		{"mg road", []string{"d-1", "d-3"}},
		{"pizza", nil},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			got := FilterDonations(sampleDonations(), Query{SearchTerm: tt.term}, testNow)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", ids(got), tt.want)
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("got %v, want %v", ids(got), tt.want)
				}
			}
		})
	}
}

func TestFilterDonationsSentinels(t *testing.T) {
	all := FilterDonations(sampleDonations(), Query{Location: "All Locations", FoodType: "All Types"}, testNow)
	if len(all) != 3 {
		t.Fatalf("sentinel filters dropped rows: %v", ids(all))
	}

	byFood := FilterDonations(sampleDonations(), Query{FoodType: "Bread"}, testNow)
	if len(byFood) != 1 || byFood[0].ID != "d-2" {
		t.Fatalf("food filter = %v, want [d-2]", ids(byFood))
	}

	byLoc := FilterDonations(sampleDonations(), Query{Location: "MG Road"}, testNow)
	if len(byLoc) != 2 {
		t.Fatalf("location filter = %v, want 2 rows", ids(byLoc))
	}
}

// A location value that merely starts with "All" is a real filter, not
// the disable-filter sentinel.
func TestFilterDonationsAllPrefixedValueIsNotSentinel(t *testing.T) {
	ds := []Donation{
		{ID: "d-1", PickupAddress: "MG Road", FoodType: "Rice", Status: StatusAvailable, ExpiryTime: testNow.Add(time.Hour)},
		{ID: "d-2", PickupAddress: "Allahabad", FoodType: "Allgäu Cheese", Status: StatusAvailable, ExpiryTime: testNow.Add(time.Hour)},
	}

	byLoc := FilterDonations(ds, Query{Location: "Allahabad"}, testNow)
	if len(byLoc) != 1 || byLoc[0].ID != "d-2" {
		t.Fatalf("location filter = %v, want [d-2]", ids(byLoc))
	}

	byFood := FilterDonations(ds, Query{FoodType: "Allgäu Cheese"}, testNow)
	if len(byFood) != 1 || byFood[0].ID != "d-2" {
		t.Fatalf("food filter = %v, want [d-2]", ids(byFood))
	}
}

func TestFilterDonationsByDonor(t *testing.T) {
	got := FilterDonations(sampleDonations(), Query{DonorID: "u-1"}, testNow)
	if len(got) != 2 {
		t.Fatalf("donor filter = %v, want 2 rows", ids(got))
	}
}

func TestFilterDonationsNewestFirst(t *testing.T) {
	got := FilterDonations(sampleDonations(), Query{NewestFirst: true}, testNow)
	want := []string{"d-3", "d-2", "d-1"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("order = %v, want %v", ids(got), want)
		}
	}
}

func TestFilterDonationsDoesNotMutateInput(t *testing.T) {
	in := sampleDonations()
	_ = FilterDonations(in, Query{StatusIn: []DonationStatus{StatusExpired}, NewestFirst: true}, testNow)

	if in[0].ID != "d-1" || in[1].ID != "d-2" || in[2].ID != "d-3" {
		t.Fatal("input slice reordered")
	}
	if in[1].Status != StatusAvailable {
		t.Fatal("stored status rewritten by filtering")
	}
}

func TestFilterDonationsDeterministic(t *testing.T) {
	q := Query{SearchTerm: "annapurna", NewestFirst: true}
	first := FilterDonations(sampleDonations(), q, testNow)
	second := FilterDonations(sampleDonations(), q, testNow)

	if len(first) != len(second) {
		t.Fatal("repeated filtering disagreed on size")
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatal("repeated filtering disagreed on order")
		}
	}
}
