package domain

import (
	"sort"
	"strings"
	"time"
)

// Sentinel values that disable a location or food type filter, matching
// the "All Locations" / "All Types" pickers. Matching is by equality; a
// real value that merely starts with "All" (such as "Allahabad") is a
// filter, not a sentinel.
const (
	QueryAll          = "All"
	QueryAllLocations = "All Locations"
	QueryAllTypes     = "All Types"
)

// Query describes an in-memory view over a fetched donation set.
type Query struct {
	SearchTerm string
	Location   string
	FoodType   string
	DonorID    string
	StatusIn   []DonationStatus
	NewestFirst bool
}

// FilterDonations derives a filtered, optionally sorted view of donations.
//
// The search term is a case-insensitive substring match over food type,
// donor name and pickup address. Location and food type are exact matches
// unless empty or the "All" sentinel. The status filter compares against
// the effective status at now, so an available donation past its expiry
// never appears in an available-only view. The input slice is never
// mutated and the result is always a fresh slice.
func FilterDonations(donations []Donation, q Query, now time.Time) []Donation {
	out := make([]Donation, 0, len(donations))
	term := strings.ToLower(q.SearchTerm)

	for _, d := range donations {
		if q.DonorID != "" && d.DonorID != q.DonorID {
			continue
		}
		if !statusAllowed(d.EffectiveStatus(now), q.StatusIn) {
			continue
		}
		if !sentinelMatch(q.Location, d.PickupAddress) {
			continue
		}
		if !sentinelMatch(q.FoodType, d.FoodType) {
			continue
		}
		if term != "" && !matchesTerm(&d, term) {
			continue
		}
		out = append(out, d)
	}

	if q.NewestFirst {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out
}

func statusAllowed(status DonationStatus, allowed []DonationStatus) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, s := range allowed {
		if s == status {
			return true
		}
	}
	return false
}

func sentinelMatch(filter, value string) bool {
	switch filter {
	case "", QueryAll, QueryAllLocations, QueryAllTypes:
		return true
	}
	return strings.EqualFold(filter, value)
}

func matchesTerm(d *Donation, term string) bool {
	return strings.Contains(strings.ToLower(d.FoodType), term) ||
		strings.Contains(strings.ToLower(d.DonorName), term) ||
		strings.Contains(strings.ToLower(d.PickupAddress), term)
}
