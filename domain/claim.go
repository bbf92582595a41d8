package domain

import "time"

// Claim is the append-only record of an NGO reserving a donation. It is
// written in the same transaction as the status transition, so the claims
// table is an audit trail of every successful handoff.
type Claim struct {
	ID         string    `json:"id"`
	DonationID string    `json:"donation_id"`
	ClaimantID string    `json:"claimant_id"`
	ClaimedAt  time.Time `json:"claimed_at"`
}
