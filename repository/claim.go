package repository

import (
	"context"

	"github.com/nikki1405/CSP/domain"
)

// ClaimRepository reads the append-only claim audit trail. Claims are
// written by DonationRepository.Claim inside the transition transaction,
// never directly.
type ClaimRepository interface {
	ListByClaimant(ctx context.Context, claimantID string) ([]domain.Claim, error)
	ListByDonation(ctx context.Context, donationID string) ([]domain.Claim, error)
}
