package repository

import (
	"context"
	"time"

	"github.com/nikki1405/CSP/domain"
)

// DonationFilter narrows List at the storage level. Free-text search and
// derived-expiry classification happen in memory on top of this.
type DonationFilter struct {
	DonorID   string
	ClaimedBy string
	Status    domain.DonationStatus
	Limit     int
	Offset    int
}

// DonationRepository is the boundary to donation storage. List and GetByID
// return raw records; validation into domain.Donation happens above.
type DonationRepository interface {
	GetByID(ctx context.Context, id string) (domain.RawDonation, error)
	List(ctx context.Context, filter DonationFilter) ([]domain.RawDonation, error)
	Create(ctx context.Context, donation *domain.Donation) (*domain.Donation, error)
	Update(ctx context.Context, donation *domain.Donation) error
	// Withdraw performs the available→expired transition as a conditional
	// update on status, so a claim that lands first is never voided. It
	// returns domain.ErrClaimConflict when the donation was no longer
	// available at commit time.
	Withdraw(ctx context.Context, id string) error
	// Claim performs the available→claimed transition as a conditional
	// update on status and appends the Claim record in one transaction.
	// It returns domain.ErrClaimConflict when the donation was not
	// available at commit time.
	Claim(ctx context.Context, id, claimantID string, at time.Time) (*domain.Donation, error)
	// Complete performs claimed→completed, also conditionally.
	Complete(ctx context.Context, id, feedback string, at time.Time) (*domain.Donation, error)
}
