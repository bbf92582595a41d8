package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nikki1405/CSP/domain"
	"github.com/nikki1405/CSP/repository"
)

type claimRepository struct {
	pool *pgxpool.Pool
}

// NewClaimRepository returns a read-only view over the claim audit trail.
func NewClaimRepository(pool *pgxpool.Pool) repository.ClaimRepository {
	return &claimRepository{pool: pool}
}

func (r *claimRepository) ListByClaimant(ctx context.Context, claimantID string) ([]domain.Claim, error) {
	const query = `
	SELECT id, donation_id, claimant_id, claimed_at
	FROM claims
	WHERE claimant_id = $1
	ORDER BY claimed_at DESC
	`
	return r.queryClaims(ctx, query, claimantID)
}

func (r *claimRepository) ListByDonation(ctx context.Context, donationID string) ([]domain.Claim, error) {
	const query = `
	SELECT id, donation_id, claimant_id, claimed_at
	FROM claims
	WHERE donation_id = $1
	ORDER BY claimed_at DESC
	`
	return r.queryClaims(ctx, query, donationID)
}

func (r *claimRepository) queryClaims(ctx context.Context, query string, arg interface{}) ([]domain.Claim, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var claims []domain.Claim
	for rows.Next() {
		var c domain.Claim
		if err := rows.Scan(&c.ID, &c.DonationID, &c.ClaimantID, &c.ClaimedAt); err != nil {
			return nil, err
		}
		claims = append(claims, c)
	}
	return claims, rows.Err()
}
