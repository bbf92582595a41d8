package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nikki1405/CSP/domain"
	"github.com/nikki1405/CSP/repository"
)

type donationRepository struct {
	pool *pgxpool.Pool
}

// NewDonationRepository returns a Postgres-backed implementation of DonationRepository.
func NewDonationRepository(pool *pgxpool.Pool) repository.DonationRepository {
	return &donationRepository{pool: pool}
}

const donationColumns = `
	id, donor_id, donor_name, donor_phone, food_type, category, quantity,
	description, pickup_address, status, expiry_time, claimed_by,
	claimed_at, completed_at, feedback, preferences, created_at, updated_at`

func (r *donationRepository) GetByID(ctx context.Context, id string) (domain.RawDonation, error) {
	query := `SELECT` + donationColumns + ` FROM donations WHERE id = $1`
	row := r.pool.QueryRow(ctx, query, id)

	d, err := scanDonation(row)
	if err != nil {
		return domain.RawDonation{}, err
	}
	return rawFromDonation(d), nil
}

func (r *donationRepository) List(ctx context.Context, filter repository.DonationFilter) ([]domain.RawDonation, error) {
	query := `
	SELECT` + donationColumns + `
	FROM donations
	WHERE ($1 = '' OR donor_id = $1)
	  AND ($2 = '' OR claimed_by = $2)
	  AND ($3 = '' OR status = $3)
	ORDER BY created_at DESC
	LIMIT $4 OFFSET $5
	`
	rows, err := r.pool.Query(ctx, query,
		filter.DonorID, filter.ClaimedBy, string(filter.Status),
		clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var raws []domain.RawDonation
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, err
		}
		raws = append(raws, rawFromDonation(d))
	}
	return raws, rows.Err()
}

func (r *donationRepository) Create(ctx context.Context, donation *domain.Donation) (*domain.Donation, error) {
	if donation == nil {
		return nil, domain.ErrInvalidPayload
	}
	if donation.ID == "" {
		donation.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO donations (id, donor_id, donor_name, donor_phone, food_type, category,
		quantity, description, pickup_address, status, expiry_time, preferences)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		donation.ID,
		donation.DonorID,
		donation.DonorName,
		donation.DonorPhone,
		donation.FoodType,
		donation.Category,
		donation.Quantity,
		donation.Description,
		donation.PickupAddress,
		string(donation.Status),
		nullTime(donation.ExpiryTime),
		marshalMap(donation.Preferences),
	).Scan(&donation.CreatedAt, &donation.UpdatedAt); err != nil {
		return nil, err
	}
	return donation, nil
}

func (r *donationRepository) Update(ctx context.Context, donation *domain.Donation) error {
	if donation == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE donations
	SET food_type = $2,
		category = $3,
		quantity = $4,
		description = $5,
		pickup_address = $6,
		donor_name = $7,
		donor_phone = $8,
		expiry_time = $9,
		preferences = $10,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		donation.ID,
		donation.FoodType,
		donation.Category,
		donation.Quantity,
		donation.Description,
		donation.PickupAddress,
		donation.DonorName,
		donation.DonorPhone,
		nullTime(donation.ExpiryTime),
		marshalMap(donation.Preferences),
	).Scan(&donation.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrDonationNotFound
		}
		return err
	}
	return nil
}

// Withdraw expires a donation only while it is still available; a claim
// that commits between the caller's read and this write makes the update
// miss instead of voiding the claim.
func (r *donationRepository) Withdraw(ctx context.Context, id string) error {
	const query = `UPDATE donations SET status = 'expired', updated_at = NOW() WHERE id = $1 AND status = 'available'`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return r.classifyMiss(ctx, id)
	}
	return nil
}

// Claim moves the donation out of "available" with a conditional update,
// so exactly one of any number of concurrent claimants wins, and appends
// the audit claim row in the same transaction.
func (r *donationRepository) Claim(ctx context.Context, id, claimantID string, at time.Time) (*domain.Donation, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const transition = `
	UPDATE donations
	SET status = 'claimed', claimed_by = $2, claimed_at = $3, updated_at = NOW()
	WHERE id = $1 AND status = 'available'
	`
	tag, err := tx.Exec(ctx, transition, id, claimantID, at)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, r.classifyMiss(ctx, id)
	}

	const audit = `
	INSERT INTO claims (id, donation_id, claimant_id, claimed_at)
	VALUES ($1, $2, $3, $4)
	`
	if _, err := tx.Exec(ctx, audit, uuid.NewString(), id, claimantID, at); err != nil {
		return nil, err
	}

	query := `SELECT` + donationColumns + ` FROM donations WHERE id = $1`
	d, err := scanDonation(tx.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

func (r *donationRepository) Complete(ctx context.Context, id, feedback string, at time.Time) (*domain.Donation, error) {
	const transition = `
	UPDATE donations
	SET status = 'completed', completed_at = $2, feedback = $3, updated_at = NOW()
	WHERE id = $1 AND status = 'claimed'
	`
	tag, err := r.pool.Exec(ctx, transition, id, at, feedback)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, r.classifyMiss(ctx, id)
	}

	query := `SELECT` + donationColumns + ` FROM donations WHERE id = $1`
	return scanDonation(r.pool.QueryRow(ctx, query, id))
}

// classifyMiss distinguishes a missing row from a lost conditional update.
func (r *donationRepository) classifyMiss(ctx context.Context, id string) error {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM donations WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrDonationNotFound
	}
	return domain.ErrClaimConflict
}

func scanDonation(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Donation, error) {
	var d domain.Donation
	var (
		expiry      *time.Time
		claimedBy   *string
		claimedAt   *time.Time
		completedAt *time.Time
		preferences []byte
	)

	if err := row.Scan(
		&d.ID,
		&d.DonorID,
		&d.DonorName,
		&d.DonorPhone,
		&d.FoodType,
		&d.Category,
		&d.Quantity,
		&d.Description,
		&d.PickupAddress,
		&d.Status,
		&expiry,
		&claimedBy,
		&claimedAt,
		&completedAt,
		&d.Feedback,
		&preferences,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDonationNotFound
		}
		return nil, err
	}

	if expiry != nil {
		d.ExpiryTime = *expiry
	}
	if claimedBy != nil {
		d.ClaimedBy = *claimedBy
	}
	d.ClaimedAt = claimedAt
	d.CompletedAt = completedAt
	if len(preferences) > 0 {
		_ = json.Unmarshal(preferences, &d.Preferences)
	}
	return &d, nil
}

// rawFromDonation re-projects a stored row into the untyped shape the
// validator consumes, keeping the reject-malformed path uniform whether
// records come from this repository or an external sync.
func rawFromDonation(d *domain.Donation) domain.RawDonation {
	raw := domain.RawDonation{
		ID:            d.ID,
		DonorID:       d.DonorID,
		DonorName:     d.DonorName,
		DonorPhone:    d.DonorPhone,
		FoodType:      d.FoodType,
		Category:      d.Category,
		Quantity:      d.Quantity,
		Description:   d.Description,
		PickupAddress: d.PickupAddress,
		Status:        string(d.Status),
		ClaimedBy:     d.ClaimedBy,
		Feedback:      d.Feedback,
		Preferences:   d.Preferences,
	}
	if !d.ExpiryTime.IsZero() {
		raw.ExpiryTime = d.ExpiryTime.UTC().Format(time.RFC3339)
	}
	if d.ClaimedAt != nil {
		raw.ClaimedAt = d.ClaimedAt.UTC().Format(time.RFC3339)
	}
	if d.CompletedAt != nil {
		raw.CompletedAt = d.CompletedAt.UTC().Format(time.RFC3339)
	}
	if !d.CreatedAt.IsZero() {
		raw.CreatedAt = d.CreatedAt.UTC().Format(time.RFC3339)
	}
	if !d.UpdatedAt.IsZero() {
		raw.UpdatedAt = d.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return raw
}
