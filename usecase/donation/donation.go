package donation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nikki1405/CSP/domain"
	"github.com/nikki1405/CSP/repository"
	"github.com/nikki1405/CSP/usecase"
)

// UseCase orchestrates the donation lifecycle: validation of stored
// records, pure permission checks, and the storage transitions.
type UseCase struct {
	donations repository.DonationRepository
	claims    repository.ClaimRepository
	buffer    usecase.OperationBuffer
	logger    *zap.Logger
	now       func() time.Time
}

func New(donations repository.DonationRepository, claims repository.ClaimRepository, buffer usecase.OperationBuffer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		donations: donations,
		claims:    claims,
		buffer:    buffer,
		logger:    logger,
		now:       time.Now,
	}
}

// ListParams combines the storage-level filter with the in-memory query.
type ListParams struct {
	Query  domain.Query
	Limit  int
	Offset int
}

// Stats aggregates a donor's dashboard counters from a listed view.
type Stats struct {
	Active    int `json:"active"`
	Claimed   int `json:"claimed"`
	Completed int `json:"completed"`
}

// ListResult carries the validated view plus how many stored records were
// rejected as malformed while building it.
type ListResult struct {
	Donations []domain.Donation
	Rejected  int
	Stats     Stats
}

// Post creates a new donation listing. Only donors may post; the server
// assigns the id, forces status to available and stamps creation time.
func (uc *UseCase) Post(ctx context.Context, actor domain.Actor, raw domain.RawDonation) (*domain.Donation, error) {
	if actor.Role != domain.RoleDonor {
		return nil, domain.NewError(domain.ErrCodeForbidden, "only donor accounts may post donations")
	}
	raw.DonorID = actor.ID

	now := uc.now()
	if err := domain.ValidateNewDonation(raw, now); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInvalid, "invalid donation", err)
	}

	raw.ID = uuid.NewString()
	raw.Status = string(domain.StatusAvailable)
	d, _, err := domain.ValidateDonation(raw, now)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInvalid, "invalid donation", err)
	}

	created, err := uc.donations.Create(ctx, d)
	if err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationCreate, d) {
			return d, nil
		}
		return nil, err
	}
	return created, nil
}

// List fetches, validates and filters donations. Malformed stored records
// never reach the returned view; each rejection is logged and counted.
func (uc *UseCase) List(ctx context.Context, params ListParams) (*ListResult, error) {
	filter := repository.DonationFilter{
		DonorID: params.Query.DonorID,
		Limit:   params.Limit,
		Offset:  params.Offset,
	}
	// Single-status queries are pushed down to storage; the derived
	// expiry check still happens here.
	if len(params.Query.StatusIn) == 1 {
		filter.Status = params.Query.StatusIn[0]
	}

	raws, err := uc.donations.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	valid, rejected := uc.validateAll(raws, now)
	view := domain.FilterDonations(valid, params.Query, now)

	return &ListResult{
		Donations: view,
		Rejected:  rejected,
		Stats:     countStats(valid, now),
	}, nil
}

// Get returns a single validated donation.
func (uc *UseCase) Get(ctx context.Context, id string) (*domain.Donation, error) {
	raw, err := uc.donations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d, warning, err := domain.ValidateDonation(raw, uc.now())
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInvalid, "stored donation is malformed", err)
	}
	uc.warnStatus(warning)
	return d, nil
}

// Update edits descriptive fields of an available donation owned by the
// actor. The stored status is preserved regardless of the payload.
func (uc *UseCase) Update(ctx context.Context, actor domain.Actor, id string, raw domain.RawDonation) (*domain.Donation, error) {
	current, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.CanEdit(current, actor); err != nil {
		return nil, err
	}

	merged := mergeUpdate(current, raw)
	if err := uc.donations.Update(ctx, merged); err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationUpdate, merged) {
			return merged, nil
		}
		return nil, err
	}
	return merged, nil
}

// Withdraw is the logical delete: the donor retracts an available
// donation by overwriting its status to expired. The record remains
// retrievable; nothing is physically removed.
func (uc *UseCase) Withdraw(ctx context.Context, actor domain.Actor, id string) error {
	current, err := uc.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := domain.CanWithdraw(current, actor); err != nil {
		return err
	}
	if err := uc.donations.Withdraw(ctx, id); err != nil {
		if errors.Is(err, domain.ErrClaimConflict) {
			uc.logger.Info("withdraw lost conditional update",
				zap.String("donation_id", id),
				zap.String("donor_id", actor.ID))
			return domain.WrapError(domain.ErrCodeForbidden, "only available donations can be withdrawn", err)
		}
		return err
	}
	return nil
}

// Claim reserves an available donation for an NGO. The storage layer
// applies the transition as a conditional update; losing that race is
// reported as a denial, not retried.
func (uc *UseCase) Claim(ctx context.Context, actor domain.Actor, id string) (*domain.Donation, error) {
	current, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.CanClaim(current, actor, uc.now()); err != nil {
		return nil, err
	}

	claimed, err := uc.donations.Claim(ctx, id, actor.ID, uc.now())
	if err != nil {
		if errors.Is(err, domain.ErrClaimConflict) {
			uc.logger.Info("claim lost conditional update",
				zap.String("donation_id", id),
				zap.String("claimant_id", actor.ID))
			return nil, domain.WrapError(domain.ErrCodeForbidden, "donation already claimed", err)
		}
		return nil, err
	}

	uc.logger.Info("donation claimed",
		zap.String("donation_id", id),
		zap.String("claimant_id", actor.ID))
	return claimed, nil
}

// Complete marks a claimed donation as picked up. Donor or claimant may
// complete; a second complete on the same donation is denied.
func (uc *UseCase) Complete(ctx context.Context, actor domain.Actor, id, feedback string) (*domain.Donation, error) {
	current, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.CanComplete(current); err != nil {
		return nil, err
	}

	completed, err := uc.donations.Complete(ctx, id, feedback, uc.now())
	if err != nil {
		if errors.Is(err, domain.ErrClaimConflict) {
			return nil, domain.WrapError(domain.ErrCodeForbidden, "only claimed donations can be marked as completed", err)
		}
		return nil, err
	}

	uc.logger.Info("donation completed",
		zap.String("donation_id", id),
		zap.String("actor_id", actor.ID))
	return completed, nil
}

// MyClaims lists donations currently claimed by the acting NGO.
func (uc *UseCase) MyClaims(ctx context.Context, actor domain.Actor) (*ListResult, error) {
	if actor.Role != domain.RoleNGO {
		return nil, domain.NewError(domain.ErrCodeForbidden, "only NGO accounts have claims")
	}

	raws, err := uc.donations.List(ctx, repository.DonationFilter{
		ClaimedBy: actor.ID,
		Status:    domain.StatusClaimed,
	})
	if err != nil {
		return nil, err
	}

	now := uc.now()
	valid, rejected := uc.validateAll(raws, now)
	return &ListResult{Donations: valid, Rejected: rejected}, nil
}

// ClaimHistory exposes the append-only audit trail for a donation.
func (uc *UseCase) ClaimHistory(ctx context.Context, donationID string) ([]domain.Claim, error) {
	if _, err := uc.Get(ctx, donationID); err != nil {
		return nil, err
	}
	return uc.claims.ListByDonation(ctx, donationID)
}

// MyClaimHistory lists every claim the acting NGO has ever made,
// including ones whose donations have since completed or expired.
func (uc *UseCase) MyClaimHistory(ctx context.Context, actor domain.Actor) ([]domain.Claim, error) {
	if actor.Role != domain.RoleNGO {
		return nil, domain.NewError(domain.ErrCodeForbidden, "only NGO accounts have claims")
	}
	return uc.claims.ListByClaimant(ctx, actor.ID)
}

func (uc *UseCase) validateAll(raws []domain.RawDonation, now time.Time) ([]domain.Donation, int) {
	valid := make([]domain.Donation, 0, len(raws))
	rejected := 0
	for _, raw := range raws {
		d, warning, err := domain.ValidateDonation(raw, now)
		if err != nil {
			rejected++
			uc.logger.Warn("dropping malformed donation record",
				zap.String("donation_id", raw.ID),
				zap.Error(err))
			continue
		}
		uc.warnStatus(warning)
		valid = append(valid, *d)
	}
	return valid, rejected
}

func (uc *UseCase) warnStatus(w *domain.StatusWarning) {
	if w == nil {
		return
	}
	uc.logger.Warn("unrecognized donation status, defaulting to available",
		zap.String("donation_id", w.ID),
		zap.String("status", w.Status))
}

func (uc *UseCase) shouldBuffer(ctx context.Context, operation string, d *domain.Donation) bool {
	if uc.buffer == nil {
		return false
	}
	if err := uc.buffer.BufferDonation(ctx, operation, d); err != nil {
		uc.logger.Error("failed to buffer donation operation",
			zap.String("operation", operation), zap.Error(err))
		return false
	}
	uc.logger.Warn("donation operation buffered", zap.String("operation", operation))
	return true
}

func countStats(donations []domain.Donation, now time.Time) Stats {
	var s Stats
	for i := range donations {
		switch donations[i].EffectiveStatus(now) {
		case domain.StatusAvailable:
			s.Active++
		case domain.StatusClaimed:
			s.Claimed++
		case domain.StatusCompleted:
			s.Completed++
		}
	}
	return s
}

// mergeUpdate applies client-supplied descriptive fields over the current
// record. Status, claimant and timestamps are never taken from the payload.
func mergeUpdate(current *domain.Donation, raw domain.RawDonation) *domain.Donation {
	merged := *current
	if raw.FoodType != "" {
		merged.FoodType = raw.FoodType
	}
	if raw.Category != "" {
		merged.Category = raw.Category
	}
	if raw.Quantity != "" {
		merged.Quantity = raw.Quantity
	}
	if raw.Description != "" {
		merged.Description = raw.Description
	}
	if raw.PickupAddress != "" {
		merged.PickupAddress = raw.PickupAddress
	}
	if raw.DonorName != "" {
		merged.DonorName = raw.DonorName
	}
	if raw.DonorPhone != "" {
		merged.DonorPhone = raw.DonorPhone
	}
	if raw.ExpiryTime != "" {
		if parsed, err := time.Parse(time.RFC3339, raw.ExpiryTime); err == nil {
			merged.ExpiryTime = parsed
		}
	}
	if raw.Preferences != nil {
		merged.Preferences = raw.Preferences
	}
	return &merged
}
