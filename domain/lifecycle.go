package domain

import (
	"fmt"
	"time"
)

// Actor is the identity performing a lifecycle action. It is always passed
// explicitly; nothing in this package reads ambient auth state.
type Actor struct {
	ID   string
	Role UserRole
}

// CanEdit allows the posting donor to change fields while the donation is
// still available.
func CanEdit(d *Donation, actor Actor) error {
	if d == nil {
		return ErrDonationNotFound
	}
	if d.DonorID != actor.ID {
		return NewError(ErrCodeForbidden, "only the posting donor may edit a donation")
	}
	if d.Status != StatusAvailable {
		return NewError(ErrCodeForbidden, fmt.Sprintf("cannot edit a %s donation", d.Status))
	}
	return nil
}

// CanWithdraw gates the logical delete. A withdraw overwrites status to
// expired; the record is never physically removed.
func CanWithdraw(d *Donation, actor Actor) error {
	if d == nil {
		return ErrDonationNotFound
	}
	if d.DonorID != actor.ID {
		return NewError(ErrCodeForbidden, "only the posting donor may remove a donation")
	}
	if d.Status != StatusAvailable {
		return NewError(ErrCodeForbidden, fmt.Sprintf("cannot remove a %s donation", d.Status))
	}
	return nil
}

// CanClaim allows an NGO to reserve an available donation that has not
// passed its expiry. The actual transition must still be a conditional
// update at the storage layer; this check alone does not serialize
// concurrent claimants.
func CanClaim(d *Donation, actor Actor, now time.Time) error {
	if d == nil {
		return ErrDonationNotFound
	}
	if actor.Role != RoleNGO {
		return NewError(ErrCodeForbidden, "only NGO accounts may claim donations")
	}
	if d.Status != StatusAvailable {
		return NewError(ErrCodeForbidden, fmt.Sprintf("donation cannot be claimed, current status: %s", d.Status))
	}
	if d.IsExpired(now) {
		return NewError(ErrCodeForbidden, "donation has expired")
	}
	return nil
}

// CanComplete allows marking a claimed donation as picked up. Either the
// donor or the claimant may complete; there is deliberately no ownership
// check on who closes the handoff.
func CanComplete(d *Donation) error {
	if d == nil {
		return ErrDonationNotFound
	}
	if d.Status != StatusClaimed {
		return NewError(ErrCodeForbidden, "only claimed donations can be marked as completed")
	}
	return nil
}
