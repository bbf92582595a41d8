package usecase

import (
	"context"

	"github.com/nikki1405/CSP/domain"
)

const (
	OperationCreate = "create"
	OperationUpdate = "update"
)

// OperationBuffer abstracts the offline buffer so use cases stay
// storage-agnostic. Only non-atomic writes are ever buffered; lifecycle
// transitions (claim, complete, withdraw) must observe current state and
// always fail fast instead.
type OperationBuffer interface {
	BufferProfile(ctx context.Context, operation string, user *domain.User) error
	BufferDonation(ctx context.Context, operation string, donation *domain.Donation) error
}
