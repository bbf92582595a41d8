package repository

import (
	"context"

	"github.com/nikki1405/CSP/domain"
)

type EventRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
	Create(ctx context.Context, event *domain.Event) (*domain.Event, error)
	// Register records a user for an event iff the event is below its
	// participant cap and the user is not already registered.
	Register(ctx context.Context, eventID, userID string) error
}
