package event

import (
	"context"

	"go.uber.org/zap"

	"github.com/nikki1405/CSP/domain"
	"github.com/nikki1405/CSP/repository"
)

type UseCase struct {
	events repository.EventRepository
	logger *zap.Logger
}

func New(events repository.EventRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		events: events,
		logger: logger,
	}
}

func (uc *UseCase) ListEvents(ctx context.Context) ([]domain.Event, error) {
	return uc.events.List(ctx)
}

func (uc *UseCase) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	return uc.events.GetByID(ctx, id)
}

func (uc *UseCase) CreateEvent(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	if e == nil || e.Title == "" {
		return nil, domain.ErrInvalidPayload
	}
	if e.Type == "" {
		e.Type = domain.EventDrive
	}
	return uc.events.Create(ctx, e)
}

// Register signs the actor up for an event. Capacity and duplicate checks
// are enforced atomically by the repository.
func (uc *UseCase) Register(ctx context.Context, actor domain.Actor, eventID string) error {
	if err := uc.events.Register(ctx, eventID, actor.ID); err != nil {
		return err
	}
	uc.logger.Info("event registration",
		zap.String("event_id", eventID),
		zap.String("user_id", actor.ID))
	return nil
}
