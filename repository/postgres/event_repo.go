package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nikki1405/CSP/domain"
	"github.com/nikki1405/CSP/repository"
)

type eventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository returns a Postgres-backed implementation of EventRepository.
func NewEventRepository(pool *pgxpool.Pool) repository.EventRepository {
	return &eventRepository{pool: pool}
}

const eventColumns = `
	e.id, e.title, e.description, e.starts_at, e.location, e.organizer,
	e.event_type, e.max_participants,
	(SELECT COUNT(*) FROM event_registrations r WHERE r.event_id = e.id),
	e.created_at`

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT` + eventColumns + ` FROM events e WHERE e.id = $1`
	return scanEvent(r.pool.QueryRow(ctx, query, id))
}

func (r *eventRepository) List(ctx context.Context) ([]domain.Event, error) {
	query := `SELECT` + eventColumns + ` FROM events e ORDER BY e.starts_at ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	if event == nil {
		return nil, domain.ErrInvalidPayload
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO events (id, title, description, starts_at, location, organizer, event_type, max_participants)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING created_at
	`
	if err := r.pool.QueryRow(ctx, query,
		event.ID,
		event.Title,
		event.Description,
		event.StartsAt,
		event.Location,
		event.Organizer,
		string(event.Type),
		event.MaxParticipants,
	).Scan(&event.CreatedAt); err != nil {
		return nil, err
	}
	return event, nil
}

// Register locks the event row so the capacity check and the insert are
// atomic against concurrent registrations.
func (r *eventRepository) Register(ctx context.Context, eventID, userID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var maxParticipants, registered int
	err = tx.QueryRow(ctx,
		`SELECT max_participants FROM events WHERE id = $1 FOR UPDATE`, eventID,
	).Scan(&maxParticipants)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrEventNotFound
	}
	if err != nil {
		return err
	}

	if err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM event_registrations WHERE event_id = $1`, eventID,
	).Scan(&registered); err != nil {
		return err
	}
	if maxParticipants > 0 && registered >= maxParticipants {
		return domain.NewError(domain.ErrCodeConflict, "event is full")
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO event_registrations (event_id, user_id) VALUES ($1, $2)`,
		eventID, userID,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.NewError(domain.ErrCodeConflict, "already registered for this event")
		}
		return err
	}

	return tx.Commit(ctx)
}

func scanEvent(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Event, error) {
	var e domain.Event
	if err := row.Scan(
		&e.ID,
		&e.Title,
		&e.Description,
		&e.StartsAt,
		&e.Location,
		&e.Organizer,
		&e.Type,
		&e.MaxParticipants,
		&e.Registered,
		&e.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	return &e, nil
}
