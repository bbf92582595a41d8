package auth

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/nikki1405/CSP/domain"
)

type fakeUserRepo struct {
	users map[string]*domain.User
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) Upsert(_ context.Context, user *domain.User) error {
	r.users[user.ID] = user
	return nil
}

type fakeSessionRepo struct {
	sessions map[string]*domain.Session
}

func (r *fakeSessionRepo) Get(_ context.Context, id string) (*domain.Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSessionRepo) Save(_ context.Context, session *domain.Session) error {
	cp := *session
	r.sessions[session.ID] = &cp
	return nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, id string) error {
	delete(r.sessions, id)
	return nil
}

func (r *fakeSessionRepo) Extend(_ context.Context, id string, ttlSeconds int) error {
	s, ok := r.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	s.ExpiresAt = time.Now().Add(time.Duration(ttlSeconds) * time.Second)
	return nil
}

func newUseCase() (*UseCase, *fakeSessionRepo) {
	sessions := &fakeSessionRepo{sessions: map[string]*domain.Session{}}
	users := &fakeUserRepo{users: map[string]*domain.User{
		"u-1": {ID: "u-1", Name: "Asha", Role: domain.RoleNGO, Status: "active"},
	}}
	return New(users, sessions, zap.NewNop()), sessions
}

func TestCreateSessionFreezesRole(t *testing.T) {
	uc, _ := newUseCase()

	session, err := uc.CreateSession(context.Background(), "u-1", time.Hour)
	if err != nil {
		t.Fatalf("create session failed: %v", err)
	}
	if session.Role != domain.RoleNGO {
		t.Errorf("role = %s, want ngo", session.Role)
	}
	if session.ID == "" {
		t.Error("session id not assigned")
	}
}

func TestCreateSessionUnknownUser(t *testing.T) {
	uc, _ := newUseCase()

	if _, err := uc.CreateSession(context.Background(), "ghost", time.Hour); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Errorf("got %v", err)
	}
}

func TestGetSessionExpiredIsRemoved(t *testing.T) {
	uc, sessions := newUseCase()
	sessions.sessions["stale"] = &domain.Session{
		ID:        "stale",
		UserID:    "u-1",
		ExpiresAt: time.Now().Add(-time.Minute),
	}

	if _, err := uc.GetSession(context.Background(), "stale"); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("expired session served: %v", err)
	}
	if _, ok := sessions.sessions["stale"]; ok {
		t.Error("expired session not deleted")
	}
}

func TestRefreshSession(t *testing.T) {
	uc, _ := newUseCase()

	session, err := uc.CreateSession(context.Background(), "u-1", time.Minute)
	if err != nil {
		t.Fatalf("create session failed: %v", err)
	}

	refreshed, err := uc.RefreshSession(context.Background(), session.ID, time.Hour)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if !refreshed.ExpiresAt.After(session.ExpiresAt) {
		t.Error("expiry not extended")
	}
}

func TestRevokeSession(t *testing.T) {
	uc, sessions := newUseCase()

	session, _ := uc.CreateSession(context.Background(), "u-1", time.Hour)
	if err := uc.RevokeSession(context.Background(), session.ID); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if _, ok := sessions.sessions[session.ID]; ok {
		t.Error("session still present after revoke")
	}
}
