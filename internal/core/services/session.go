package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/skyform-labs/levelscout/internal/core/domain"
	"github.com/skyform-labs/levelscout/internal/core/ports/driven"
	"github.com/skyform-labs/levelscout/internal/core/ports/driving"
	"github.com/skyform-labs/levelscout/internal/logger"
)

// Ensure SessionManager implements the interface.
var _ driving.SessionService = (*SessionManager)(nil)

// SessionManager creates pagination sessions and mediates navigation,
// enforcing ownership and lifetime.
type SessionManager struct {
	store    driven.SessionStore
	pageSize int
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionManager creates a session manager. Non-positive pageSize or
// ttl select the defaults.
func NewSessionManager(store driven.SessionStore, pageSize int, ttl time.Duration) *SessionManager {
	if pageSize <= 0 {
		pageSize = domain.DefaultPageSize
	}
	if ttl <= 0 {
		ttl = domain.DefaultSessionTTL
	}
	return &SessionManager{
		store:    store,
		pageSize: pageSize,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create stores a new Active session at page 0. An empty id gets a
// generated UUID; chat invocations pass the emitted message id instead.
func (m *SessionManager) Create(ctx context.Context, id, ownerID string, matches []domain.Match) (*domain.Session, error) {
	if id == "" {
		id = uuid.NewString()
	}

	session := domain.NewSession(id, ownerID, matches, m.pageSize, m.ttl)
	if err := m.store.Put(ctx, session, m.ttl); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	logger.Debug("Session %s created for %s: %d matches, %d pages",
		session.ID, ownerID, len(matches), session.TotalPages())
	return session, nil
}

// Navigate applies a prev/next action on behalf of actorID.
//
// A missing session means its TTL elapsed and the store evicted it, so
// the caller sees domain.ErrSessionExpired either way. Non-owner attempts
// fail with domain.ErrSessionAccessDenied before any state changes.
func (m *SessionManager) Navigate(ctx context.Context, sessionID, actorID string, action domain.NavAction) (*domain.Session, error) {
	session, err := m.store.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrSessionExpired
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	if session.Expired(m.now()) {
		_ = m.store.Delete(ctx, sessionID)
		return nil, domain.ErrSessionExpired
	}
	if session.OwnerID != actorID {
		return nil, domain.ErrSessionAccessDenied
	}

	session.Apply(action)

	// The lifetime is hard, fixed at creation: store with the remaining
	// window, not a fresh TTL.
	remaining := session.ExpiresAt.Sub(m.now())
	if remaining <= 0 {
		_ = m.store.Delete(ctx, sessionID)
		return nil, domain.ErrSessionExpired
	}
	if err := m.store.Put(ctx, session, remaining); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	logger.Debug("Session %s: %s -> page %d/%d", sessionID, action,
		session.CurrentPage+1, session.TotalPages())
	return session, nil
}

// Close ends a session early.
func (m *SessionManager) Close(ctx context.Context, sessionID string) error {
	return m.store.Delete(ctx, sessionID)
}
