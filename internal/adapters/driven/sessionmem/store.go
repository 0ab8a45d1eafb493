// Package sessionmem implements the driven.SessionStore port as an
// in-memory TTL cache. Sessions are scoped to one process and one
// invocation; nothing persists across restarts. Expiry is handled by the
// cache itself, so abandoned sessions release memory without an explicit
// cleanup signal.
package sessionmem

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/skyform-labs/levelscout/internal/core/domain"
	"github.com/skyform-labs/levelscout/internal/core/ports/driven"
	"github.com/skyform-labs/levelscout/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.SessionStore = (*Store)(nil)

// DefaultCleanupInterval is how often expired entries are swept.
const DefaultCleanupInterval = time.Minute

// Store is a go-cache backed session store.
type Store struct {
	cache *gocache.Cache
}

// NewStore creates a session store. defaultTTL applies when Put is called
// with a non-positive ttl; a non-positive cleanupInterval selects the
// default sweep.
func NewStore(defaultTTL, cleanupInterval time.Duration) *Store {
	if defaultTTL <= 0 {
		defaultTTL = domain.DefaultSessionTTL
	}
	if cleanupInterval <= 0 {
		cleanupInterval = DefaultCleanupInterval
	}
	return &Store{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Put stores a session under its ID for at most ttl.
func (s *Store) Put(_ context.Context, session *domain.Session, ttl time.Duration) error {
	s.cache.Set(session.ID, session, ttl)
	return nil
}

// Get returns the stored session, or domain.ErrNotFound once the entry
// expired or was never stored.
func (s *Store) Get(_ context.Context, id string) (*domain.Session, error) {
	value, found := s.cache.Get(id)
	if !found {
		return nil, domain.ErrNotFound
	}

	session, ok := value.(*domain.Session)
	if !ok {
		logger.Error("session store holds unexpected type for key %s", id)
		return nil, domain.ErrNotFound
	}
	return session, nil
}

// Delete removes a session. Absent keys are not an error.
func (s *Store) Delete(_ context.Context, id string) error {
	s.cache.Delete(id)
	return nil
}
