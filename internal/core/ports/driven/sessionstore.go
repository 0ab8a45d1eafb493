package driven

import (
	"context"
	"time"

	"github.com/skyform-labs/levelscout/internal/core/domain"
)

// SessionStore holds live pagination sessions. Implementations evict
// entries after their TTL so abandoned sessions release memory without an
// explicit cleanup signal.
type SessionStore interface {
	// Put stores a session under its ID for at most ttl.
	Put(ctx context.Context, session *domain.Session, ttl time.Duration) error

	// Get returns the stored session, or domain.ErrNotFound when it was
	// never stored or has been evicted.
	Get(ctx context.Context, id string) (*domain.Session, error)

	// Delete removes a session. Deleting an absent session is not an
	// error.
	Delete(ctx context.Context, id string) error
}
