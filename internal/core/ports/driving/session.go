package driving

import (
	"context"

	"github.com/skyform-labs/levelscout/internal/core/domain"
)

// SessionService manages pagination sessions over fixed match lists.
type SessionService interface {
	// Create stores a new Active session at page 0. id is typically the
	// emitted chat message id; when empty an id is generated.
	Create(ctx context.Context, id, ownerID string, matches []domain.Match) (*domain.Session, error)

	// Navigate applies a prev/next action on behalf of actorID and
	// returns the session in its new state. It fails with
	// domain.ErrSessionExpired when the session is gone and
	// domain.ErrSessionAccessDenied when actorID is not the owner;
	// neither failure mutates the session.
	Navigate(ctx context.Context, sessionID, actorID string, action domain.NavAction) (*domain.Session, error)

	// Close ends a session early, removing it from the store.
	Close(ctx context.Context, sessionID string) error
}
