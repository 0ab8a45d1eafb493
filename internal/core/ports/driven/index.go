package driven

import (
	"context"

	"github.com/skyform-labs/levelscout/internal/core/domain"
)

// SearchQuery carries the parameters the remote search endpoint can
// express. Local-only filters (object counts, required ids, exact
// duration) never appear here; they are applied by the predicate after
// detail fetch.
type SearchQuery struct {
	// Query is the free-text search term.
	Query string

	// Limit bounds the number of candidates returned. The caller clamps
	// it before the call.
	Limit int

	// LengthCode is the remote length bucket code, domain.Unset when the
	// command did not constrain length.
	LengthCode int

	// DifficultyCode is the remote difficulty code, domain.Unset when the
	// filter is auto or demon-tier.
	DifficultyCode int

	// DemonTier requests demon-tier filtering remote-side where the index
	// supports it. The predicate re-checks locally either way.
	DemonTier bool
}

// LevelIndex is the remote game-level index.
type LevelIndex interface {
	// Search issues one bounded search request and returns candidate
	// references in the remote's order. It fails with
	// domain.ErrRemoteUnavailable when no data could be obtained.
	Search(ctx context.Context, q SearchQuery) ([]domain.CandidateRef, error)

	// GetDetail fetches one level's full detail. On first-attempt failure
	// it retries once against the alternate brief endpoint, then fails
	// with *domain.DetailFetchError. Never more than one retry per id.
	GetDetail(ctx context.Context, levelID string) (domain.DetailRecord, error)
}
