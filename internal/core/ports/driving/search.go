package driving

import (
	"context"

	"github.com/skyform-labs/levelscout/internal/core/domain"
)

// LevelSearchService runs the search-and-filter pipeline.
type LevelSearchService interface {
	// Run translates the filters into a remote query, fetches a bounded
	// candidate set, evaluates each candidate's detail against the local
	// predicate and returns the accepted matches in the remote's order.
	//
	// A possibly-empty slice is a normal outcome, including when the
	// remote index is unavailable. Run only returns an error when the
	// context is cancelled or the input is invalid.
	Run(ctx context.Context, filters domain.FilterSpec) ([]domain.Match, error)
}
