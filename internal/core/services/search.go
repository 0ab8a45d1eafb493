package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/skyform-labs/levelscout/internal/core/domain"
	"github.com/skyform-labs/levelscout/internal/core/ports/driven"
	"github.com/skyform-labs/levelscout/internal/core/ports/driving"
	"github.com/skyform-labs/levelscout/internal/logger"
)

// Ensure SearchPipeline implements the interface.
var _ driving.LevelSearchService = (*SearchPipeline)(nil)

// DefaultFetchConcurrency bounds in-flight detail fetches. Unbounded
// fan-out would trip upstream rate limiting.
const DefaultFetchConcurrency = 6

// SearchPipeline orchestrates one search command: remote query, bounded
// candidate fetch, per-candidate detail fetch, local predicate.
type SearchPipeline struct {
	index       driven.LevelIndex
	maxCheck    int
	concurrency int
}

// NewSearchPipeline creates a pipeline over the given level index.
// Non-positive maxCheck or concurrency select the defaults.
func NewSearchPipeline(index driven.LevelIndex, maxCheck, concurrency int) *SearchPipeline {
	if maxCheck <= 0 {
		maxCheck = domain.MaxCheckDefault
	}
	if concurrency <= 0 {
		concurrency = DefaultFetchConcurrency
	}
	return &SearchPipeline{
		index:       index,
		maxCheck:    maxCheck,
		concurrency: concurrency,
	}
}

// detailOutcome is the typed result of one candidate's detail fetch.
// The fold into "include" or "skip" happens in one place, in order.
type detailOutcome struct {
	detail domain.DetailRecord
	err    error
}

// Run executes the search-and-filter pipeline for one command.
//
// Remote-unavailable folds to an empty result set here: the caller sees
// "no results obtainable", never a transport error. Per-candidate
// failures skip that candidate only. Relative remote ordering is
// preserved among accepted matches.
func (p *SearchPipeline) Run(ctx context.Context, filters domain.FilterSpec) ([]domain.Match, error) {
	logger.Section("Search Pipeline")

	if err := filters.Validate(); err != nil {
		return nil, fmt.Errorf("validate filters: %w", err)
	}

	limit := filters.ClampLimit(p.maxCheck)
	query := buildRemoteQuery(filters, limit)
	logger.Debug("Remote query: text=%q limit=%d length=%d difficulty=%d demon=%t",
		query.Query, query.Limit, query.LengthCode, query.DifficultyCode, query.DemonTier)

	candidates, err := p.index.Search(ctx, query)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, domain.ErrRemoteUnavailable) {
			logger.Warn("Remote index unavailable: %v", err)
			return []domain.Match{}, nil
		}
		return nil, fmt.Errorf("remote search: %w", err)
	}
	logger.Info("Candidates: %d", len(candidates))

	outcomes := p.fetchDetails(ctx, candidates)
	if ctx.Err() != nil {
		// Cancelled mid-batch: abandon, no partial result.
		return nil, ctx.Err()
	}

	matches := make([]domain.Match, 0, len(candidates))
	skipped := 0
	for i, out := range outcomes {
		if out.err != nil {
			skipped++
			logger.Warn("Skipping level %s: %v", candidates[i].LevelID, out.err)
			continue
		}
		if Accepts(filters, out.detail) {
			matches = append(matches, domain.MatchFromDetail(out.detail))
		}
	}

	logger.Info("Matches: %d (skipped %d of %d candidates)", len(matches), skipped, len(candidates))
	return matches, nil
}

// fetchDetails fetches every candidate's detail with bounded concurrency,
// writing outcomes into candidate order so the fold preserves the
// remote's ranking.
func (p *SearchPipeline) fetchDetails(ctx context.Context, candidates []domain.CandidateRef) []detailOutcome {
	outcomes := make([]detailOutcome, len(candidates))

	sem := make(chan struct{}, p.concurrency)
	var wg sync.WaitGroup

	for i, candidate := range candidates {
		select {
		case <-ctx.Done():
			wg.Wait()
			return outcomes
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(i int, levelID string) {
			defer wg.Done()
			defer func() { <-sem }()

			detail, err := p.index.GetDetail(ctx, levelID)
			outcomes[i] = detailOutcome{detail: detail, err: err}
		}(i, candidate.LevelID)
	}

	wg.Wait()
	return outcomes
}

// buildRemoteQuery maps the filters the remote search can express into
// query parameters. Local-only filters stay out of the remote query.
func buildRemoteQuery(f domain.FilterSpec, limit int) driven.SearchQuery {
	q := driven.SearchQuery{
		Query:          f.Query,
		Limit:          limit,
		LengthCode:     domain.Unset,
		DifficultyCode: domain.Unset,
	}

	if code, ok := f.Length.RemoteCode(); ok {
		q.LengthCode = code
	}

	switch f.Difficulty {
	case "", domain.DifficultyAuto:
	case domain.DifficultyDemon:
		q.DemonTier = true
	default:
		if code, ok := f.Difficulty.Code(); ok {
			q.DifficultyCode = code
		}
	}

	return q
}
