// Package gdapi implements the driven.LevelIndex port against the HTTP
// API of a Geometry-Dash-style private level server.
//
// The API's response shapes are not consistent across server versions:
// the search body may be a bare array or nest the level list under a
// varying key, and detail payloads rename fields freely. The client
// decodes into untyped JSON and leaves field resolution to the extraction
// table in the services package.
package gdapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/skyform-labs/levelscout/internal/core/domain"
	"github.com/skyform-labs/levelscout/internal/core/ports/driven"
	"github.com/skyform-labs/levelscout/internal/core/services"
	"github.com/skyform-labs/levelscout/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.LevelIndex = (*Client)(nil)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 15 * time.Second

// listKeys are the known field names a search response nests its level
// list under, probed in order before falling back to the first array
// found anywhere in the object.
var listKeys = []string{"results", "data", "levels", "items", "rows"}

// Client is the HTTP client for the remote level index.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *RateLimiter
}

// NewClient creates a level index client for the given base URL.
// Non-positive timeout or rps select the defaults.
func NewClient(baseURL string, timeout time.Duration, rps float64) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		limiter: NewRateLimiter(rps),
	}
}

// Search issues one bounded search request. It fails with
// domain.ErrRemoteUnavailable on transport errors or non-2xx responses.
func (c *Client) Search(ctx context.Context, q driven.SearchQuery) ([]domain.CandidateRef, error) {
	params := url.Values{}
	if q.Query != "" {
		params.Set("query", q.Query)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.LengthCode != domain.Unset {
		params.Set("length", strconv.Itoa(q.LengthCode))
	}
	if q.DifficultyCode != domain.Unset {
		params.Set("difficulty", strconv.Itoa(q.DifficultyCode))
	}
	if q.DemonTier {
		params.Set("demon", "1")
	}

	body, err := c.get(ctx, c.baseURL+"/api/levels/search?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("%w: decode search response: %v", domain.ErrRemoteUnavailable, err)
	}

	items := extractLevelList(decoded)
	logger.Debug("Search returned %d raw items", len(items))

	candidates := make([]domain.CandidateRef, 0, len(items))
	for _, item := range items {
		if ref, ok := candidateFromItem(item); ok {
			candidates = append(candidates, ref)
		}
	}
	return candidates, nil
}

// GetDetail fetches one level's full detail. On first-attempt failure it
// retries once against the alternate brief endpoint, then fails with
// *domain.DetailFetchError. Cost control: never more than one retry.
func (c *Client) GetDetail(ctx context.Context, levelID string) (domain.DetailRecord, error) {
	id := url.PathEscape(levelID)

	raw, err := c.getDetailPayload(ctx, c.baseURL+"/api/levels/"+id)
	if err != nil {
		if ctx.Err() != nil {
			return domain.DetailRecord{}, ctx.Err()
		}
		logger.Debug("Detail fetch for %s failed (%v), trying brief endpoint", levelID, err)
		raw, err = c.getDetailPayload(ctx, c.baseURL+"/api/levels/"+id+"/brief")
	}
	if err != nil {
		return domain.DetailRecord{}, &domain.DetailFetchError{LevelID: levelID, Err: err}
	}

	return services.NormalizeDetail(levelID, raw), nil
}

// getDetailPayload fetches and decodes one detail endpoint variant.
func (c *Client) getDetailPayload(ctx context.Context, endpoint string) (map[string]any, error) {
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode detail response: %w", err)
	}
	return raw, nil
}

// get performs one rate-limited GET and returns the body of a 2xx
// response.
func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	c.limiter.Observe(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		if resp.StatusCode == http.StatusTooManyRequests {
			return nil, fmt.Errorf("%w: status %d", domain.ErrRateLimited, resp.StatusCode)
		}
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// extractLevelList locates the level list in a decoded search body.
// Probe order is fixed: top-level array, known field names, first array
// value found anywhere in the object, empty.
func extractLevelList(decoded any) []any {
	if items, ok := decoded.([]any); ok {
		return items
	}

	obj, ok := decoded.(map[string]any)
	if !ok {
		return nil
	}

	for _, key := range listKeys {
		if items, ok := obj[key].([]any); ok {
			return items
		}
	}

	return findFirstArray(obj)
}

// findFirstArray walks an object depth-first in sorted key order and
// returns the first array value it encounters. Sorted order keeps the
// probe deterministic across decodes.
func findFirstArray(obj map[string]any) []any {
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if items, ok := obj[key].([]any); ok {
			return items
		}
	}
	for _, key := range keys {
		if nested, ok := obj[key].(map[string]any); ok {
			if items := findFirstArray(nested); items != nil {
				return items
			}
		}
	}
	return nil
}

// candidateFromItem maps one raw search item to a CandidateRef. Items
// may be objects with hint fields, or bare id values. Items with no
// resolvable id are dropped.
func candidateFromItem(item any) (domain.CandidateRef, bool) {
	switch v := item.(type) {
	case map[string]any:
		id, ok := services.ExtractString(v, services.FieldLevelID)
		if !ok {
			return domain.CandidateRef{}, false
		}
		ref := domain.CandidateRef{LevelID: id}
		if name, ok := services.ExtractString(v, services.FieldName); ok {
			ref.Name = name
		}
		if author, ok := services.ExtractString(v, services.FieldAuthor); ok {
			ref.Author = author
		}
		return ref, true
	case string:
		if v == "" {
			return domain.CandidateRef{}, false
		}
		return domain.CandidateRef{LevelID: v}, true
	case float64:
		return domain.CandidateRef{LevelID: strconv.FormatFloat(v, 'f', -1, 64)}, true
	}
	return domain.CandidateRef{}, false
}
