package domain

import "time"

// DefaultPageSize is the number of matches shown per page.
const DefaultPageSize = 5

// DefaultSessionTTL is the lifetime of a pagination session. After it
// elapses the session is Expired and navigation affordances are removed.
const DefaultSessionTTL = 120 * time.Second

// NavAction is a navigation request against a pagination session.
type NavAction string

// Navigation actions.
const (
	NavPrev NavAction = "prev"
	NavNext NavAction = "next"
)

// Session is per-invocation pagination state over a fixed match list.
// The match list is immutable once the session is created; only
// CurrentPage mutates, and every transition clamps it into range.
type Session struct {
	// ID identifies the session. It is the emitted chat message id when
	// one exists, otherwise a generated identifier.
	ID string

	// OwnerID is the requester. Only the owner may navigate.
	OwnerID string

	// Matches is the ordered, immutable result list.
	Matches []Match

	// PageSize is the fixed page window size.
	PageSize int

	// CurrentPage is the zero-based page cursor, always in
	// [0, TotalPages()-1].
	CurrentPage int

	// ExpiresAt is the end of the session lifetime.
	ExpiresAt time.Time
}

// NewSession creates an Active session at page 0.
func NewSession(id, ownerID string, matches []Match, pageSize int, ttl time.Duration) *Session {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Session{
		ID:        id,
		OwnerID:   ownerID,
		Matches:   matches,
		PageSize:  pageSize,
		ExpiresAt: time.Now().Add(ttl),
	}
}

// TotalPages is max(1, ceil(len(Matches)/PageSize)). An empty result set
// still renders one "no results" page.
func (s *Session) TotalPages() int {
	if len(s.Matches) == 0 {
		return 1
	}
	return (len(s.Matches) + s.PageSize - 1) / s.PageSize
}

// Prev moves to the previous page, clamped at 0.
func (s *Session) Prev() {
	s.CurrentPage--
	s.clamp()
}

// Next moves to the next page, clamped at the last page.
func (s *Session) Next() {
	s.CurrentPage++
	s.clamp()
}

// Apply dispatches a navigation action. Unknown actions are no-ops.
func (s *Session) Apply(action NavAction) {
	switch action {
	case NavPrev:
		s.Prev()
	case NavNext:
		s.Next()
	}
}

// Page returns the current page window of matches. Empty for an empty
// result set.
func (s *Session) Page() []Match {
	start := s.CurrentPage * s.PageSize
	if start >= len(s.Matches) {
		return nil
	}
	end := start + s.PageSize
	if end > len(s.Matches) {
		end = len(s.Matches)
	}
	return s.Matches[start:end]
}

// HasPrev reports whether a previous page exists.
func (s *Session) HasPrev() bool { return s.CurrentPage > 0 }

// HasNext reports whether a further page exists.
func (s *Session) HasNext() bool { return s.CurrentPage < s.TotalPages()-1 }

// Expired reports whether the session lifetime elapsed at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// clamp forces CurrentPage into [0, TotalPages()-1].
func (s *Session) clamp() {
	if s.CurrentPage < 0 {
		s.CurrentPage = 0
	}
	if max := s.TotalPages() - 1; s.CurrentPage > max {
		s.CurrentPage = max
	}
}
