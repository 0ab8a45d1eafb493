package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyform-labs/levelscout/internal/adapters/driven/sessionmem"
	"github.com/skyform-labs/levelscout/internal/core/domain"
)

func makeMatches(n int) []domain.Match {
	matches := make([]domain.Match, n)
	for i := range matches {
		matches[i] = domain.Match{LevelID: string(rune('a' + i))}
	}
	return matches
}

func newManager(t *testing.T) *SessionManager {
	t.Helper()
	return NewSessionManager(sessionmem.NewStore(time.Minute, time.Minute), 5, time.Minute)
}

func TestCreateStartsAtPageZero(t *testing.T) {
	m := newManager(t)

	session, err := m.Create(context.Background(), "msg-1", "alice", makeMatches(12))
	require.NoError(t, err)

	assert.Equal(t, "msg-1", session.ID)
	assert.Equal(t, "alice", session.OwnerID)
	assert.Equal(t, 0, session.CurrentPage)
	assert.Equal(t, 3, session.TotalPages())
}

func TestCreateGeneratesIDWhenEmpty(t *testing.T) {
	m := newManager(t)

	session, err := m.Create(context.Background(), "", "alice", makeMatches(1))
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
}

func TestNavigateClampsAtBounds(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	_, err := m.Create(ctx, "msg-1", "alice", makeMatches(12))
	require.NoError(t, err)

	// Prev from page 0 stays at 0.
	session, err := m.Navigate(ctx, "msg-1", "alice", domain.NavPrev)
	require.NoError(t, err)
	assert.Equal(t, 0, session.CurrentPage)

	// Walk forward past the last page; stays at the last page.
	for i := 0; i < 10; i++ {
		session, err = m.Navigate(ctx, "msg-1", "alice", domain.NavNext)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, session.CurrentPage)
}

func TestNavigateNonOwnerRejected(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	_, err := m.Create(ctx, "msg-1", "alice", makeMatches(12))
	require.NoError(t, err)

	_, err = m.Navigate(ctx, "msg-1", "mallory", domain.NavNext)
	assert.ErrorIs(t, err, domain.ErrSessionAccessDenied)

	// The rejection must not have moved the cursor.
	session, err := m.Navigate(ctx, "msg-1", "alice", domain.NavPrev)
	require.NoError(t, err)
	assert.Equal(t, 0, session.CurrentPage)
}

func TestNavigateUnknownSessionIsExpired(t *testing.T) {
	m := newManager(t)

	_, err := m.Navigate(context.Background(), "never-stored", "alice", domain.NavNext)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}

func TestNavigateAfterLifetimeIsExpired(t *testing.T) {
	store := sessionmem.NewStore(time.Minute, time.Minute)
	m := NewSessionManager(store, 5, time.Minute)
	ctx := context.Background()

	_, err := m.Create(ctx, "msg-1", "alice", makeMatches(12))
	require.NoError(t, err)

	// The store still holds the entry, but the wall clock moved past the
	// session lifetime.
	m.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	_, err = m.Navigate(ctx, "msg-1", "alice", domain.NavNext)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)

	// Expiry is terminal: the session is gone afterwards.
	m.now = time.Now
	_, err = m.Navigate(ctx, "msg-1", "alice", domain.NavNext)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}

func TestCloseEndsSession(t *testing.T) {
	m := newManager(t)
	ctx := context.Background()

	_, err := m.Create(ctx, "msg-1", "alice", makeMatches(3))
	require.NoError(t, err)
	require.NoError(t, m.Close(ctx, "msg-1"))

	_, err = m.Navigate(ctx, "msg-1", "alice", domain.NavNext)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}
