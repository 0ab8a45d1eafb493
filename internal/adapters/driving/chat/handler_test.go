package chat

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyform-labs/levelscout/internal/adapters/driven/sessionmem"
	"github.com/skyform-labs/levelscout/internal/core/domain"
	"github.com/skyform-labs/levelscout/internal/core/ports/driven"
	"github.com/skyform-labs/levelscout/internal/core/services"
)

// --- Mock implementations ---

// mockSearch implements driving.LevelSearchService for testing.
type mockSearch struct {
	matches []domain.Match
	err     error
}

func (m *mockSearch) Run(ctx context.Context, _ domain.FilterSpec) ([]domain.Match, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m.matches, m.err
}

// mockMessenger implements driven.Messenger for testing.
type mockMessenger struct {
	mu          sync.Mutex
	posts       []driven.RenderedPage
	updates     []driven.RenderedPage
	notices     []string
	panicOnPost bool
	messageID   string
}

func (m *mockMessenger) Post(_ context.Context, _ string, page driven.RenderedPage) (string, error) {
	if m.panicOnPost {
		panic("renderer exploded")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.posts = append(m.posts, page)
	if m.messageID == "" {
		m.messageID = "msg-1"
	}
	return m.messageID, nil
}

func (m *mockMessenger) Update(_ context.Context, _, _ string, page driven.RenderedPage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates = append(m.updates, page)
	return nil
}

func (m *mockMessenger) Notice(_ context.Context, _, _ string, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notices = append(m.notices, text)
	return nil
}

func (m *mockMessenger) lastUpdate(t *testing.T) driven.RenderedPage {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.updates)
	return m.updates[len(m.updates)-1]
}

func matchList(n int) []domain.Match {
	matches := make([]domain.Match, n)
	for i := range matches {
		matches[i] = domain.Match{
			LevelID:       strconv.Itoa(i + 1),
			DisplayName:   "level " + strconv.Itoa(i+1),
			ObjectCount:   domain.Unset,
			LengthSeconds: domain.Unset,
		}
	}
	return matches
}

func newHandler(search *mockSearch, messenger *mockMessenger, ttl time.Duration) *Handler {
	sessions := services.NewSessionManager(sessionmem.NewStore(time.Minute, time.Minute), 5, ttl)
	return NewHandler(search, sessions, messenger, NewRenderer("https://view.example"), 5, ttl)
}

func TestHandleSearchPostsFirstPage(t *testing.T) {
	messenger := &mockMessenger{}
	h := newHandler(&mockSearch{matches: matchList(12)}, messenger, time.Minute)

	err := h.HandleSearch(context.Background(), Invocation{
		ChannelID: "chan", UserID: "alice",
		Options: map[string]string{OptQuery: "x"},
	})
	require.NoError(t, err)

	require.Len(t, messenger.posts, 1)
	page := messenger.posts[0]
	assert.Contains(t, page.Body, "level 1")
	assert.Contains(t, page.Body, "Page 1/3")
	assert.False(t, page.PrevEnabled)
	assert.True(t, page.NextEnabled)

	// The session is keyed by the emitted message, so navigation works.
	err = h.HandleNav(context.Background(), NavEvent{
		ChannelID: "chan", MessageID: "msg-1", ActorID: "alice", Action: domain.NavNext,
	})
	require.NoError(t, err)
	assert.Contains(t, messenger.lastUpdate(t).Body, "Page 2/3")
}

func TestHandleSearchEmptyResults(t *testing.T) {
	messenger := &mockMessenger{}
	h := newHandler(&mockSearch{}, messenger, time.Minute)

	err := h.HandleSearch(context.Background(), Invocation{ChannelID: "chan", UserID: "alice"})
	require.NoError(t, err)

	require.Len(t, messenger.posts, 1)
	page := messenger.posts[0]
	assert.Contains(t, page.Body, "No levels matched")
	assert.False(t, page.PrevEnabled)
	assert.False(t, page.NextEnabled, "empty result set has navigation disabled")
}

func TestHandleSearchInvalidOption(t *testing.T) {
	messenger := &mockMessenger{}
	h := newHandler(&mockSearch{matches: matchList(1)}, messenger, time.Minute)

	err := h.HandleSearch(context.Background(), Invocation{
		ChannelID: "chan", UserID: "alice",
		Options: map[string]string{OptMinObjects: "banana"},
	})
	require.NoError(t, err)

	assert.Empty(t, messenger.posts)
	require.Len(t, messenger.notices, 1)
	assert.Contains(t, messenger.notices[0], noticeInvalidInput)
}

func TestHandleSearchPipelineFailure(t *testing.T) {
	messenger := &mockMessenger{}
	h := newHandler(&mockSearch{err: errors.New("boom")}, messenger, time.Minute)

	err := h.HandleSearch(context.Background(), Invocation{ChannelID: "chan", UserID: "alice"})
	require.NoError(t, err)

	assert.Empty(t, messenger.posts)
	assert.Equal(t, []string{noticeFailure}, messenger.notices)
}

func TestHandleSearchCancelledSendsNothing(t *testing.T) {
	messenger := &mockMessenger{}
	h := newHandler(&mockSearch{matches: matchList(3)}, messenger, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := h.HandleSearch(ctx, Invocation{ChannelID: "chan", UserID: "alice"})
	require.NoError(t, err)

	assert.Empty(t, messenger.posts, "no partial replies after cancellation")
	assert.Empty(t, messenger.notices)
}

func TestHandleSearchPanicBecomesFailureNotice(t *testing.T) {
	messenger := &mockMessenger{panicOnPost: true}
	h := newHandler(&mockSearch{matches: matchList(3)}, messenger, time.Minute)

	err := h.HandleSearch(context.Background(), Invocation{ChannelID: "chan", UserID: "alice"})
	require.NoError(t, err, "the requester must never be left without a reply")
	assert.Equal(t, []string{noticeFailure}, messenger.notices)
}

func TestHandleNavNonOwner(t *testing.T) {
	messenger := &mockMessenger{}
	h := newHandler(&mockSearch{matches: matchList(12)}, messenger, time.Minute)

	require.NoError(t, h.HandleSearch(context.Background(), Invocation{ChannelID: "chan", UserID: "alice"}))

	err := h.HandleNav(context.Background(), NavEvent{
		ChannelID: "chan", MessageID: "msg-1", ActorID: "mallory", Action: domain.NavNext,
	})
	require.NoError(t, err)

	assert.Empty(t, messenger.updates, "rejected navigation never rerenders")
	assert.Equal(t, []string{noticeNotOwner}, messenger.notices)

	// And the owner still sees page 1.
	require.NoError(t, h.HandleNav(context.Background(), NavEvent{
		ChannelID: "chan", MessageID: "msg-1", ActorID: "alice", Action: domain.NavNext,
	}))
	assert.Contains(t, messenger.lastUpdate(t).Body, "Page 2/3")
}

func TestHandleNavExpired(t *testing.T) {
	messenger := &mockMessenger{}
	h := newHandler(&mockSearch{}, messenger, time.Minute)

	err := h.HandleNav(context.Background(), NavEvent{
		ChannelID: "chan", MessageID: "gone", ActorID: "alice", Action: domain.NavNext,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{noticeExpired}, messenger.notices)
}

func TestExpiryStripsControls(t *testing.T) {
	messenger := &mockMessenger{}
	h := newHandler(&mockSearch{matches: matchList(12)}, messenger, 30*time.Millisecond)

	require.NoError(t, h.HandleSearch(context.Background(), Invocation{ChannelID: "chan", UserID: "alice"}))

	assert.Eventually(t, func() bool {
		messenger.mu.Lock()
		defer messenger.mu.Unlock()
		return len(messenger.updates) > 0
	}, time.Second, 10*time.Millisecond)

	page := messenger.lastUpdate(t)
	assert.False(t, page.PrevEnabled)
	assert.False(t, page.NextEnabled, "controls are removed once the lifetime elapses")
}
