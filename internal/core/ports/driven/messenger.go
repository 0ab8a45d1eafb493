package driven

import "context"

// RenderedPage is one displayable result page plus the navigation
// affordance state the platform should attach to it.
type RenderedPage struct {
	// Body is the rendered card text.
	Body string

	// SessionID resolves navigation events back to the owning session.
	SessionID string

	// PrevEnabled and NextEnabled drive the navigation controls.
	// Both false means controls are removed entirely.
	PrevEnabled bool
	NextEnabled bool
}

// Messenger is the chat platform surface the core replies through.
// The platform gateway itself (connection, command registration) lives
// outside this repo; only these three operations are needed.
type Messenger interface {
	// Post sends a new message carrying a result page and returns the
	// platform message id, which keys the pagination session.
	Post(ctx context.Context, channelID string, page RenderedPage) (messageID string, err error)

	// Update replaces the page on an existing message, typically after a
	// navigation event or to strip controls on expiry.
	Update(ctx context.Context, channelID, messageID string, page RenderedPage) error

	// Notice sends a short, non-committing notice to a user (access
	// denied, session expired, generic failure).
	Notice(ctx context.Context, channelID, userID, text string) error
}
