package chat

import (
	"context"
	"errors"
	"time"

	"github.com/skyform-labs/levelscout/internal/core/domain"
	"github.com/skyform-labs/levelscout/internal/core/ports/driven"
	"github.com/skyform-labs/levelscout/internal/core/ports/driving"
	"github.com/skyform-labs/levelscout/internal/logger"
)

// User-visible notices. Non-committing: none of them change session state.
const (
	noticeInvalidInput = "That search has an invalid option: "
	noticeNotOwner     = "These results belong to someone else — run your own search to browse."
	noticeExpired      = "These results have expired. Run the search again to browse."
	noticeFailure      = "Something went wrong while preparing your results. Please try again."
)

// Invocation is one decoded search command from the platform gateway.
type Invocation struct {
	ChannelID string
	UserID    string
	Options   map[string]string
}

// NavEvent is one decoded navigation interaction. The platform resolves
// the pressed control to the message carrying the result card, which is
// also the session key.
type NavEvent struct {
	ChannelID string
	MessageID string
	ActorID   string
	Action    domain.NavAction
}

// Handler drives the search pipeline and session service from chat
// events.
type Handler struct {
	search     driving.LevelSearchService
	sessions   driving.SessionService
	messenger  driven.Messenger
	renderer   *Renderer
	pageSize   int
	sessionTTL time.Duration
}

// NewHandler creates a chat handler. pageSize must match the session
// service's page size so the first posted page agrees with every page
// after it; non-positive pageSize or sessionTTL select the domain
// defaults.
func NewHandler(
	search driving.LevelSearchService,
	sessions driving.SessionService,
	messenger driven.Messenger,
	renderer *Renderer,
	pageSize int,
	sessionTTL time.Duration,
) *Handler {
	if pageSize <= 0 {
		pageSize = domain.DefaultPageSize
	}
	if sessionTTL <= 0 {
		sessionTTL = domain.DefaultSessionTTL
	}
	return &Handler{
		search:     search,
		sessions:   sessions,
		messenger:  messenger,
		renderer:   renderer,
		pageSize:   pageSize,
		sessionTTL: sessionTTL,
	}
}

// HandleSearch runs the pipeline for one command and posts the first
// result page. The requester always gets some reply: a panic anywhere in
// building or sending it is caught once here and surfaces as a generic
// failure notice. The one exception is command cancellation, where no
// reply is sent at all.
func (h *Handler) HandleSearch(ctx context.Context, inv Invocation) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic handling search for %s: %v", inv.UserID, r)
			_ = h.messenger.Notice(ctx, inv.ChannelID, inv.UserID, noticeFailure)
			err = nil
		}
	}()

	filters, err := ParseOptions(inv.Options)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return h.messenger.Notice(ctx, inv.ChannelID, inv.UserID, noticeInvalidInput+err.Error())
		}
		return err
	}

	matches, err := h.search.Run(ctx, filters)
	if err != nil {
		if ctx.Err() != nil {
			// Cancelled before completion: no partial replies.
			return nil
		}
		logger.Error("pipeline failed for %s: %v", inv.UserID, err)
		return h.messenger.Notice(ctx, inv.ChannelID, inv.UserID, noticeFailure)
	}

	// Render page 0 from a provisional session; the durable session is
	// keyed by the message id the platform assigns on post.
	provisional := domain.NewSession("", inv.UserID, matches, h.pageSize, h.sessionTTL)
	messageID, err := h.messenger.Post(ctx, inv.ChannelID, h.renderer.Page(provisional))
	if err != nil {
		return err
	}

	session, err := h.sessions.Create(ctx, messageID, inv.UserID, matches)
	if err != nil {
		return err
	}

	h.scheduleExpiry(inv.ChannelID, messageID, session)
	return nil
}

// HandleNav applies one navigation interaction and updates the result
// card in place. Rejections are visible but never mutate the session.
func (h *Handler) HandleNav(ctx context.Context, ev NavEvent) error {
	session, err := h.sessions.Navigate(ctx, ev.MessageID, ev.ActorID, ev.Action)
	switch {
	case errors.Is(err, domain.ErrSessionAccessDenied):
		return h.messenger.Notice(ctx, ev.ChannelID, ev.ActorID, noticeNotOwner)
	case errors.Is(err, domain.ErrSessionExpired):
		return h.messenger.Notice(ctx, ev.ChannelID, ev.ActorID, noticeExpired)
	case err != nil:
		return err
	}

	return h.messenger.Update(ctx, ev.ChannelID, ev.MessageID, h.renderer.Page(session))
}

// scheduleExpiry removes the navigation controls from the result card
// once the session lifetime elapses, so late presses are normally
// impossible rather than merely rejected.
func (h *Handler) scheduleExpiry(channelID, messageID string, session *domain.Session) {
	time.AfterFunc(h.sessionTTL, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := h.messenger.Update(ctx, channelID, messageID, h.renderer.ExpiredPage(session)); err != nil {
			logger.Debug("could not strip controls from %s: %v", messageID, err)
		}
		_ = h.sessions.Close(ctx, messageID)
	})
}
