package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/skyform-labs/levelscout/internal/core/domain"
	"github.com/skyform-labs/levelscout/internal/core/ports/driven"
)

// Renderer turns a session page into a displayable result card.
// Visual styling is a presentation concern; nothing here feeds back into
// filtering or session state.
type Renderer struct {
	title   lipgloss.Style
	name    lipgloss.Style
	meta    lipgloss.Style
	footer  lipgloss.Style
	preview string
}

// NewRenderer creates a renderer. previewBase is the web viewer root used
// for per-level preview links, e.g. "https://example.dev".
func NewRenderer(previewBase string) *Renderer {
	return &Renderer{
		title:   lipgloss.NewStyle().Bold(true),
		name:    lipgloss.NewStyle().Bold(true),
		meta:    lipgloss.NewStyle().Faint(true),
		footer:  lipgloss.NewStyle().Faint(true).Italic(true),
		preview: strings.TrimSuffix(previewBase, "/"),
	}
}

// Page renders the session's current page with live navigation state.
func (r *Renderer) Page(s *domain.Session) driven.RenderedPage {
	return driven.RenderedPage{
		Body:        r.body(s),
		SessionID:   s.ID,
		PrevEnabled: s.HasPrev(),
		NextEnabled: s.HasNext(),
	}
}

// ExpiredPage renders the session's current page with every navigation
// affordance removed. Used when the session lifetime elapses.
func (r *Renderer) ExpiredPage(s *domain.Session) driven.RenderedPage {
	return driven.RenderedPage{
		Body:      r.body(s),
		SessionID: s.ID,
	}
}

func (r *Renderer) body(s *domain.Session) string {
	var b strings.Builder

	matches := s.Page()
	if len(matches) == 0 {
		b.WriteString(r.title.Render("Level search"))
		b.WriteString("\n")
		b.WriteString("No levels matched your filters.")
		return b.String()
	}

	b.WriteString(r.title.Render(fmt.Sprintf("Level search — %d match(es)", len(s.Matches))))
	b.WriteString("\n\n")

	for _, m := range matches {
		b.WriteString(r.name.Render(m.DisplayName))
		b.WriteString(fmt.Sprintf(" (id %s)\n", m.LevelID))
		b.WriteString(r.meta.Render(fmt.Sprintf("  by %s · %s objects · %s",
			orUnknown(m.Author), formatCount(m.ObjectCount), formatLength(m.LengthSeconds))))
		b.WriteString("\n")
		if r.preview != "" {
			b.WriteString(r.meta.Render(fmt.Sprintf("  %s/level/%s", r.preview, m.LevelID)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(r.footer.Render(fmt.Sprintf("Page %d/%d", s.CurrentPage+1, s.TotalPages())))
	return b.String()
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

func formatCount(count int) string {
	if count < 0 {
		return "?"
	}
	return fmt.Sprintf("%d", count)
}

// formatLength renders a duration as m:ss, or "?" when unknown.
func formatLength(seconds float64) string {
	if seconds < 0 {
		return "?"
	}
	total := int(seconds + 0.5)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
