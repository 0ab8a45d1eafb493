// Package tui provides a terminal pager over a fixed match list, the
// local counterpart of the chat adapter's paginated result card.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/skyform-labs/levelscout/internal/core/domain"
)

// Model is the Bubbletea model for the browse pager.
type Model struct {
	matches   []domain.Match
	paginator paginator.Model

	title lipgloss.Style
	name  lipgloss.Style
	meta  lipgloss.Style
}

// NewModel creates a pager over matches. A non-positive pageSize selects
// the domain default.
func NewModel(matches []domain.Match, pageSize int) Model {
	if pageSize <= 0 {
		pageSize = domain.DefaultPageSize
	}

	p := paginator.New()
	p.Type = paginator.Dots
	p.PerPage = pageSize
	p.SetTotalPages(len(matches))

	return Model{
		matches:   matches,
		paginator: p,
		title:     lipgloss.NewStyle().Bold(true),
		name:      lipgloss.NewStyle().Bold(true),
		meta:      lipgloss.NewStyle().Faint(true),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. The paginator clamps page transitions the
// same way a chat session does.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.paginator, cmd = m.paginator.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.title.Render(fmt.Sprintf("Level search — %d match(es)", len(m.matches))))
	b.WriteString("\n\n")

	start, end := m.paginator.GetSliceBounds(len(m.matches))
	for _, match := range m.matches[start:end] {
		b.WriteString(m.name.Render(match.DisplayName))
		b.WriteString(fmt.Sprintf(" (id %s)\n", match.LevelID))
		b.WriteString(m.meta.Render("  " + matchMeta(match)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.paginator.View())
	b.WriteString("\n")
	b.WriteString(m.meta.Render("←/→ page · q quit"))
	b.WriteString("\n")
	return b.String()
}

func matchMeta(m domain.Match) string {
	author := m.Author
	if author == "" {
		author = "unknown"
	}
	objects := "?"
	if m.ObjectCount >= 0 {
		objects = fmt.Sprintf("%d", m.ObjectCount)
	}
	length := "?"
	if m.LengthSeconds >= 0 {
		length = fmt.Sprintf("%.1fs", m.LengthSeconds)
	}
	return fmt.Sprintf("by %s · %s objects · %s", author, objects, length)
}

// Browse runs the pager until the user quits.
func Browse(matches []domain.Match, pageSize int) error {
	program := tea.NewProgram(NewModel(matches, pageSize))
	_, err := program.Run()
	return err
}
