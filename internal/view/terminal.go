package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/starford/rapport/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1976D2"))
	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#90CAF9")).
			Padding(0, 1).
			MarginBottom(1)
	dividerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// Terminal renders notes for the CLI. Points are rendered with glamour.
type Terminal struct {
	md    *glamour.TermRenderer
	width int
}

// NewTerminal creates a terminal projector wrapping text at width columns.
// style is a glamour standard style name ("auto", "dark", "light", "ascii",
// "notty").
func NewTerminal(style string, width int) (*Terminal, error) {
	if width <= 0 {
		width = 80
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width - 4)}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("view: terminal renderer: %w", err)
	}
	return &Terminal{md: r, width: width}, nil
}

// Render lays out notes in mode.
func (t *Terminal) Render(notes []models.MeetingNote, mode Mode) (string, error) {
	if len(notes) == 0 {
		return EmptyMessage + "\n", nil
	}

	var b strings.Builder
	divider := dividerStyle.Render(strings.Repeat("─", t.width))
	for i, n := range notes {
		body, err := t.noteBody(n)
		if err != nil {
			return "", err
		}
		if mode == ModeList {
			if i > 0 {
				b.WriteString(divider + "\n")
			}
			b.WriteString(body + "\n")
			continue
		}
		b.WriteString(cardStyle.Width(t.width-2).Render(body) + "\n")
	}
	return b.String(), nil
}

func (t *Terminal) noteBody(n models.MeetingNote) (string, error) {
	pts, err := t.md.Render(n.Points)
	if err != nil {
		return "", fmt.Errorf("view: note %d: %w", n.ID, err)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(n.Reportee),
		metaStyle.Render(n.Date+"  "+n.TimeRange()),
		strings.TrimRight(pts, "\n"),
	), nil
}
