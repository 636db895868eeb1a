// Package styles provides reusable lipgloss-based TUI components.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme holds lipgloss colors and styles used across the CLI.
type Theme struct {
	Background lipgloss.Color
	Surface    lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	Border     lipgloss.Color

	Error   lipgloss.Color
	Warning lipgloss.Color
	Success lipgloss.Color

	// Pre-built styles
	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	Normal       lipgloss.Style
	Subtle       lipgloss.Style
	Highlight    lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	SuccessStyle lipgloss.Style

	Badge      lipgloss.Style
	BadgeMuted lipgloss.Style

	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	Box       lipgloss.Style
	BoxHeader lipgloss.Style
}

// NewTheme creates the dark theme used by all commands.
func NewTheme() *Theme {
	t := &Theme{
		Background: lipgloss.Color("#0a0a0b"),
		Surface:    lipgloss.Color("#1a1a1b"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#909090"),
		Accent:     lipgloss.Color("#4ade80"),
		Border:     lipgloss.Color("#333333"),
		Error:      lipgloss.Color("#ef4444"),
		Warning:    lipgloss.Color("#f59e0b"),
		Success:    lipgloss.Color("#4ade80"),
	}

	t.Title = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	t.Subtitle = lipgloss.NewStyle().Foreground(t.Muted)
	t.Normal = lipgloss.NewStyle().Foreground(t.Text)
	t.Subtle = lipgloss.NewStyle().Foreground(t.Muted)
	t.Highlight = lipgloss.NewStyle().Bold(true).Foreground(t.Text)
	t.ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Error)
	t.WarningStyle = lipgloss.NewStyle().Foreground(t.Warning)
	t.SuccessStyle = lipgloss.NewStyle().Foreground(t.Success)

	t.Badge = lipgloss.NewStyle().
		Foreground(t.Background).
		Background(t.Accent).
		Padding(0, 1).
		Bold(true)
	t.BadgeMuted = lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Surface).
		Padding(0, 1)

	t.HelpKey = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	t.HelpDesc = lipgloss.NewStyle().Foreground(t.Muted)

	t.Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)
	t.BoxHeader = lipgloss.NewStyle().Bold(true).Foreground(t.Accent).Underline(true)

	return t
}

// TierBadge renders a quality tier as a colored badge.
func (t *Theme) TierBadge(tier string) string {
	style := t.Badge
	switch tier {
	case "low":
		style = style.Background(t.Muted)
	case "medium":
		style = style.Background(t.Warning)
	case "high":
		style = style.Background(t.Accent)
	case "ultra":
		style = style.Background(lipgloss.Color("#a78bfa"))
	}
	return style.Render(tier)
}

// StatusIcon renders a pass/fail marker for doctor-style checks.
func (t *Theme) StatusIcon(ok bool) string {
	if ok {
		return t.SuccessStyle.Render("✓")
	}
	return t.ErrorStyle.Render("✗")
}
