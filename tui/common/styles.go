package common

import "github.com/charmbracelet/lipgloss"

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Theme Theme

	AppTitle    lipgloss.Style
	Crumb       lipgloss.Style
	DisplayName lipgloss.Style
	Handle      lipgloss.Style
	Verified    lipgloss.Style
	Timestamp   lipgloss.Style
	Content     lipgloss.Style
	Metadata    lipgloss.Style
	LikeActive  lipgloss.Style
	MarkActive  lipgloss.Style
	Pending     lipgloss.Style
	Section     lipgloss.Style

	Selected   lipgloss.Style
	Unselected lipgloss.Style
	RootCard   lipgloss.Style
	Dialog     lipgloss.Style

	StatusBar lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
}

// NewStyles builds the style set for t.
func NewStyles(t Theme) Styles {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	return Styles{
		Theme: t,

		AppTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Accent).
			Padding(1, 2, 0, 1),
		Crumb: lipgloss.NewStyle().
			Foreground(t.Muted).
			MarginLeft(1),
		DisplayName: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Text),
		Handle: lipgloss.NewStyle().
			Foreground(t.Muted),
		Verified: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Verified),
		Timestamp: lipgloss.NewStyle().
			Foreground(t.Muted),
		Content: lipgloss.NewStyle().
			Foreground(t.Text),
		Metadata: lipgloss.NewStyle().
			Foreground(t.Muted),
		LikeActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Like),
		MarkActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Bookmark),
		Pending: lipgloss.NewStyle().
			Foreground(t.Muted).
			Italic(true),
		Section: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Muted).
			Margin(1, 0, 0, 2),

		Selected:   card.BorderForeground(t.Accent),
		Unselected: card.BorderForeground(t.Border),
		RootCard: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2),
		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Accent).
			Padding(1, 2).
			Margin(1, 2),

		StatusBar: lipgloss.NewStyle().
			Foreground(t.Muted).
			Padding(1, 0, 0, 0),
		Error: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true),
		Success: lipgloss.NewStyle().
			Foreground(t.Success).
			Bold(true),
		Warning: lipgloss.NewStyle().
			Foreground(t.Warning).
			Bold(true),
	}
}
