package common

import "github.com/charmbracelet/lipgloss"

// Theme is a named color palette.
type Theme struct {
	Name     string
	Accent   lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Border   lipgloss.Color
	Like     lipgloss.Color
	Bookmark lipgloss.Color
	Verified lipgloss.Color
	Success  lipgloss.Color
	Warning  lipgloss.Color
	Error    lipgloss.Color
}

var (
	DarkTheme = Theme{
		Name:     "dark",
		Accent:   lipgloss.Color("#1D9BF0"),
		Text:     lipgloss.Color("#CAD3F5"),
		Muted:    lipgloss.Color("#6E738D"),
		Border:   lipgloss.Color("#45475A"),
		Like:     lipgloss.Color("#F91880"),
		Bookmark: lipgloss.Color("#F9E2AF"),
		Verified: lipgloss.Color("#1D9BF0"),
		Success:  lipgloss.Color("#A6DA95"),
		Warning:  lipgloss.Color("#F5A97F"),
		Error:    lipgloss.Color("#ED8796"),
	}

	LightTheme = Theme{
		Name:     "light",
		Accent:   lipgloss.Color("#0C7ABF"),
		Text:     lipgloss.Color("#1F2328"),
		Muted:    lipgloss.Color("#6E7781"),
		Border:   lipgloss.Color("#D0D7DE"),
		Like:     lipgloss.Color("#CF1264"),
		Bookmark: lipgloss.Color("#9A6700"),
		Verified: lipgloss.Color("#0C7ABF"),
		Success:  lipgloss.Color("#1A7F37"),
		Warning:  lipgloss.Color("#BC4C00"),
		Error:    lipgloss.Color("#CF222E"),
	}
)

// ThemeByName returns the theme called name, dark for anything unknown.
func ThemeByName(name string) Theme {
	if name == LightTheme.Name {
		return LightTheme
	}
	return DarkTheme
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t.Name == LightTheme.Name {
		return DarkTheme
	}
	return LightTheme
}
