// Package themes holds the color schemes of the dashboard.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style of the dashboard.
type Theme struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Normal      lipgloss.Style
	Bold        lipgloss.Style
	Selected    lipgloss.Style
	Tab         lipgloss.Style
	ActiveTab   lipgloss.Style
	Card        lipgloss.Style
	CardValue   lipgloss.Style
	StatusError lipgloss.Style
	StatusInfo  lipgloss.Style
	Bar         lipgloss.Style
	Primary     lipgloss.Color
	Muted       lipgloss.Color
	Border      lipgloss.Color
}

func build(primary, secondary, foreground, subtle, muted, border, background, info, errColor string) Theme {
	return Theme{
		Primary: lipgloss.Color(primary),
		Muted:   lipgloss.Color(muted),
		Border:  lipgloss.Color(border),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(foreground)).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(subtle)),
		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color(foreground)),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(foreground)),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(primary)).
			Foreground(lipgloss.Color(background)).
			Bold(true),
		Tab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(muted)).
			Padding(0, 2),
		ActiveTab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(secondary)).
			Bold(true).
			Underline(true).
			Padding(0, 2),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(border)).
			Padding(0, 2).
			Width(26),
		CardValue: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(primary)),
		StatusError: lipgloss.NewStyle().
			Foreground(lipgloss.Color(errColor)).
			Bold(true),
		StatusInfo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(info)).
			Bold(true),
		Bar: lipgloss.NewStyle().
			Foreground(lipgloss.Color(primary)),
	}
}

// Default is the default theme.
var Default = build("#7c3aed", "#a78bfa", "#fafafa", "#a3a3a3", "#737373", "#404040", "#1a1a1a", "#3b82f6", "#ef4444")

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = build("#cba6f7", "#f5c2e7", "#cdd6f4", "#a6adc8", "#6c7086", "#45475a", "#1e1e2e", "#89dceb", "#f38ba8")

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}
