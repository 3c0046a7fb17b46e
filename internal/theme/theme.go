// Package theme provides the color palettes used by the TUI.
package theme

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines all colors used in the application UI.
type Theme struct {
	Name       string
	Light      bool
	Accent     lipgloss.Color
	AccentFg   lipgloss.Color // text drawn on Accent
	AccentDim  lipgloss.Color
	Border     lipgloss.Color
	BorderDim  lipgloss.Color
	MutedFg    lipgloss.Color
	TextFg     lipgloss.Color
	SuccessFg  lipgloss.Color
	WarnFg     lipgloss.Color
	ErrorFg    lipgloss.Color
	Cyan       lipgloss.Color
	Pink       lipgloss.Color
	Yellow     lipgloss.Color
	PromptFg   lipgloss.Color
	CommandFg  lipgloss.Color
	HintFg     lipgloss.Color
	UntrackFg  lipgloss.Color
	ModifiedFg lipgloss.Color
	StagedFg   lipgloss.Color
}

// Theme names.
const (
	DraculaName         = "dracula"
	DraculaLightName    = "dracula-light"
	NordName            = "nord"
	GruvboxDarkName     = "gruvbox-dark"
	CatppuccinMochaName = "catppuccin-mocha"
)

var themes = map[string]Theme{
	DraculaName: {
		Accent: "#BD93F9", AccentFg: "#282A36", AccentDim: "#44475A",
		Border: "#6272A4", BorderDim: "#44475A",
		MutedFg: "#6272A4", TextFg: "#F8F8F2",
		SuccessFg: "#50FA7B", WarnFg: "#FFB86C", ErrorFg: "#FF5555",
		Cyan: "#8BE9FD", Pink: "#FF79C6", Yellow: "#F1FA8C",
	},
	DraculaLightName: {
		Light:  true,
		Accent: "#7C3AED", AccentFg: "#FFFFFF", AccentDim: "#F3E8FF",
		Border: "#D0D7DE", BorderDim: "#E8E8E8",
		MutedFg: "#6E7781", TextFg: "#24292F",
		SuccessFg: "#059669", WarnFg: "#D97706", ErrorFg: "#DC2626",
		Cyan: "#0891B2", Pink: "#DB2777", Yellow: "#CA8A04",
	},
	NordName: {
		Accent: "#88C0D0", AccentFg: "#2E3440", AccentDim: "#3B4252",
		Border: "#4C566A", BorderDim: "#434C5E",
		MutedFg: "#81A1C1", TextFg: "#E5E9F0",
		SuccessFg: "#A3BE8C", WarnFg: "#EBCB8B", ErrorFg: "#BF616A",
		Cyan: "#88C0D0", Pink: "#B48EAD", Yellow: "#EBCB8B",
	},
	GruvboxDarkName: {
		Accent: "#FABD2F", AccentFg: "#282828", AccentDim: "#3C3836",
		Border: "#504945", BorderDim: "#3C3836",
		MutedFg: "#928374", TextFg: "#EBDBB2",
		SuccessFg: "#B8BB26", WarnFg: "#FE8019", ErrorFg: "#FB4934",
		Cyan: "#83A598", Pink: "#D3869B", Yellow: "#FABD2F",
	},
	CatppuccinMochaName: {
		Accent: "#B4BEFE", AccentFg: "#1E1E2E", AccentDim: "#313244",
		Border: "#45475A", BorderDim: "#313244",
		MutedFg: "#6C7086", TextFg: "#CDD6F4",
		SuccessFg: "#A6E3A1", WarnFg: "#FAB387", ErrorFg: "#F38BA8",
		Cyan: "#89DCEB", Pink: "#F5C2E7", Yellow: "#F9E2AF",
	},
}

// derive fills the role colors the panes use from the base palette.
func derive(name string, t Theme) *Theme {
	t.Name = name
	t.PromptFg = t.SuccessFg
	t.CommandFg = t.TextFg
	t.HintFg = t.Cyan
	t.UntrackFg = t.ErrorFg
	t.ModifiedFg = t.WarnFg
	t.StagedFg = t.SuccessFg
	return &t
}

// GetTheme returns a theme by name, or the default for the terminal background.
func GetTheme(name string) *Theme {
	if n := Normalize(name); n != "" {
		return derive(n, themes[n])
	}
	d := Default()
	return derive(d, themes[d])
}

// Normalize returns the canonical theme name if it is supported, else "".
func Normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if _, ok := themes[name]; ok {
		return name
	}
	return ""
}

// Default picks a theme matching the terminal background.
func Default() string {
	if lipgloss.HasDarkBackground() {
		return DraculaName
	}
	return DraculaLightName
}

// AvailableThemes returns the supported theme names, sorted.
func AvailableThemes() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
