package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

type ThemeName string

const (
	ThemeDark  ThemeName = "dark"
	ThemeLight ThemeName = "light"
)

// Theme bundles every style the transcript view needs. Block renderers
// take a Theme instead of reaching for package-level styles so tests can
// run against the no-color theme and compare plain strings.
type Theme struct {
	Name ThemeName

	TextPrimary lipgloss.AdaptiveColor
	TextMuted   lipgloss.AdaptiveColor
	Accent      lipgloss.AdaptiveColor
	Success     lipgloss.AdaptiveColor
	Warn        lipgloss.AdaptiveColor
	Error       lipgloss.AdaptiveColor
	Border      lipgloss.AdaptiveColor

	UserPrompt  lipgloss.Style
	WatcherTag  lipgloss.Style
	Assistant   lipgloss.Style
	Thinking    lipgloss.Style
	ToolHeader  lipgloss.Style
	ToolErr     lipgloss.Style
	ToolBody    lipgloss.Style
	StatusLine  lipgloss.Style
	Interrupt   lipgloss.Style
	DiffAdded   lipgloss.Style
	DiffRemoved lipgloss.Style
	DiffGap     lipgloss.Style
	Stderr      lipgloss.Style
	ExpandHint  lipgloss.Style
	Correlated  lipgloss.Style

	StatusBar     lipgloss.Style
	StatusBarKey  lipgloss.Style
	StatusBarWarn lipgloss.Style

	InputBox  lipgloss.Style
	InputBoxF lipgloss.Style
	Footer    lipgloss.Style
	Spinner   lipgloss.Style
}

// NewTheme resolves the configured theme name. CODETERM_NO_COLOR=1
// forces the uncolored theme regardless of configuration.
func NewTheme(name string) Theme {
	if os.Getenv("CODETERM_NO_COLOR") == "1" {
		return NewNoColorTheme()
	}
	switch ThemeName(name) {
	case ThemeLight:
		return newLightTheme()
	default:
		return newDarkTheme()
	}
}

func NewNoColorTheme() Theme {
	t := Theme{
		Name:        "no-color",
		TextPrimary: lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"},
		TextMuted:   lipgloss.AdaptiveColor{Light: "#333333", Dark: "#dddddd"},
		Border:      lipgloss.AdaptiveColor{Light: "#555555", Dark: "#777777"},
	}
	plain := lipgloss.NewStyle()
	t.UserPrompt = plain
	t.WatcherTag = plain
	t.Assistant = plain
	t.Thinking = plain
	t.ToolHeader = plain
	t.ToolErr = plain
	t.ToolBody = plain
	t.StatusLine = plain
	t.Interrupt = plain
	t.DiffAdded = plain
	t.DiffRemoved = plain
	t.DiffGap = plain
	t.Stderr = plain
	t.ExpandHint = plain
	t.Correlated = plain
	t.StatusBar = plain
	t.StatusBarKey = plain
	t.StatusBarWarn = plain
	t.InputBox = plain
	t.InputBoxF = plain
	t.Footer = plain
	t.Spinner = plain
	return t
}

func newDarkTheme() Theme {
	t := Theme{
		Name:        ThemeDark,
		TextPrimary: lipgloss.AdaptiveColor{Light: "#1d2433", Dark: "#f2f2f2"},
		TextMuted:   lipgloss.AdaptiveColor{Light: "#4a5568", Dark: "#9aa0a6"},
		Accent:      lipgloss.AdaptiveColor{Light: "#1f6feb", Dark: "#7aa2ff"},
		Success:     lipgloss.AdaptiveColor{Light: "#0f766e", Dark: "#46d1b7"},
		Warn:        lipgloss.AdaptiveColor{Light: "#b45309", Dark: "#f4b27d"},
		Error:       lipgloss.AdaptiveColor{Light: "#b42318", Dark: "#ff7a7a"},
		Border:      lipgloss.AdaptiveColor{Light: "#cbd5e0", Dark: "#3a3a3a"},
	}
	return applyPalette(t)
}

func newLightTheme() Theme {
	t := Theme{
		Name:        ThemeLight,
		TextPrimary: lipgloss.AdaptiveColor{Light: "#111827", Dark: "#eaeaea"},
		TextMuted:   lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#8d8d8d"},
		Accent:      lipgloss.AdaptiveColor{Light: "#2563eb", Dark: "#5cc8ff"},
		Success:     lipgloss.AdaptiveColor{Light: "#059669", Dark: "#46d1b7"},
		Warn:        lipgloss.AdaptiveColor{Light: "#d97706", Dark: "#f4b27d"},
		Error:       lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#ff7a7a"},
		Border:      lipgloss.AdaptiveColor{Light: "#9ca3af", Dark: "#2a2a2a"},
	}
	return applyPalette(t)
}

func applyPalette(t Theme) Theme {
	t.UserPrompt = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	t.WatcherTag = lipgloss.NewStyle().Bold(true).Foreground(t.Warn)
	t.Assistant = lipgloss.NewStyle().Foreground(t.TextPrimary)
	t.Thinking = lipgloss.NewStyle().Italic(true).Foreground(t.TextMuted)
	t.ToolHeader = lipgloss.NewStyle().Bold(true).Foreground(t.Success)
	t.ToolErr = lipgloss.NewStyle().Bold(true).Foreground(t.Error)
	t.ToolBody = lipgloss.NewStyle().Foreground(t.TextMuted)
	t.StatusLine = lipgloss.NewStyle().Foreground(t.TextMuted)
	t.Interrupt = lipgloss.NewStyle().Bold(true).Foreground(t.Warn)
	t.DiffAdded = lipgloss.NewStyle().Foreground(t.Success)
	t.DiffRemoved = lipgloss.NewStyle().Foreground(t.Error)
	t.DiffGap = lipgloss.NewStyle().Foreground(t.TextMuted)
	t.Stderr = lipgloss.NewStyle().Foreground(t.Error)
	t.ExpandHint = lipgloss.NewStyle().Foreground(t.TextMuted)
	t.Correlated = lipgloss.NewStyle().Bold(true).Background(t.Border)

	t.StatusBar = lipgloss.NewStyle().Foreground(t.TextMuted)
	t.StatusBarKey = lipgloss.NewStyle().Bold(true).Foreground(t.TextPrimary)
	t.StatusBarWarn = lipgloss.NewStyle().Bold(true).Foreground(t.Warn)

	t.InputBox = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(t.Border).Padding(0, 1)
	t.InputBoxF = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(t.Accent).Padding(0, 1)
	t.Footer = lipgloss.NewStyle().Foreground(t.TextMuted)
	t.Spinner = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	return t
}
