package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a set of ANSI escape sequences for terminal output.
type Theme struct {
	Name      string
	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Info      string
	Bold      string
	Underline string
	Reset     string
}

func ansi256(code string) string { return "\033[38;5;" + code + "m" }

var (
	// DarkTheme suits dark terminal backgrounds and is the default.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   ansi256("45"),
		Secondary: ansi256("246"),
		Success:   ansi256("78"),
		Warning:   ansi256("221"),
		Error:     ansi256("203"),
		Info:      ansi256("141"),
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// LightTheme uses darker tones for light backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   ansi256("25"),
		Secondary: ansi256("241"),
		Success:   ansi256("29"),
		Warning:   ansi256("130"),
		Error:     ansi256("124"),
		Info:      ansi256("55"),
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// NoColorTheme emits no escape sequences at all.
	NoColorTheme = Theme{Name: "none"}

	themes = map[string]Theme{
		DarkTheme.Name:    DarkTheme,
		LightTheme.Name:   LightTheme,
		NoColorTheme.Name: NoColorTheme,
	}

	themeMu      sync.RWMutex
	currentTheme = DarkTheme
)

// TUITheme holds the lipgloss colors of the dashboard.
type TUITheme struct {
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
}

var (
	// DarkTUITheme is the dashboard palette. Adaptive colors pick a
	// variant from the terminal background.
	DarkTUITheme = TUITheme{
		Text:    lipgloss.AdaptiveColor{Light: "#1F2328", Dark: "#E6E6E6"},
		Border:  lipgloss.AdaptiveColor{Light: "#0969DA", Dark: "#3FA7D6"},
		Accent:  lipgloss.AdaptiveColor{Light: "#8250DF", Dark: "#B48EFF"},
		Success: lipgloss.Color("#3FB950"),
		Warning: lipgloss.Color("#D29922"),
		Error:   lipgloss.Color("#F85149"),
		Dim:     lipgloss.Color("#6E7681"),
	}

	// NoColorTUITheme renders with the terminal's default colors.
	NoColorTUITheme = TUITheme{
		Text:    lipgloss.NoColor{},
		Border:  lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Dim:     lipgloss.NoColor{},
	}
)

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// GetCurrentTUITheme returns the dashboard palette matching the active theme.
func GetCurrentTUITheme() TUITheme {
	if GetCurrentTheme().Name == NoColorTheme.Name {
		return NoColorTUITheme
	}
	return DarkTUITheme
}

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMu.Lock()
	defer themeMu.Unlock()
	currentTheme = t
}

// SetTheme activates a theme by name and reports whether the name was known.
// Unknown names leave the active theme unchanged.
func SetTheme(name string) bool {
	t, ok := themes[name]
	if ok {
		SetCurrentTheme(t)
	}
	return ok
}

// InitTheme selects the startup theme. Colors are disabled by noColor, by a
// NO_COLOR variable of any value (https://no-color.org), or when TERM is
// "dumb".
func InitTheme(noColor bool) {
	_, envNoColor := os.LookupEnv("NO_COLOR")
	switch {
	case noColor, envNoColor, os.Getenv("TERM") == "dumb":
		SetCurrentTheme(NoColorTheme)
	default:
		SetCurrentTheme(DarkTheme)
	}
}
