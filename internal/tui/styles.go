package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibnum/internal/ui"
)

// Dashboard styles, rebuilt from the ui theme by initTUIStyles.
var (
	panelStyle      lipgloss.Style
	headerStyle     lipgloss.Style
	titleStyle      lipgloss.Style
	dimStyle        lipgloss.Style
	accentStyle     lipgloss.Style
	labelStyle      lipgloss.Style
	valueStyle      lipgloss.Style
	successStyle    lipgloss.Style
	errorStyle      lipgloss.Style
	warningStyle    lipgloss.Style
	tableHeadStyle  lipgloss.Style
	sparklineStyle  lipgloss.Style
	barColorStart   string
	barColorEnd     string
)

func init() {
	initTUIStyles()
}

// initTUIStyles is called at init and again from Run, after the CLI has
// chosen the theme.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text).
		Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	dimStyle = lipgloss.NewStyle().Foreground(t.Dim)
	accentStyle = lipgloss.NewStyle().Foreground(t.Accent)
	labelStyle = lipgloss.NewStyle().Foreground(t.Dim).Width(12)
	valueStyle = lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(t.Success)
	errorStyle = lipgloss.NewStyle().Foreground(t.Error).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(t.Warning)
	tableHeadStyle = lipgloss.NewStyle().Underline(true).Foreground(t.Dim)
	sparklineStyle = lipgloss.NewStyle().Foreground(t.Accent)

	if ui.GetCurrentTheme().Name == ui.NoColorTheme.Name {
		barColorStart, barColorEnd = "", ""
	} else {
		barColorStart, barColorEnd = "#3FA7D6", "#B48EFF"
	}
}
