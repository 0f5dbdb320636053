package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibnum/internal/format"
)

// HeaderModel renders the top bar: title, target index and elapsed time.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	n         uint64
	limbBits  int
	width     int
}

// NewHeaderModel starts the elapsed timer.
func NewHeaderModel(version string, n uint64, limbBits int) HeaderModel {
	return HeaderModel{startTime: time.Now(), version: version, n: n, limbBits: limbBits}
}

// SetDone freezes the timer.
func (h *HeaderModel) SetDone() { h.endTime = time.Now() }

// Reset restarts the timer.
func (h *HeaderModel) Reset() {
	h.startTime = time.Now()
	h.endTime = time.Time{}
}

// SetWidth sets the render width.
func (h *HeaderModel) SetWidth(w int) { h.width = w }

// Elapsed returns the running or frozen elapsed time.
func (h HeaderModel) Elapsed() time.Duration {
	if !h.endTime.IsZero() {
		return h.endTime.Sub(h.startTime)
	}
	return time.Since(h.startTime)
}

// View renders the header.
func (h HeaderModel) View() string {
	title := "fibnum"
	if h.version != "" && h.version != "dev" {
		title += " " + h.version
	}
	left := titleStyle.Render(title) + dimStyle.Render(" | ") +
		accentStyle.Render(fmt.Sprintf("F(%d)", h.n)) +
		dimStyle.Render(fmt.Sprintf(" · %d-bit limbs", h.limbBits))
	right := dimStyle.Render("elapsed ") + accentStyle.Render(format.FormatExecutionDuration(h.Elapsed()))

	gap := max(h.width-2-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return headerStyle.Width(h.width).Render(left + spaces(gap) + right)
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("%*s", n, "")
}
