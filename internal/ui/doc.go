// Package ui holds the terminal color themes shared by the CLI, the REPL and
// the dashboard. The active theme is process-wide and set once at startup by
// InitTheme.
package ui
