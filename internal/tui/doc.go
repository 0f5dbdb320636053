// Package tui implements the -tui dashboard: a bubbletea program with one
// progress bar per calculator, live memory statistics and the result table.
package tui
