// Package format renders durations, progress and large numbers for the
// terminal front ends.
package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration shows microseconds below a millisecond,
// milliseconds below a second and time.Duration's own format above.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// FormatThroughput renders how many result bits were produced per second,
// e.g. "12.3 Mbit/s". It returns "n/a" for a zero duration.
func FormatThroughput(bits int, d time.Duration) string {
	if d <= 0 {
		return "n/a"
	}
	rate := float64(bits) / d.Seconds()
	switch {
	case rate >= 1e9:
		return fmt.Sprintf("%.1f Gbit/s", rate/1e9)
	case rate >= 1e6:
		return fmt.Sprintf("%.1f Mbit/s", rate/1e6)
	case rate >= 1e3:
		return fmt.Sprintf("%.1f kbit/s", rate/1e3)
	}
	return fmt.Sprintf("%.0f bit/s", rate)
}
