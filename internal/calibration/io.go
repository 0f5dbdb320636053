package calibration

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/agbru/fibnum/internal/format"
	"github.com/agbru/fibnum/internal/ui"
)

// printCalibrationResults prints the table of one limb width.
func printCalibrationResults(out io.Writer, limbBits int, samples []Sample, crossover int) {
	fmt.Fprintf(out, "\n--- %d-bit limbs ---\n", limbBits)
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  %sLimbs%s\t│ %sSchoolbook%s\t│ %sKaratsuba%s\t\n",
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())
	fmt.Fprintf(tw, "  %s\t┼%s\t┼%s\t\n", strings.Repeat("─", 8), strings.Repeat("─", 14), strings.Repeat("─", 14))
	for _, s := range samples {
		school, kara := formatSampleDuration(s.Schoolbook), formatSampleDuration(s.Karatsuba)
		if s.KaratsubaWins() {
			kara = ui.ColorGreen() + kara + ui.ColorReset()
		} else {
			school = ui.ColorGreen() + school + ui.ColorReset()
		}
		marker := ""
		if s.Limbs == crossover {
			marker = fmt.Sprintf(" %s(Crossover)%s", ui.ColorYellow(), ui.ColorReset())
		}
		fmt.Fprintf(tw, "  %s%d%s\t│ %s\t│ %s%s\t\n", ui.ColorCyan(), s.Limbs, ui.ColorReset(), school, kara, marker)
	}
	tw.Flush()
}

// printCalibrationOutput prints the thresholds retained for every width.
func printCalibrationOutput(out io.Writer, profile *CalibrationProfile, elapsed time.Duration) {
	widths := make([]int, 0, len(profile.KaratsubaThresholds))
	for w := range profile.KaratsubaThresholds {
		widths = append(widths, w)
	}
	slices.Sort(widths)

	parts := make([]string, 0, len(widths))
	for _, w := range widths {
		parts = append(parts, fmt.Sprintf("u%d=%s%d%s", w, ui.ColorYellow(), profile.KaratsubaThresholds[w], ui.ColorReset()))
	}
	fmt.Fprintf(out, "\n%sCalibration%s (%s): Karatsuba thresholds in limbs: %s\n",
		ui.ColorGreen(), ui.ColorReset(), format.FormatExecutionDuration(elapsed), strings.Join(parts, ", "))
}
