package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"

	"github.com/agbru/fibnum/internal/bignum"
	"github.com/agbru/fibnum/internal/config"
	"github.com/agbru/fibnum/internal/fibonacci"
	"github.com/agbru/fibnum/internal/ui"
)

// CPUFeatures lists the instruction set extensions relevant to multi-word
// arithmetic that the running CPU supports.
func CPUFeatures() []string {
	var feats []string
	switch runtime.GOARCH {
	case "amd64", "386":
		for _, f := range []struct {
			name string
			ok   bool
		}{{"BMI2", cpu.X86.HasBMI2}, {"ADX", cpu.X86.HasADX}, {"AVX2", cpu.X86.HasAVX2}} {
			if f.ok {
				feats = append(feats, f.name)
			}
		}
	case "arm64":
		if cpu.ARM64.HasASIMD {
			feats = append(feats, "ASIMD")
		}
	}
	return feats
}

// PrintExecutionConfig prints the target, the timeout, the environment and
// the multiplication settings.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	feats := "none detected"
	if f := CPUFeatures(); len(f) > 0 {
		feats = strings.Join(f, ", ")
	}
	threshold := cfg.KaratsubaThreshold
	if threshold <= 0 {
		threshold = bignum.KaratsubaThreshold()
	}

	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Calculating %sF(%d)%s with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), cfg.N, ui.ColorReset(), ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s, %s/%s (%s).\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset(),
		runtime.GOOS, runtime.GOARCH, feats)
	fmt.Fprintf(out, "Arithmetic: %s%d-bit%s limbs, Karatsuba above %s%d%s limbs.\n",
		ui.ColorCyan(), cfg.LimbBits, ui.ColorReset(), ui.ColorCyan(), threshold, ui.ColorReset())
}

// PrintExecutionMode states whether one calculator runs or several are
// compared.
func PrintExecutionMode(calculators []fibonacci.Calculator, out io.Writer) {
	var mode string
	switch len(calculators) {
	case 0:
		mode = "Nothing to run"
	case 1:
		mode = fmt.Sprintf("Single calculation with the %s%s%s algorithm", ui.ColorGreen(), calculators[0].Name(), ui.ColorReset())
	default:
		mode = fmt.Sprintf("Parallel comparison of %d algorithms", len(calculators))
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", mode)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
