// Naming in this package: Display* functions write to an io.Writer, Format*
// functions return strings, Write* functions write files.

package cli

import (
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/fibnum/internal/format"
	"github.com/agbru/fibnum/internal/orchestration"
	"github.com/agbru/fibnum/internal/ui"
)

const (
	// TruncationLimit is the digit count above which a result is shortened
	// on the terminal unless -v is given.
	TruncationLimit = 100
	// DisplayEdges is the number of leading and trailing digits kept when a
	// decimal result is shortened.
	DisplayEdges = 25
	// HexDisplayEdges is the same for hexadecimal output.
	HexDisplayEdges = 40
)

// OutputConfig controls where and how a result is emitted.
type OutputConfig struct {
	// OutputFile is the path to save the result; empty disables it.
	OutputFile string
	// Quiet prints only the value.
	Quiet bool
	// RunID identifies the run in the file header; empty omits the line.
	RunID string
	// Presentation carries the index and the formatting switches.
	Presentation orchestration.PresentationOptions
}

// FormatValue renders v in decimal or, with hex, as 0x-prefixed hexadecimal.
func FormatValue(v *big.Int, hex bool) string {
	if hex {
		return fmt.Sprintf("%#x", v)
	}
	return v.String()
}

// FormatQuietResult is the single-line form used in quiet mode.
func FormatQuietResult(v *big.Int, hex bool) string {
	return FormatValue(v, hex)
}

// DisplayQuietResult prints the quiet form of v.
func DisplayQuietResult(out io.Writer, v *big.Int, hex bool) {
	fmt.Fprintln(out, FormatQuietResult(v, hex))
}

// limbCount is the number of limbs of the given width holding v.
func limbCount(v *big.Int, limbBits int) int {
	if limbBits <= 0 {
		return 0
	}
	return (v.BitLen() + limbBits - 1) / limbBits
}

// DisplayResult prints the result summary, the optional details block and
// the value, shortened unless opts.Verbose is set.
func DisplayResult(v *big.Int, duration time.Duration, opts orchestration.PresentationOptions, out io.Writer) {
	digits := v.String()

	fmt.Fprintf(out, "\nResult binary size: %s%s%s bits.\n", ui.ColorCyan(), format.FormatNumberString(fmt.Sprint(v.BitLen())), ui.ColorReset())

	if opts.Details {
		fmt.Fprintf(out, "\n%s--- Detailed result analysis ---%s\n", ui.ColorBold(), ui.ColorReset())
		fmt.Fprintf(out, "Calculation time        : %s%s%s\n", ui.ColorGreen(), format.FormatExecutionDuration(duration), ui.ColorReset())
		fmt.Fprintf(out, "Number of digits        : %s%s%s\n", ui.ColorCyan(), format.FormatNumberString(fmt.Sprint(len(digits))), ui.ColorReset())
		if opts.LimbBits > 0 {
			fmt.Fprintf(out, "Limbs (%2d-bit)          : %s%s%s\n", opts.LimbBits, ui.ColorCyan(), format.FormatNumberString(fmt.Sprint(limbCount(v, opts.LimbBits))), ui.ColorReset())
		}
		fmt.Fprintf(out, "Throughput              : %s\n", format.FormatThroughput(v.BitLen(), duration))
		parity := "odd"
		if v.Bit(0) == 0 {
			parity = "even"
		}
		fmt.Fprintf(out, "Parity                  : %s\n", parity)
	}

	value, edges := digits, DisplayEdges
	if opts.Hex {
		value, edges = FormatValue(v, true), HexDisplayEdges
	}
	fmt.Fprintf(out, "\n%s--- Calculated value ---%s\n", ui.ColorBold(), ui.ColorReset())
	if !opts.Verbose && len(value) > TruncationLimit {
		fmt.Fprintf(out, "F(%s%d%s) = %s%s...%s%s (truncated)\n",
			ui.ColorMagenta(), opts.N, ui.ColorReset(), ui.ColorGreen(), value[:edges], value[len(value)-edges:], ui.ColorReset())
		fmt.Fprintf(out, "%sTip: use -v to display the full value.%s\n", ui.ColorDim(), ui.ColorReset())
		return
	}
	shown := value
	if !opts.Hex {
		shown = format.FormatNumberString(value)
	}
	fmt.Fprintf(out, "F(%s%d%s) = %s%s%s\n", ui.ColorMagenta(), opts.N, ui.ColorReset(), ui.ColorGreen(), shown, ui.ColorReset())
}

// WriteResultToFile writes the result with a small commented header. It is a
// no-op when cfg.OutputFile is empty.
func WriteResultToFile(v *big.Int, duration time.Duration, algo string, cfg OutputConfig) (err error) {
	if cfg.OutputFile == "" {
		return nil
	}
	if dir := filepath.Dir(cfg.OutputFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	f, err := os.Create(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	n := cfg.Presentation.N
	fmt.Fprintf(f, "# Fibonacci number F(%d)\n", n)
	fmt.Fprintf(f, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(f, "# Algorithm: %s\n", algo)
	if cfg.RunID != "" {
		fmt.Fprintf(f, "# Run: %s\n", cfg.RunID)
	}
	fmt.Fprintf(f, "# Duration: %s\n", duration)
	fmt.Fprintf(f, "# Bits: %d\n", v.BitLen())
	fmt.Fprintf(f, "# Digits: %d\n\n", len(v.String()))
	_, err = fmt.Fprintf(f, "F(%d) =\n%s\n", n, FormatValue(v, cfg.Presentation.Hex))
	return err
}

// DisplayResultWithConfig prints the result in the configured mode and
// saves it if an output file is set.
func DisplayResultWithConfig(out io.Writer, v *big.Int, duration time.Duration, algo string, cfg OutputConfig) error {
	if cfg.Quiet {
		DisplayQuietResult(out, v, cfg.Presentation.Hex)
	} else {
		DisplayResult(v, duration, cfg.Presentation, out)
	}
	if cfg.OutputFile == "" {
		return nil
	}
	if err := WriteResultToFile(v, duration, algo, cfg); err != nil {
		return err
	}
	if !cfg.Quiet {
		DisplaySaved(out, cfg.OutputFile)
	}
	return nil
}

// DisplaySaved confirms that the result was written to path.
func DisplaySaved(out io.Writer, path string) {
	fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n", ui.ColorGreen(), ui.ColorCyan(), path, ui.ColorReset())
}

// QuietPresenter prints only the agreed value. Status lines of the
// comparison go to the writer passed by the caller, which quiet mode
// discards, while the value goes to Out.
type QuietPresenter struct {
	Out io.Writer
}

var (
	_ orchestration.ResultPresenter = QuietPresenter{}
	_ orchestration.ErrorHandler    = QuietPresenter{}
)

func (QuietPresenter) PresentComparisonTable([]orchestration.CalculationResult, io.Writer) {}

func (p QuietPresenter) PresentResult(result orchestration.CalculationResult, opts orchestration.PresentationOptions, _ io.Writer) {
	DisplayQuietResult(p.Out, result.Result, opts.Hex)
}

func (QuietPresenter) HandleError(err error, duration time.Duration, _ io.Writer) int {
	return CLIResultPresenter{}.HandleError(err, duration, io.Discard)
}
