// Package config parses the fibnum command line and environment into an
// AppConfig and validates it.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/fibnum/internal/errors"
	"github.com/agbru/fibnum/internal/fibonacci"
	"github.com/agbru/fibnum/internal/memory"
)

const (
	// EnvPrefix is the prefix for all environment variables used by fibnum.
	EnvPrefix = "FIBNUM_"
)

// Default configuration values.
const (
	// DefaultN is the default Fibonacci index to calculate.
	DefaultN uint64 = 1_000_000
	// DefaultTimeout is the default calculation timeout.
	DefaultTimeout = 5 * time.Minute
	// DefaultAlgo selects the fast-doubling calculator for the -limb width.
	DefaultAlgo = "auto"
	// DefaultLimbBits is the default limb width.
	DefaultLimbBits = 64
	// DefaultGCControl is the default garbage collector mode.
	DefaultGCControl = string(memory.GCModeAuto)
)

// AlgoAll and AlgoAuto are the algorithm selectors accepted besides the
// calculator names.
const (
	AlgoAll  = "all"
	AlgoAuto = "auto"
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// N is the index of the Fibonacci number to be calculated.
	N uint64
	// Algo is "auto", "all", or a comma-separated list of calculator names.
	Algo string
	// LimbBits is the limb width used by "auto" and by the REPL.
	LimbBits int
	// KaratsubaThreshold is the multiplication crossover in limbs. Zero means
	// the calibrated profile, or a per-width estimate.
	KaratsubaThreshold int
	// Timeout sets the maximum duration for the calculation.
	Timeout time.Duration
	// Verbose, if true, displays the full calculated number.
	Verbose bool
	// Details, if true, provides a detailed report including performance metrics.
	Details bool
	// Debug enables debug-level logging.
	Debug bool
	// Quiet mode prints only the result, for scripts.
	Quiet bool
	// CrossCheck verifies every result against the math/big reference.
	CrossCheck bool
	// OutputFile, if specified, saves the result to this file path.
	OutputFile string
	// HexOutput, if true, displays the result in hexadecimal format.
	HexOutput bool
	// NoColor disables colors. NO_COLOR is honored too.
	NoColor bool
	// Interactive starts the bignum REPL.
	Interactive bool
	// TUI starts the interactive dashboard.
	TUI bool
	// MetricsFile, if set, receives the prometheus metrics of the run.
	MetricsFile string
	// Calibrate runs the Karatsuba crossover calibration.
	Calibrate bool
	// CalibrationProfile is the path of the calibration profile. Empty means
	// ~/.fibnum_calibration.json.
	CalibrationProfile string
	// GCControl is "auto", "aggressive" or "disabled".
	GCControl string
	// Completion generates a shell completion script: bash, zsh or fish.
	Completion string
	// ShowVersion prints version information and exits.
	ShowVersion bool
}

// ToCalculationOptions converts the configuration into fibonacci.Options.
func (c AppConfig) ToCalculationOptions() fibonacci.Options {
	return fibonacci.Options{KaratsubaThreshold: c.KaratsubaThreshold}
}

// AlgoNames splits the -algo value into calculator names.
func (c AppConfig) AlgoNames() []string {
	var names []string
	for _, name := range strings.Split(c.Algo, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Validate checks the semantic consistency of the configuration.
//
// Parameters:
//   - availableAlgos: The registered calculator names.
//
// Returns:
//   - error: A ConfigError if the configuration is invalid, nil otherwise.
func (c AppConfig) Validate(availableAlgos []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if !fibonacci.ValidLimbWidth(c.LimbBits) {
		return apperrors.NewConfigError("unsupported limb width %d (want 8, 16, 32 or 64)", c.LimbBits)
	}
	if c.KaratsubaThreshold < 0 {
		return apperrors.NewConfigError("karatsuba threshold cannot be negative: %d", c.KaratsubaThreshold)
	}
	if _, err := memory.ParseGCMode(c.GCControl); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	if c.Completion != "" && !slices.Contains(completionShells, c.Completion) {
		return apperrors.NewConfigError("unsupported shell %q for completion (want %s)", c.Completion, strings.Join(completionShells, ", "))
	}
	if c.Interactive && c.TUI {
		return apperrors.NewConfigError("-interactive and -tui are mutually exclusive")
	}
	names := c.AlgoNames()
	if len(names) == 0 {
		return apperrors.NewConfigError("no algorithm selected")
	}
	for _, name := range names {
		if name == AlgoAll || name == AlgoAuto {
			if len(names) > 1 {
				return apperrors.NewConfigError("'%s' cannot be combined with other algorithms", name)
			}
			continue
		}
		if !slices.Contains(availableAlgos, name) {
			return apperrors.NewConfigError("unrecognized algorithm: '%s'. Valid algorithms are: 'auto', 'all' or [%s]", name, strings.Join(availableAlgos, ", "))
		}
	}
	return nil
}

var completionShells = []string{"bash", "zsh", "fish"}

// ParseConfig parses the command-line arguments and environment into an
// AppConfig and validates it.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: The command-line arguments, typically os.Args[1:].
//   - errorWriter: Where parsing errors and usage information are printed.
//   - availableAlgos: The registered calculator names.
//
// Returns:
//   - AppConfig: The populated configuration struct.
//   - error: flag.ErrHelp, a parse error, or a ConfigError.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	algoHelp := fmt.Sprintf("Algorithm: 'auto' (fast doubling at -limb width), 'all', or a comma list of [%s].", strings.Join(availableAlgos, ", "))

	config := AppConfig{}
	fs.Uint64Var(&config.N, "n", DefaultN, "Index n of the Fibonacci number to calculate.")
	fs.StringVar(&config.Algo, "algo", DefaultAlgo, algoHelp)
	fs.IntVar(&config.LimbBits, "limb", DefaultLimbBits, "Limb width in bits: 8, 16, 32 or 64.")
	fs.IntVar(&config.KaratsubaThreshold, "karatsuba", 0, "Karatsuba threshold in limbs (0: calibrated profile or estimate).")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time for the calculation.")
	fs.BoolVar(&config.Verbose, "v", false, "Display the full value of the result (can be very long).")
	fs.BoolVar(&config.Details, "d", false, "Display performance details and result metadata.")
	fs.BoolVar(&config.Details, "details", false, "Alias for -d.")
	fs.BoolVar(&config.Debug, "debug", false, "Enable debug logging.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - minimal output for scripts.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.CrossCheck, "c", false, "Cross-check every result against the math/big reference.")
	fs.BoolVar(&config.CrossCheck, "cross-check", false, "Alias for -c.")
	fs.StringVar(&config.OutputFile, "o", "", "Output file path for the result.")
	fs.StringVar(&config.OutputFile, "output", "", "Alias for -o.")
	fs.BoolVar(&config.HexOutput, "hex", false, "Display the result in hexadecimal.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.BoolVar(&config.Interactive, "interactive", false, "Start the interactive bignum REPL.")
	fs.BoolVar(&config.TUI, "tui", false, "Start the interactive dashboard.")
	fs.StringVar(&config.MetricsFile, "metrics-file", "", "Write prometheus metrics of the run to this file.")
	fs.BoolVar(&config.Calibrate, "calibrate", false, "Measure the Karatsuba crossover and save a calibration profile.")
	fs.StringVar(&config.CalibrationProfile, "calibration-profile", "", "Path to the calibration profile (default: ~/.fibnum_calibration.json).")
	fs.StringVar(&config.GCControl, "gc-control", DefaultGCControl, "Garbage collector mode: auto, aggressive or disabled.")
	fs.StringVar(&config.Completion, "completion", "", "Generate a shell completion script (bash, zsh, fish).")
	fs.BoolVar(&config.ShowVersion, "version", false, "Print version information and exit.")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&config, fs)

	config.Algo = strings.ToLower(config.Algo)
	if err := config.Validate(availableAlgos); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		var configErr apperrors.ConfigError
		if errors.As(err, &configErr) {
			return AppConfig{}, configErr
		}
		return AppConfig{}, err
	}
	return config, nil
}
