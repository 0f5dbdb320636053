// Package app wires configuration, calibration and the run modes of fibnum
// together.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/agbru/fibnum/internal/bignum"
	"github.com/agbru/fibnum/internal/calibration"
	"github.com/agbru/fibnum/internal/cli"
	"github.com/agbru/fibnum/internal/config"
	apperrors "github.com/agbru/fibnum/internal/errors"
	"github.com/agbru/fibnum/internal/fibonacci"
	"github.com/agbru/fibnum/internal/logging"
	"github.com/agbru/fibnum/internal/orchestration"
	"github.com/agbru/fibnum/internal/tui"
	"github.com/agbru/fibnum/internal/ui"
)

// Application represents the fibnum application instance.
type Application struct {
	Config    config.AppConfig
	Factory   fibonacci.CalculatorFactory
	ErrWriter io.Writer
	// In is the REPL input. Nil means os.Stdin.
	In io.Reader
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom CalculatorFactory for the application.
func WithFactory(f fibonacci.CalculatorFactory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithInput sets the reader used by the interactive mode.
func WithInput(r io.Reader) AppOption {
	return func(a *Application) { a.In = r }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = fibonacci.NewDefaultFactory()
	}

	programName := "fibnum"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Factory.List())
	if err != nil {
		return nil, err
	}

	if cfgWithProfile, loaded := calibration.LoadCachedCalibration(cfg, cfg.CalibrationProfile); loaded {
		cfg = cfgWithProfile
	} else {
		cfg = config.ApplyAdaptiveThresholds(cfg)
	}

	app.Config = cfg
	return app, nil
}

// Run executes the application in the configured mode and returns the exit
// code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}
	if a.Config.ShowVersion {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}

	logging.Configure(a.ErrWriter, a.Config.Debug, a.Config.Quiet, false)
	ui.InitTheme(a.Config.NoColor)

	if a.Config.Calibrate {
		return a.runCalibration(ctx, out)
	}
	if a.Config.Interactive {
		return a.runREPL(ctx, out)
	}
	if a.Config.TUI {
		return a.runTUI(ctx, out)
	}
	return a.runCalculate(ctx, out)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

func (a *Application) runCalibration(ctx context.Context, out io.Writer) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()
	return calibration.RunCalibration(ctx, out, a.Config)
}

// runREPL starts the interactive bignum calculator. Each fib command is
// bounded by the configured timeout rather than the whole session.
func (a *Application) runREPL(ctx context.Context, out io.Writer) int {
	bignum.SetKaratsubaThreshold(a.Config.KaratsubaThreshold)
	repl := cli.NewREPL(a.Factory, cli.REPLConfig{
		LimbBits: a.Config.LimbBits,
		Algo:     a.replAlgo(),
		Timeout:  a.Config.Timeout,
		Hex:      a.Config.HexOutput,
	})
	in := a.In
	if in == nil {
		in = os.Stdin
	}
	repl.SetInput(in)
	repl.SetLogger(logging.NewZerologAdapter(log.Logger.With().Str("component", "repl").Logger()))
	repl.SetOutput(out)
	repl.Start(ctx)
	return apperrors.ExitSuccess
}

// replAlgo maps the -algo selector to a single calculator; selectors that
// name several calculators leave the choice to the REPL.
func (a *Application) replAlgo() string {
	names := a.Config.AlgoNames()
	if len(names) != 1 || names[0] == config.AlgoAll || names[0] == config.AlgoAuto {
		return ""
	}
	return names[0]
}

// runTUI launches the interactive dashboard.
func (a *Application) runTUI(ctx context.Context, _ io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	calculatorsToRun, err := orchestration.GetCalculatorsToRun(a.Config, a.Factory)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Configuration error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return tui.Run(ctx, calculatorsToRun, a.Config, Version)
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// ExitCodeForError maps an error returned by New to a process exit code.
func ExitCodeForError(err error) int {
	if err == nil || IsHelpError(err) {
		return apperrors.ExitSuccess
	}
	return apperrors.ExitErrorConfig
}
