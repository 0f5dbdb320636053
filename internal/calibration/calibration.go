// Package calibration measures the schoolbook to Karatsuba crossover on the
// current machine and persists it as a profile loaded at start-up.
package calibration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/agbru/fibnum/internal/config"
	apperrors "github.com/agbru/fibnum/internal/errors"
	"github.com/agbru/fibnum/internal/format"
	"github.com/agbru/fibnum/internal/logging"
)

// LimbWidths are the widths measured by a calibration run.
var LimbWidths = []int{8, 16, 32, 64}

// MaxProfileAge is the age after which a loaded profile is reported as
// stale. Stale profiles are still applied.
const MaxProfileAge = 90 * 24 * time.Hour

// runner carries the knobs of a calibration run.
type runner struct {
	widths []int
	sizes  func(limbBits int) []int
	rounds int
	seed   uint64
	logger logging.Logger
}

func defaultRunner() runner {
	return runner{
		widths: LimbWidths,
		sizes:  GenerateCandidateSizes,
		rounds: defaultRounds,
		seed:   1,
		logger: logging.NewZerologAdapter(log.Logger.With().Str("component", "calibration").Logger()),
	}
}

// RunCalibration measures every limb width, prints the results and saves the
// profile to cfg.CalibrationProfile (or the default path). It returns an
// exit code.
func RunCalibration(ctx context.Context, out io.Writer, cfg config.AppConfig) int {
	return defaultRunner().run(ctx, out, profilePath(cfg.CalibrationProfile))
}

func (r runner) run(ctx context.Context, out io.Writer, path string) int {
	fmt.Fprintf(out, "--- Calibration: schoolbook vs Karatsuba crossover ---\n")
	start := time.Now()
	rng := rand.New(rand.NewPCG(r.seed, r.seed^0x9e3779b97f4a7c15))
	profile := NewProfile()

	for _, bits := range r.widths {
		samples, err := Measure(ctx, bits, r.sizes(bits), r.rounds, rng)
		if err != nil {
			r.logger.Error("calibration interrupted", err, logging.Int("limb_bits", bits))
			fmt.Fprintf(out, "Calibration interrupted: %v\n", err)
			if errors.Is(err, context.DeadlineExceeded) {
				return apperrors.ExitErrorTimeout
			}
			return apperrors.ExitErrorCanceled
		}
		threshold := PickCrossover(samples, bits)
		profile.SetThreshold(bits, threshold)
		r.logger.Debug("calibrated width", logging.Int("limb_bits", bits), logging.Int("threshold", threshold), logging.Int("samples", len(samples)))
		printCalibrationResults(out, bits, samples, threshold)
	}

	elapsed := time.Since(start)
	profile.CalibratedAt = time.Now()
	profile.CalibrationTime = elapsed.String()
	printCalibrationOutput(out, profile, elapsed)

	if err := profile.SaveProfile(path); err != nil {
		r.logger.Error("saving calibration profile", err, logging.String("path", path))
		fmt.Fprintf(out, "Could not save the calibration profile: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	fmt.Fprintf(out, "Profile saved to %s\n", path)
	return apperrors.ExitSuccess
}

// LoadCachedCalibration applies the threshold saved for cfg.LimbBits. An
// explicit threshold in cfg wins, and a missing or mismatched profile leaves
// cfg unchanged. loaded reports whether the profile was applied.
func LoadCachedCalibration(cfg config.AppConfig, path string) (updated config.AppConfig, loaded bool) {
	if cfg.KaratsubaThreshold != 0 {
		return cfg, false
	}
	path = profilePath(path)
	profile, err := loadProfile(path)
	if err != nil || !profile.IsValid() {
		return cfg, false
	}
	threshold, ok := profile.Threshold(cfg.LimbBits)
	if !ok {
		return cfg, false
	}
	if profile.IsStale(MaxProfileAge) {
		log.Debug().Str("path", path).Time("calibrated_at", profile.CalibratedAt).Msg("calibration profile is stale, run -calibrate to refresh it")
	}
	cfg.KaratsubaThreshold = threshold
	return cfg, true
}

func profilePath(path string) string {
	if path == "" {
		return GetDefaultProfilePath()
	}
	return path
}

// formatSampleDuration is the duration column of the results table.
func formatSampleDuration(d time.Duration) string {
	if d <= 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}
