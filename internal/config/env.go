// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set, for
// flags with aliases.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride maps an env key (without the FIBNUM_ prefix) to the flag
// names it shadows and a function that applies the value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

// envOverrides is the table of all environment variable overrides. Invalid
// numeric values are ignored.
var envOverrides = []envOverride{
	{"N", []string{"n"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.N = parsed
		}
	}},
	{"LIMB", []string{"limb"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.LimbBits = parsed
		}
	}},
	{"KARATSUBA", []string{"karatsuba"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.KaratsubaThreshold = parsed
		}
	}},
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Timeout = parsed
		}
	}},

	{"ALGO", []string{"algo"}, func(c *AppConfig, v string) { c.Algo = v }},
	{"OUTPUT", []string{"o", "output"}, func(c *AppConfig, v string) { c.OutputFile = v }},
	{"METRICS_FILE", []string{"metrics-file"}, func(c *AppConfig, v string) { c.MetricsFile = v }},
	{"CALIBRATION_PROFILE", []string{"calibration-profile"}, func(c *AppConfig, v string) { c.CalibrationProfile = v }},
	{"GC_CONTROL", []string{"gc-control"}, func(c *AppConfig, v string) { c.GCControl = v }},

	{"VERBOSE", []string{"v"}, func(c *AppConfig, v string) { c.Verbose = parseBoolEnv(v, c.Verbose) }},
	{"DETAILS", []string{"d", "details"}, func(c *AppConfig, v string) { c.Details = parseBoolEnv(v, c.Details) }},
	{"DEBUG", []string{"debug"}, func(c *AppConfig, v string) { c.Debug = parseBoolEnv(v, c.Debug) }},
	{"QUIET", []string{"quiet", "q"}, func(c *AppConfig, v string) { c.Quiet = parseBoolEnv(v, c.Quiet) }},
	{"CROSS_CHECK", []string{"c", "cross-check"}, func(c *AppConfig, v string) { c.CrossCheck = parseBoolEnv(v, c.CrossCheck) }},
	{"HEX", []string{"hex"}, func(c *AppConfig, v string) { c.HexOutput = parseBoolEnv(v, c.HexOutput) }},
	{"NO_COLOR", []string{"no-color"}, func(c *AppConfig, v string) { c.NoColor = parseBoolEnv(v, c.NoColor) }},
	{"INTERACTIVE", []string{"interactive"}, func(c *AppConfig, v string) { c.Interactive = parseBoolEnv(v, c.Interactive) }},
	{"TUI", []string{"tui"}, func(c *AppConfig, v string) { c.TUI = parseBoolEnv(v, c.TUI) }},
	{"CALIBRATE", []string{"calibrate"}, func(c *AppConfig, v string) { c.Calibrate = parseBoolEnv(v, c.Calibrate) }},
}

// parseBoolEnv accepts "true", "1", "yes" and "false", "0", "no", in any
// case. Other values leave defaultVal.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies FIBNUM_* variables to every setting whose flag
// was not given on the command line: flags > environment > defaults.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
