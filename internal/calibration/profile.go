package calibration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"
)

const (
	// CurrentProfileVersion is bumped whenever the measurement changes in a
	// way that invalidates saved thresholds.
	CurrentProfileVersion = 1

	// DefaultProfileFileName is the file name of the profile in the home
	// directory.
	DefaultProfileFileName = ".fibnum_calibration.json"
)

// CalibrationProfile is the persisted result of a calibration run.
type CalibrationProfile struct {
	NumCPU          int       `json:"num_cpu"`
	GOARCH          string    `json:"goarch"`
	GOOS            string    `json:"goos"`
	GoVersion       string    `json:"go_version"`
	WordSize        int       `json:"word_size"`
	ProfileVersion  int       `json:"profile_version"`
	CalibratedAt    time.Time `json:"calibrated_at"`
	CalibrationTime string    `json:"calibration_time,omitempty"`

	// KaratsubaThresholds maps a limb width in bits to its crossover in limbs.
	KaratsubaThresholds map[int]int `json:"karatsuba_thresholds"`
}

// NewProfile returns an empty profile describing the current machine.
func NewProfile() *CalibrationProfile {
	return &CalibrationProfile{
		NumCPU:              runtime.NumCPU(),
		GOARCH:              runtime.GOARCH,
		GOOS:                runtime.GOOS,
		GoVersion:           runtime.Version(),
		WordSize:            32 << (^uint(0) >> 63),
		ProfileVersion:      CurrentProfileVersion,
		CalibratedAt:        time.Now(),
		KaratsubaThresholds: make(map[int]int),
	}
}

// Threshold returns the crossover recorded for limbBits.
func (p *CalibrationProfile) Threshold(limbBits int) (int, bool) {
	if p == nil {
		return 0, false
	}
	t, ok := p.KaratsubaThresholds[limbBits]
	return t, ok && t > 0
}

// SetThreshold records the crossover for limbBits.
func (p *CalibrationProfile) SetThreshold(limbBits, threshold int) {
	if p.KaratsubaThresholds == nil {
		p.KaratsubaThresholds = make(map[int]int)
	}
	p.KaratsubaThresholds[limbBits] = threshold
}

// IsValid reports whether the profile was measured on hardware matching the
// current process.
func (p *CalibrationProfile) IsValid() bool {
	if p == nil {
		return false
	}
	return p.ProfileVersion == CurrentProfileVersion &&
		p.NumCPU == runtime.NumCPU() &&
		p.GOARCH == runtime.GOARCH &&
		p.WordSize == 32<<(^uint(0)>>63)
}

// IsStale reports whether the profile is older than maxAge.
func (p *CalibrationProfile) IsStale(maxAge time.Duration) bool {
	if p == nil {
		return true
	}
	return time.Since(p.CalibratedAt) > maxAge
}

func (p *CalibrationProfile) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "calibration profile v%d (%s/%s, %d CPUs, %s, calibrated %s)",
		p.ProfileVersion, p.GOOS, p.GOARCH, p.NumCPU, p.GoVersion, p.CalibratedAt.Format(time.RFC3339))
	widths := make([]int, 0, len(p.KaratsubaThresholds))
	for w := range p.KaratsubaThresholds {
		widths = append(widths, w)
	}
	slices.Sort(widths)
	for _, w := range widths {
		fmt.Fprintf(&b, "\n  u%-2d karatsuba=%d limbs", w, p.KaratsubaThresholds[w])
	}
	return b.String()
}

// SaveProfile writes the profile as indented JSON, creating the parent
// directory when needed.
func (p *CalibrationProfile) SaveProfile(path string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding calibration profile: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating profile directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing calibration profile: %w", err)
	}
	return nil
}

func loadProfile(path string) (*CalibrationProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p CalibrationProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding calibration profile %s: %w", path, err)
	}
	return &p, nil
}

// LoadOrCreateProfile loads the profile at path. A missing, unreadable or
// invalid profile yields a fresh one and loaded == false.
func LoadOrCreateProfile(path string) (profile *CalibrationProfile, loaded bool) {
	p, err := loadProfile(path)
	if err != nil || !p.IsValid() {
		return NewProfile(), false
	}
	return p, true
}

// GetDefaultProfilePath returns ~/.fibnum_calibration.json, or the file name
// alone when the home directory is unknown.
func GetDefaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultProfileFileName
	}
	return filepath.Join(home, DefaultProfileFileName)
}
