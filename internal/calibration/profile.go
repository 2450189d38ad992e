// Package calibration scales the iteration count toward a target wall time.
// A single-threaded increment-cost measurement is cached in a JSON profile so
// repeated runs on the same hardware skip the measurement.
package calibration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

const (
	// CurrentProfileVersion invalidates cached profiles when the measurement
	// methodology changes.
	CurrentProfileVersion = 1

	// DefaultProfileFileName is the profile cache file in the home directory.
	DefaultProfileFileName = ".racedemo_calibration.json"

	// DefaultMaxProfileAge is how long a cached profile stays usable.
	DefaultMaxProfileAge = 30 * 24 * time.Hour
)

// CalibrationProfile captures the measured increment cost together with the
// hardware fingerprint it was measured on.
type CalibrationProfile struct {
	ProfileVersion int       `json:"profile_version"`
	NumCPU         int       `json:"num_cpu"`
	GOARCH         string    `json:"goarch"`
	GOOS           string    `json:"goos"`
	GoVersion      string    `json:"go_version"`
	WordSize       int       `json:"word_size"`
	CalibratedAt   time.Time `json:"calibrated_at"`

	// IncrementCostNs is the measured cost of one unsynchronized increment,
	// in nanoseconds.
	IncrementCostNs float64 `json:"increment_cost_ns"`
	// SampleIterations is the number of increments used for the measurement.
	SampleIterations int64 `json:"sample_iterations"`
}

// NewProfile creates a profile stamped with the current hardware fingerprint.
func NewProfile() *CalibrationProfile {
	return &CalibrationProfile{
		ProfileVersion: CurrentProfileVersion,
		NumCPU:         runtime.NumCPU(),
		GOARCH:         runtime.GOARCH,
		GOOS:           runtime.GOOS,
		GoVersion:      runtime.Version(),
		WordSize:       32 << (^uint(0) >> 63),
		CalibratedAt:   time.Now(),
	}
}

// IsValid reports whether the profile matches the current hardware and
// profile version. A profile measured on different hardware is useless.
func (p *CalibrationProfile) IsValid() bool {
	if p == nil {
		return false
	}
	return p.ProfileVersion == CurrentProfileVersion &&
		p.NumCPU == runtime.NumCPU() &&
		p.GOARCH == runtime.GOARCH &&
		p.GOOS == runtime.GOOS &&
		p.WordSize == 32<<(^uint(0)>>63)
}

// IsStale reports whether the profile is older than maxAge.
func (p *CalibrationProfile) IsStale(maxAge time.Duration) bool {
	if p == nil {
		return true
	}
	return time.Since(p.CalibratedAt) > maxAge
}

// String renders a one-line summary for verbose output.
func (p *CalibrationProfile) String() string {
	return fmt.Sprintf("calibration profile: %s/%s, %d CPUs, %.2f ns/increment (measured %s, %d samples)",
		p.GOOS, p.GOARCH, p.NumCPU, p.IncrementCostNs,
		p.CalibratedAt.Format(time.RFC3339), p.SampleIterations)
}

// SaveProfile writes the profile as JSON, creating parent directories.
func (p *CalibrationProfile) SaveProfile(path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create profile directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return nil
}

// loadProfile reads and parses a profile file.
func loadProfile(path string) (*CalibrationProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	var p CalibrationProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	return &p, nil
}

// LoadOrCreateProfile loads the profile at path if it exists, is valid for
// this hardware, and parses cleanly; otherwise it returns a fresh profile.
// The second return value reports whether an existing profile was loaded.
func LoadOrCreateProfile(path string) (*CalibrationProfile, bool) {
	p, err := loadProfile(path)
	if err != nil || !p.IsValid() {
		return NewProfile(), false
	}
	return p, true
}

// GetDefaultProfilePath returns the profile location in the user's home
// directory, falling back to the working directory when home is unknown.
func GetDefaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultProfileFileName
	}
	return filepath.Join(home, DefaultProfileFileName)
}
