// Package config loads the TOML run-configuration file described in
// SPEC_FULL.md's ambient-stack section: where the simulation source lives,
// how long and with what RNG seed to run it, and how the monitoring server
// and run log are set up. Grounded on internal/tqw/marshaling.go and
// internal/game/marshaling.go, which load TOML-backed world data the same
// way in the teacher -- a plain toml-tagged struct decoded in one shot via
// toml.Unmarshal, rather than BurntSushi/toml's streaming Decoder API.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// RunConfig is the top-level shape of a run's TOML configuration file.
type RunConfig struct {
	// Source is the path to the simulation's .sim DSL source file.
	Source string `toml:"source"`

	// Seed seeds the run's RNG (internal/market's distributions). Any
	// value, 0 included, counts as a configured seed once the "seed" key
	// is present; since TOML's absent-key zero value would otherwise be
	// indistinguishable from an explicit 0, Seeded reports whether the
	// key was given at all.
	Seed int64 `toml:"seed"`

	// Ticks is the number of discrete simulation ticks to run.
	Ticks int `toml:"ticks"`

	// TickSleepMS pauses this many milliseconds between ticks of a
	// straight-through (non-interactive) run, for watching it live; the
	// interactive REPL does not use it. Zero means run as fast as possible.
	TickSleepMS int `toml:"tick_sleep_ms"`

	Monitor MonitorConfig `toml:"monitor"`
	Log     LogConfig     `toml:"log"`

	// seedSet distinguishes an explicitly-configured seed of 0 from no
	// seed key being present at all; toml.Unmarshal never touches it.
	seedSet bool
}

// MonitorConfig configures internal/api's read-only monitoring HTTP server.
type MonitorConfig struct {
	// Enabled turns the monitoring server on. Off by default: a config
	// file with no [monitor] table at all still produces a valid,
	// monitor-less RunConfig.
	Enabled bool `toml:"enabled"`

	// ListenAddr is the address the server binds, e.g. ":8080".
	ListenAddr string `toml:"listen_addr"`

	// AdminUser/AdminPasswordHash authenticate the write-adjacent admin
	// endpoints (internal/api's token issuance). The hash is a bcrypt
	// hash, never a plaintext password, so a committed config file never
	// carries a recoverable secret.
	AdminUser         string `toml:"admin_user"`
	AdminPasswordHash string `toml:"admin_password_hash"`

	// JWTSecret signs the bearer tokens internal/api issues.
	JWTSecret string `toml:"jwt_secret"`
}

// LogConfig configures internal/persist's per-run sqlite log.
type LogConfig struct {
	// Enabled turns the sqlite run log on.
	Enabled bool `toml:"enabled"`

	// SQLitePath is the file the run log is written to.
	SQLitePath string `toml:"sqlite_path"`
}

// Seeded reports whether a seed was explicitly given (distinct from the
// absent-key zero value).
func (c RunConfig) Seeded() bool { return c.seedSet }

// seedSet is unexported and so untouched by toml.Unmarshal; Unmarshal sets it
// once it has confirmed the "seed" key was actually present.
type rawConfigCheck struct {
	Seed *int64 `toml:"seed"`
}

// Load reads and decodes a TOML run-configuration file at path.
func Load(path string) (RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunConfig{}, fmt.Errorf("%q: reading config from disk: %w", path, err)
	}
	return Unmarshal(data)
}

// Unmarshal decodes a RunConfig from raw TOML bytes.
func Unmarshal(data []byte) (RunConfig, error) {
	var cfg RunConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return RunConfig{}, fmt.Errorf("decoding run configuration: %w", err)
	}

	var seedCheck rawConfigCheck
	if err := toml.Unmarshal(data, &seedCheck); err != nil {
		return RunConfig{}, fmt.Errorf("decoding run configuration: %w", err)
	}
	cfg.seedSet = seedCheck.Seed != nil

	if cfg.Source == "" {
		return RunConfig{}, fmt.Errorf("run configuration: 'source' key must be set to the simulation file path")
	}
	if cfg.Ticks <= 0 {
		return RunConfig{}, fmt.Errorf("run configuration: 'ticks' must be a positive integer")
	}

	return cfg, nil
}
