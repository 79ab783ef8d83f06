package config

import (
	"math"
	"time"
)

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Units values.
const (
	UnitsBinary = "binary"
	UnitsSI     = "si"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// UI modes.
const (
	ModeRaw = "raw"
	ModeTUI = "tui"
)

// Source kinds.
const (
	SourceAuto     = "auto"
	SourceProcFS   = "procfs"
	SourceGopsutil = "gopsutil"
	SourceSSH      = "ssh"
)

// Config represents the complete .netbwmon.yaml configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// Interface to monitor. Empty means detect the first active one.
	Interface string `yaml:"interface" mapstructure:"interface"`

	// Delay between samples in seconds. Fractions are allowed.
	Delay float64 `yaml:"delay" mapstructure:"delay"`

	// Units: "binary" (KiB, MiB) or "si" (kB, MB).
	Units string `yaml:"units" mapstructure:"units"`

	// Color mode: "auto", "always", or "never".
	// "auto" disables color when stdout is not a terminal or NO_COLOR is set.
	Color string `yaml:"color" mapstructure:"color"`

	Stats   StatsConfig   `yaml:"stats" mapstructure:"stats"`
	Source  SourceConfig  `yaml:"source" mapstructure:"source"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
	UI      UIConfig      `yaml:"ui" mapstructure:"ui"`
}

// StatsConfig controls the stats panel under the graphs.
type StatsConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// Every redraws the panel once per this many ticks.
	Every int `yaml:"every" mapstructure:"every"`
}

// SourceConfig selects where interface counters come from.
type SourceConfig struct {
	// Kind: "auto", "procfs", "gopsutil", or "ssh".
	Kind string `yaml:"kind" mapstructure:"kind"`

	// Host is an SSH target (hostname, user@host, or ssh_config alias) for kind "ssh".
	Host string `yaml:"host" mapstructure:"host"`

	// ProcPath is the net/dev file read by the procfs source.
	ProcPath string `yaml:"proc_path" mapstructure:"proc_path"`

	// Timeout bounds a single remote read.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// StrictHostKeyChecking verifies SSH host keys against ~/.ssh/known_hosts.
	StrictHostKeyChecking bool `yaml:"strict_host_key_checking" mapstructure:"strict_host_key_checking"`
}

// LoggingConfig controls the diagnostic log. Logs never go to the terminal
// while the dashboard is drawing.
type LoggingConfig struct {
	File       string `yaml:"file" mapstructure:"file"`
	Level      string `yaml:"level" mapstructure:"level"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"`
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"`
}

// MetricsConfig controls the optional Prometheus endpoint.
type MetricsConfig struct {
	// Addr is a listen address like ":9273". Empty disables the exporter.
	Addr string `yaml:"addr" mapstructure:"addr"`
}

// UIConfig selects the front end.
type UIConfig struct {
	// Mode: "raw" (direct terminal drawing) or "tui" (bubbletea).
	Mode string `yaml:"mode" mapstructure:"mode"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Delay:   1,
		Units:   UnitsBinary,
		Color:   ColorAuto,
		Stats: StatsConfig{
			Enabled: true,
			Every:   10,
		},
		Source: SourceConfig{
			Kind:                  SourceAuto,
			ProcPath:              "/proc/net/dev",
			Timeout:               5 * time.Second,
			StrictHostKeyChecking: true,
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		},
		UI: UIConfig{
			Mode: ModeRaw,
		},
	}
}

// Interval converts Delay to a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(math.Round(c.Delay * float64(time.Second)))
}

// UseSI reports whether SI units were selected.
func (c *Config) UseSI() bool {
	return c.Units == UnitsSI
}

// ColorsEnabled resolves the color mode against whether output is a terminal.
func (c *Config) ColorsEnabled(isTTY bool) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return isTTY
	}
}
