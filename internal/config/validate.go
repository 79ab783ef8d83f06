package config

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rileyhilliard/netbwmon/internal/errors"
)

var (
	validUnits   = []string{UnitsBinary, UnitsSI}
	validColors  = []string{ColorAuto, ColorAlways, ColorNever}
	validModes   = []string{ModeRaw, ModeTUI}
	validSources = []string{SourceAuto, SourceProcFS, SourceGopsutil, SourceSSH}
	validLevels  = []string{"debug", "info", "warn", "warning", "error"}
)

// maxInterfaceName matches IFNAMSIZ-1 on Linux.
const maxInterfaceName = 15

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but netbwmon only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade netbwmon or lower the version field.")
	}

	if len(cfg.Interface) > maxInterfaceName {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Interface name '%s' is longer than %d characters", cfg.Interface, maxInterfaceName),
			"Check the interface name with 'netbwmon interfaces'.")
	}

	if !validDelay(cfg.Delay) {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Delay must be greater than zero, got %g", cfg.Delay),
			"Set 'delay' (or -d) to a positive number of seconds, e.g. 1 or 0.5.")
	}

	if err := oneOf("units", cfg.Units, validUnits); err != nil {
		return err
	}
	if err := oneOf("color", cfg.Color, validColors); err != nil {
		return err
	}
	if err := oneOf("ui.mode", cfg.UI.Mode, validModes); err != nil {
		return err
	}

	if cfg.Stats.Every < 1 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("stats.every must be at least 1, got %d", cfg.Stats.Every),
			"Check the 'stats' section in your .netbwmon.yaml.")
	}

	if err := validateSource(cfg.Source); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'source' section in your .netbwmon.yaml.")
	}

	if err := validateLogging(cfg.Logging); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'logging' section in your .netbwmon.yaml.")
	}

	return nil
}

// validDelay accepts finite positive delays that survive conversion to a
// non-zero time.Duration.
func validDelay(d float64) bool {
	if !(d > 0) || math.IsInf(d, 0) {
		return false
	}
	if d*float64(time.Second) >= math.MaxInt64 {
		return false
	}
	return time.Duration(math.Round(d*float64(time.Second))) > 0
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

func oneOf(key, value string, allowed []string) error {
	if contains(allowed, value) {
		return nil
	}
	return errors.New(errors.ErrConfig,
		fmt.Sprintf("Invalid %s '%s'", key, value),
		fmt.Sprintf("Use one of: %s.", strings.Join(allowed, ", ")))
}

func validateSource(s SourceConfig) error {
	if !contains(validSources, s.Kind) {
		return fmt.Errorf("invalid source.kind '%s' (use one of: %s)", s.Kind, strings.Join(validSources, ", "))
	}
	if s.Kind == SourceSSH {
		if strings.TrimSpace(s.Host) == "" {
			return fmt.Errorf("source.kind is 'ssh' but source.host is empty")
		}
		if s.Timeout <= 0 {
			return fmt.Errorf("source.timeout must be positive, got %s", s.Timeout)
		}
	}
	if s.Kind == SourceProcFS && s.ProcPath == "" {
		return fmt.Errorf("source.proc_path is required for the procfs source")
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	if !contains(validLevels, strings.ToLower(l.Level)) {
		return fmt.Errorf("invalid logging.level '%s'", l.Level)
	}
	if l.MaxSize < 0 || l.MaxBackups < 0 || l.MaxAge < 0 {
		return fmt.Errorf("logging rotation limits can't be negative")
	}
	return nil
}
