package doctor

import (
	"fmt"
	"path/filepath"

	"github.com/rileyhilliard/netbwmon/internal/config"
)

// ConfigFileCheck reports which config file is in effect. Running on
// defaults is fine, so a missing file is only a warning.
type ConfigFileCheck struct {
	ConfigPath string // Explicit path, or empty to search
}

func (c *ConfigFileCheck) Name() string     { return "config_file" }
func (c *ConfigFileCheck) Category() string { return CategoryConfig }

func (c *ConfigFileCheck) Run() CheckResult {
	path, err := config.Find(c.ConfigPath)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Error finding config: %v", firstLine(err)),
			Suggestion: "Check the --config path",
		}
	}

	if path == "" {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "No config file, using built-in defaults",
			Suggestion: "Run 'netbwmon config init' to write " + config.ConfigFileName,
			Fixable:    true,
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Config file: %s", filepath.Base(path)),
	}
}

// Fix writes the default config to the current directory.
func (c *ConfigFileCheck) Fix() error {
	if c.ConfigPath != "" {
		return fmt.Errorf("explicit config path %s is not created automatically", c.ConfigPath)
	}
	return config.Save(config.ConfigFileName, config.DefaultConfig())
}

// ConfigSchemaCheck loads the effective configuration and validates it.
type ConfigSchemaCheck struct {
	ConfigPath string
}

func (c *ConfigSchemaCheck) Name() string     { return "config_schema" }
func (c *ConfigSchemaCheck) Category() string { return CategoryConfig }

func (c *ConfigSchemaCheck) Run() CheckResult {
	cfg, path, err := config.LoadOrDefault(c.ConfigPath)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Failed to load config: %s", firstLine(err)),
			Suggestion: "Check the YAML syntax in your config file",
		}
	}

	if err := config.Validate(cfg); err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    firstLine(err),
			Suggestion: "Fix the value with 'netbwmon config set <key> <value>'",
		}
	}

	msg := "Config is valid"
	if path == "" {
		msg = "Defaults and NETBWMON_* overrides are valid"
	}
	return CheckResult{Name: c.Name(), Status: StatusPass, Message: msg}
}

func (c *ConfigSchemaCheck) Fix() error { return nil }

// NewConfigChecks creates all config-related checks.
func NewConfigChecks(configPath string) []Check {
	return []Check{
		&ConfigFileCheck{ConfigPath: configPath},
		&ConfigSchemaCheck{ConfigPath: configPath},
	}
}
