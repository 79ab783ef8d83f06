package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ConfigFileName)

	cfg := DefaultConfig()
	cfg.Interface = "eth0"
	cfg.Units = UnitsSI
	require.NoError(t, Save(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# netbwmon configuration")
	assert.Contains(t, string(data), "interface: eth0")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSetValue(t *testing.T) {
	tests := []struct {
		name         string
		initialYAML  string
		key          string
		value        string
		wantContains []string
		wantErr      string
	}{
		{
			name:         "replace top-level value and keep comments",
			initialYAML:  "# my settings\ninterface: eth0\ndelay: 1\n",
			key:          "interface",
			value:        "wlan0",
			wantContains: []string{"# my settings", "interface: wlan0", "delay: 1"},
		},
		{
			name:         "add nested value to existing section",
			initialYAML:  "stats:\n  enabled: true\n",
			key:          "stats.every",
			value:        "5",
			wantContains: []string{"enabled: true", "every: 5"},
		},
		{
			name:         "create missing section",
			initialYAML:  "delay: 1\n",
			key:          "metrics.addr",
			value:        ":9273",
			wantContains: []string{"metrics:", "addr:", "9273"},
		},
		{
			name:         "empty file",
			initialYAML:  "",
			key:          "units",
			value:        "si",
			wantContains: []string{"units: si"},
		},
		{
			name:        "key is a section",
			initialYAML: "stats:\n  enabled: true\n",
			key:         "stats",
			value:       "x",
			wantErr:     "is a section",
		},
		{
			name:        "path through a scalar",
			initialYAML: "delay: 1\n",
			key:         "delay.seconds",
			value:       "2",
			wantErr:     "not a section",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ConfigFileName)
			require.NoError(t, os.WriteFile(path, []byte(tt.initialYAML), 0644))

			err := SetValue(path, tt.key, tt.value)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			for _, want := range tt.wantContains {
				assert.Contains(t, string(data), want)
			}
		})
	}
}

func TestSetValue_MissingFile(t *testing.T) {
	err := SetValue(filepath.Join(t.TempDir(), "missing.yaml"), "delay", "1")
	assert.Error(t, err)
}

func TestSetValue_LoadsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, Save(path, DefaultConfig()))
	require.NoError(t, SetValue(path, "stats.every", "7"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Stats.Every)
}
