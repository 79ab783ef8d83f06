package sshutil

import (
	"bytes"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/kevinburke/ssh_config"
)

// Environment overrides for CI, applied only when the host string has no user@.
const (
	EnvSSHUser = "NETBWMON_SSH_USER"
	EnvSSHKey  = "NETBWMON_SSH_KEY"
)

// WarningHandler receives non-fatal SSH config warnings. Nil drops them,
// since the dashboard owns the terminal.
var WarningHandler func(message string)

var matchWarningOnce sync.Once

func emitWarning(message string) {
	if WarningHandler != nil {
		WarningHandler(message)
	}
}

// sshSettings holds resolved SSH connection parameters.
type sshSettings struct {
	hostname      string
	port          string
	user          string
	identityFile  string
	encryptedKeys []string
}

func (s *sshSettings) address() string {
	return net.JoinHostPort(s.hostname, s.port)
}

func resolveSSHSettings(host string) *sshSettings {
	return resolveSSHSettingsFrom(host, filepath.Join(homeDir(), ".ssh", "config"))
}

// resolveSSHSettingsFrom parses user@host:port and fills the gaps from the
// given ssh_config file.
func resolveSSHSettingsFrom(host, configPath string) *sshSettings {
	settings := &sshSettings{
		port: "22",
		user: currentUser(),
	}

	explicitUser := false
	if at := strings.Index(host, "@"); at != -1 {
		settings.user = host[:at]
		host = host[at+1:]
		explicitUser = true
	}
	if !explicitUser {
		if u := os.Getenv(EnvSSHUser); u != "" {
			settings.user = u
		}
	}

	if colon := strings.LastIndex(host, ":"); colon != -1 && isDigits(host[colon+1:]) {
		settings.port = host[colon+1:]
		host = host[:colon]
	}
	settings.hostname = host

	content, matchLine, err := preprocessSSHConfig(configPath)
	if err != nil {
		return settings
	}
	cfg, err := ssh_config.Decode(bytes.NewReader(content))
	if err != nil {
		return settings
	}

	found := false
	if v, _ := cfg.Get(host, "HostName"); v != "" {
		settings.hostname = v
		found = true
	}
	if v, _ := cfg.Get(host, "Port"); v != "" {
		settings.port = v
		found = true
	}
	if v, _ := cfg.Get(host, "User"); v != "" && !explicitUser {
		settings.user = v
		found = true
	}
	if v, _ := cfg.Get(host, "IdentityFile"); v != "" {
		settings.identityFile = expandPath(v)
		found = true
	}

	// The host may be defined after a Match block we had to cut off.
	if matchLine > 0 && !found {
		matchWarningOnce.Do(func() {
			emitWarning(fmt.Sprintf(
				"host '%s' not found in SSH config (Match block at line %d may hide later entries)",
				host, matchLine))
		})
	}

	return settings
}

// preprocessSSHConfig returns the config content up to the first Match
// directive, which ssh_config can't decode, and the 1-indexed line of that
// directive (0 if none).
func preprocessSSHConfig(configPath string) ([]byte, int, error) {
	content, err := os.ReadFile(configPath)
	if err != nil {
		return nil, 0, err
	}

	lines := strings.Split(string(content), "\n")
	for i, line := range lines {
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), "match ") {
			return []byte(strings.Join(lines[:i], "\n")), i + 1, nil
		}
	}
	return content, 0, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.Getenv("HOME")
	}
	return home
}

func currentUser() string {
	if user := os.Getenv("USER"); user != "" {
		return user
	}
	return "root"
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir(), path[2:])
	}
	return path
}
