package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinOrNone(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		want  string
	}{
		{"nil slice returns (none)", nil, "(none)"},
		{"empty slice returns (none)", []string{}, "(none)"},
		{"single item returns item", []string{"eth0"}, "eth0"},
		{"multiple items joined with comma", []string{"eth0", "wlan0", "lo"}, "eth0, wlan0, lo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JoinOrNone(tt.items))
		})
	}
}

func TestJoinOrDefault(t *testing.T) {
	assert.Equal(t, "-", JoinOrDefault(nil, "-"))
	assert.Equal(t, "a, b", JoinOrDefault([]string{"a", "b"}, "-"))
}

func TestPluralize(t *testing.T) {
	assert.Equal(t, "interfaces", Pluralize(0, "interface", "interfaces"))
	assert.Equal(t, "interface", Pluralize(1, "interface", "interfaces"))
	assert.Equal(t, "interfaces", Pluralize(2, "interface", "interfaces"))
}

func TestTruncateBytes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"fits", "eth0", 15, "eth0"},
		{"exact", "abcd", 4, "abcd"},
		{"cut ascii", "enp0s31f6-long-name", 15, "enp0s31f6-long-"},
		{"zero capacity", "eth0", 0, ""},
		{"negative capacity", "eth0", -3, ""},
		{"does not split multibyte rune", "ab€", 4, "ab"},
		{"keeps whole multibyte rune", "ab€", 5, "ab€"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateBytes(tt.in, tt.max)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), max(tt.max, 0))
		})
	}
}
