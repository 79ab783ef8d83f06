package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodes(t *testing.T) {
	codes := []string{
		ErrConfig,
		ErrInterface,
		ErrCounter,
		ErrTerminal,
		ErrSSH,
		ErrExec,
	}

	seen := make(map[string]bool)
	for _, code := range codes {
		assert.NotEmpty(t, code, "error code should not be empty")
		assert.False(t, seen[code], "error code %q should be unique", code)
		seen[code] = true
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		message    string
		suggestion string
	}{
		{
			name:       "config error",
			code:       ErrConfig,
			message:    "Invalid configuration in .netbwmon.yaml",
			suggestion: "Check your configuration file syntax",
		},
		{
			name:       "terminal error",
			code:       ErrTerminal,
			message:    "Terminal is too small",
			suggestion: "Resize the terminal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, tt.suggestion)

			require.NotNil(t, err)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.suggestion, err.Suggestion)
			assert.Nil(t, err.Cause)
		})
	}
}

func TestErrorFormatting(t *testing.T) {
	cause := fmt.Errorf("open /proc/net/dev: no such file or directory")
	err := WrapWithCode(cause, ErrCounter, "Failed to read counters", "Check procfs is mounted")

	out := err.Error()
	lines := strings.Split(out, "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, "✗ Failed to read counters", lines[0])
	assert.Contains(t, out, cause.Error())
	assert.Contains(t, out, "Check procfs is mounted")
	assert.Less(t, strings.Index(out, cause.Error()), strings.Index(out, "Check procfs"))
}

func TestErrorFormatting_NestedCauses(t *testing.T) {
	root := errors.New("dial tcp 10.0.0.1:22: connection refused")
	inner := WrapWithCode(root, ErrSSH, "Can't reach 'router'", "Check that sshd is running on router.")

	tests := []struct {
		name        string
		err         *Error
		wantCause   string
		wantSuggest string
	}{
		{
			name:        "outer suggestion wins",
			err:         WrapWithCode(inner, ErrSSH, "Failed to connect to router", "Check that 'ssh router' works."),
			wantCause:   "Can't reach 'router': dial tcp 10.0.0.1:22: connection refused",
			wantSuggest: "Check that 'ssh router' works.",
		},
		{
			name:        "inner suggestion fills the gap",
			err:         WrapWithCode(inner, ErrSSH, "Failed to connect to router", ""),
			wantCause:   "Can't reach 'router': dial tcp 10.0.0.1:22: connection refused",
			wantSuggest: "Check that sshd is running on router.",
		},
		{
			name:        "leaf structured cause",
			err:         WrapWithCode(New(ErrConfig, "Bad delay", "Use 1."), ErrConfig, "Config is invalid", ""),
			wantCause:   "Bad delay",
			wantSuggest: "Use 1.",
		},
	}
	assert.ErrorIs(t, tests[0].err, root, "flattening the text keeps the chain")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.err.Error()
			assert.Equal(t, 1, strings.Count(out, "✗"), out)
			assert.Contains(t, out, "\n  "+tt.wantCause+"\n")
			assert.Contains(t, out, "\n  "+tt.wantSuggest+"\n")
		})
	}
}

func TestWrapDefaultsToCounterCode(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(cause, "read failed")

	assert.Equal(t, ErrCounter, err.Code)
	assert.ErrorIs(t, err, cause)
}

func TestTaxonomyConstructors(t *testing.T) {
	cause := errors.New("no such device")

	tests := []struct {
		name     string
		err      *Error
		code     string
		contains string
	}{
		{"interface not found", InterfaceNotFound("eth7", cause), ErrInterface, "'eth7' not found"},
		{"interface detection failed", InterfaceNotFound("", nil), ErrInterface, "Failed to detect"},
		{"counter read failure", CounterReadFailure("wlan0", cause), ErrCounter, "from wlan0"},
		{"terminal too small", TerminalTooSmall(4, 8, 5, 13), ErrTerminal, "(4x8)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Contains(t, tt.err.Error(), tt.contains)
			assert.True(t, IsCode(tt.err, tt.code))
		})
	}

	assert.Contains(t, TerminalTooSmall(4, 8, 5, 13).Suggestion, "5x13")
}

func TestIsCode(t *testing.T) {
	err := New(ErrConfig, "bad", "")
	wrapped := fmt.Errorf("loading: %w", err)

	assert.True(t, IsCode(err, ErrConfig))
	assert.True(t, IsCode(wrapped, ErrConfig))
	assert.False(t, IsCode(wrapped, ErrSSH))
	assert.False(t, IsCode(nil, ErrConfig))
	assert.False(t, IsCode(errors.New("plain"), ErrConfig))
}
