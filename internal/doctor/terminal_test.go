package doctor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func size(w, h int) SizeFunc {
	return func() (int, int, error) { return w, h, nil }
}

func TestTerminalCheck(t *testing.T) {
	tests := []struct {
		name   string
		check  *TerminalCheck
		status CheckStatus
		msg    string
	}{
		{"not a tty", &TerminalCheck{IsTTY: false, Size: size(80, 24)}, StatusWarn, "not a terminal"},
		{"size error", &TerminalCheck{IsTTY: true, Size: func() (int, int, error) { return 0, 0, errors.New("ioctl") }}, StatusFail, "ioctl"},
		{"too small", &TerminalCheck{IsTTY: true, Size: size(4, 24)}, StatusFail, "needs 5x13"},
		{"fits", &TerminalCheck{IsTTY: true, Size: size(80, 25)}, StatusPass, "77 samples of history, 9 rows per graph"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.check.Run()
			assert.Equal(t, tt.status, r.Status)
			assert.Contains(t, r.Message, tt.msg)
			assert.Equal(t, CategoryTerminal, tt.check.Category())
		})
	}
}
