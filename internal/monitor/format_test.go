package monitor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		v    uint64
		si   bool
		want string
	}{
		{0, false, "0 B"},
		{512, false, "512 B"},
		{1023, false, "1023 B"},
		{1024, false, "1.00 KiB"},
		{1536, false, "1.50 KiB"},
		{1 << 20, false, "1.00 MiB"},
		{1 << 30, false, "1.00 GiB"},
		{1 << 40, false, "1.00 TiB"},
		{1 << 50, false, "1024.00 TiB"},
		{999, true, "999 B"},
		{1000, true, "1.00 kB"},
		{1024, true, "1.02 kB"},
		{2_500_000, true, "2.50 MB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBytes(tt.v, tt.si))
		})
	}
}

func TestFormatBytes_LargestValue(t *testing.T) {
	assert.Equal(t, "16777216.00 TiB", FormatBytes(math.MaxUint64, false))
}

func TestFormatBytesN(t *testing.T) {
	assert.Equal(t, "1.00 KiB", FormatBytesN(1024, false, 32))
	assert.Equal(t, "1.00", FormatBytesN(1024, false, 4))
	assert.Equal(t, "", FormatBytesN(1024, false, 0))
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "0 B/s", FormatRate(0, false))
	assert.Equal(t, "1.50 KiB/s", FormatRate(1536, false))
	assert.Equal(t, "1.54 kB/s", FormatRate(1536, true))
}
