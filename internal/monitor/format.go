package monitor

import (
	"fmt"

	"github.com/rileyhilliard/netbwmon/internal/util"
)

var (
	binaryUnits = [...]string{"B", "KiB", "MiB", "GiB", "TiB"}
	siUnits     = [...]string{"B", "kB", "MB", "GB", "TB"}
)

// FormatBytes renders v with at most four divisions by 1024 (or 1000 for
// SI). Unscaled values print as integers, scaled ones with two decimals:
// 512 -> "512 B", 1024 -> "1.00 KiB".
func FormatBytes(v uint64, si bool) string {
	base := 1024.0
	units := binaryUnits
	if si {
		base = 1000.0
		units = siUnits
	}

	value := float64(v)
	tier := 0
	for value >= base && tier < len(units)-1 {
		value /= base
		tier++
	}

	if tier == 0 {
		return fmt.Sprintf("%.0f %s", value, units[tier])
	}
	return fmt.Sprintf("%.2f %s", value, units[tier])
}

// FormatBytesN is FormatBytes limited to capacity bytes. Too-small
// destinations get a truncated string, never an overflow.
func FormatBytesN(v uint64, si bool, capacity int) string {
	return util.TruncateBytes(FormatBytes(v, si), capacity)
}

// FormatRate renders a bytes-per-second value, e.g. "1.50 MiB/s".
func FormatRate(bytesPerSecond uint64, si bool) string {
	return FormatBytes(bytesPerSecond, si) + "/s"
}
