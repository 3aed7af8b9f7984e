package hubcache

import "fmt"

// FormatMode selects how FormatSize renders a byte count.
type FormatMode int

const (
	// FormatAuto picks the largest power-of-1024 unit that keeps the
	// magnitude at or above one.
	FormatAuto FormatMode = iota
	// FormatGB always renders in gigabytes, whatever the magnitude.
	FormatGB
)

var sizeUnits = [...]string{"B", "KB", "MB", "GB", "TB"}

// FormatSize renders a byte count for display with two decimal places.
//
// In FormatAuto mode the unit index is the integer floor of log1024 of the
// count, clamped to TB so very large caches still render instead of
// overflowing the unit table. Zero renders as "0 B" in auto mode and
// "0 GB" in fixed mode.
func FormatSize(bytes int64, mode FormatMode) string {
	if mode == FormatGB {
		if bytes == 0 {
			return "0 GB"
		}
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(1<<30))
	}

	if bytes == 0 {
		return "0 B"
	}
	exp := 0
	for n := bytes; n >= 1024 && exp < len(sizeUnits)-1; n /= 1024 {
		exp++
	}
	return fmt.Sprintf("%.2f %s", float64(bytes)/float64(int64(1)<<(10*exp)), sizeUnits[exp])
}
