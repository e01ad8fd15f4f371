// Package durationfmt renders signed second counts as HH:MM:SS.
package durationfmt

import "fmt"

// Format renders seconds as HH:MM:SS.
//
// Hours use truncating division and keep their sign, minutes and seconds are
// always rendered as absolute values. A deficit smaller than one hour
// therefore loses its sign: -90 renders as "00:01:30", -3690 as "-1:01:30".
func Format(seconds int64) string {
	hours := seconds / 3600
	minutes := abs((seconds % 3600) / 60)
	secs := abs(seconds % 60)

	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
