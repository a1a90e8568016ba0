package analysis

import (
	"fmt"
	"strings"
)

const (
	secondsPerDay    = 86400
	secondsPerHour   = 3600
	secondsPerMinute = 60
)

// FormatDuration renders a number of seconds as
// "D days, H hours, M minutes, S seconds". The days and hours segments are
// omitted when zero; minutes and seconds are always present. Fractional
// seconds are truncated.
func FormatDuration(totalSeconds float64) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	s := int64(totalSeconds)
	days := s / secondsPerDay
	s %= secondsPerDay
	hours := s / secondsPerHour
	s %= secondsPerHour
	mins := s / secondsPerMinute
	secs := s % secondsPerMinute

	var b strings.Builder
	if days > 0 {
		fmt.Fprintf(&b, "%d days, ", days)
	}
	if hours > 0 {
		fmt.Fprintf(&b, "%d hours, ", hours)
	}
	fmt.Fprintf(&b, "%d minutes, %d seconds", mins, secs)
	return b.String()
}
