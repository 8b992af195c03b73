package util

import (
	"fmt"
	"time"
)

// FormatDuration formats a duration as m:ss.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	m := total / 60
	s := total % 60
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatSeconds formats a whole-second track length as m:ss. Negative values
// mean the length is unknown and render as an em dash, matching the track
// list before durations are backfilled.
func FormatSeconds(secs int) string {
	if secs < 0 {
		return "—"
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// Pad2 renders a track number zero-padded to two digits.
func Pad2(n int) string {
	return fmt.Sprintf("%02d", n)
}
