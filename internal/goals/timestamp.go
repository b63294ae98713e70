package goals

import (
	"fmt"
	"strings"
	"time"
)

// Timestamp labels are locale time-of-day strings of the form
// "오전 h:mm:ss" / "오후 h:mm:ss" (12-hour clock with a morning/afternoon
// marker). Legacy rows may instead carry synthesized placeholder labels like
// "goal-2", which carry no time information.
const (
	morningMarker   = "오전"
	afternoonMarker = "오후"
)

// ParseClockLabel converts a timestamp label to seconds since midnight.
// Returns false for placeholder labels or anything else it cannot read.
func ParseClockLabel(label string) (int, bool) {
	fields := strings.Fields(strings.TrimSpace(label))
	if len(fields) != 2 {
		return 0, false
	}
	marker := fields[0]
	if marker != morningMarker && marker != afternoonMarker {
		return 0, false
	}

	parts := strings.Split(fields[1], ":")
	if len(parts) != 3 {
		return 0, false
	}
	h, okH := clockField(parts[0])
	m, okM := clockField(parts[1])
	s, okS := clockField(parts[2])
	if !okH || !okM || !okS {
		return 0, false
	}
	if h < 1 || h > 12 || m > 59 || s > 59 {
		return 0, false
	}

	// 12-hour to 24-hour: the morning 12 o'clock is hour 0, afternoon
	// non-12 hours gain 12.
	if marker == morningMarker && h == 12 {
		h = 0
	}
	if marker == afternoonMarker && h != 12 {
		h += 12
	}
	return h*3600 + m*60 + s, true
}

// clockField parses one clock component. Only one or two bare digits are
// accepted; signs, spaces and trailing characters all fail.
func clockField(s string) (int, bool) {
	if len(s) == 0 || len(s) > 2 {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

// ClockLabel renders a time as a timestamp label, matching the format the
// legacy rows use so new and loaded events sort under the same rule.
func ClockLabel(t time.Time) string {
	h := t.Hour()
	marker := morningMarker
	switch {
	case h == 0:
		h = 12
	case h == 12:
		marker = afternoonMarker
	case h > 12:
		marker = afternoonMarker
		h -= 12
	}
	return fmt.Sprintf("%s %d:%02d:%02d", marker, h, t.Minute(), t.Second())
}

// placeholderLabel synthesizes a display token for a goal whose row lacks a
// real timestamp. n is 1-based.
func placeholderLabel(n int) string {
	return fmt.Sprintf("goal-%d", n)
}
