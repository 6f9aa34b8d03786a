// Package schedule parses the absolute schedule strings and relative
// interval strings accepted on the command line and in per-post override
// files.
//
// Supported schedule forms, matched in priority order:
//   - 12-hour: "9:30PM 29-11-2025", "9PM 29-11-2025"
//   - 24-hour: "21:30 29-11-2025", "21 29-11-2025"
//
// Dates are day-month-year with a 4-digit year. Forward slashes are
// accepted as date separators and normalized to hyphens.
package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	ErrEmpty             = fmt.Errorf("empty schedule string")
	ErrInvalid24Hour     = fmt.Errorf("invalid 24-hour format")
	ErrInvalidTime       = fmt.Errorf("invalid time")
	ErrUnsupportedFormat = fmt.Errorf("unsupported schedule format")
)

// DefaultInterval is used whenever an interval string is absent or
// unparsable. A bad --interval value must never abort a run.
const DefaultInterval = time.Hour

var patterns = []*regexp.Regexp{
	// 12-hour with minutes: 9:30PM 29-11-2025
	regexp.MustCompile(`(?i)^(\d{1,2}):(\d{2})\s*(AM|PM)\s+(\d{1,2})-(\d{1,2})-(\d{4})$`),
	// 12-hour: 9PM 29-11-2025
	regexp.MustCompile(`(?i)^(\d{1,2})\s*(AM|PM)\s+(\d{1,2})-(\d{1,2})-(\d{4})$`),
	// 24-hour with minutes: 21:30 29-11-2025
	regexp.MustCompile(`^(\d{1,2}):(\d{2})\s+(\d{1,2})-(\d{1,2})-(\d{4})$`),
	// 24-hour: 21 29-11-2025
	regexp.MustCompile(`^(\d{1,2})\s+(\d{1,2})-(\d{1,2})-(\d{4})$`),
}

// Parse parses a schedule string into an absolute local time with minute
// granularity.
func Parse(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, ErrEmpty
	}
	s = strings.ReplaceAll(s, "/", "-")

	for _, re := range patterns {
		m := re.FindStringSubmatch(s)
		if m == nil {
			continue
		}

		var hour, minute, day, month, year int
		var meridiem string
		switch len(m) {
		case 7: // h:mm am/pm d-m-y
			hour = atoi(m[1])
			minute = atoi(m[2])
			meridiem = m[3]
			day, month, year = atoi(m[4]), atoi(m[5]), atoi(m[6])
		case 6:
			if isMeridiem(m[2]) { // h am/pm d-m-y
				hour = atoi(m[1])
				meridiem = m[2]
				day, month, year = atoi(m[3]), atoi(m[4]), atoi(m[5])
			} else { // h:mm d-m-y
				hour = atoi(m[1])
				minute = atoi(m[2])
				day, month, year = atoi(m[3]), atoi(m[4]), atoi(m[5])
			}
		case 5: // h d-m-y
			hour = atoi(m[1])
			day, month, year = atoi(m[2]), atoi(m[3]), atoi(m[4])
		}

		if meridiem != "" {
			switch strings.ToLower(meridiem) {
			case "pm":
				if hour < 12 {
					hour += 12
				}
			case "am":
				if hour == 12 {
					hour = 0
				}
			}
		} else if hour > 23 {
			return time.Time{}, fmt.Errorf("%w: hour %d must be 0-23", ErrInvalid24Hour, hour)
		}

		if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
			return time.Time{}, ErrInvalidTime
		}
		return time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.Local), nil
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, raw)
}

// Format renders t in the canonical 24-hour form accepted by Parse,
// e.g. "21:05 29-11-2025". Parse(Format(t)) round-trips.
func Format(t time.Time) string {
	return fmt.Sprintf("%d:%02d %d-%d-%d", t.Hour(), t.Minute(), t.Day(), int(t.Month()), t.Year())
}

var intervalRe = regexp.MustCompile(`(?i)^(\d+)\s*(h|hr|hrs|hour|hours|m|min|mins|minute|minutes|s|sec|secs|second|seconds)$`)

// ParseInterval parses strings like "1h", "30m", "45s" into a duration.
// A bare integer is taken as hours. Anything else degrades to
// DefaultInterval; this function never fails outward.
func ParseInterval(raw string) time.Duration {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return DefaultInterval
	}
	if m := intervalRe.FindStringSubmatch(s); m != nil {
		n := atoi(m[1])
		switch m[2][0] {
		case 'h':
			return time.Duration(n) * time.Hour
		case 'm':
			return time.Duration(n) * time.Minute
		case 's':
			return time.Duration(n) * time.Second
		}
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 {
		return time.Duration(n) * time.Hour
	}
	return DefaultInterval
}

func isMeridiem(s string) bool {
	switch strings.ToLower(s) {
	case "am", "pm":
		return true
	}
	return false
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
