package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseClock converts "HH:MM" into minutes since midnight. "24:00" is accepted.
func ParseClock(s string) (int, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("parse clock %q: expected HH:MM", s)
	}

	hours, err := strconv.Atoi(h)
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: hours: %w", s, err)
	}
	mins, err := strconv.Atoi(m)
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: minutes: %w", s, err)
	}

	if hours < 0 || mins < 0 || mins > 59 || hours*60+mins > 24*60 {
		return 0, fmt.Errorf("parse clock %q: out of range", s)
	}

	return hours*60 + mins, nil
}
