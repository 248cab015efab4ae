package receipts

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatDate reduces a raw temporal value to its date portion. It accepts
// ISO date-times ("2024-05-01T10:30:00"), space-separated "date time"
// strings, or bare dates. Empty input renders as "-".
func FormatDate(raw string) string {
	if raw == "" {
		return "-"
	}
	if i := strings.IndexByte(raw, 'T'); i >= 0 {
		return raw[:i]
	}
	if i := strings.IndexByte(raw, ' '); i >= 0 {
		return raw[:i]
	}
	return raw
}

// FormatTime renders a raw temporal value as a 12-hour clock reading with
// an AM/PM suffix. It accepts ISO date-times, space-separated forms, or
// bare HH:mm[:ss] strings; hours 0 and 12 both display as 12. Input that
// cannot be split into hour and minute passes through unchanged, and empty
// input renders as "-".
func FormatTime(raw string) string {
	if raw == "" {
		return "-"
	}

	t := raw
	if i := strings.IndexByte(t, 'T'); i >= 0 {
		t = t[i+1:]
		if j := strings.IndexByte(t, '.'); j >= 0 {
			t = t[:j]
		}
	} else if i := strings.IndexByte(t, ' '); i >= 0 {
		t = t[i+1:]
	}

	parts := strings.Split(t, ":")
	if len(parts) < 2 {
		return raw
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return raw
	}
	minute := parts[1]

	suffix := "AM"
	switch {
	case hour == 0:
		hour = 12
	case hour == 12:
		suffix = "PM"
	case hour > 12:
		hour -= 12
		suffix = "PM"
	}
	return fmt.Sprintf("%d:%s %s", hour, minute, suffix)
}
