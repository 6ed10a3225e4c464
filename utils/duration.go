package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// signedClockPattern matches the wire format for played time: HH:mm:ss with a
// 1-2 digit hour field and an optional leading minus that negates the whole
// value (e.g. "1:30:00", "-00:05:30").
var signedClockPattern = regexp.MustCompile(`^-?\d{1,2}:\d{2}:\d{2}$`)

// ParseSignedDuration converts a signed "HH:mm:ss" string into a
// time.Duration. Minute/second fields above 59 are carried over rather than
// rejected, matching the clock arithmetic the rest of the ledger uses.
func ParseSignedDuration(s string) (time.Duration, error) {
	trimmed := strings.TrimSpace(s)
	if !signedClockPattern.MatchString(trimmed) {
		return 0, fmt.Errorf("invalid duration %q: expected HH:mm:ss", s)
	}

	negative := strings.HasPrefix(trimmed, "-")
	trimmed = strings.TrimPrefix(trimmed, "-")

	parts := strings.SplitN(trimmed, ":", 3)
	hours, _ := strconv.Atoi(parts[0])
	minutes, _ := strconv.Atoi(parts[1])
	seconds, _ := strconv.Atoi(parts[2])

	d := time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second
	if negative {
		d = -d
	}
	return d, nil
}

// FormatDuration renders a duration as signed "HH:mm:ss". Sub-second precision
// is dropped; the hour field grows past two digits when needed.
func FormatDuration(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}

	totalSeconds := int64(d / time.Second)
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	return fmt.Sprintf("%s%02d:%02d:%02d", sign, hours, minutes, seconds)
}

// ClampNonNegative floors an integer counter at zero. Deltas may drive a
// counter below zero; the stored value never goes negative.
func ClampNonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

// AccumulateDuration adds a signed delta onto a running total and floors the
// result at zero.
func AccumulateDuration(old, delta time.Duration) time.Duration {
	sum := old + delta
	if sum < 0 {
		return 0
	}
	return sum
}
