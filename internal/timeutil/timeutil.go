// Package timeutil holds the "HH:mm" time-of-day arithmetic shared by the
// availability engine, the appointment lifecycle and the walk-in queue.
package timeutil

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	MinutesPerDay = 24 * 60
)

// ParseHM converts "HH:mm" into minutes since midnight.
func ParseHM(hm string) (int, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(hm), ":")
	if !ok || len(h) != 2 || len(m) != 2 {
		return 0, fmt.Errorf("invalid time %q", hm)
	}

	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 24 {
		return 0, fmt.Errorf("invalid time %q", hm)
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid time %q", hm)
	}
	if hour == 24 && minute != 0 {
		return 0, fmt.Errorf("invalid time %q", hm)
	}

	return hour*60 + minute, nil
}

// MustParseHM is ParseHM for values that were already validated.
func MustParseHM(hm string) int {
	v, err := ParseHM(hm)
	if err != nil {
		panic(err)
	}
	return v
}

// IsValidHM reports whether hm is a well-formed time of day.
func IsValidHM(hm string) bool {
	_, err := ParseHM(hm)
	return err == nil
}

// FormatHM renders minutes since midnight as "HH:mm", wrapping past midnight.
func FormatHM(minutes int) string {
	minutes %= MinutesPerDay
	if minutes < 0 {
		minutes += MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// AddMinutes shifts a time of day. 23:30 + 45 is 00:15.
func AddMinutes(hm string, minutes int) (string, error) {
	base, err := ParseHM(hm)
	if err != nil {
		return "", err
	}
	return FormatHM(base + minutes), nil
}

// span returns the interval in minutes. An end before the start is read as
// wrapping past midnight. An end equal to the start is an empty interval.
func span(start, end string) (int, int, bool) {
	s, err := ParseHM(start)
	if err != nil {
		return 0, 0, false
	}
	e, err := ParseHM(end)
	if err != nil {
		return 0, 0, false
	}
	if e < s {
		e += MinutesPerDay
	}
	return s, e, true
}

// TimesOverlap checks the half-open intervals [startA,endA) and
// [startB,endB). Back-to-back intervals do not overlap, and neither does an
// empty one. Malformed input never overlaps.
func TimesOverlap(startA, endA, startB, endB string) bool {
	sa, ea, ok := span(startA, endA)
	if !ok {
		return false
	}
	sb, eb, ok := span(startB, endB)
	if !ok {
		return false
	}
	return MinutesOverlap(sa, ea, sb, eb)
}

// MinutesOverlap is TimesOverlap on minute offsets.
func MinutesOverlap(startA, endA, startB, endB int) bool {
	return startA < endB && endA > startB
}

// GenerateTimeSlots yields slot starts from open, every step minutes, while
// the start is before close. Ranging over the sequence again restarts it.
func GenerateTimeSlots(open, close string, step int) iter.Seq[string] {
	return func(yield func(string) bool) {
		from, err := ParseHM(open)
		if err != nil {
			return
		}
		to, err := ParseHM(close)
		if err != nil || step <= 0 {
			return
		}
		for t := from; t < to; t += step {
			if !yield(FormatHM(t)) {
				return
			}
		}
	}
}

// CandidateSlot is a slot start offered by one stylist.
type CandidateSlot struct {
	Time      string `json:"time"`
	StylistID string `json:"stylist_id"`
}

// DeduplicateSlots keeps the first candidate for every distinct time,
// preserving input order.
func DeduplicateSlots(slots []CandidateSlot) []CandidateSlot {
	seen := make(map[string]struct{}, len(slots))
	out := make([]CandidateSlot, 0, len(slots))
	for _, s := range slots {
		if _, ok := seen[s.Time]; ok {
			continue
		}
		seen[s.Time] = struct{}{}
		out = append(out, s)
	}
	return out
}
