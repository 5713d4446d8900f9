package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// TimeWindow is a half-open time range within a single day, in minutes since
// midnight. Slots and booking requests carry windows as display strings
// ("16:00 - 16:30"); this type does the arithmetic behind them.
type TimeWindow struct {
	Start int // minutes since midnight
	End   int
}

var windowPattern = regexp.MustCompile(`^(\d{2}):(\d{2})\s*-\s*(\d{2}):(\d{2})$`)

// ParseWindow parses a "HH:MM - HH:MM" string. The end must be after the start.
func ParseWindow(s string) (TimeWindow, error) {
	m := windowPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return TimeWindow{}, fmt.Errorf("invalid time window %q", s)
	}

	start := atoi2(m[1])*60 + atoi2(m[2])
	end := atoi2(m[3])*60 + atoi2(m[4])
	if end <= start || end > 24*60 {
		return TimeWindow{}, fmt.Errorf("invalid time window %q", s)
	}
	return TimeWindow{Start: start, End: end}, nil
}

// IsValidWindowString reports whether s has the "HH:MM - HH:MM" shape
// with a positive duration.
func IsValidWindowString(s string) bool {
	_, err := ParseWindow(s)
	return err == nil
}

// String formats the window back to its canonical display form.
func (w TimeWindow) String() string {
	return fmt.Sprintf("%s - %s", fmtMinutes(w.Start), fmtMinutes(w.End))
}

// Minutes returns the window duration in minutes.
func (w TimeWindow) Minutes() int {
	return w.End - w.Start
}

// Subdivide splits the window into consecutive sub-windows of dur minutes.
// Only full sub-windows are produced; a trailing remainder is dropped.
// A window that exactly equals one slot duration yields itself.
func (w TimeWindow) Subdivide(dur int) []TimeWindow {
	if dur <= 0 {
		return nil
	}
	out := make([]TimeWindow, 0, w.Minutes()/dur)
	for m := w.Start; m+dur <= w.End; m += dur {
		out = append(out, TimeWindow{Start: m, End: m + dur})
	}
	return out
}

// AssignableTimesForWindow derives the concrete slot time strings a request
// window can be resolved to. slotMinutes outside the supported set falls back
// to the window size for windows of at most 30 minutes, else to the default
// granularity. A malformed window yields an empty list.
func AssignableTimesForWindow(window string, slotMinutes int) []string {
	w, err := ParseWindow(window)
	if err != nil {
		return []string{}
	}

	dur := slotMinutes
	if !IsValidSlotMinutes(dur) {
		if w.Minutes() <= RequestWindowMinutes {
			dur = w.Minutes()
		} else {
			dur = DefaultSlotMinutes
		}
	}

	subs := w.Subdivide(dur)
	// A window narrower than the granularity is still assignable as-is.
	if len(subs) == 0 {
		return []string{w.String()}
	}

	times := make([]string, len(subs))
	for i, sub := range subs {
		times[i] = sub.String()
	}
	return times
}

func atoi2(s string) int {
	// windowPattern guarantees two digits
	return int(s[0]-'0')*10 + int(s[1]-'0')
}

func fmtMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
