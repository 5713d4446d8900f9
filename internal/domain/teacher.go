package domain

import "time"

// TeacherSystem classifies a teacher's school branch. It determines the daily
// window in which the teacher's conference slots live.
type TeacherSystem string

const (
	SystemDual     TeacherSystem = "dual"     // 16:00 - 18:00
	SystemVollzeit TeacherSystem = "vollzeit" // 17:00 - 19:00
)

// IsValid reports whether s is a known teacher system
func (s TeacherSystem) IsValid() bool {
	return s == SystemDual || s == SystemVollzeit
}

// DailyWindow returns the canonical conference window for the system.
// Unknown systems fall back to dual.
func (s TeacherSystem) DailyWindow() TimeWindow {
	if s == SystemVollzeit {
		return TimeWindow{Start: 17 * 60, End: 19 * 60}
	}
	return TimeWindow{Start: 16 * 60, End: 18 * 60}
}

// RequestWindows returns the half-hour windows visitors may request for the
// system, in chronological order.
func (s TeacherSystem) RequestWindows() []string {
	subs := s.DailyWindow().Subdivide(RequestWindowMinutes)
	windows := make([]string, len(subs))
	for i, w := range subs {
		windows[i] = w.String()
	}
	return windows
}

// SlotTimes returns every concrete slot time of the system's daily window at
// the given granularity.
func (s TeacherSystem) SlotTimes(slotMinutes int) []string {
	dur := slotMinutes
	if !IsValidSlotMinutes(dur) {
		dur = DefaultSlotMinutes
	}
	subs := s.DailyWindow().Subdivide(dur)
	times := make([]string, len(subs))
	for i, w := range subs {
		times[i] = w.String()
	}
	return times
}

// Salutation values accepted for teachers
const (
	SalutationHerr   = "Herr"
	SalutationFrau   = "Frau"
	SalutationDivers = "Divers"
)

// IsValidSalutation reports whether s is an accepted salutation
func IsValidSalutation(s string) bool {
	return s == SalutationHerr || s == SalutationFrau || s == SalutationDivers
}

// Teacher represents a teacher offering conference slots
type Teacher struct {
	ID         int64
	Name       string
	Email      string
	Salutation string
	Subject    string
	System     TeacherSystem
	Room       *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
