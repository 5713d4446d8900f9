package domain

import "time"

// Settings - синглтон (id=1) с глобальными настройками записи.
// ConferenceDate служит запасной датой генерации слотов, когда у
// события дата не задана.
type Settings struct {
	ID             int64
	ConferenceDate *string
	SlotMinutes    int

	UpdatedAt time.Time
}

// EffectiveSlotMinutes returns the configured granularity, falling back to
// the default when unset or outside the supported set.
func (s *Settings) EffectiveSlotMinutes() int {
	if s != nil && IsValidSlotMinutes(s.SlotMinutes) {
		return s.SlotMinutes
	}
	return DefaultSlotMinutes
}
