package domain

import "time"

// SlotStatus is the sub-status of a booked slot. It is meaningful only while
// Booked is true: a direct reservation starts as reserved and becomes
// confirmed once the teacher accepts; resolver-assigned slots are confirmed
// immediately.
type SlotStatus string

const (
	SlotReserved  SlotStatus = "reserved"
	SlotConfirmed SlotStatus = "confirmed"
)

// Slot is the unit of bookability: one teacher, one event day, one time range.
// Visitor fields are populated iff Booked is true; releasing a slot clears
// them together with the booked flag in a single conditional update.
type Slot struct {
	ID        int64
	TeacherID int64
	EventID   *int64 // nil for legacy slots created before events existed
	Date      string // display format, see DateFormat
	Time      string // "HH:MM - HH:MM"
	Booked    bool
	Status    *SlotStatus

	Visitor      VisitorInfo // zero value while free
	Verification Verification
	CancellationSentAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsConfirmed reports whether the booking on this slot was confirmed by the teacher
func (s *Slot) IsConfirmed() bool {
	return s.Booked && s.Status != nil && *s.Status == SlotConfirmed
}

// IsReserved reports whether the slot holds an unconfirmed direct reservation
func (s *Slot) IsReserved() bool {
	return s.Booked && s.Status != nil && *s.Status == SlotReserved
}

// BelongsToEvent reports whether the slot is scoped to the given event.
// Legacy slots (EventID nil) belong to no event.
func (s *Slot) BelongsToEvent(eventID int64) bool {
	return s.EventID != nil && *s.EventID == eventID
}

// SlotFilter is the admin listing filter. EventID and EventIDIsNull are
// mutually exclusive; Limit is mandatory.
type SlotFilter struct {
	TeacherID     *int64
	EventID       *int64
	EventIDIsNull bool
	Booked        *bool
	Limit         int
}
