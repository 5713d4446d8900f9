package domain

import "time"

// EventStatus is the scheduling epoch lifecycle: draft -> published -> closed
type EventStatus string

const (
	EventDraft     EventStatus = "draft"
	EventPublished EventStatus = "published"
	EventClosed    EventStatus = "closed"
)

// IsValid reports whether s is a known event status
func (s EventStatus) IsValid() bool {
	return s == EventDraft || s == EventPublished || s == EventClosed
}

// Event is a conference day ("Elternsprechtag"). Slot generation and booking
// acceptance are scoped to the single active event.
type Event struct {
	ID              int64
	Name            string
	SchoolYear      string
	StartsAt        time.Time
	EndsAt          time.Time
	Timezone        string
	Status          EventStatus
	BookingOpensAt  *time.Time
	BookingClosesAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActiveAt reports whether the event accepts bookings at the given instant:
// published, and now within the booking window (an unset bound is open).
func (e *Event) IsActiveAt(now time.Time) bool {
	if e.Status != EventPublished {
		return false
	}
	if e.BookingOpensAt != nil && now.Before(*e.BookingOpensAt) {
		return false
	}
	if e.BookingClosesAt != nil && now.After(*e.BookingClosesAt) {
		return false
	}
	return true
}

// DateString returns the event day in the display format slots carry
func (e *Event) DateString() string {
	return e.StartsAt.Format(DateFormat)
}

// EventStats are the per-event slot counters shown to admins
type EventStats struct {
	EventID        int64
	TotalSlots     int
	AvailableSlots int
	BookedSlots    int
	ReservedSlots  int
	ConfirmedSlots int
}
