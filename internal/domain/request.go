package domain

import "time"

// RequestStatus is the booking request state machine:
// requested -> accepted | declined. Both outcomes are terminal.
type RequestStatus string

const (
	RequestRequested RequestStatus = "requested"
	RequestAccepted  RequestStatus = "accepted"
	RequestDeclined  RequestStatus = "declined"
)

// BookingRequest is a visitor's interest in a time window (not a concrete
// slot) with a teacher on an event day. The teacher, or the overdue sweep,
// resolves it to one or more slots on acceptance.
type BookingRequest struct {
	ID            int64
	EventID       *int64
	TeacherID     int64
	RequestedTime string // "HH:MM - HH:MM" window
	Date          string // display format, see DateFormat
	Status        RequestStatus

	Visitor        VisitorInfo
	Verification   Verification
	AssignedSlotID *int64 // set once accepted

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPending reports whether the request still awaits a teacher decision
func (r *BookingRequest) IsPending() bool {
	return r.Status == RequestRequested
}

// CanBeAccepted reports whether an accept may proceed: the request must be
// pending and the visitor's email must be verified.
func (r *BookingRequest) CanBeAccepted() bool {
	return r.IsPending() && r.Verification.IsVerified()
}

// AssignableTimes derives the concrete slot times the request window can be
// resolved to at the given granularity.
func (r *BookingRequest) AssignableTimes(slotMinutes int) []string {
	return AssignableTimesForWindow(r.RequestedTime, slotMinutes)
}
