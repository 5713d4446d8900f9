package public

import (
	"time"

	"github.com/mph199/eduvite-backend/internal/domain"
	slotsService "github.com/mph199/eduvite-backend/internal/service/slots"
)

// HealthResponse HTTP response model проверки живости
type HealthResponse struct {
	Status       string `json:"status"`
	TeacherCount int64  `json:"teacherCount"`
	SlotCount    int64  `json:"slotCount"`
	BookedCount  int64  `json:"bookedCount"`
}

// PublicTeacher учитель без приватных полей
type PublicTeacher struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Salutation string  `json:"salutation"`
	Subject    string  `json:"subject"`
	System     string  `json:"system"`
	Room       *string `json:"room,omitempty"`
}

// TeachersResponse HTTP response model списка учителей
type TeachersResponse struct {
	Teachers []PublicTeacher `json:"teachers"`
}

// PublicSlot обезличенный слот публичной выдачи
type PublicSlot struct {
	ID        int64  `json:"id"`
	TeacherID int64  `json:"teacherId"`
	EventID   *int64 `json:"eventId,omitempty"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Booked    bool   `json:"booked"`
}

// SlotsResponse HTTP response model публичных слотов
type SlotsResponse struct {
	Slots []PublicSlot `json:"slots"`
}

// EventModel событие в публичной выдаче
type EventModel struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	SchoolYear      string  `json:"schoolYear"`
	Date            string  `json:"date"`
	StartsAt        string  `json:"startsAt"`
	EndsAt          string  `json:"endsAt"`
	Timezone        string  `json:"timezone"`
	Status          string  `json:"status"`
	BookingOpensAt  *string `json:"bookingOpensAt,omitempty"`
	BookingClosesAt *string `json:"bookingClosesAt,omitempty"`
}

// EventsResponse HTTP response model списка событий
type EventsResponse struct {
	Events []EventModel `json:"events"`
}

// ActiveEventResponse HTTP response model активного события
type ActiveEventResponse struct {
	Event *EventModel `json:"event"`
}

func fromTeacher(t *domain.Teacher) PublicTeacher {
	return PublicTeacher{
		ID:         t.ID,
		Name:       t.Name,
		Salutation: t.Salutation,
		Subject:    t.Subject,
		System:     string(t.System),
		Room:       t.Room,
	}
}

func fromPublicSlot(s *slotsService.PublicSlot) PublicSlot {
	return PublicSlot{
		ID:        s.ID,
		TeacherID: s.TeacherID,
		EventID:   s.EventID,
		Date:      s.Date,
		Time:      s.Time,
		Booked:    s.Booked,
	}
}

// FromEvent конвертирует событие в публичную модель
func FromEvent(e *domain.Event) EventModel {
	return EventModel{
		ID:              e.ID,
		Name:            e.Name,
		SchoolYear:      e.SchoolYear,
		Date:            e.DateString(),
		StartsAt:        e.StartsAt.Format(time.RFC3339),
		EndsAt:          e.EndsAt.Format(time.RFC3339),
		Timezone:        e.Timezone,
		Status:          string(e.Status),
		BookingOpensAt:  formatOptional(e.BookingOpensAt),
		BookingClosesAt: formatOptional(e.BookingClosesAt),
	}
}

func formatOptional(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
