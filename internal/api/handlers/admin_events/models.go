package admin_events

import (
	"fmt"
	"time"

	"github.com/mph199/eduvite-backend/internal/domain"
	eventsService "github.com/mph199/eduvite-backend/internal/service/events"
	"github.com/mph199/eduvite-backend/internal/usecase/generate_slots"
)

// EventModel событие в админской выдаче
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

// CreatePayload HTTP-модель создания события. Времена в RFC3339
type CreatePayload struct {
	Name            string  `json:"name"`
	SchoolYear      string  `json:"schoolYear"`
	StartsAt        string  `json:"startsAt"`
	EndsAt          string  `json:"endsAt"`
	Timezone        string  `json:"timezone"`
	Status          string  `json:"status"`
	BookingOpensAt  *string `json:"bookingOpensAt"`
	BookingClosesAt *string `json:"bookingClosesAt"`
}

// UpdatePayload частичное обновление события: отсутствующие поля не
// трогаются, пустая строка в окне бронирования очищает границу
type UpdatePayload struct {
	Name            *string `json:"name"`
	SchoolYear      *string `json:"schoolYear"`
	StartsAt        *string `json:"startsAt"`
	EndsAt          *string `json:"endsAt"`
	Timezone        *string `json:"timezone"`
	Status          *string `json:"status"`
	BookingOpensAt  *string `json:"bookingOpensAt"`
	BookingClosesAt *string `json:"bookingClosesAt"`
}

// StatsModel счетчики слотов события
type StatsModel struct {
	EventID        int64 `json:"eventId"`
	TotalSlots     int   `json:"totalSlots"`
	AvailableSlots int   `json:"availableSlots"`
	BookedSlots    int   `json:"bookedSlots"`
	ReservedSlots  int   `json:"reservedSlots"`
	ConfirmedSlots int   `json:"confirmedSlots"`
}

// GenerateSlotsPayload параметры генерации слотов под событие
type GenerateSlotsPayload struct {
	SlotMinutes     int  `json:"slotMinutes"`
	DryRun          bool `json:"dryRun"`
	ReplaceExisting bool `json:"replaceExisting"`
}

// GenerateSlotsResponse итог генерации по событию
type GenerateSlotsResponse struct {
	Success   bool                 `json:"success"`
	EventDate string               `json:"eventDate"`
	DryRun    bool                 `json:"dryRun"`
	Created   int                  `json:"created"`
	Skipped   int                  `json:"skipped"`
	Deleted   int                  `json:"deleted"`
	Teachers  []TeacherSlotsReport `json:"teachers"`
}

// TeacherSlotsReport итог генерации по одному учителю
type TeacherSlotsReport struct {
	TeacherID   int64  `json:"teacherId"`
	TeacherName string `json:"teacherName"`
	Created     int    `json:"created"`
	Skipped     int    `json:"skipped"`
}

// ToCreateInput преобразует HTTP-модель во входные данные сервиса
func (p *CreatePayload) ToCreateInput() (eventsService.CreateInput, error) {
	startsAt, err := parseTime(p.StartsAt)
	if err != nil {
		return eventsService.CreateInput{}, fmt.Errorf("startsAt: %w", err)
	}
	endsAt, err := parseTime(p.EndsAt)
	if err != nil {
		return eventsService.CreateInput{}, fmt.Errorf("endsAt: %w", err)
	}
	opensAt, err := parseOptionalTime(p.BookingOpensAt)
	if err != nil {
		return eventsService.CreateInput{}, fmt.Errorf("bookingOpensAt: %w", err)
	}
	closesAt, err := parseOptionalTime(p.BookingClosesAt)
	if err != nil {
		return eventsService.CreateInput{}, fmt.Errorf("bookingClosesAt: %w", err)
	}

	return eventsService.CreateInput{
		Name:            p.Name,
		SchoolYear:      p.SchoolYear,
		StartsAt:        startsAt,
		EndsAt:          endsAt,
		Timezone:        p.Timezone,
		Status:          p.Status,
		BookingOpensAt:  opensAt,
		BookingClosesAt: closesAt,
	}, nil
}

// ToUpdateInput преобразует HTTP-модель во входные данные сервиса
func (p *UpdatePayload) ToUpdateInput() (eventsService.UpdateInput, error) {
	input := eventsService.UpdateInput{
		Name:       p.Name,
		SchoolYear: p.SchoolYear,
		Timezone:   p.Timezone,
		Status:     p.Status,
	}

	if p.StartsAt != nil {
		t, err := parseTime(*p.StartsAt)
		if err != nil {
			return eventsService.UpdateInput{}, fmt.Errorf("startsAt: %w", err)
		}
		input.StartsAt = &t
	}
	if p.EndsAt != nil {
		t, err := parseTime(*p.EndsAt)
		if err != nil {
			return eventsService.UpdateInput{}, fmt.Errorf("endsAt: %w", err)
		}
		input.EndsAt = &t
	}
	if p.BookingOpensAt != nil {
		if *p.BookingOpensAt == "" {
			input.ClearOpensAt = true
		} else {
			t, err := parseTime(*p.BookingOpensAt)
			if err != nil {
				return eventsService.UpdateInput{}, fmt.Errorf("bookingOpensAt: %w", err)
			}
			input.BookingOpensAt = &t
		}
	}
	if p.BookingClosesAt != nil {
		if *p.BookingClosesAt == "" {
			input.ClearClosesAt = true
		} else {
			t, err := parseTime(*p.BookingClosesAt)
			if err != nil {
				return eventsService.UpdateInput{}, fmt.Errorf("bookingClosesAt: %w", err)
			}
			input.BookingClosesAt = &t
		}
	}

	return input, nil
}

func fromEvent(e *domain.Event) EventModel {
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

func fromStats(s *domain.EventStats) StatsModel {
	return StatsModel{
		EventID:        s.EventID,
		TotalSlots:     s.TotalSlots,
		AvailableSlots: s.AvailableSlots,
		BookedSlots:    s.BookedSlots,
		ReservedSlots:  s.ReservedSlots,
		ConfirmedSlots: s.ConfirmedSlots,
	}
}

func fromEventReport(r *generate_slots.EventReport) GenerateSlotsResponse {
	teachers := make([]TeacherSlotsReport, 0, len(r.Teachers))
	for _, t := range r.Teachers {
		teachers = append(teachers, TeacherSlotsReport{
			TeacherID:   t.TeacherID,
			TeacherName: t.TeacherName,
			Created:     t.Created,
			Skipped:     t.Skipped,
		})
	}
	return GenerateSlotsResponse{
		Success:   true,
		EventDate: r.Date,
		DryRun:    r.DryRun,
		Created:   r.Created,
		Skipped:   r.Skipped,
		Deleted:   r.Deleted,
		Teachers:  teachers,
	}
}

func parseTime(value string) (time.Time, error) {
	return time.Parse(time.RFC3339, value)
}

func parseOptionalTime(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := parseTime(*value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatOptional(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
