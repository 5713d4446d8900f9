package public

import (
	"context"

	"github.com/mph199/eduvite-backend/internal/domain"
	slotsService "github.com/mph199/eduvite-backend/internal/service/slots"
)

// TeachersService интерфейс сервиса учителей
type TeachersService interface {
	List(ctx context.Context) ([]*domain.Teacher, error)
}

// SlotsService интерфейс сервиса слотов
type SlotsService interface {
	PublicForTeacher(ctx context.Context, teacherID int64, eventID *int64) ([]*slotsService.PublicSlot, error)
}

// EventsService интерфейс сервиса событий
type EventsService interface {
	GetActive(ctx context.Context) (*domain.Event, error)
	Upcoming(ctx context.Context) ([]*domain.Event, error)
}

// TeacherCounter счетчик учителей для health check
type TeacherCounter interface {
	Count(ctx context.Context) (int64, error)
}

// SlotCounter счетчики слотов для health check
type SlotCounter interface {
	Counts(ctx context.Context) (total, booked int64, err error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
