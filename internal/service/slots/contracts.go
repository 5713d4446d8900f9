package slots

import (
	"context"

	"github.com/mph199/eduvite-backend/internal/domain"
	"github.com/mph199/eduvite-backend/internal/infra/mailer"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	Create(ctx context.Context, s *domain.Slot) (*domain.Slot, error)
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	List(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error)
	Update(ctx context.Context, s *domain.Slot) error
	Delete(ctx context.Context, id int64) error
	Confirm(ctx context.Context, id int64) error
	Release(ctx context.Context, id int64) error
	StampConfirmationSent(ctx context.Context, id int64) error
	StampCancellationSent(ctx context.Context, id int64) error
}

// TeacherRepository интерфейс репозитория учителей
type TeacherRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Teacher, error)
	List(ctx context.Context) ([]*domain.Teacher, error)
}

// EventRepository интерфейс репозитория событий
type EventRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	GetActive(ctx context.Context) (*domain.Event, error)
}

// Notifier отправляет письма посетителям. Отправка всегда best-effort:
// сбой логируется и не влияет на результат операции.
type Notifier interface {
	IsConfigured() bool
	SendBookingConfirmed(to string, d mailer.Details) error
	SendCancellation(to string, d mailer.Details) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
