package verify_email

import (
	"context"
	"time"

	"github.com/mph199/eduvite-backend/internal/domain"
	"github.com/mph199/eduvite-backend/internal/infra/mailer"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	FindByTokenHash(ctx context.Context, tokenHash string) (*domain.Slot, error)
	MarkVerified(ctx context.Context, id int64) error
	StampConfirmationSent(ctx context.Context, id int64) error
}

// RequestRepository интерфейс репозитория запросов на запись
type RequestRepository interface {
	FindByTokenHash(ctx context.Context, tokenHash string) (*domain.BookingRequest, error)
	MarkVerified(ctx context.Context, id int64) error
	StampConfirmationSent(ctx context.Context, id int64) error
}

// TeacherRepository интерфейс репозитория учителей
type TeacherRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Teacher, error)
}

// Notifier отправляет отложенные письма-подтверждения (best-effort)
type Notifier interface {
	IsConfigured() bool
	SendBookingConfirmed(to string, d mailer.Details) error
	SendRequestAccepted(to string, d mailer.Details, teacherMessage string) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
