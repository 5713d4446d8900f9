package create_request

import (
	"context"
	"time"

	"github.com/mph199/eduvite-backend/internal/domain"
	"github.com/mph199/eduvite-backend/internal/infra/mailer"
)

// RequestRepository интерфейс репозитория запросов на запись
type RequestRepository interface {
	Create(ctx context.Context, req *domain.BookingRequest) (*domain.BookingRequest, error)
}

// EventRepository интерфейс репозитория событий
type EventRepository interface {
	GetActive(ctx context.Context) (*domain.Event, error)
}

// TeacherRepository интерфейс репозитория учителей
type TeacherRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Teacher, error)
}

// Notifier отправляет письмо подтверждения email (best-effort)
type Notifier interface {
	IsConfigured() bool
	SendRequestVerification(to, token string, d mailer.Details) error
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
