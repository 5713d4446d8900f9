package accept_request

import (
	"context"
	"time"

	"github.com/mph199/eduvite-backend/internal/domain"
	"github.com/mph199/eduvite-backend/internal/infra/mailer"
)

// RequestRepository интерфейс репозитория заявок
type RequestRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.BookingRequest, error)
	Accept(ctx context.Context, id int64, assignedSlotID int64) error
	StampConfirmationSent(ctx context.Context, id int64) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ListFreeByTimes(ctx context.Context, teacherID int64, date string, times []string) ([]*domain.Slot, error)
	ListFreeByDate(ctx context.Context, teacherID int64, date string) ([]*domain.Slot, error)
	Claim(ctx context.Context, id int64, status domain.SlotStatus, visitor domain.VisitorInfo, verification domain.Verification, eventID *int64) error
	StampConfirmationSent(ctx context.Context, id int64) error
}

// TeacherRepository интерфейс репозитория учителей
type TeacherRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Teacher, error)
}

// SettingsRepository отдает глобальные настройки (гранулярность слотов)
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.Settings, error)
}

// Notifier отправляет письмо о назначенном термине (best-effort)
type Notifier interface {
	IsConfigured() bool
	SendRequestAccepted(to string, d mailer.Details, teacherMessage string) error
	SendMultiSlotAccepted(to, date string, times []string, teacherName, room, teacherMessage string) error
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
