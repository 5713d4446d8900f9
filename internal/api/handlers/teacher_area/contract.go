package teacher_area

import (
	"context"

	"github.com/mph199/eduvite-backend/internal/domain"
	"github.com/mph199/eduvite-backend/internal/usecase/auto_assign"
)

// TeachersService интерфейс сервиса учителей
type TeachersService interface {
	GetByID(ctx context.Context, id int64) (*domain.Teacher, error)
}

// SlotsService интерфейс сервиса слотов
type SlotsService interface {
	ListForTeacher(ctx context.Context, teacherID int64) ([]*domain.Slot, error)
	TeacherBookings(ctx context.Context, teacherID int64) ([]*domain.Slot, error)
	Confirm(ctx context.Context, teacherID, slotID int64) (*domain.Slot, error)
	CancelByTeacher(ctx context.Context, teacherID, slotID int64) error
}

// RequestsService интерфейс сервиса заявок
type RequestsService interface {
	ListForTeacher(ctx context.Context, teacherID int64, status string) ([]*domain.BookingRequest, error)
}

// Sweeper синхронный проход автоназначения по одному учителю
type Sweeper interface {
	ExecuteForTeacher(ctx context.Context, teacherID int64) (*auto_assign.Report, error)
}

// SettingsProvider отдает настройки (гранулярность слотов)
type SettingsProvider interface {
	GetSettings(ctx context.Context) (*domain.Settings, error)
}

// FeedbackService интерфейс сервиса обратной связи
type FeedbackService interface {
	Create(ctx context.Context, name, email *string, message string) (*domain.Feedback, error)
}

// AccountsService интерфейс сервиса учётных записей
type AccountsService interface {
	ChangePassword(ctx context.Context, username, currentPassword, newPassword string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
