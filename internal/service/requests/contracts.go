package requests

import (
	"context"

	"github.com/mph199/eduvite-backend/internal/domain"
)

// RequestRepository интерфейс репозитория запросов на запись
type RequestRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.BookingRequest, error)
	ListByTeacher(ctx context.Context, teacherID int64, status *domain.RequestStatus) ([]*domain.BookingRequest, error)
	Decline(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
