package auto_assign

import (
	"context"
	"time"

	"github.com/mph199/eduvite-backend/internal/domain"
	"github.com/mph199/eduvite-backend/internal/usecase/accept_request"
)

// RequestRepository интерфейс репозитория заявок
type RequestRepository interface {
	ListOverdue(ctx context.Context, before time.Time, teacherID *int64) ([]*domain.BookingRequest, error)
}

// Accepter резолвер принятия заявки
type Accepter interface {
	Execute(ctx context.Context, req *accept_request.Request) (*accept_request.Response, error)
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
