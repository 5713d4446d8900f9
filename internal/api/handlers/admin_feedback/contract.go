package admin_feedback

import (
	"context"

	"github.com/mph199/eduvite-backend/internal/domain"
)

// FeedbackService интерфейс сервиса обратной связи
type FeedbackService interface {
	List(ctx context.Context) ([]*domain.Feedback, error)
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
