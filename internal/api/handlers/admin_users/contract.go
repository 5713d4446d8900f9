package admin_users

import (
	"context"

	"github.com/mph199/eduvite-backend/internal/domain"
)

// AccountsService интерфейс сервиса учётных записей
type AccountsService interface {
	List(ctx context.Context) ([]*domain.User, error)
	UpdateRole(ctx context.Context, actorUsername string, targetID int64, role domain.UserRole) (*domain.User, error)
	Delete(ctx context.Context, actorUsername string, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
