package accounts

import (
	"context"

	"github.com/mph199/eduvite-backend/internal/domain"
)

// UserRepository интерфейс репозитория учётных записей
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	Upsert(ctx context.Context, u *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByTeacherID(ctx context.Context, teacherID int64) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdateRole(ctx context.Context, id int64, role domain.UserRole) error
	Delete(ctx context.Context, id int64) error
}

// TokenIssuer выпускает и проверяет токены доступа
type TokenIssuer interface {
	Issue(u *domain.User) (string, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
