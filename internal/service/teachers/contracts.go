package teachers

import (
	"context"

	"github.com/mph199/eduvite-backend/internal/domain"
)

// TeacherRepository интерфейс репозитория учителей
type TeacherRepository interface {
	Create(ctx context.Context, t *domain.Teacher) (*domain.Teacher, error)
	GetByID(ctx context.Context, id int64) (*domain.Teacher, error)
	List(ctx context.Context) ([]*domain.Teacher, error)
	Update(ctx context.Context, t *domain.Teacher) error
	UpdateRoom(ctx context.Context, id int64, room *string) error
	Delete(ctx context.Context, id int64) error
}

// SlotRepository интерфейс репозитория слотов (очистка при удалении учителя)
type SlotRepository interface {
	HasBooked(ctx context.Context, teacherID int64) (bool, error)
	DeleteFreeAll(ctx context.Context, teacherID int64) (int, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
