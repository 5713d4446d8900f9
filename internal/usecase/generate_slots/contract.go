package generate_slots

import (
	"context"
	"time"

	"github.com/mph199/eduvite-backend/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ExistingTimes(ctx context.Context, teacherID int64, date string, eventID *int64) ([]string, error)
	CreateBatch(ctx context.Context, slots []*domain.Slot) (int, error)
	DeleteFree(ctx context.Context, teacherID int64, eventID *int64) (int, error)
}

// TeacherRepository интерфейс репозитория учителей
type TeacherRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Teacher, error)
	List(ctx context.Context) ([]*domain.Teacher, error)
}

// EventRepository интерфейс репозитория событий
type EventRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	GetActive(ctx context.Context) (*domain.Event, error)
	GetLatest(ctx context.Context) (*domain.Event, error)
}

// SettingsRepository отдает дату конференции и гранулярность по умолчанию
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.Settings, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
