package events

import (
	"context"

	"github.com/mph199/eduvite-backend/internal/domain"
)

// EventRepository интерфейс репозитория событий
type EventRepository interface {
	Create(ctx context.Context, e *domain.Event) (*domain.Event, error)
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	GetActive(ctx context.Context) (*domain.Event, error)
	GetLatest(ctx context.Context) (*domain.Event, error)
	List(ctx context.Context) ([]*domain.Event, error)
	ListUpcoming(ctx context.Context, limit uint64) ([]*domain.Event, error)
	Update(ctx context.Context, e *domain.Event) error
	Delete(ctx context.Context, id int64) error
}

// SlotRepository интерфейс репозитория слотов (статистика события)
type SlotRepository interface {
	CountsByEvent(ctx context.Context, eventID int64) (*domain.EventStats, error)
}

// SettingsRepository интерфейс репозитория глобальных настроек
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Upsert(ctx context.Context, s *domain.Settings) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
