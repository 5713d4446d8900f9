package admin_events

import (
	"context"

	"github.com/mph199/eduvite-backend/internal/domain"
	"github.com/mph199/eduvite-backend/internal/service/events"
	"github.com/mph199/eduvite-backend/internal/usecase/generate_slots"
)

// EventsService интерфейс сервиса событий
type EventsService interface {
	List(ctx context.Context) ([]*domain.Event, error)
	Create(ctx context.Context, input events.CreateInput) (*domain.Event, error)
	Update(ctx context.Context, id int64, input events.UpdateInput) (*domain.Event, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context, id int64) (*domain.EventStats, error)
}

// SlotGenerator генерация слотов всех учителей под событие
type SlotGenerator interface {
	ExecuteForEvent(ctx context.Context, req *generate_slots.EventRequest) (*generate_slots.EventReport, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
