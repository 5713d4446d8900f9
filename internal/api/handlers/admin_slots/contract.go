package admin_slots

import (
	"context"

	"github.com/mph199/eduvite-backend/internal/domain"
	"github.com/mph199/eduvite-backend/internal/service/slots"
)

// SlotsService интерфейс сервиса слотов
type SlotsService interface {
	AdminList(ctx context.Context, filter domain.SlotFilter) ([]*slots.SlotWithTeacher, error)
	Create(ctx context.Context, input slots.SlotInput) (*domain.Slot, error)
	Update(ctx context.Context, id int64, input slots.SlotInput) (*domain.Slot, error)
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
