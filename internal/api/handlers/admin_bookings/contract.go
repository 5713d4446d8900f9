package admin_bookings

import (
	"context"

	"github.com/mph199/eduvite-backend/internal/domain"
	"github.com/mph199/eduvite-backend/internal/service/slots"
)

// SlotsService интерфейс сервиса слотов
type SlotsService interface {
	AdminList(ctx context.Context, filter domain.SlotFilter) ([]*slots.SlotWithTeacher, error)
	CancelByAdmin(ctx context.Context, slotID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
