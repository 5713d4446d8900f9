package admin_settings

import (
	"context"

	"github.com/mph199/eduvite-backend/internal/domain"
)

// SettingsService чтение и запись глобальных настроек
type SettingsService interface {
	GetSettings(ctx context.Context) (*domain.Settings, error)
	UpdateSettings(ctx context.Context, conferenceDate *string, slotMinutes int) (*domain.Settings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
