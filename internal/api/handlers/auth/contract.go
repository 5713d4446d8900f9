package auth

import (
	"context"

	"github.com/mph199/eduvite-backend/internal/service/accounts"
)

// AccountsService интерфейс сервиса учётных записей
type AccountsService interface {
	Login(ctx context.Context, username, password string) (*accounts.LoginResult, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
