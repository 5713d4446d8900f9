package verify_email

import (
	"context"

	verifyEmail "github.com/mph199/eduvite-backend/internal/usecase/verify_email"
)

type VerifyEmailUseCase interface {
	Execute(ctx context.Context, token string) (*verifyEmail.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
