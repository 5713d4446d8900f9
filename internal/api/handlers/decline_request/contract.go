package decline_request

import (
	"context"

	"github.com/mph199/eduvite-backend/internal/domain"
)

type RequestsService interface {
	Decline(ctx context.Context, teacherID, requestID int64) (*domain.BookingRequest, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
