package create_request

import (
	"errors"
	"net/http"

	"github.com/mph199/eduvite-backend/internal/api/handlers"
	createRequest "github.com/mph199/eduvite-backend/internal/usecase/create_request"
)

const (
	msgInvalidRequestBody = "Ungültiger Anfrageinhalt"
	msgInvalidInput       = "Bitte alle Pflichtfelder ausfüllen"
	msgInvalidWindow      = "requestedTime invalid"
	msgNoActiveEvent      = "Buchungen sind aktuell nicht freigegeben"
	msgTeacherNotFound    = "Lehrkraft nicht gefunden"
)

type Handler struct {
	useCase CreateRequestUseCase
	logger  Logger
}

func NewHandler(useCase CreateRequestUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/booking-requests
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateRequestRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking-requests - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createRequest.ErrInvalidWindow):
			h.logger.Warn("POST /booking-requests - Invalid window: teacher_id=%d, window=%q", req.TeacherID, req.RequestedTime)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, createRequest.ErrInvalidInput):
			h.logger.Warn("POST /booking-requests - Validation failed: teacher_id=%d, error=%v", req.TeacherID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createRequest.ErrNoActiveEvent):
			handlers.RespondConflict(w, msgNoActiveEvent)

		case errors.Is(err, createRequest.ErrTeacherNotFound):
			handlers.RespondNotFound(w, msgTeacherNotFound)

		default:
			h.logger.Error("POST /booking-requests - Failed to create request: teacher_id=%d, error=%v", req.TeacherID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /booking-requests - Request created: request_id=%d, teacher_id=%d", result.RequestID, result.TeacherID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
