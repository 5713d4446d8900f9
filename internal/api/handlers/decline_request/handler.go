package decline_request

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mph199/eduvite-backend/internal/api/handlers"
	"github.com/mph199/eduvite-backend/internal/api/middleware"
	requestsService "github.com/mph199/eduvite-backend/internal/service/requests"
)

const (
	msgInvalidID    = "Ungültige Anfrage-ID"
	msgNotFound     = "Anfrage nicht gefunden oder bereits bearbeitet"
	msgAccessDenied = "Diese Anfrage gehört einer anderen Lehrkraft"
	msgNoTeacher    = "Kein Lehrkraft-Profil verknüpft"
)

// DeclineRequestResponse HTTP response model
type DeclineRequestResponse struct {
	Success   bool   `json:"success"`
	RequestID int64  `json:"requestId"`
	Status    string `json:"status"`
}

type Handler struct {
	service RequestsService
	logger  Logger
}

func NewHandler(service RequestsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/teacher/requests/{id}/decline
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := middleware.TeacherIDFromContext(r.Context())
	if !ok {
		handlers.RespondForbidden(w, msgNoTeacher)
		return
	}

	requestID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	req, err := h.service.Decline(r.Context(), teacherID, requestID)
	if err != nil {
		switch {
		case errors.Is(err, requestsService.ErrRequestNotFound),
			errors.Is(err, requestsService.ErrNotPending):
			// Конкурентно обработанная заявка неотличима от несуществующей
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, requestsService.ErrAccessDenied):
			h.logger.Warn("PUT /teacher/requests/decline - Access denied: teacher_id=%d, request_id=%d", teacherID, requestID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("PUT /teacher/requests/decline - Failed: request_id=%d, error=%v", requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /teacher/requests/decline - Request declined: request_id=%d, teacher_id=%d", requestID, teacherID)
	handlers.RespondJSON(w, http.StatusOK, DeclineRequestResponse{
		Success:   true,
		RequestID: req.ID,
		Status:    string(req.Status),
	})
}
