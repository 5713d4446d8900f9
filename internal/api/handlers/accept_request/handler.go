package accept_request

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mph199/eduvite-backend/internal/api/handlers"
	"github.com/mph199/eduvite-backend/internal/api/middleware"
	acceptRequest "github.com/mph199/eduvite-backend/internal/usecase/accept_request"
)

const (
	msgInvalidRequestBody = "Ungültiger Anfrageinhalt"
	msgInvalidID          = "Ungültige Anfrage-ID"
	msgInvalidInput       = "Ungültige Eingabe"
	msgRequestNotFound    = "Anfrage nicht gefunden"
	msgAccessDenied       = "Diese Anfrage gehört einer anderen Lehrkraft"
	msgNotPending         = "Anfrage wurde bereits bearbeitet"
	msgNotVerified        = "Die E-Mail-Adresse wurde noch nicht bestätigt"
	msgNoSlotAvailable    = "Kein freier Termin verfügbar. Bitte zuerst Termine generieren."
	msgSlotRace           = "Der Termin wurde soeben anderweitig vergeben"
	msgNoTeacher          = "Kein Lehrkraft-Profil verknüpft"
)

// AcceptRequestRequest HTTP request model
type AcceptRequestRequest struct {
	Time           string   `json:"time"`
	Times          []string `json:"times"`
	TeacherMessage string   `json:"teacherMessage"`
}

// AcceptRequestResponse HTTP response model
type AcceptRequestResponse struct {
	Success        bool     `json:"success"`
	RequestID      int64    `json:"requestId"`
	AssignedSlotID int64    `json:"assignedSlotId"`
	AssignedTimes  []string `json:"assignedTimes"`
	Date           string   `json:"date"`
	EmailSent      bool     `json:"emailSent"`
}

type Handler struct {
	useCase AcceptRequestUseCase
	logger  Logger
}

func NewHandler(useCase AcceptRequestUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/teacher/requests/{id}/accept
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

	// Тело опционально: принятие без предпочтений по времени легально
	var req AcceptRequestRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PUT /teacher/requests/accept - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	times := req.Times
	if len(times) == 0 && req.Time != "" {
		times = []string{req.Time}
	}

	result, err := h.useCase.Execute(r.Context(), &acceptRequest.Request{
		RequestID:      requestID,
		ActorTeacherID: &teacherID,
		Times:          times,
		TeacherMessage: req.TeacherMessage,
	})
	if err != nil {
		switch {
		case errors.Is(err, acceptRequest.ErrInvalidInput):
			h.logger.Warn("PUT /teacher/requests/accept - Invalid input: request_id=%d, error=%v", requestID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, acceptRequest.ErrRequestNotFound):
			handlers.RespondNotFound(w, msgRequestNotFound)

		case errors.Is(err, acceptRequest.ErrAccessDenied):
			h.logger.Warn("PUT /teacher/requests/accept - Access denied: teacher_id=%d, request_id=%d", teacherID, requestID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, acceptRequest.ErrNotVerified):
			handlers.RespondConflict(w, msgNotVerified)

		case errors.Is(err, acceptRequest.ErrNotPending):
			handlers.RespondConflict(w, msgNotPending)

		case errors.Is(err, acceptRequest.ErrNoSlotAvailable):
			h.logger.Warn("PUT /teacher/requests/accept - No slot available: request_id=%d, error=%v", requestID, err)
			handlers.RespondConflict(w, msgNoSlotAvailable)

		case errors.Is(err, acceptRequest.ErrSlotRace):
			handlers.RespondConflict(w, msgSlotRace)

		default:
			h.logger.Error("PUT /teacher/requests/accept - Failed: request_id=%d, error=%v", requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /teacher/requests/accept - Request accepted: request_id=%d, slot_id=%d",
		result.RequestID, result.AssignedSlotID)
	handlers.RespondJSON(w, http.StatusOK, AcceptRequestResponse{
		Success:        true,
		RequestID:      result.RequestID,
		AssignedSlotID: result.AssignedSlotID,
		AssignedTimes:  result.AssignedTimes,
		Date:           result.Date,
		EmailSent:      result.EmailSent,
	})
}
