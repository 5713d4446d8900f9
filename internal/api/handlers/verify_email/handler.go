package verify_email

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mph199/eduvite-backend/internal/api/handlers"
	verifyEmail "github.com/mph199/eduvite-backend/internal/usecase/verify_email"
)

const (
	msgTokenMissing  = "Token fehlt"
	msgTokenNotFound = "Bestätigungslink ungültig"
	msgTokenExpired  = "Bestätigungslink abgelaufen. Bitte reservieren Sie erneut."
)

// VerifyEmailResponse HTTP response model
type VerifyEmailResponse struct {
	Success bool   `json:"success"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type Handler struct {
	useCase VerifyEmailUseCase
	logger  Logger
}

func NewHandler(useCase VerifyEmailUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/bookings/verify/{token}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	if token == "" {
		handlers.RespondBadRequest(w, msgTokenMissing)
		return
	}

	result, err := h.useCase.Execute(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, verifyEmail.ErrTokenNotFound):
			h.logger.Warn("GET /bookings/verify - Token not found")
			handlers.RespondNotFound(w, msgTokenNotFound)

		case errors.Is(err, verifyEmail.ErrTokenExpired):
			h.logger.Warn("GET /bookings/verify - Token expired")
			handlers.RespondGone(w, msgTokenExpired)

		default:
			h.logger.Error("GET /bookings/verify - Verification failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/verify - Email verified (kind=%s)", result.Kind)
	handlers.RespondJSON(w, http.StatusOK, VerifyEmailResponse{
		Success: true,
		Kind:    string(result.Kind),
		Message: result.Message,
	})
}
