package admin_feedback

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/mph199/eduvite-backend/internal/api/handlers"
	"github.com/mph199/eduvite-backend/internal/domain"
	feedbackService "github.com/mph199/eduvite-backend/internal/service/feedback"
)

const (
	msgInvalidFeedbackID = "Ungültige Feedback-ID"
	msgFeedbackNotFound  = "Feedback nicht gefunden"
)

// FeedbackModel отзыв в админской выдаче
type FeedbackModel struct {
	ID        int64   `json:"id"`
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	Message   string  `json:"message"`
	CreatedAt string  `json:"createdAt"`
}

// Handler админский просмотр и удаление отзывов
type Handler struct {
	feedback FeedbackService
	logger   Logger
}

func NewHandler(feedback FeedbackService, logger Logger) *Handler {
	return &Handler{
		feedback: feedback,
		logger:   logger,
	}
}

// List GET /api/admin/feedback
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.feedback.List(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/feedback - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	models := make([]FeedbackModel, 0, len(list))
	for _, f := range list {
		models = append(models, fromFeedback(f))
	}
	handlers.RespondJSON(w, http.StatusOK, map[string]interface{}{"feedback": models})
}

// Delete DELETE /api/admin/feedback/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	feedbackID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidFeedbackID)
		return
	}

	if err := h.feedback.Delete(r.Context(), feedbackID); err != nil {
		if errors.Is(err, feedbackService.ErrFeedbackNotFound) {
			handlers.RespondNotFound(w, msgFeedbackNotFound)
			return
		}
		h.logger.Error("DELETE /admin/feedback - Failed: id=%d, error=%v", feedbackID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /admin/feedback - Feedback deleted: id=%d", feedbackID)
	handlers.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func fromFeedback(f *domain.Feedback) FeedbackModel {
	return FeedbackModel{
		ID:        f.ID,
		Name:      f.Name,
		Email:     f.Email,
		Message:   f.Message,
		CreatedAt: f.CreatedAt.Format(time.RFC3339),
	}
}
