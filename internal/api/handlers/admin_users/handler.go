package admin_users

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/mph199/eduvite-backend/internal/api/handlers"
	"github.com/mph199/eduvite-backend/internal/api/middleware"
	"github.com/mph199/eduvite-backend/internal/domain"
	accountsService "github.com/mph199/eduvite-backend/internal/service/accounts"
)

const (
	msgInvalidRequestBody = "Ungültiger Anfrageinhalt"
	msgInvalidUserID      = "Ungültige Benutzer-ID"
	msgInvalidRole        = "role must be \"admin\" or \"teacher\""
	msgUserNotFound       = "Benutzer nicht gefunden"
	msgSelfDemotion       = "Die eigene Administratorrolle kann nicht entfernt werden"
	msgNotAuthenticated   = "Nicht angemeldet"
)

// UserModel учетная запись в админской выдаче, без хэша пароля
type UserModel struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	TeacherID *int64 `json:"teacherId"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// UpdateRolePayload HTTP-модель смены роли
type UpdateRolePayload struct {
	Role string `json:"role"`
}

// Handler админские операции над учетными записями
type Handler struct {
	accounts AccountsService
	logger   Logger
}

func NewHandler(accounts AccountsService, logger Logger) *Handler {
	return &Handler{
		accounts: accounts,
		logger:   logger,
	}
}

// List GET /api/admin/users
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.accounts.List(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/users - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	users := make([]UserModel, 0, len(list))
	for _, u := range list {
		users = append(users, fromUser(u))
	}
	handlers.RespondJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}

// UpdateRole PATCH /api/admin/users/{id}
func (h *Handler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgNotAuthenticated)
		return
	}

	userID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	var payload UpdateRolePayload
	if err := handlers.DecodeJSON(r, &payload); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	user, err := h.accounts.UpdateRole(r.Context(), claims.Username, userID, domain.UserRole(payload.Role))
	if err != nil {
		switch {
		case errors.Is(err, accountsService.ErrInvalidRole):
			handlers.RespondBadRequest(w, msgInvalidRole)

		case errors.Is(err, accountsService.ErrSelfDemotion):
			handlers.RespondBadRequest(w, msgSelfDemotion)

		case errors.Is(err, accountsService.ErrUserNotFound):
			handlers.RespondNotFound(w, msgUserNotFound)

		default:
			h.logger.Error("PATCH /admin/users - Failed: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/users - Role updated: user_id=%d, role=%s, actor=%s",
		userID, user.Role, claims.Username)
	handlers.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "user": fromUser(user)})
}

// Delete DELETE /api/admin/users/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgNotAuthenticated)
		return
	}

	userID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	if err := h.accounts.Delete(r.Context(), claims.Username, userID); err != nil {
		switch {
		case errors.Is(err, accountsService.ErrSelfDemotion):
			handlers.RespondBadRequest(w, msgSelfDemotion)

		case errors.Is(err, accountsService.ErrUserNotFound):
			handlers.RespondNotFound(w, msgUserNotFound)

		default:
			h.logger.Error("DELETE /admin/users - Failed: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/users - User deleted: user_id=%d, actor=%s", userID, claims.Username)
	handlers.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func fromUser(u *domain.User) UserModel {
	return UserModel{
		ID:        u.ID,
		Username:  u.Username,
		Role:      string(u.Role),
		TeacherID: u.TeacherID,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
	}
}
