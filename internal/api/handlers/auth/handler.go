package auth

import (
	"errors"
	"net/http"

	"github.com/mph199/eduvite-backend/internal/api/handlers"
	"github.com/mph199/eduvite-backend/internal/api/middleware"
	accountsService "github.com/mph199/eduvite-backend/internal/service/accounts"
)

const (
	msgInvalidRequestBody = "Ungültiger Anfrageinhalt"
	msgInvalidCredentials = "Benutzername oder Passwort falsch"
	msgNotAuthenticated   = "Nicht angemeldet"
)

// LoginRequest HTTP request model
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionUser данные пользователя в ответах аутентификации
type SessionUser struct {
	Username  string `json:"username"`
	Role      string `json:"role"`
	TeacherID *int64 `json:"teacherId,omitempty"`
}

// LoginResponse HTTP response model
type LoginResponse struct {
	Success bool        `json:"success"`
	Token   string      `json:"token"`
	User    SessionUser `json:"user"`
}

// VerifyResponse HTTP response model интроспекции токена
type VerifyResponse struct {
	Authenticated bool        `json:"authenticated"`
	User          SessionUser `json:"user"`
}

// Handler обслуживает вход, выход и интроспекцию токена
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

// Login POST /api/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, accountsService.ErrInvalidCredentials) {
			handlers.RespondUnauthorized(w, msgInvalidCredentials)
			return
		}
		h.logger.Error("POST /auth/login - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, LoginResponse{
		Success: true,
		Token:   result.Token,
		User: SessionUser{
			Username:  result.User.Username,
			Role:      string(result.User.Role),
			TeacherID: result.User.TeacherID,
		},
	})
}

// Logout POST|DELETE /api/auth/logout
// Токены не хранятся на сервере, выход - это забывание токена клиентом
func (h *Handler) Logout(w http.ResponseWriter, _ *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Verify GET /api/auth/verify
// Вызывается за Authenticate middleware, клеймы уже проверены
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgNotAuthenticated)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, VerifyResponse{
		Authenticated: true,
		User: SessionUser{
			Username:  claims.Username,
			Role:      string(claims.Role),
			TeacherID: claims.TeacherID,
		},
	})
}
