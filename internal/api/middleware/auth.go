package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mph199/eduvite-backend/internal/api/handlers"
	"github.com/mph199/eduvite-backend/internal/auth"
	"github.com/mph199/eduvite-backend/internal/domain"
)

type contextKey string

const claimsKey contextKey = "authClaims"

const (
	msgMissingToken  = "Nicht angemeldet"
	msgInvalidToken  = "Sitzung abgelaufen oder ungültig"
	msgAdminOnly     = "Nur für Administratoren"
	msgTeacherOnly   = "Nur für Lehrkräfte"
	msgNoTeacherLink = "Kein Lehrkraft-Profil verknüpft"
)

// TokenParser проверяет JWT и возвращает клеймы
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Authenticate проверяет Bearer токен и кладет клеймы в контекст
func Authenticate(parser TokenParser, log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			claims, err := parser.Parse(token)
			if err != nil {
				log.Warn("%s %s - invalid token: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin пропускает только администраторов
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok || claims.Role != domain.RoleAdmin {
			handlers.RespondForbidden(w, msgAdminOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireTeacher пропускает учителей и администраторов с привязанным
// профилем учителя
func RequireTeacher(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok || (claims.Role != domain.RoleTeacher && claims.Role != domain.RoleAdmin) {
			handlers.RespondForbidden(w, msgTeacherOnly)
			return
		}
		if claims.TeacherID == nil {
			handlers.RespondForbidden(w, msgNoTeacherLink)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClaimsFromContext достает клеймы, положенные Authenticate
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok
}

// TeacherIDFromContext достает идентификатор учителя из клеймов
func TeacherIDFromContext(ctx context.Context) (int64, bool) {
	claims, ok := ClaimsFromContext(ctx)
	if !ok || claims.TeacherID == nil {
		return 0, false
	}
	return *claims.TeacherID, true
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
