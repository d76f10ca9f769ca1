package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/fieldray/fieldops/internal/http/response"
)

// RequireRoleMiddleware создает middleware, пропускающий только пользователей
// с указанной ролью. Роль берётся из контекста, заполненного JWTMiddleware.
func RequireRoleMiddleware(role string, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userRole, ok := r.Context().Value(Role).(string)
			if !ok || userRole == "" {
				log.Error("user role missing")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}

			if userRole != role {
				log.Error("access denied", slog.String("role", userRole))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("access denied"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
