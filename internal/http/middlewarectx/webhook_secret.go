package middlewarectx

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/fieldray/fieldops/internal/http/response"
)

// WebhookSecretHeader заголовок с общим секретом внешней квотирующей системы.
const WebhookSecretHeader = "X-Webhook-Secret"

// WebhookSecretMiddleware создает middleware, проверяющий общий секрет
// в заголовке webhook-запроса.
func WebhookSecretMiddleware(secret string, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(WebhookSecretHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
				log.Error("invalid webhook secret")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid webhook secret"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
