package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/MrPunder/spasibki-front/internal/logger"
)

// TokenAuthConfig содержит конфигурацию для TokenAuth
type TokenAuthConfig struct {
	APIToken string
	Logger   logger.Logger
}

// TokenAuth закрывает служебные маршруты Bearer-токеном
type TokenAuth struct {
	config TokenAuthConfig
}

// NewTokenAuth создает новый экземпляр TokenAuth
func NewTokenAuth(config TokenAuthConfig) *TokenAuth {
	return &TokenAuth{
		config: config,
	}
}

// Middleware проверяет токен. Пустой APIToken отключает проверку
func (ta *TokenAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ta.config.APIToken == "" {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			ta.config.Logger.Errorf("Попытка доступа без токена: %s %s", r.Method, r.URL.Path)
			http.Error(w, "Unauthorized: Token required", http.StatusUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			ta.config.Logger.Errorf("Неверный формат токена: %s %s", r.Method, r.URL.Path)
			http.Error(w, "Unauthorized: Invalid token format", http.StatusUnauthorized)
			return
		}

		if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(ta.config.APIToken)) != 1 {
			ta.config.Logger.Errorf("Неверный токен: %s %s", r.Method, r.URL.Path)
			http.Error(w, "Unauthorized: Invalid token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
