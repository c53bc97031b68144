package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// mockLogger реализует интерфейс logger для тестов
type mockLogger struct{}

func (m *mockLogger) Info(msg string)                   {}
func (m *mockLogger) Infof(format string, args ...any)  {}
func (m *mockLogger) Error(msg string)                  {}
func (m *mockLogger) Errorf(format string, args ...any) {}
func (m *mockLogger) Debug(msg string)                  {}
func (m *mockLogger) Debugf(format string, args ...any) {}

func TestTokenAuthMiddleware_BearerToken(t *testing.T) {
	validToken := "test-api-token-12345"

	tokenAuth := NewTokenAuth(TokenAuthConfig{
		APIToken: validToken,
		Logger:   &mockLogger{},
	})

	// Простой хендлер для тестов
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("success"))
	})

	handler := tokenAuth.Middleware(nextHandler)

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		description    string
	}{
		{
			name:           "ValidBearerToken",
			authHeader:     "Bearer " + validToken,
			expectedStatus: http.StatusOK,
			description:    "Запрос с правильным Bearer токеном должен пройти",
		},
		{
			name:           "InvalidBearerToken",
			authHeader:     "Bearer wrong-token",
			expectedStatus: http.StatusUnauthorized,
			description:    "Запрос с неправильным токеном должен вернуть 401",
		},
		{
			name:           "NoAuthHeader",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
			description:    "Запрос без заголовка Authorization должен вернуть 401",
		},
		{
			name:           "NoBearerPrefix",
			authHeader:     validToken,
			expectedStatus: http.StatusUnauthorized,
			description:    "Токен без префикса Bearer должен вернуть 401",
		},
		{
			name:           "WrongPrefix",
			authHeader:     "Basic " + validToken,
			expectedStatus: http.StatusUnauthorized,
			description:    "Токен с неправильным префиксом должен вернуть 401",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code, tt.description)
		})
	}
}

func TestTokenAuthMiddleware_EmptyToken(t *testing.T) {
	tokenAuth := NewTokenAuth(TokenAuthConfig{
		Logger: &mockLogger{},
	})

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := tokenAuth.Middleware(nextHandler)

	// Без настроенного токена метрики открыты
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}
