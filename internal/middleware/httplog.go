package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/MrPunder/spasibki-front/internal/logger"
	"github.com/google/uuid"
)

// httpLogger is logger interface for middleware logger
type httpLogger interface {
	logger.Logger
	RequestLog(requestID string, method string, path string)
	ResponseLog(requestID string, status int, size int, duration time.Duration)
}

type ctxKey struct{}

// RequestID достаёт идентификатор запроса, выданный HTTPLogHandler
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

type responseData struct {
	status int
	size   int
}

type HTTPLogger struct {
	log httpLogger
}

func NewHTTPLoger(logger httpLogger) *HTTPLogger {
	return &HTTPLogger{logger}
}

// loggingResponseWriter allows use ResponnseWriter and stores information to log
type loggingResponseWriter struct {
	http.ResponseWriter
	responseData *responseData
}

func (r *loggingResponseWriter) Write(b []byte) (int, error) {
	size, err := r.ResponseWriter.Write(b)
	r.responseData.size += size
	if r.responseData.status == 0 {
		r.responseData.status = 200
	}
	return size, err
}

func (r *loggingResponseWriter) WriteHeader(statusCode int) {
	r.responseData.status = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

func (l *HTTPLogger) HTTPLogHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		l.log.RequestLog(requestID, r.Method, r.RequestURI)
		start := time.Now()

		resD := &responseData{}
		lw := &loggingResponseWriter{
			ResponseWriter: w,
			responseData:   resD,
		}

		next.ServeHTTP(lw, r.WithContext(context.WithValue(r.Context(), ctxKey{}, requestID)))

		if resD.status == 0 {
			resD.status = http.StatusOK
		}
		l.log.ResponseLog(requestID, resD.status, resD.size, time.Since(start))
	})
}
