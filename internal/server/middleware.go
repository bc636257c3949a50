package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/dailycount/stockledger-service/internal/auth"
	"github.com/dailycount/stockledger-service/pkg/logger"
)

// Identity lifts the caller identity from trusted headers into the request
// context. An upstream gateway authenticates and sets the headers; this
// service only enforces roles.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-User-Id")
		role := r.Header.Get("X-User-Role")
		if userID != "" {
			r = r.WithContext(auth.WithUser(r.Context(), userID, role))
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// RequestLog logs every request with method, path, status and latency.
func RequestLog(next http.Handler, log logger.ZapLogger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("latency", time.Since(start)))
	})
}
