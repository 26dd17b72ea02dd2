package web

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"systemet/internal/observability"
)

const RequestIDHeader = "X-Request-ID"

type ctxKey int

const requestIDKey ctxKey = 0

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Instrument tags each request with an id (reusing the client's when it is
// a valid UUID), logs it and counts it.
func Instrument(next http.Handler, log logrus.FieldLogger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		id := requestID(r.Header.Get(RequestIDHeader))
		w.Header().Set(RequestIDHeader, id)
		r = r.WithContext(context.WithValue(r.Context(), requestIDKey, id))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		observability.RecordRequest(methodLabel(r.Method), routeLabel(r.URL.Path), rec.status)
		log.WithFields(logrus.Fields{
			"request_id": id,
			"method":     methodLabel(r.Method),
			"path":       r.URL.Path,
			"status":     rec.status,
			"duration":   time.Since(start).String(),
		}).Info("request")
	})
}

// requestID returns the client's id in canonical form, or a fresh one when
// it is missing or not a UUID.
func requestID(header string) string {
	if header != "" && len(header) <= 64 {
		if id, err := uuid.Parse(header); err == nil {
			return id.String()
		}
	}
	return uuid.New().String()
}

func methodLabel(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions:
		return method
	}
	return "other"
}

// routeLabel keeps unknown paths out of the metric label space.
func routeLabel(path string) string {
	switch path {
	case "/", "/healthz":
		return path
	}
	return "other"
}
