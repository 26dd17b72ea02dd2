package web

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"systemet/internal/model"
	"systemet/internal/observability"
	"systemet/internal/render"
	"systemet/internal/repository"
)

// ProductSource is the data reader behind the page.
type ProductSource interface {
	All(ctx context.Context) ([]model.Product, error)
}

// PageHandler serves the product table. Every request reads the catalog
// once and renders into a buffer, so a failure never leaves a partial table
// on the wire.
func PageHandler(products ProductSource, renderer *render.Renderer, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}

		start := time.Now()
		entry := log.WithField("request_id", RequestID(r.Context()))

		list, err := products.All(r.Context())
		if err != nil {
			status, outcome, msg := readFailure(err)
			observability.RecordPage(outcome, 0, time.Since(start))
			entry.WithError(err).Error("catalog read failed")
			http.Error(w, msg, status)
			return
		}

		var buf bytes.Buffer
		if err := renderer.Render(&buf, list); err != nil {
			observability.RecordPage(observability.OutcomeRenderError, 0, time.Since(start))
			entry.WithError(err).Error("render failed")
			http.Error(w, "render error", http.StatusInternalServerError)
			return
		}

		observability.RecordPage(observability.OutcomeOK, len(list), time.Since(start))
		entry.WithField("rows", len(list)).Debug("rendered")

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		_, _ = w.Write(buf.Bytes())
	}
}

func readFailure(err error) (status int, outcome, msg string) {
	switch {
	case errors.Is(err, repository.ErrDataUnavailable):
		return http.StatusServiceUnavailable, observability.OutcomeDataUnavailable, "data unavailable"
	case errors.Is(err, repository.ErrQuery):
		return http.StatusInternalServerError, observability.OutcomeQueryError, "query error"
	}
	return http.StatusInternalServerError, observability.OutcomeQueryError, "internal error"
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
