package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"systemet/internal/render"
)

const shutdownTimeout = 10 * time.Second

// NewMux wires the page and health routes behind Instrument.
func NewMux(products ProductSource, renderer *render.Renderer, log logrus.FieldLogger) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", PageHandler(products, renderer, log))
	mux.HandleFunc("/healthz", HealthHandler)
	return Instrument(mux, log)
}

// Serve runs srv until ctx is done, then shuts it down gracefully.
func Serve(ctx context.Context, srv *http.Server, log logrus.FieldLogger) error {
	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	log.WithField("addr", srv.Addr).Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
