package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"systemet/internal/logging"
	"systemet/internal/observability"
	"systemet/internal/render"
	"systemet/internal/web"
)

var (
	serveAddr        string
	serveMetricsPort string
	serveNoMetrics   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the product table over HTTP",
	Long: `Serve the product table. Every request reads the whole catalog from
the database file and renders it; sorting, paging and search run in the
browser.

Prometheus metrics are exposed on /metrics of the metrics port.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default $SYSTEMET_ADDR or :8080)")
	serveCmd.Flags().StringVar(&serveMetricsPort, "metrics-port", "", "Metrics port (default $METRICS_PORT or 9090)")
	serveCmd.Flags().BoolVar(&serveNoMetrics, "no-metrics", false, "Do not start the metrics listener")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}
	if serveMetricsPort != "" {
		cfg.MetricsPort = serveMetricsPort
	}

	renderer, err := render.New(render.Options{
		Title:          cfg.WebTitle,
		ProductBaseURL: cfg.ProductBaseURL,
		PageLength:     cfg.PageLength,
		LanguageURL:    cfg.LanguageURL,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	webLog := logging.Component(log, "web")
	webLog.WithField("db", cfg.DatabasePath).Info("serving product catalog")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		handler := web.NewMux(newReader(), renderer, webLog)
		return web.Serve(ctx, web.NewServer(cfg.Addr, handler), webLog)
	})
	if !serveNoMetrics {
		g.Go(func() error {
			return web.Serve(ctx, observability.NewServer(cfg.MetricsPort), logging.Component(log, "metrics"))
		})
	}
	return g.Wait()
}
