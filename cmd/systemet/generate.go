package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"systemet/internal/logging"
	"systemet/internal/render"
	"systemet/internal/web"
)

var generateOutput string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write the product table to a static HTML file",
	Long: `Render the whole catalog once and write it to a file, stamped with the
time it was generated. The file is replaced only after rendering succeeds.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "index.html", "Output file")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	renderer, err := render.New(render.Options{
		Title:          cfg.WebTitle,
		ProductBaseURL: cfg.ProductBaseURL,
		PageLength:     cfg.PageLength,
		LanguageURL:    cfg.LanguageURL,
		GeneratedAt:    time.Now(),
	})
	if err != nil {
		return err
	}

	n, err := generatePage(cmd.Context(), newReader(), renderer, generateOutput)
	if err != nil {
		return err
	}
	logging.Component(log, "generate").WithFields(logrus.Fields{
		"products": n,
		"output":   generateOutput,
	}).Info("page written")
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d products to %s\n", n, generateOutput)
	return nil
}

// generatePage renders every product into path through a temporary file in
// the same directory, so a failed run leaves the previous page in place.
func generatePage(ctx context.Context, src web.ProductSource, renderer *render.Renderer, path string) (int, error) {
	products, err := src.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("read catalog: %w", err)
	}

	var buf bytes.Buffer
	if err := renderer.Render(&buf, products); err != nil {
		return 0, fmt.Errorf("render page: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".systemet-*.html")
	if err != nil {
		return 0, err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return 0, err
	}
	if err := tmp.Close(); err != nil {
		return 0, err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return 0, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return 0, err
	}
	return len(products), nil
}
