package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"systemet/internal/model"
	"systemet/internal/render"
)

var productCmd = &cobra.Command{
	Use:   "product <article-number>",
	Short: "Show one product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newReader().Find(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		renderer, err := render.New(render.Options{ProductBaseURL: cfg.ProductBaseURL})
		if err != nil {
			return err
		}
		writeProduct(cmd.OutOrStdout(), p, renderer.ProductURL(p))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(productCmd)
}

// writeProduct prints p under the same labels as the table headers.
func writeProduct(w io.Writer, p model.Product, link string) {
	values := []model.Field{
		p.Number, p.Name, p.Name2, p.Supplier, p.APK, p.Price, p.Volume,
		p.AlcoholPercentage, p.Category1, p.Category2, p.Category3, p.Country, p.LaunchDate,
	}
	width := 0
	for _, c := range render.Columns {
		width = max(width, len(c))
	}
	for i, c := range render.Columns {
		if !values[i].Valid {
			continue
		}
		fmt.Fprintf(w, "%-*s  %s\n", width, c, values[i].String())
	}
	fmt.Fprintf(w, "%-*s  %s\n", width, "Link", link)
}
