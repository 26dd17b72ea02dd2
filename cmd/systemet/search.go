package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"systemet/internal/model"
	"systemet/internal/repository"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search products by name or supplier",
	Long: `Search the catalog for products whose name, second name or supplier
contains the query. Results are ordered by APK, highest first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		products, err := newReader().Search(cmd.Context(), args[0], searchLimit)
		if err != nil {
			return err
		}
		if len(products) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No products found matching %q\n", args[0])
			return nil
		}
		writeProducts(cmd.OutOrStdout(), products)
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", repository.DefaultSearchLimit, "Maximum number of results")
	rootCmd.AddCommand(searchCmd)
}

func writeProducts(w io.Writer, products []model.Product) {
	table := newTable(w, []string{"Number", "Name", "Supplier", "Price", "Volume", "Alcohol %", "APK"})
	for _, p := range products {
		table.Append([]string{
			p.Number.String(),
			repository.DisplayName(p),
			p.Supplier.String(),
			p.Price.String(),
			p.Volume.String(),
			p.AlcoholPercentage.String(),
			p.APK.String(),
		})
	}
	table.Render()
}
