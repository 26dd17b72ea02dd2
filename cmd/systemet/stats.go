package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"systemet/internal/repository"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newReader().Stats(cmd.Context())
		if err != nil {
			return err
		}
		if statsJSON {
			return writeJSON(cmd.OutOrStdout(), s)
		}
		writeStats(cmd.OutOrStdout(), s)
		return nil
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(statsCmd)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeStats(w io.Writer, s *repository.Stats) {
	fmt.Fprintf(w, "Products:      %s\n", humanize.Comma(s.TotalProducts))
	fmt.Fprintf(w, "Average price: %s kr\n", kronor(s.AvgPrice))
	fmt.Fprintf(w, "Price range:   %s - %s kr\n", kronor(s.MinPrice), kronor(s.MaxPrice))
	fmt.Fprintf(w, "Average APK:   %.2f\n", s.AvgAPK)

	if len(s.TopCategories) > 0 {
		fmt.Fprintln(w, "\nTop categories")
		table := newTable(w, []string{"Category", "Products", "Avg price", "Avg APK"})
		for _, c := range s.TopCategories {
			table.Append([]string{c.Category, humanize.Comma(c.Count), kronor(c.AvgPrice), fmt.Sprintf("%.2f", c.AvgAPK)})
		}
		table.Render()
	}

	if len(s.BestValue) > 0 {
		fmt.Fprintln(w, "\nBest value (APK)")
		table := newTable(w, []string{"Number", "Name", "Price", "Volume", "Alcohol", "APK"})
		for _, b := range s.BestValue {
			table.Append([]string{
				b.Number,
				b.Name,
				kronor(b.Price),
				fmt.Sprintf("%g ml", b.Volume),
				fmt.Sprintf("%g%%", b.AlcoholPercentage),
				fmt.Sprintf("%.2f", b.APK),
			})
		}
		table.Render()
	}
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	return table
}

func kronor(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}
