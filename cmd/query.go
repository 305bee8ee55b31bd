package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pivolan/claims_analyzer/dataset"
	"github.com/pivolan/claims_analyzer/plot"
	"github.com/pivolan/claims_analyzer/render"
)

var (
	flagGroup    string
	flagValue    string
	flagAgg      string
	flagSort     string
	flagLimit    int
	flagField    string
	flagPage     int
	flagPageSize int
	flagPNG      string
)

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

var aggregateCmd = &cobra.Command{
	Use:   "aggregate <dataset-id>",
	Short: "Grouped single-metric aggregate",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRegistry()
		if err != nil {
			return err
		}
		filters, err := parseFilters()
		if err != nil {
			return err
		}
		result, err := r.Aggregate(args[0], flagUser, filters, flagGroup, flagValue, flagAgg, flagSort, flagLimit)
		if err != nil {
			return err
		}
		fmt.Println(render.SeriesTable(fmt.Sprintf("%s(%s) by %s", flagAgg, flagValue, flagGroup), result))
		return nil
	},
}

var topnCmd = &cobra.Command{
	Use:   "topn <dataset-id>",
	Short: "Top-N groups by summed metric",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRegistry()
		if err != nil {
			return err
		}
		filters, err := parseFilters()
		if err != nil {
			return err
		}
		result, err := r.TopN(args[0], flagUser, filters, flagGroup, flagValue, flagLimit)
		if err != nil {
			return err
		}
		fmt.Println(render.SeriesTable(fmt.Sprintf("top %s by %s", flagGroup, flagValue), result))
		return nil
	},
}

var distributionCmd = &cobra.Command{
	Use:   "distribution <dataset-id>",
	Short: "Value counts of a column",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRegistry()
		if err != nil {
			return err
		}
		filters, err := parseFilters()
		if err != nil {
			return err
		}
		result, err := r.Distribution(args[0], flagUser, filters, flagField)
		if err != nil {
			return err
		}
		fmt.Println(render.SeriesTable(flagField, result))
		return nil
	},
}

var histogramCmd = &cobra.Command{
	Use:   "histogram <dataset-id>",
	Short: "Fixed-bin histogram over a numeric column",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRegistry()
		if err != nil {
			return err
		}
		filters, err := parseFilters()
		if err != nil {
			return err
		}
		result, err := r.Histogram(args[0], flagUser, filters, flagField, dataset.AgeBins)
		if err != nil {
			return err
		}
		if flagPNG != "" {
			png, err := plot.DrawHistogram(flagField, result.Labels, result.Values)
			if err != nil {
				return err
			}
			if err := os.WriteFile(flagPNG, png, 0644); err != nil {
				return err
			}
			fmt.Println("written", flagPNG)
			return nil
		}
		fmt.Println(render.SeriesTable(flagField, result))
		return nil
	},
}

var tableCmd = &cobra.Command{
	Use:   "table <dataset-id>",
	Short: "Paginated claims table view",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRegistry()
		if err != nil {
			return err
		}
		filters, err := parseFilters()
		if err != nil {
			return err
		}
		result, err := r.TablePage(args[0], flagUser, filters, flagPage, flagPageSize)
		if err != nil {
			return err
		}
		fmt.Println(render.DataTable(result))
		return nil
	},
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard <dataset-id>",
	Short: "Full claims report suite as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRegistry()
		if err != nil {
			return err
		}
		filters, err := parseFilters()
		if err != nil {
			return err
		}
		report, err := r.Dashboard(args[0], flagUser, filters)
		if err != nil {
			return err
		}
		return printJSON(report)
	},
}

var optionsCmd = &cobra.Command{
	Use:   "options <dataset-id>",
	Short: "Available filter options",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRegistry()
		if err != nil {
			return err
		}
		options, err := r.FilterOptions(args[0], flagUser)
		if err != nil {
			return err
		}
		return printJSON(options)
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary <dataset-id>",
	Short: "Deep numeric summary of a column",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRegistry()
		if err != nil {
			return err
		}
		filters, err := parseFilters()
		if err != nil {
			return err
		}
		stats, err := r.Summary(args[0], flagUser, filters, flagField)
		if err != nil {
			return err
		}
		fmt.Println(render.SummaryText(flagField, stats))
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{aggregateCmd, topnCmd} {
		c.Flags().StringVar(&flagGroup, "group", "", "group-by column")
		c.Flags().StringVar(&flagValue, "value", "", "value column")
		c.Flags().IntVar(&flagLimit, "limit", 0, "max groups")
	}
	aggregateCmd.Flags().StringVar(&flagAgg, "agg", "sum", "aggregator: sum|mean|count|min|max")
	aggregateCmd.Flags().StringVar(&flagSort, "sort", "value", "sort by: value|label")
	for _, c := range []*cobra.Command{distributionCmd, histogramCmd, summaryCmd} {
		c.Flags().StringVar(&flagField, "field", "", "column name")
	}
	histogramCmd.Flags().StringVar(&flagPNG, "png", "", "write a PNG instead of text output")
	tableCmd.Flags().IntVar(&flagPage, "page", 1, "page number")
	tableCmd.Flags().IntVar(&flagPageSize, "page-size", 100, "rows per page")

	rootCmd.AddCommand(aggregateCmd, topnCmd, distributionCmd, histogramCmd,
		tableCmd, dashboardCmd, optionsCmd, summaryCmd)
}
