package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pivolan/claims_analyzer/config"
	"github.com/pivolan/claims_analyzer/dataset"
	"github.com/pivolan/claims_analyzer/render"
	"github.com/pivolan/claims_analyzer/warehouse"
)

var (
	flagKind string
	flagX    string
	flagY    string
	flagOut  string
	flagDSN  string
)

var chartCmd = &cobra.Command{
	Use:   "chart <dataset-id>",
	Short: "Build a chart via the query facade",
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
		result, err := r.Chart(args[0], flagUser, filters, dataset.ChartRequest{
			Kind:        flagKind,
			XColumn:     flagX,
			YColumn:     flagY,
			Aggregation: flagAgg,
			Limit:       flagLimit,
			SortBy:      flagSort,
		})
		if err != nil {
			return err
		}
		if flagOut == "" {
			return printJSON(result)
		}
		f, err := os.Create(flagOut)
		if err != nil {
			return err
		}
		defer f.Close()
		title := fmt.Sprintf("%s: %s by %s", flagKind, flagY, flagX)
		if err := render.ChartHTML(f, title, result); err != nil {
			return err
		}
		fmt.Println("written", flagOut)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <dataset-id>",
	Short: "Export a dataset to ClickHouse",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRegistry()
		if err != nil {
			return err
		}
		meta, err := r.Meta(args[0], flagUser)
		if err != nil {
			return err
		}
		table, err := r.Dataset(args[0], flagUser)
		if err != nil {
			return err
		}

		dsn := flagDSN
		if dsn == "" {
			dsn = config.GetConfig().ClickhouseDSN
		}
		if dsn == "" {
			return fmt.Errorf("no DSN: set --dsn or CLICKHOUSE_DSN")
		}
		db, err := warehouse.Open(dsn)
		if err != nil {
			return fmt.Errorf("cannot connect to clickhouse: %w", err)
		}

		tableName := warehouse.TableName(table, meta.Filename)
		if err := warehouse.Export(db, tableName, table); err != nil {
			return err
		}
		fmt.Println("exported to table", tableName)
		return nil
	},
}

func init() {
	chartCmd.Flags().StringVar(&flagKind, "kind", "bar",
		"chart kind: bar|horizontal_bar|line|area|pie|doughnut|scatter|table")
	chartCmd.Flags().StringVar(&flagX, "x", "", "x (group/category) column")
	chartCmd.Flags().StringVar(&flagY, "y", "", "y (value) column")
	chartCmd.Flags().StringVar(&flagAgg, "agg", "sum", "aggregator")
	chartCmd.Flags().StringVar(&flagSort, "sort", "value", "sort by: value|label")
	chartCmd.Flags().IntVar(&flagLimit, "limit", 0, "max points/groups")
	chartCmd.Flags().StringVar(&flagOut, "out", "", "write an HTML chart to this path")
	exportCmd.Flags().StringVar(&flagDSN, "dsn", "", "ClickHouse DSN (MySQL protocol)")

	rootCmd.AddCommand(chartCmd, exportCmd)
}
