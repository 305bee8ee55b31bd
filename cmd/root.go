package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pivolan/claims_analyzer/config"
	"github.com/pivolan/claims_analyzer/dataset"
)

var (
	flagUser    string
	flagFilters []string

	registry *dataset.Registry
)

var rootCmd = &cobra.Command{
	Use:   "claims-analyzer",
	Short: "Analyze claims datasets: ingest delimited files and run filtered aggregations",
	Long: `claims-analyzer ingests claims-style CSV files (plain or zip/gz/lz4
archived) into typed in-memory tables and answers analytical queries over
them: KPI summaries, trends, grouped aggregations, top-N rankings,
histograms and paginated table views.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagUser, "user", "local", "dataset owner id")
	rootCmd.PersistentFlags().StringArrayVar(&flagFilters, "filter", nil,
		"filter as FIELD=value1,value2 (repeatable)")
}

// openRegistry builds the registry lazily so commands that only print
// help never touch the data directory.
func openRegistry() (*dataset.Registry, error) {
	if registry != nil {
		return registry, nil
	}
	r, err := dataset.NewRegistry(config.GetConfig().DataDir)
	if err != nil {
		return nil, err
	}
	registry = r
	return registry, nil
}

// parseFilters turns repeated FIELD=a,b flags into a filter set.
func parseFilters() (dataset.FilterSet, error) {
	if len(flagFilters) == 0 {
		return nil, nil
	}
	filters := dataset.FilterSet{}
	for _, raw := range flagFilters {
		field, values, found := strings.Cut(raw, "=")
		if !found || field == "" {
			return nil, fmt.Errorf("invalid filter %q, expected FIELD=value1,value2", raw)
		}
		filters[field] = strings.Split(values, ",")
	}
	return filters, nil
}
