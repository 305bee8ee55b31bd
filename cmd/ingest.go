package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pivolan/claims_analyzer/config"
	"github.com/pivolan/claims_analyzer/render"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>",
	Short: "Ingest a delimited file (or zip/gz/lz4 archive) into a new dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRegistry()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), config.GetConfig().IngestTimeout)
		defer cancel()

		meta, err := r.Ingest(ctx, args[0], flagUser, filepath.Base(args[0]))
		if err != nil {
			return err
		}
		fmt.Println("dataset id:", meta.ID)
		fmt.Println(render.ProfileTable(meta))
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List ingested datasets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRegistry()
		if err != nil {
			return err
		}
		datasets, err := r.List(flagUser)
		if err != nil {
			return err
		}
		for _, d := range datasets {
			fmt.Printf("%s  %-30s %8d rows %3d cols %8.2f MB  %s\n",
				d.ID, d.Filename, d.Rows, d.Columns, d.SizeMB,
				d.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile <dataset-id>",
	Short: "Show the column profile of a dataset",
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
		fmt.Println(render.ProfileTable(meta))
		return nil
	},
}

var previewRows int

var previewCmd = &cobra.Command{
	Use:   "preview <dataset-id>",
	Short: "Show the first rows of a dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := openRegistry()
		if err != nil {
			return err
		}
		preview, err := r.Preview(args[0], flagUser, previewRows)
		if err != nil {
			return err
		}
		fmt.Printf("%d total rows\n", preview.TotalRows)
		fmt.Println(joinRow(preview.Columns))
		for _, row := range preview.Rows {
			fmt.Println(joinRow(row))
		}
		return nil
	},
}

func joinRow(cells []string) string {
	out := ""
	for i, c := range cells {
		if i > 0 {
			out += "\t"
		}
		out += c
	}
	return out
}

func init() {
	previewCmd.Flags().IntVar(&previewRows, "rows", 20, "rows to preview")
	rootCmd.AddCommand(ingestCmd, listCmd, profileCmd, previewCmd)
}
