// Package render formats engine results for terminal and HTML output.
package render

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/pivolan/claims_analyzer/domain/models"
)

// ProfileTable renders a dataset profile as an ASCII table, one row per
// column.
func ProfileTable(meta *models.DatasetMeta) string {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("%s: %d rows, %d columns", meta.Filename, meta.Rows, meta.Columns))
	t.AppendHeader(table.Row{"Column", "Kind", "DType", "Nulls", "Min", "Max", "Mean", "Unique"})

	for _, col := range meta.ColumnsInfo {
		row := table.Row{col.Name, col.Kind, col.DType, col.NullCount, "", "", "", ""}
		if col.Numeric != nil {
			row[4] = formatStat(col.Numeric.Min)
			row[5] = formatStat(col.Numeric.Max)
			row[6] = formatStat(col.Numeric.Mean)
		}
		if col.Categorical != nil {
			row[7] = strconv.FormatInt(col.Categorical.UniqueCount, 10)
		}
		t.AppendRow(row)
	}

	t.SetStyle(table.StyleDefault)
	return t.Render()
}

// formatStat renders a nullable stat; all-null columns show as "-" so
// they cannot be misread as zero.
func formatStat(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

// SeriesTable renders a labels/values result.
func SeriesTable(title string, res models.SeriesResult) string {
	t := table.NewWriter()
	if title != "" {
		t.SetTitle(title)
	}
	t.AppendHeader(table.Row{"Label", "Value"})
	for i, label := range res.Labels {
		t.AppendRow(table.Row{label, strconv.FormatFloat(res.Values[i], 'f', -1, 64)})
	}
	t.SetStyle(table.StyleDefault)
	return t.Render()
}

// DataTable renders one page of a table result.
func DataTable(res *models.TableResult) string {
	t := table.NewWriter()
	header := table.Row{}
	for _, c := range res.Columns {
		header = append(header, c)
	}
	t.AppendHeader(header)
	for _, cells := range res.Data {
		row := table.Row{}
		for _, cell := range cells {
			row = append(row, cell)
		}
		t.AppendRow(row)
	}
	t.SetCaption("page %d/%d, %d records", res.Page, res.TotalPages, res.TotalRecords)
	t.SetStyle(table.StyleDefault)
	return t.Render()
}

// SummaryText formats a deep numeric column summary.
func SummaryText(field string, stats *models.NumberStats) string {
	if stats == nil {
		return fmt.Sprintf("no numeric values in column %s", field)
	}
	outlierStr := ""
	if len(stats.Outliers) > 0 {
		outlierStr = fmt.Sprintf("\nOutliers: %.2f", stats.Outliers)
	}
	return fmt.Sprintf(`Column %s:

Count: %d
Average: %.2f
Median: %.2f
Min: %.2f
Max: %.2f

Quantiles:
p1: %.2f  p10: %.2f  p25: %.2f  p75: %.2f  p90: %.2f  p99: %.2f

IQR: %.2f%s`,
		field,
		stats.Count,
		stats.Average,
		stats.Median,
		stats.Min,
		stats.Max,
		stats.Quantiles["p1"],
		stats.Quantiles["p10"],
		stats.Quantiles["p25"],
		stats.Quantiles["p75"],
		stats.Quantiles["p90"],
		stats.Quantiles["p99"],
		stats.IQR,
		outlierStr)
}
