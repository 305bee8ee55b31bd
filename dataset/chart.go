package dataset

import (
	"errors"
	"fmt"

	"github.com/pivolan/claims_analyzer/domain/models"
)

// ChartKind is the closed set of supported chart types.
type ChartKind string

const (
	ChartBar           ChartKind = "bar"
	ChartHorizontalBar ChartKind = "horizontal_bar"
	ChartLine          ChartKind = "line"
	ChartArea          ChartKind = "area"
	ChartPie           ChartKind = "pie"
	ChartDoughnut      ChartKind = "doughnut"
	ChartScatter       ChartKind = "scatter"
	ChartTable         ChartKind = "table"
)

var ErrUnsupportedChart = errors.New("unsupported chart type")

// ParseChartKind validates a caller-supplied chart type name.
func ParseChartKind(name string) (ChartKind, error) {
	switch ChartKind(name) {
	case ChartBar, ChartHorizontalBar, ChartLine, ChartArea,
		ChartPie, ChartDoughnut, ChartScatter, ChartTable:
		return ChartKind(name), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedChart, name)
	}
}

// ValidationError reports a missing required chart parameter.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "missing required field: " + e.Field
}

// ChartRequest describes one facade query.
type ChartRequest struct {
	Kind        string   `json:"chart_type"`
	XColumn     string   `json:"x_column"`
	YColumn     string   `json:"y_column"`
	Aggregation string   `json:"aggregation"`
	Limit       int      `json:"limit"`
	SortBy      string   `json:"sort_by"`
	Columns     []string `json:"columns"`
}

// BuildChart maps a chart request onto the aggregation engine. Unknown
// chart kinds error; missing required axes error naming the field;
// unsupported aggregator names silently fall back to sum.
func BuildChart(v *View, req ChartRequest) (*models.ChartResult, error) {
	kind, err := ParseChartKind(req.Kind)
	if err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	var data interface{}
	switch kind {
	case ChartBar, ChartHorizontalBar, ChartLine, ChartArea:
		if req.XColumn == "" {
			return nil, &ValidationError{Field: "x_column"}
		}
		if req.YColumn == "" {
			return nil, &ValidationError{Field: "y_column"}
		}
		sortBy := SortByValue
		if SortBy(req.SortBy) == SortByLabel {
			sortBy = SortByLabel
		}
		series := v.GroupAggregate(req.XColumn, req.YColumn, ParseAggregator(req.Aggregation), sortBy, limit)
		data = models.CategoricalChartData{
			Labels: series.Labels,
			Values: series.Values,
			XLabel: req.XColumn,
			YLabel: req.YColumn,
		}

	case ChartPie, ChartDoughnut:
		if req.XColumn == "" {
			return nil, &ValidationError{Field: "x_column"}
		}
		var series models.SeriesResult
		switch {
		case req.YColumn == "":
			// no value column: plain occurrence counts
			series = headSeries(v.ValueCounts(req.XColumn), limit)
		case ParseAggregator(req.Aggregation) == AggCount:
			series = v.GroupAggregate(req.XColumn, req.XColumn, AggCount, SortByValue, limit)
		default:
			series = v.GroupAggregate(req.XColumn, req.YColumn, AggSum, SortByValue, limit)
		}
		data = series

	case ChartScatter:
		if req.XColumn == "" {
			return nil, &ValidationError{Field: "x_column"}
		}
		if req.YColumn == "" {
			return nil, &ValidationError{Field: "y_column"}
		}
		data = v.Scatter(req.XColumn, req.YColumn, limit)

	case ChartTable:
		columns := req.Columns
		if len(columns) == 0 {
			columns = v.table.ColumnNames()
		}
		data = v.ProjectTable(columns, 1, limit)
	}

	return &models.ChartResult{Type: string(kind), Data: data}, nil
}
