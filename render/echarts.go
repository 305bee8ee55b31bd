package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/pivolan/claims_analyzer/domain/models"
)

// ChartHTML renders a facade chart result as a standalone HTML page.
// Table results have no HTML rendering.
func ChartHTML(w io.Writer, title string, res *models.ChartResult) error {
	switch res.Type {
	case "bar", "horizontal_bar", "line", "area":
		data, ok := res.Data.(models.CategoricalChartData)
		if !ok {
			return fmt.Errorf("unexpected data payload for %s chart", res.Type)
		}
		return renderAxisChart(w, title, res.Type, data)
	case "pie", "doughnut":
		series, ok := res.Data.(models.SeriesResult)
		if !ok {
			return fmt.Errorf("unexpected data payload for %s chart", res.Type)
		}
		return renderPie(w, title, res.Type, series)
	case "scatter":
		scatter, ok := res.Data.(models.ScatterResult)
		if !ok {
			return fmt.Errorf("unexpected data payload for scatter chart")
		}
		return renderScatter(w, title, scatter)
	default:
		return fmt.Errorf("no HTML rendering for chart type %s", res.Type)
	}
}

func renderAxisChart(w io.Writer, title, kind string, data models.CategoricalChartData) error {
	switch kind {
	case "line", "area":
		line := charts.NewLine()
		line.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: title}))
		items := make([]opts.LineData, 0, len(data.Values))
		for _, v := range data.Values {
			items = append(items, opts.LineData{Value: v})
		}
		seriesOpts := []charts.SeriesOpts{}
		if kind == "area" {
			seriesOpts = append(seriesOpts, charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: 0.2}))
		}
		line.SetXAxis(data.Labels).AddSeries(data.YLabel, items, seriesOpts...)
		return line.Render(w)
	default:
		bar := charts.NewBar()
		bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: title}))
		items := make([]opts.BarData, 0, len(data.Values))
		for _, v := range data.Values {
			items = append(items, opts.BarData{Value: v})
		}
		bar.SetXAxis(data.Labels).AddSeries(data.YLabel, items)
		if kind == "horizontal_bar" {
			bar.XYReversal()
		}
		return bar.Render(w)
	}
}

func renderPie(w io.Writer, title, kind string, series models.SeriesResult) error {
	pie := charts.NewPie()
	pie.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: title}))
	items := make([]opts.PieData, 0, len(series.Labels))
	for i, label := range series.Labels {
		items = append(items, opts.PieData{Name: label, Value: series.Values[i]})
	}
	seriesOpts := []charts.SeriesOpts{}
	if kind == "doughnut" {
		seriesOpts = append(seriesOpts, charts.WithPieChartOpts(opts.PieChart{Radius: []string{"40%", "75%"}}))
	}
	pie.AddSeries(title, items, seriesOpts...)
	return pie.Render(w)
}

func renderScatter(w io.Writer, title string, data models.ScatterResult) error {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: title}))
	xs := make([]float64, 0, len(data.Data))
	items := make([]opts.ScatterData, 0, len(data.Data))
	for _, p := range data.Data {
		xs = append(xs, p.X)
		items = append(items, opts.ScatterData{Value: p.Y})
	}
	scatter.SetXAxis(xs).AddSeries(data.YLabel, items)
	return scatter.Render(w)
}
