package plot

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// DrawTrend renders a year-month series ("2006-01" labels) as a line
// chart with a filled area.
func DrawTrend(title string, labels []string, values []float64) ([]byte, error) {
	if len(labels) != len(values) {
		return nil, fmt.Errorf("labels/values length mismatch: %d != %d", len(labels), len(values))
	}

	xValues := make([]time.Time, 0, len(labels))
	yValues := make([]float64, 0, len(labels))
	for i, label := range labels {
		ts, err := time.Parse("2006-01", label)
		if err != nil {
			continue
		}
		xValues = append(xValues, ts)
		yValues = append(yValues, values[i])
	}
	if len(xValues) == 0 {
		return nil, fmt.Errorf("no parsable period labels")
	}

	series := chart.TimeSeries{
		XValues: xValues,
		YValues: yValues,
		Style: chart.Style{
			StrokeColor: drawing.ColorBlue,
			StrokeWidth: 2,
			FillColor:   drawing.ColorBlue.WithAlpha(60),
		},
	}

	graph := chart.Chart{
		Title: title,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 60,
			},
			FillColor: drawing.ColorWhite,
		},
		Width:  2048,
		Height: 1024,
		XAxis: chart.XAxis{
			Name: "Period",
			ValueFormatter: func(v interface{}) string {
				if vf, isFloat := v.(float64); isFloat {
					return time.Unix(0, int64(vf)).Format("2006-01")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Name: "Value",
			ValueFormatter: func(v interface{}) string {
				if vf, isFloat := v.(float64); isFloat {
					return fmt.Sprintf("%.2f", vf)
				}
				return ""
			},
		},
		Series: []chart.Series{series},
	}

	buffer := bytes.NewBuffer([]byte{})
	graph.Background.StrokeWidth = 1
	graph.Background.StrokeColor = drawing.ColorFromHex("efefef")

	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("error rendering chart: %v", err)
	}
	return buffer.Bytes(), nil
}
