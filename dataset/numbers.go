package dataset

import (
	"math"
	"sort"
	"strconv"

	"github.com/pivolan/claims_analyzer/domain/models"
)

// ColumnSummary computes the deep numeric summary for one column of a
// view: average, median, quantile set, IQR and outliers. Returns nil when
// the column is absent or has no non-null numeric values.
func ColumnSummary(v *View, field string) *models.NumberStats {
	col, ok := v.table.Column(field)
	if !ok {
		return nil
	}
	numbers := make([]float64, 0, v.Len())
	for _, row := range v.idx {
		if value, ok := col.Float(row); ok {
			numbers = append(numbers, value)
		}
	}
	return AnalyzeNumbers(numbers)
}

// AnalyzeNumbers computes statistical metrics over a number slice.
func AnalyzeNumbers(numbers []float64) *models.NumberStats {
	if len(numbers) == 0 {
		return nil
	}

	sorted := make([]float64, len(numbers))
	copy(sorted, numbers)
	sort.Float64s(sorted)

	sum := 0.0
	for _, num := range numbers {
		sum += num
	}
	avg := sum / float64(len(numbers))

	var median float64
	if len(sorted)%2 == 0 {
		median = (sorted[len(sorted)/2-1] + sorted[len(sorted)/2]) / 2
	} else {
		median = sorted[len(sorted)/2]
	}

	quantiles := make(map[string]float64)
	quantileList := []float64{0.01, 0.025, 0.1, 0.25, 0.75, 0.9, 0.975, 0.99}
	for _, p := range quantileList {
		quantiles[quantileKey(p)] = roundToTwo(calculateQuantile(sorted, p))
	}

	iqr := quantiles["p75"] - quantiles["p25"]
	outliers := findOutliers(numbers, quantiles["p25"], quantiles["p75"], iqr)

	return &models.NumberStats{
		Average:   roundToTwo(avg),
		Median:    roundToTwo(median),
		Min:       roundToTwo(sorted[0]),
		Max:       roundToTwo(sorted[len(sorted)-1]),
		Count:     len(numbers),
		Quantiles: quantiles,
		IQR:       roundToTwo(iqr),
		Outliers:  outliers,
	}
}

// quantileKey names a quantile by its percentile: 0.25 -> "p25",
// 0.975 -> "p97.5".
func quantileKey(p float64) string {
	return "p" + strconv.FormatFloat(p*100, 'f', -1, 64)
}

// calculateQuantile interpolates the p-quantile of a sorted slice.
func calculateQuantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}

	pos := p * float64(len(sorted)-1)
	floor := math.Floor(pos)
	ceil := math.Ceil(pos)
	if floor == ceil {
		return sorted[int(pos)]
	}

	lower := sorted[int(floor)]
	upper := sorted[int(ceil)]
	fraction := pos - floor
	return lower + fraction*(upper-lower)
}

// findOutliers reports values outside 1.5×IQR around the quartiles.
func findOutliers(numbers []float64, q1, q3, iqr float64) []float64 {
	outliers := make([]float64, 0)
	lowerBound := q1 - 1.5*iqr
	upperBound := q3 + 1.5*iqr
	for _, num := range numbers {
		if num < lowerBound || num > upperBound {
			outliers = append(outliers, num)
		}
	}
	return outliers
}

func roundToTwo(num float64) float64 {
	return math.Round(num*100) / 100
}
