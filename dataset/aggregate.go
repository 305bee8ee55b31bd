package dataset

import (
	"math/rand"
	"sort"

	"github.com/pivolan/claims_analyzer/domain/models"
)

// Aggregator is the closed set of supported reductions.
type Aggregator string

const (
	AggSum   Aggregator = "sum"
	AggMean  Aggregator = "mean"
	AggCount Aggregator = "count"
	AggMin   Aggregator = "min"
	AggMax   Aggregator = "max"
)

// ParseAggregator maps a caller-supplied name onto an Aggregator.
// Unsupported names fall back to sum.
func ParseAggregator(name string) Aggregator {
	switch Aggregator(name) {
	case AggSum, AggMean, AggCount, AggMin, AggMax:
		return Aggregator(name)
	default:
		return AggSum
	}
}

type SortBy string

const (
	SortByValue SortBy = "value"
	SortByLabel SortBy = "label"
)

const DefaultLimit = 50

// bucket collects the rows of one group key, preserving first-seen order.
type bucket struct {
	label string
	num   float64
	rows  []int
}

// groupBy partitions view rows by a key column. Rows with a null key are
// dropped. The second return reports whether the key column is numeric,
// which decides label ordering.
func (v *View) groupBy(field string) ([]*bucket, bool, bool) {
	col, ok := v.table.Column(field)
	if !ok {
		return nil, false, false
	}
	byLabel := map[string]*bucket{}
	var buckets []*bucket
	for _, row := range v.idx {
		if col.IsNull(row) {
			continue
		}
		label := col.Display(row)
		b, seen := byLabel[label]
		if !seen {
			b = &bucket{label: label}
			if col.Kind == KindNumeric {
				b.num = col.Nums[row]
			}
			byLabel[label] = b
			buckets = append(buckets, b)
		}
		b.rows = append(b.rows, row)
	}
	return buckets, col.Kind == KindNumeric, true
}

// reduce applies an aggregator over the value column cells of one
// bucket, excluding nulls. An empty reduction yields 0, matching the
// chart contract where NaN is rendered as zero.
func reduce(col *Column, rows []int, agg Aggregator) float64 {
	if agg == AggCount {
		var n float64
		for _, row := range rows {
			if !col.IsNull(row) {
				n++
			}
		}
		return n
	}
	var (
		sum, min, max float64
		count         int
	)
	for _, row := range rows {
		v, ok := col.Float(row)
		if !ok {
			continue
		}
		if count == 0 || v < min {
			min = v
		}
		if count == 0 || v > max {
			max = v
		}
		sum += v
		count++
	}
	if count == 0 {
		return 0
	}
	switch agg {
	case AggMean:
		return sum / float64(count)
	case AggMin:
		return min
	case AggMax:
		return max
	default:
		return sum
	}
}

func emptySeries() models.SeriesResult {
	return models.SeriesResult{Labels: []string{}, Values: []float64{}}
}

// GroupAggregate groups rows by a key column and reduces a value column.
// Results are ordered by reduced value descending (ties keep first-seen
// group order) or by label ascending, then truncated to limit.
// Referencing an absent column yields an empty result, never an error.
func (v *View) GroupAggregate(groupField, valueField string, agg Aggregator, sortBy SortBy, limit int) models.SeriesResult {
	valueCol, ok := v.table.Column(valueField)
	if !ok {
		return emptySeries()
	}
	buckets, numericKey, ok := v.groupBy(groupField)
	if !ok {
		return emptySeries()
	}

	values := make([]float64, len(buckets))
	for i, b := range buckets {
		values[i] = reduce(valueCol, b.rows, agg)
	}

	order := make([]int, len(buckets))
	for i := range order {
		order[i] = i
	}
	if sortBy == SortByLabel {
		sort.SliceStable(order, func(a, b int) bool {
			return labelLess(buckets[order[a]], buckets[order[b]], numericKey)
		})
	} else {
		sort.SliceStable(order, func(a, b int) bool {
			return values[order[a]] > values[order[b]]
		})
	}

	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(order) > limit {
		order = order[:limit]
	}

	result := models.SeriesResult{
		Labels: make([]string, len(order)),
		Values: make([]float64, len(order)),
	}
	for i, idx := range order {
		result.Labels[i] = buckets[idx].label
		result.Values[i] = roundToTwo(values[idx])
	}
	return result
}

func labelLess(a, b *bucket, numericKey bool) bool {
	if numericKey {
		return a.num < b.num
	}
	return a.label < b.label
}

// TopN is a grouped sum truncated to the n largest values, descending.
func (v *View) TopN(groupField, valueField string, n int) models.SeriesResult {
	if n <= 0 {
		n = 10
	}
	return v.GroupAggregate(groupField, valueField, AggSum, SortByValue, n)
}

// ValueCounts counts occurrences per distinct value of a column,
// descending by count. Null cells are excluded.
func (v *View) ValueCounts(field string) models.SeriesResult {
	buckets, _, ok := v.groupBy(field)
	if !ok {
		return emptySeries()
	}
	order := make([]int, len(buckets))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return len(buckets[order[a]].rows) > len(buckets[order[b]].rows)
	})
	result := models.SeriesResult{
		Labels: make([]string, len(order)),
		Values: make([]float64, len(order)),
	}
	for i, idx := range order {
		result.Labels[i] = buckets[idx].label
		result.Values[i] = float64(len(buckets[idx].rows))
	}
	return result
}

// BinSpec describes histogram bins: [Lower, Uppers[0]], then half-open
// (Uppers[k-1], Uppers[k]], with one final open-ended bin above the last
// upper bound. len(Labels) must equal len(Uppers)+1.
type BinSpec struct {
	Lower  float64
	Uppers []float64
	Labels []string
}

// AgeBins is the fixed claimant age binning.
var AgeBins = BinSpec{
	Lower:  0,
	Uppers: []float64{18, 30, 40, 50, 60},
	Labels: []string{"0-18", "19-30", "31-40", "41-50", "51-60", "60+"},
}

// Histogram partitions a numeric column into the given bins. The result
// always carries every bin in bin order, zero-filled, regardless of data
// sparsity. Values below Lower and null cells are skipped.
func (v *View) Histogram(field string, bins BinSpec) models.SeriesResult {
	counts := make([]float64, len(bins.Labels))
	col, ok := v.table.Column(field)
	if !ok {
		return models.SeriesResult{Labels: bins.Labels, Values: counts}
	}
	for _, row := range v.idx {
		value, ok := col.Float(row)
		if !ok || value < bins.Lower {
			continue
		}
		idx := len(bins.Uppers)
		for k, upper := range bins.Uppers {
			if value <= upper {
				idx = k
				break
			}
		}
		counts[idx]++
	}
	return models.SeriesResult{Labels: bins.Labels, Values: counts}
}

// Scatter returns x/y points for two numeric columns. When the view
// exceeds limit a uniform sample without replacement is drawn first;
// points with a null in either column are dropped afterwards, so fewer
// than limit points may come back.
func (v *View) Scatter(xField, yField string, limit int) models.ScatterResult {
	result := models.ScatterResult{
		Data:   []models.ScatterPoint{},
		XLabel: xField,
		YLabel: yField,
	}
	xCol, okX := v.table.Column(xField)
	yCol, okY := v.table.Column(yField)
	if !okX || !okY {
		return result
	}

	if limit <= 0 {
		limit = DefaultLimit
	}
	positions := v.idx
	if len(positions) > limit {
		sampled := make([]int, 0, limit)
		for _, p := range rand.Perm(len(positions))[:limit] {
			sampled = append(sampled, positions[p])
		}
		positions = sampled
	}

	for _, row := range positions {
		x, okX := xCol.Float(row)
		y, okY := yCol.Float(row)
		if !okX || !okY {
			continue
		}
		result.Data = append(result.Data, models.ScatterPoint{X: x, Y: y})
	}
	return result
}

const DefaultPageSize = 100

// ProjectTable slices the view into one page of display rows. The column
// allow-list is intersected with what the table actually has; dates are
// rendered as YYYY-MM-DD and missing cells as empty strings. Pages out
// of range produce an empty slice, not an error.
func (v *View) ProjectTable(columns []string, page, pageSize int) models.TableResult {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	available := make([]*Column, 0, len(columns))
	names := make([]string, 0, len(columns))
	for _, name := range columns {
		if col, ok := v.table.Column(name); ok {
			available = append(available, col)
			names = append(names, name)
		}
	}

	total := len(v.idx)
	result := models.TableResult{
		Columns:      names,
		Data:         [][]string{},
		TotalRecords: total,
		Page:         page,
		PageSize:     pageSize,
		TotalPages:   (total + pageSize - 1) / pageSize,
	}

	start := (page - 1) * pageSize
	if page < 1 || start >= total {
		return result
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	for _, row := range v.idx[start:end] {
		cells := make([]string, len(available))
		for i, col := range available {
			cells[i] = col.Display(row)
		}
		result.Data = append(result.Data, cells)
	}
	return result
}
