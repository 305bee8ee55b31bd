package dataset

import (
	"sort"

	"github.com/pivolan/claims_analyzer/domain/models"
)

// Categorical columns with this many distinct values or more do not get
// top-value stats, to bound profile size.
const topValuesUniqLimit = 1000

const topValuesCount = 10

// BuildProfile classifies every column and computes its per-kind stats.
// A column never fails profiling; in the degenerate case it reports the
// categorical kind with empty stats.
func BuildProfile(t *Table) []models.ColumnInfo {
	infos := make([]models.ColumnInfo, 0, len(t.columns))
	for _, c := range t.columns {
		info := models.ColumnInfo{
			Name:      c.Name,
			Kind:      string(c.Kind),
			DType:     c.DType,
			NullCount: c.nullCount(),
		}
		switch c.Kind {
		case KindNumeric:
			info.Numeric = numericStats(c)
		case KindDateTime:
			// no stats for datetime columns
		default:
			info.Categorical = categoricalStats(c)
		}
		infos = append(infos, info)
	}
	return infos
}

func numericStats(c *Column) *models.NumericStats {
	var (
		min, max, sum float64
		count         int
	)
	for i := 0; i < c.Len(); i++ {
		v, ok := c.Float(i)
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
	stats := &models.NumericStats{}
	if count == 0 {
		// all-null: min/max/mean stay nil, never zero
		return stats
	}
	mean := sum / float64(count)
	stats.Min = &min
	stats.Max = &max
	stats.Mean = &mean
	return stats
}

func categoricalStats(c *Column) *models.CategoricalStats {
	counts := map[string]int64{}
	order := map[string]int{}
	for i := 0; i < c.Len(); i++ {
		if c.IsNull(i) {
			continue
		}
		v := c.Strs[i]
		if _, seen := counts[v]; !seen {
			order[v] = len(order)
		}
		counts[v]++
	}

	stats := &models.CategoricalStats{
		UniqueCount: int64(len(counts)),
		TopValues:   []models.ValueCount{},
	}
	if stats.UniqueCount >= topValuesUniqLimit {
		return stats
	}

	values := make([]models.ValueCount, 0, len(counts))
	for v, n := range counts {
		values = append(values, models.ValueCount{Value: v, Count: n})
	}
	sort.SliceStable(values, func(i, j int) bool {
		if values[i].Count != values[j].Count {
			return values[i].Count > values[j].Count
		}
		return order[values[i].Value] < order[values[j].Value]
	})
	if len(values) > topValuesCount {
		values = values[:topValuesCount]
	}
	stats.TopValues = values
	return stats
}
