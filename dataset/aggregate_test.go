package dataset

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTable(t *testing.T, cols ...*Column) *Table {
	t.Helper()
	require.NotEmpty(t, cols)
	table := &Table{byName: map[string]*Column{}, rows: cols[0].Len()}
	for _, c := range cols {
		require.Equal(t, table.rows, c.Len(), c.Name)
		table.addColumn(c)
	}
	return table
}

func groupedAmountsView(t *testing.T) *View {
	return NewView(makeTable(t,
		newCategoricalColumn("CATEGORY", []string{"A", "A", "B"}),
		newNumericColumn("AMOUNT", []string{"10", "20", "5"}, "Float64"),
	))
}

func TestGroupAggregateSum(t *testing.T) {
	got := groupedAmountsView(t).GroupAggregate("CATEGORY", "AMOUNT", AggSum, SortByValue, 0)
	assert.Equal(t, []string{"A", "B"}, got.Labels)
	assert.Equal(t, []float64{30, 5}, got.Values)
}

func TestGroupAggregateReductions(t *testing.T) {
	v := groupedAmountsView(t)

	mean := v.GroupAggregate("CATEGORY", "AMOUNT", AggMean, SortByLabel, 0)
	assert.Equal(t, []float64{15, 5}, mean.Values)

	count := v.GroupAggregate("CATEGORY", "AMOUNT", AggCount, SortByLabel, 0)
	assert.Equal(t, []float64{2, 1}, count.Values)

	min := v.GroupAggregate("CATEGORY", "AMOUNT", AggMin, SortByLabel, 0)
	assert.Equal(t, []float64{10, 5}, min.Values)

	max := v.GroupAggregate("CATEGORY", "AMOUNT", AggMax, SortByLabel, 0)
	assert.Equal(t, []float64{20, 5}, max.Values)
}

func TestGroupAggregateNullHandling(t *testing.T) {
	v := NewView(makeTable(t,
		newCategoricalColumn("CATEGORY", []string{"A", "A", "", "B"}),
		newNumericColumn("AMOUNT", []string{"10", "", "99", "x"}, "Float64"),
	))

	got := v.GroupAggregate("CATEGORY", "AMOUNT", AggSum, SortByValue, 0)
	// null group keys are dropped; null values are excluded; an empty
	// reduction yields 0
	assert.Equal(t, []string{"A", "B"}, got.Labels)
	assert.Equal(t, []float64{10, 0}, got.Values)
}

func TestGroupAggregateAbsentColumns(t *testing.T) {
	v := groupedAmountsView(t)

	got := v.GroupAggregate("NOPE", "AMOUNT", AggSum, SortByValue, 0)
	assert.Empty(t, got.Labels)
	assert.Empty(t, got.Values)

	got = v.GroupAggregate("CATEGORY", "NOPE", AggSum, SortByValue, 0)
	assert.Empty(t, got.Labels)
}

func TestGroupAggregateLimit(t *testing.T) {
	categories := make([]string, 60)
	amounts := make([]string, 60)
	for i := range categories {
		categories[i] = fmt.Sprintf("g%02d", i)
		amounts[i] = strconv.Itoa(i)
	}
	v := NewView(makeTable(t,
		newCategoricalColumn("CATEGORY", categories),
		newNumericColumn("AMOUNT", amounts, "Float64"),
	))

	got := v.GroupAggregate("CATEGORY", "AMOUNT", AggSum, SortByValue, 0)
	assert.Len(t, got.Labels, DefaultLimit)
	// value sort is descending
	assert.Equal(t, "g59", got.Labels[0])

	got = v.GroupAggregate("CATEGORY", "AMOUNT", AggSum, SortByValue, 5)
	assert.Len(t, got.Labels, 5)
}

func TestGroupAggregateNumericKeyLabelSort(t *testing.T) {
	v := NewView(makeTable(t,
		newNumericColumn("YEAR", []string{"2023", "2021", "2022", "2021"}, "Int64"),
		newNumericColumn("AMOUNT", []string{"1", "2", "3", "4"}, "Float64"),
	))

	got := v.GroupAggregate("YEAR", "AMOUNT", AggSum, SortByLabel, 0)
	// numeric keys sort by value, not lexically
	assert.Equal(t, []string{"2021", "2022", "2023"}, got.Labels)
	assert.Equal(t, []float64{6, 3, 1}, got.Values)
}

func TestParseAggregatorFallback(t *testing.T) {
	assert.Equal(t, AggMean, ParseAggregator("mean"))
	assert.Equal(t, AggSum, ParseAggregator("median"))
	assert.Equal(t, AggSum, ParseAggregator(""))
}

func TestTopN(t *testing.T) {
	v := groupedAmountsView(t)

	got := v.TopN("CATEGORY", "AMOUNT", 1)
	assert.Equal(t, []string{"A"}, got.Labels)
	assert.Equal(t, []float64{30}, got.Values)

	// fewer groups than n is fine
	got = v.TopN("CATEGORY", "AMOUNT", 0)
	assert.Len(t, got.Labels, 2)
}

func TestValueCounts(t *testing.T) {
	v := NewView(makeTable(t,
		newCategoricalColumn("CLAIM_STATUS", []string{"Accept", "Reject", "Accept", "", "Accept", "Reject"}),
	))

	got := v.ValueCounts("CLAIM_STATUS")
	assert.Equal(t, []string{"Accept", "Reject"}, got.Labels)
	assert.Equal(t, []float64{3, 2}, got.Values)

	assert.Empty(t, v.ValueCounts("NOPE").Labels)
}

func TestHistogramAgeBins(t *testing.T) {
	v := NewView(makeTable(t,
		newNumericColumn("AGE", []string{"10", "25", "70"}, "Float64"),
	))

	got := v.Histogram("AGE", AgeBins)
	assert.Equal(t, AgeBins.Labels, got.Labels)
	assert.Equal(t, []float64{1, 1, 0, 0, 0, 1}, got.Values)
}

func TestHistogramEdges(t *testing.T) {
	v := NewView(makeTable(t,
		newNumericColumn("AGE", []string{"-5", "0", "18", "19", "60", "61", ""}, "Float64"),
	))

	got := v.Histogram("AGE", AgeBins)
	// below-range and null cells are skipped; bounds are inclusive upper
	assert.Equal(t, []float64{2, 1, 0, 0, 1, 1}, got.Values)
}

func TestHistogramAbsentColumnZeroFilled(t *testing.T) {
	v := groupedAmountsView(t)

	got := v.Histogram("AGE", AgeBins)
	assert.Equal(t, AgeBins.Labels, got.Labels)
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0}, got.Values)
}

func TestScatter(t *testing.T) {
	v := NewView(makeTable(t,
		newNumericColumn("AGE", []string{"25", "35", "", "45"}, "Float64"),
		newNumericColumn("APPROVED", []string{"100", "", "300", "400"}, "Float64"),
	))

	got := v.Scatter("AGE", "APPROVED", 10)
	// rows with a null on either axis are dropped
	require.Len(t, got.Data, 2)
	assert.Equal(t, "AGE", got.XLabel)
	assert.Equal(t, "APPROVED", got.YLabel)
}

func TestScatterSampling(t *testing.T) {
	n := 500
	xs := make([]string, n)
	ys := make([]string, n)
	for i := range xs {
		xs[i] = strconv.Itoa(i)
		ys[i] = strconv.Itoa(i * 2)
	}
	v := NewView(makeTable(t,
		newNumericColumn("X", xs, "Float64"),
		newNumericColumn("Y", ys, "Float64"),
	))

	got := v.Scatter("X", "Y", 100)
	assert.Len(t, got.Data, 100)

	got = v.Scatter("X", "NOPE", 100)
	assert.Empty(t, got.Data)
}

func TestProjectTablePagination(t *testing.T) {
	n := 250
	values := make([]string, n)
	for i := range values {
		values[i] = strconv.Itoa(i)
	}
	v := NewView(makeTable(t, newNumericColumn("CL_NO", values, "Int64")))

	page1 := v.ProjectTable([]string{"CL_NO"}, 1, 100)
	assert.Len(t, page1.Data, 100)
	assert.Equal(t, 250, page1.TotalRecords)
	assert.Equal(t, 3, page1.TotalPages)
	assert.Equal(t, "0", page1.Data[0][0])

	page3 := v.ProjectTable([]string{"CL_NO"}, 3, 100)
	assert.Len(t, page3.Data, 50)
	assert.Equal(t, "200", page3.Data[0][0])

	page4 := v.ProjectTable([]string{"CL_NO"}, 4, 100)
	assert.Empty(t, page4.Data)
	assert.Equal(t, 3, page4.TotalPages)

	page0 := v.ProjectTable([]string{"CL_NO"}, 0, 100)
	assert.Empty(t, page0.Data)
}

func TestProjectTableColumnIntersection(t *testing.T) {
	v := groupedAmountsView(t)

	got := v.ProjectTable([]string{"CATEGORY", "MISSING", "AMOUNT"}, 1, 10)
	assert.Equal(t, []string{"CATEGORY", "AMOUNT"}, got.Columns)
	require.Len(t, got.Data, 3)
	assert.Equal(t, []string{"A", "10"}, got.Data[0])
}
