package dataset

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildProfileNumeric(t *testing.T) {
	table := loadClaimsTable(t)
	infos := BuildProfile(table)

	byName := map[string]int{}
	for i, info := range infos {
		byName[info.Name] = i
	}

	incurred := infos[byName["INCURRED"]]
	assert.Equal(t, "numeric", incurred.Kind)
	require.NotNil(t, incurred.Numeric)
	require.NotNil(t, incurred.Numeric.Min)
	assert.Equal(t, 100.5, *incurred.Numeric.Min)
	assert.Equal(t, 400.0, *incurred.Numeric.Max)
	assert.InDelta(t, 250.125, *incurred.Numeric.Mean, 1e-9)
	assert.EqualValues(t, 0, incurred.NullCount)

	pay := infos[byName["PAYDATE"]]
	assert.Equal(t, "datetime", pay.Kind)
	assert.Nil(t, pay.Numeric)
	assert.Nil(t, pay.Categorical)
}

func TestBuildProfileAllNullNumeric(t *testing.T) {
	col := newNumericColumn("APPROVED", []string{"", "x", ""}, "Float64")
	table := &Table{byName: map[string]*Column{}, rows: 3}
	table.addColumn(col)

	infos := BuildProfile(table)
	require.Len(t, infos, 1)
	assert.EqualValues(t, 3, infos[0].NullCount)
	require.NotNil(t, infos[0].Numeric)
	assert.Nil(t, infos[0].Numeric.Min)
	assert.Nil(t, infos[0].Numeric.Max)
	assert.Nil(t, infos[0].Numeric.Mean)
}

func TestBuildProfileCategorical(t *testing.T) {
	col := newCategoricalColumn("CLAIM_STATUS", []string{"Accept", "Reject", "Accept", "", "Pending", "Accept", "Reject"})
	table := &Table{byName: map[string]*Column{}, rows: col.Len()}
	table.addColumn(col)

	infos := BuildProfile(table)
	require.Len(t, infos, 1)
	stats := infos[0].Categorical
	require.NotNil(t, stats)
	assert.EqualValues(t, 3, stats.UniqueCount)
	assert.EqualValues(t, 1, infos[0].NullCount)

	require.Len(t, stats.TopValues, 3)
	assert.Equal(t, "Accept", stats.TopValues[0].Value)
	assert.EqualValues(t, 3, stats.TopValues[0].Count)
	// ties keep first-seen order
	assert.Equal(t, "Reject", stats.TopValues[1].Value)
	assert.Equal(t, "Pending", stats.TopValues[2].Value)
}

func TestBuildProfileHighCardinalityCutoff(t *testing.T) {
	values := make([]string, topValuesUniqLimit)
	for i := range values {
		values[i] = fmt.Sprintf("v%d", i)
	}
	col := newCategoricalColumn("CL_NO", values)
	table := &Table{byName: map[string]*Column{}, rows: col.Len()}
	table.addColumn(col)

	stats := BuildProfile(table)[0].Categorical
	require.NotNil(t, stats)
	assert.EqualValues(t, topValuesUniqLimit, stats.UniqueCount)
	assert.Empty(t, stats.TopValues)
}

func TestBuildProfileTopValuesTruncated(t *testing.T) {
	values := []string{}
	for i := 0; i < 15; i++ {
		values = append(values, fmt.Sprintf("p%d", i))
	}
	col := newCategoricalColumn("PRODUCT", values)
	table := &Table{byName: map[string]*Column{}, rows: col.Len()}
	table.addColumn(col)

	stats := BuildProfile(table)[0].Categorical
	assert.EqualValues(t, 15, stats.UniqueCount)
	assert.Len(t, stats.TopValues, topValuesCount)
}
