package plot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G'}

func TestDrawHistogram(t *testing.T) {
	png, err := DrawHistogram("age groups",
		[]string{"0-18", "19-30", "31-40", "41-50", "51-60", "60+"},
		[]float64{1, 5, 3, 2, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, pngHeader, png[:4])
}

func TestDrawHistogramLengthMismatch(t *testing.T) {
	_, err := DrawHistogram("bad", []string{"a", "b"}, []float64{1})
	assert.Error(t, err)
}

func TestDrawTrend(t *testing.T) {
	png, err := DrawTrend("claims per month",
		[]string{"2023-01", "2023-02", "2023-03"},
		[]float64{2, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, pngHeader, png[:4])
}

func TestDrawTrendSkipsBadLabels(t *testing.T) {
	png, err := DrawTrend("partial",
		[]string{"2023-01", "not-a-period", "2023-03"},
		[]float64{2, 9, 1})
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}

func TestDrawTrendNoParsableLabels(t *testing.T) {
	_, err := DrawTrend("empty", []string{"x", "y"}, []float64{1, 2})
	assert.Error(t, err)
}
