package report

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/drakos74/lifexp/internal/math/ml"
	"github.com/drakos74/lifexp/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(t *testing.T) *model.Table {
	tb, err := model.NewTable(
		model.NewCategorical("Country", []string{"Chad", "Peru", "Spain"}),
		model.NewNumeric("GDP", []float64{0.25, math.NaN(), 1}),
		model.NewNumeric("Year", []float64{0, 0.5, 1}),
	)
	require.NoError(t, err)
	return tb
}

func TestHead(t *testing.T) {
	var buf bytes.Buffer
	Head(&buf, "train", sample(t), Options{MaxRows: 2, Precision: 2})
	out := buf.String()
	assert.True(t, strings.Contains(out, "Chad"))
	assert.True(t, strings.Contains(out, "Peru"))
	assert.False(t, strings.Contains(out, "Spain"))
	assert.True(t, strings.Contains(out, "0.25"))
	assert.True(t, strings.Contains(out, "NaN"))
	assert.True(t, strings.Contains(out, "(3 rows x 3 columns)"))
}

func TestHead_MaxColumns(t *testing.T) {
	var buf bytes.Buffer
	Head(&buf, "train", sample(t), Options{MaxRows: 5, MaxColumns: 1, Precision: 2})
	assert.False(t, strings.Contains(strings.ToUpper(buf.String()), "GDP"))
}

func TestDescribe(t *testing.T) {
	var buf bytes.Buffer
	Describe(&buf, "describe", sample(t), DefaultOptions())
	out := buf.String()
	assert.False(t, strings.Contains(out, "Chad"))
	// mean of year
	assert.True(t, strings.Contains(out, "0.5000"))
	// max of gdp
	assert.True(t, strings.Contains(out, "1.0000"))
}

func TestSummary(t *testing.T) {
	x, err := model.NewTable(model.NewNumeric("x", []float64{1, 2, 3, 4}))
	require.NoError(t, err)
	r, err := ml.FitRegression(x, []float64{3, 5, 7, 9}, ml.DefaultIntercept)
	require.NoError(t, err)

	var buf bytes.Buffer
	Summary(&buf, r, DefaultOptions())
	out := buf.String()
	assert.True(t, strings.Contains(out, "const"))
	assert.True(t, strings.Contains(out, "2.0000"))
	assert.True(t, strings.Contains(out, "1.0000"))
}
