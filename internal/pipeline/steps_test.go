package pipeline

import (
	"math"
	"strings"
	"testing"

	"github.com/drakos74/lifexp/internal/model"
	"github.com/drakos74/lifexp/internal/storage/file/csv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrimColumnNames(t *testing.T) {
	tb := trainTable(t)
	require.NoError(t, TrimColumnNames(tb))
	assert.Equal(t, []string{"Country", "Year", "Status", "Life expectancy", "GDP", "BMI"}, tb.Names())
	assert.True(t, tb.Has("Life expectancy"))
}

func TestTrimColumnNames_Duplicate(t *testing.T) {
	tb := newTable(t, model.NewNumeric("a", []float64{1}), model.NewNumeric(" a", []float64{2}))
	assert.ErrorIs(t, TrimColumnNames(tb), model.SchemaMismatchErr)
}

func TestDropMissingTarget(t *testing.T) {
	tb := newTable(t,
		model.NewNumeric("y", []float64{1, nan, 3, nan}),
		model.NewCategorical("c", []string{"a", "b", "c", "d"}),
	)
	dropped, err := DropMissingTarget(tb, "y")
	require.NoError(t, err)
	assert.Equal(t, 2, dropped)
	assert.Equal(t, 2, tb.Len())
	assert.Equal(t, []float64{1, 3}, values(t, tb, "y"))
	c, err := tb.Strings("c")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, c)

	_, err = DropMissingTarget(tb, "Life expectancy")
	assert.ErrorIs(t, err, model.MissingTargetErr)
}

func TestRecodeStatus(t *testing.T) {
	tb := newTable(t, model.NewCategorical("Status", []string{"Developed", "Developing", "developed", "DEVELOPED", "", " Developed"}))
	require.NoError(t, RecodeStatus(tb, "Status", "Developed"))
	out := values(t, tb, "Status")
	assert.Equal(t, []float64{1, 0, 0, 0, 0, 0}, out)
	for _, v := range out {
		assert.True(t, v == 0 || v == 1)
	}

	assert.ErrorIs(t, RecodeStatus(tb, "Status", "Developed"), model.SchemaMismatchErr)
}

func TestRecodeStatus_Padded(t *testing.T) {
	tb, err := csv.Parse(strings.NewReader("Status\n Developed \nDeveloped\n"), csv.Options{Categorical: []string{"Status"}})
	require.NoError(t, err)
	require.NoError(t, RecodeStatus(tb, "Status", "Developed"))
	assert.Equal(t, []float64{0, 1}, values(t, tb, "Status"))
}

func TestRescaleYear(t *testing.T) {
	tb := newTable(t, model.NewNumeric("Year", []float64{2000, 2015, 2003, nan}))
	require.NoError(t, RescaleYear(tb, "Year", 2000, 15))
	out := values(t, tb, "Year")
	assert.Equal(t, 0.0, out[0])
	assert.Equal(t, 1.0, out[1])
	assert.InDelta(t, 0.2, out[2], 1e-12)
	assert.True(t, math.IsNaN(out[3]))
}

func TestFitScale_ApplyScale(t *testing.T) {
	train := newTable(t, model.NewNumeric("x", []float64{10, 20, 30}), model.NewNumeric("y", []float64{2, 4, 8}))
	params, err := FitScale(train, []string{"y", "x"}, model.MinScale)
	require.NoError(t, err)
	require.Len(t, params, 2)
	assert.Equal(t, "y", params[0].Column)
	assert.Equal(t, 8.0, params[0].Divisor)
	assert.Equal(t, 30.0, params[1].Divisor)
	assert.InDeltaSlice(t, []float64{1.0 / 3.0, 2.0 / 3.0, 1}, values(t, train, "x"), 1e-12)

	test := newTable(t, model.NewNumeric("x", []float64{15, 45}))
	require.NoError(t, ApplyScale(test, params, "y"))
	assert.InDeltaSlice(t, []float64{0.5, 1.5}, values(t, test, "x"), 1e-12)

	assert.ErrorIs(t, ApplyScale(test, params), model.SchemaMismatchErr)

	_, err = FitScale(train, []string{"x", "z"}, model.MinScale)
	assert.ErrorIs(t, err, model.SchemaMismatchErr)
}

func TestBackFill(t *testing.T) {

	type test struct {
		column   *model.Column
		floats   []float64
		strings  []string
		filled   int
		exempt   []string
		err      error
		trailing bool
	}

	tests := map[string]test{
		"numeric": {
			column: model.NewNumeric("x", []float64{nan, nan, 5, nan, 7}),
			floats: []float64{5, 5, 5, 7, 7},
			filled: 3,
		},
		"categorical": {
			column:  model.NewCategorical("x", []string{"", "a", "", "b"}),
			strings: []string{"a", "a", "b", "b"},
			filled:  2,
		},
		"trailing": {
			column: model.NewNumeric("x", []float64{nan, 1, nan}),
			filled: 1,
			err:    model.UnresolvedMissingValueErr,
		},
		"trailing-exempt": {
			column:   model.NewNumeric("x", []float64{nan, 1, nan}),
			filled:   1,
			exempt:   []string{"x"},
			trailing: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			tb := newTable(t, tt.column)
			filled, err := BackFill(tb, tt.exempt...)
			assert.Equal(t, tt.filled, filled)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			if tt.floats != nil {
				assert.Equal(t, tt.floats, tt.column.Floats)
			}
			if tt.strings != nil {
				assert.Equal(t, tt.strings, tt.column.Strings)
			}
			if tt.trailing {
				assert.True(t, tt.column.Missing(tt.column.Len()-1))
			}
		})
	}
}

func TestOneHot(t *testing.T) {
	train := newTable(t,
		model.NewCategorical("Country", []string{"b", "a", "b"}),
		model.NewNumeric("x", []float64{1, 2, 3}),
	)
	vocabulary, err := OneHotFit(train, "Country")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, vocabulary.Values)
	assert.Equal(t, []string{"x", "a", "b"}, train.Names())
	assert.Equal(t, []float64{0, 1, 0}, values(t, train, "a"))
	assert.Equal(t, []float64{1, 0, 1}, values(t, train, "b"))

	test := newTable(t, model.NewCategorical("Country", []string{"c", "a"}))
	unseen, err := OneHotApply(test, vocabulary)
	require.NoError(t, err)
	assert.Equal(t, 1, unseen)
	assert.Equal(t, []float64{0, 1}, values(t, test, "a"))
	assert.Equal(t, []float64{0, 0}, values(t, test, "b"))
}

func TestDropColumns(t *testing.T) {
	tb := trainTable(t)
	require.NoError(t, DropColumns(tb, "GDP", "BMI"))
	assert.Equal(t, 4, tb.Width())
	assert.ErrorIs(t, DropColumns(tb, "GDP"), model.SchemaMismatchErr)
}
