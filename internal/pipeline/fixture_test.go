package pipeline

import (
	"math"
	"testing"

	"github.com/drakos74/lifexp/internal/model"
	"github.com/stretchr/testify/require"
)

var nan = math.NaN()

func testSchema() Schema {
	return Schema{
		Target:         "Life expectancy",
		ID:             "ID",
		Status:         "Status",
		StatusPositive: "Developed",
		Year:           "Year",
		YearOffset:     2000,
		YearScale:      15,
		Country:        "Country",
		Scaled:         []string{"Life expectancy", "GDP", "BMI"},
		Excluded:       []string{"BMI"},
		Mode:           model.MinScale,
	}
}

func newTable(t *testing.T, columns ...*model.Column) *model.Table {
	tb, err := model.NewTable(columns...)
	require.NoError(t, err)
	return tb
}

func trainTable(t *testing.T) *model.Table {
	return newTable(t,
		model.NewCategorical("Country", []string{"A", "B", "A", "C"}),
		model.NewNumeric(" Year", []float64{2000, 2015, 2010, 2005}),
		model.NewCategorical("Status ", []string{"Developed", "Developing", "developed", "Developed"}),
		model.NewNumeric(" Life expectancy ", []float64{60, nan, 80, 70}),
		model.NewNumeric("GDP", []float64{nan, 10, 20, 40}),
		model.NewNumeric("BMI", []float64{1, 2, 3, nan}),
	)
}

func testTable(t *testing.T) *model.Table {
	return newTable(t,
		model.NewCategorical("ID", []string{"t1", "t2", "t3"}),
		model.NewCategorical("Country", []string{"C", "B", "A"}),
		model.NewNumeric("Year", []float64{2015, 2000, 2003}),
		model.NewCategorical("Status", []string{"Developing", "Developed", ""}),
		model.NewNumeric("GDP", []float64{nan, 60, 20}),
		model.NewNumeric("BMI", []float64{5, 6, 7}),
	)
}

func values(t *testing.T, tb *model.Table, column string) []float64 {
	v, err := tb.Numeric(column)
	require.NoError(t, err)
	return v
}
