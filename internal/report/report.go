package report

import (
	"fmt"
	"io"

	"github.com/drakos74/lifexp/internal/buffer"
	xmath "github.com/drakos74/lifexp/internal/math"
	"github.com/drakos74/lifexp/internal/math/ml"
	"github.com/drakos74/lifexp/internal/model"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Options controls how much of a table is rendered.
type Options struct {
	// MaxRows is the number of rows in a head. 0 renders none.
	MaxRows int
	// MaxColumns limits the rendered columns. 0 renders all of them.
	MaxColumns int
	// Precision is the number of decimals of floats.
	Precision int
}

// DefaultOptions renders every column, five rows, four decimals.
func DefaultOptions() Options {
	return Options{
		MaxRows:   5,
		Precision: 4,
	}
}

func newWriter(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(title)
	return t
}

func (o Options) columns(t *model.Table) []*model.Column {
	cols := t.Columns()
	if o.MaxColumns > 0 && len(cols) > o.MaxColumns {
		return cols[:o.MaxColumns]
	}
	return cols
}

// Head renders the first rows of the table.
func Head(w io.Writer, title string, t *model.Table, opts Options) {
	cols := opts.columns(t)
	out := newWriter(w, title)

	header := make(table.Row, len(cols))
	for i, c := range cols {
		header[i] = c.Name
	}
	out.AppendHeader(header)

	n := opts.MaxRows
	if n > t.Len() {
		n = t.Len()
	}
	for i := 0; i < n; i++ {
		row := make(table.Row, len(cols))
		for j, c := range cols {
			if c.Kind == model.Numeric {
				row[j] = xmath.FormatPrecision(c.Floats[i], opts.Precision)
			} else {
				row[j] = c.Strings[i]
			}
		}
		out.AppendRow(row)
	}
	out.Render()
	_, _ = fmt.Fprintf(w, "(%d rows x %d columns)\n", t.Len(), t.Width())
}

// Describe renders count, mean, std, min and max of the numeric columns.
func Describe(w io.Writer, title string, t *model.Table, opts Options) {
	out := newWriter(w, title)
	out.AppendHeader(table.Row{"column", "count", "mean", "std", "min", "max"})
	f := func(v float64) string {
		return xmath.FormatPrecision(v, opts.Precision)
	}
	for _, c := range opts.columns(t) {
		if c.Kind != model.Numeric {
			continue
		}
		s := buffer.StatsOf(c.Floats)
		if s.Count() == 0 {
			out.AppendRow(table.Row{c.Name, 0, "", "", "", ""})
			continue
		}
		// sample std as pandas describe does
		std := s.SampleStDev()
		if s.Count() < 2 {
			std = 0
		}
		out.AppendRow(table.Row{c.Name, s.Count(), f(s.Avg()), f(std), f(s.Min()), f(s.Max())})
	}
	out.Render()
}

// Summary renders the fit statistics and the coefficients of the regression.
func Summary(w io.Writer, r *ml.Regression, opts Options) {
	f := func(v float64) string {
		return xmath.FormatPrecision(v, opts.Precision)
	}
	meta := r.Metadata()

	stats := newWriter(w, "OLS regression")
	stats.AppendRows([]table.Row{
		{"observations", meta.Samples},
		{"parameters", meta.Parameters},
		{"rank", meta.Rank},
		{"residual df", meta.DegreesOfFreedom()},
		{"SSE", f(meta.SSE)},
		{"R-squared", f(meta.R2)},
		{"adj. R-squared", f(meta.AdjR2)},
	})
	stats.Render()

	coef := newWriter(w, "")
	coef.AppendHeader(table.Row{"", "coef"})
	cc := r.Coefficients()
	coef.AppendRow(table.Row{r.Intercept(), f(cc[0])})
	features := r.Features()
	n := len(features)
	if opts.MaxColumns > 0 && n > opts.MaxColumns {
		n = opts.MaxColumns
	}
	for i := 0; i < n; i++ {
		coef.AppendRow(table.Row{features[i], f(cc[i+1])})
	}
	coef.Render()
	if n < len(features) {
		_, _ = fmt.Fprintf(w, "(%d more coefficients)\n", len(features)-n)
	}
}
