package model

import (
	"fmt"
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Kind is the semantic type of a table column.
type Kind int

const (
	// Numeric columns hold floats, with NaN marking a missing cell.
	Numeric Kind = iota
	// Categorical columns hold strings, with the empty string marking a missing cell.
	Categorical
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// nan is how gota marks a missing string element.
const nan = "NaN"

// Column is a named vector of cells, detached from any table.
// Exactly one of Floats or Strings is populated, according to Kind.
type Column struct {
	Name    string
	Kind    Kind
	Floats  []float64
	Strings []string
}

// NewNumeric creates a numeric column.
func NewNumeric(name string, values []float64) *Column {
	return &Column{Name: name, Kind: Numeric, Floats: values}
}

// NewCategorical creates a categorical column.
func NewCategorical(name string, values []string) *Column {
	return &Column{Name: name, Kind: Categorical, Strings: values}
}

// Len returns the number of cells.
func (c *Column) Len() int {
	if c.Kind == Numeric {
		return len(c.Floats)
	}
	return len(c.Strings)
}

// Missing reports if the cell at row i is missing.
func (c *Column) Missing(i int) bool {
	if c.Kind == Numeric {
		return math.IsNaN(c.Floats[i])
	}
	return c.Strings[i] == ""
}

// Clone returns a deep copy of the column.
func (c *Column) Clone() *Column {
	n := &Column{Name: c.Name, Kind: c.Kind}
	if c.Floats != nil {
		n.Floats = append(make([]float64, 0, len(c.Floats)), c.Floats...)
	}
	if c.Strings != nil {
		n.Strings = append(make([]string, 0, len(c.Strings)), c.Strings...)
	}
	return n
}

func (c *Column) series() series.Series {
	if c.Kind == Numeric {
		return series.New(c.Floats, series.Float, c.Name)
	}
	ss := make([]string, len(c.Strings))
	for i, s := range c.Strings {
		if s == "" {
			ss[i] = nan
		} else {
			ss[i] = s
		}
	}
	return series.New(ss, series.String, c.Name)
}

func columnOf(s series.Series) *Column {
	if s.Type() != series.String {
		return NewNumeric(s.Name, s.Float())
	}
	records := s.Records()
	missing := s.IsNaN()
	for i := range records {
		if missing[i] {
			records[i] = ""
		}
	}
	return NewCategorical(s.Name, records)
}

// Table is an ordered collection of named columns with rows aligned by position.
// It wraps a gota data frame whose columns are either float or string series.
type Table struct {
	df dataframe.DataFrame
}

// NewTable creates a table from the given columns.
// All columns must have the same length and unique names.
func NewTable(columns ...*Column) (*Table, error) {
	if len(columns) == 0 {
		return &Table{}, nil
	}
	if err := unique(names(columns)); err != nil {
		return nil, err
	}
	ss := make([]series.Series, len(columns))
	for i, c := range columns {
		if c.Len() != columns[0].Len() {
			return nil, fmt.Errorf("column '%s' has %d rows, table has %d: %w", c.Name, c.Len(), columns[0].Len(), SchemaMismatchErr)
		}
		ss[i] = c.series()
	}
	return fromSeries(ss)
}

// FromDataFrame wraps a gota data frame.
// Int and bool series become float ones, any other type must be a string series.
func FromDataFrame(df dataframe.DataFrame) (*Table, error) {
	if df.Err != nil {
		return nil, fmt.Errorf("invalid data frame: %w", df.Err)
	}
	if err := unique(df.Names()); err != nil {
		return nil, err
	}
	for _, name := range df.Names() {
		s := df.Col(name)
		switch s.Type() {
		case series.Float, series.String:
		case series.Int, series.Bool:
			df = df.Mutate(series.New(s.Float(), series.Float, name))
		default:
			return nil, fmt.Errorf("column '%s' has unsupported type %s: %w", name, s.Type(), SchemaMismatchErr)
		}
	}
	return &Table{df: df}, nil
}

func fromSeries(ss []series.Series) (*Table, error) {
	df := dataframe.New(ss...)
	if df.Err != nil {
		return nil, fmt.Errorf("could not build table: %s: %w", df.Err.Error(), SchemaMismatchErr)
	}
	return &Table{df: df}, nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t.df.Ncol() == 0 {
		return 0
	}
	return t.df.Nrow()
}

// Width returns the number of columns.
func (t *Table) Width() int {
	return t.df.Ncol()
}

// Names returns the column names in order.
func (t *Table) Names() []string {
	if t.df.Ncol() == 0 {
		return []string{}
	}
	return t.df.Names()
}

// Columns returns a copy of the columns in order.
// Changes to them reach the table only through Set.
func (t *Table) Columns() []*Column {
	names := t.Names()
	cols := make([]*Column, len(names))
	for i, n := range names {
		cols[i] = columnOf(t.df.Col(n))
	}
	return cols
}

// Has reports if the table carries the given column.
func (t *Table) Has(name string) bool {
	return t.Index(name) >= 0
}

// Index returns the position of the column, or -1.
func (t *Table) Index(name string) int {
	for i, n := range t.Names() {
		if n == name {
			return i
		}
	}
	return -1
}

// Column returns a copy of the named column.
func (t *Table) Column(name string) (*Column, error) {
	if !t.Has(name) {
		return nil, fmt.Errorf("column '%s' not found: %w", name, SchemaMismatchErr)
	}
	return columnOf(t.df.Col(name)), nil
}

// Numeric returns the values of the named numeric column.
func (t *Table) Numeric(name string) ([]float64, error) {
	c, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	if c.Kind != Numeric {
		return nil, fmt.Errorf("column '%s' is %s, expected numeric: %w", name, c.Kind, SchemaMismatchErr)
	}
	return c.Floats, nil
}

// Strings returns the values of the named categorical column.
func (t *Table) Strings(name string) ([]string, error) {
	c, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	if c.Kind != Categorical {
		return nil, fmt.Errorf("column '%s' is %s, expected categorical: %w", name, c.Kind, SchemaMismatchErr)
	}
	return c.Strings, nil
}

// Append adds a column at the end of the table.
func (t *Table) Append(c *Column) error {
	if t.Has(c.Name) {
		return fmt.Errorf("duplicate column '%s': %w", c.Name, SchemaMismatchErr)
	}
	if t.Width() == 0 {
		n, err := fromSeries([]series.Series{c.series()})
		if err != nil {
			return err
		}
		t.df = n.df
		return nil
	}
	return t.mutate(c)
}

// Set replaces the named column, keeping its position.
// An unknown column is appended.
func (t *Table) Set(c *Column) error {
	if !t.Has(c.Name) {
		return t.Append(c)
	}
	return t.mutate(c)
}

func (t *Table) mutate(c *Column) error {
	if c.Len() != t.Len() {
		return fmt.Errorf("column '%s' has %d rows, table has %d: %w", c.Name, c.Len(), t.Len(), SchemaMismatchErr)
	}
	df := t.df.Mutate(c.series())
	if df.Err != nil {
		return fmt.Errorf("could not set column '%s': %s: %w", c.Name, df.Err.Error(), SchemaMismatchErr)
	}
	t.df = df
	return nil
}

// Drop removes the named columns. Unknown names are ignored.
func (t *Table) Drop(names ...string) {
	drop := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok || !t.Has(n) {
			continue
		}
		seen[n] = struct{}{}
		drop = append(drop, n)
	}
	if len(drop) == 0 {
		return
	}
	if len(drop) >= t.Width() {
		t.df = dataframe.DataFrame{}
		return
	}
	t.df = t.df.Drop(drop)
}

// Rename renames every column through the given function.
// The table is left untouched if the new names are not unique.
func (t *Table) Rename(f func(string) string) error {
	old := t.Names()
	next := make([]string, len(old))
	for i, n := range old {
		next[i] = f(n)
	}
	if err := unique(next); err != nil {
		return fmt.Errorf("could not rename columns: %w", err)
	}

	// two passes, so that no intermediate name clashes with an existing one
	df := t.df
	for i, n := range old {
		if next[i] != n {
			df = df.Rename(fmt.Sprintf("\x00%d", i), n)
		}
	}
	for i, n := range old {
		if next[i] != n {
			df = df.Rename(next[i], fmt.Sprintf("\x00%d", i))
		}
	}
	if df.Err != nil {
		return fmt.Errorf("could not rename columns: %s: %w", df.Err.Error(), SchemaMismatchErr)
	}
	t.df = df
	return nil
}

// Select returns a new table with only the named columns, in the given order.
func (t *Table) Select(names ...string) (*Table, error) {
	if err := unique(names); err != nil {
		return nil, err
	}
	for _, n := range names {
		if !t.Has(n) {
			return nil, fmt.Errorf("column '%s' not found: %w", n, SchemaMismatchErr)
		}
	}
	if len(names) == 0 {
		return &Table{}, nil
	}
	df := t.df.Select(names)
	if df.Err != nil {
		return nil, fmt.Errorf("could not select %v: %s: %w", names, df.Err.Error(), SchemaMismatchErr)
	}
	return &Table{df: df}, nil
}

// DropMissing removes the rows where the named numeric column is missing.
// It returns the number of dropped rows.
func (t *Table) DropMissing(name string) (int, error) {
	if _, err := t.Numeric(name); err != nil {
		return 0, err
	}
	before := t.Len()
	df := t.df.Filter(dataframe.F{
		Colname:    name,
		Comparator: series.CompFunc,
		Comparando: func(el series.Element) bool {
			return !math.IsNaN(el.Float())
		},
	})
	if df.Err != nil {
		return 0, fmt.Errorf("could not filter on '%s': %s: %w", name, df.Err.Error(), SchemaMismatchErr)
	}
	t.df = df
	return before - t.Len(), nil
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	if t.Width() == 0 {
		return &Table{}
	}
	return &Table{df: t.df.Copy()}
}

func names(columns []*Column) []string {
	nn := make([]string, len(columns))
	for i, c := range columns {
		nn[i] = c.Name
	}
	return nn
}

func unique(names []string) error {
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			return fmt.Errorf("duplicate column '%s': %w", n, SchemaMismatchErr)
		}
		seen[n] = struct{}{}
	}
	return nil
}
