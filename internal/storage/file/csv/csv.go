package csv

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	xmath "github.com/drakos74/lifexp/internal/math"
	"github.com/drakos74/lifexp/internal/model"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/rs/zerolog/log"
)

// DefaultMissing are the cell values read as missing.
var DefaultMissing = []string{"", "NA", "NaN", "nan", "N/A", "null"}

// Options controls how a csv file is read into a table.
type Options struct {
	// Categorical are the columns always kept as strings, matched after trimming the header.
	Categorical []string
	// Missing are the cell values read as missing. Defaults to DefaultMissing.
	Missing []string
}

// Read loads the csv file at the given path.
func Read(path string, opts Options) (*model.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open file '%s': %w", path, err)
	}
	defer f.Close()

	t, err := Parse(f, opts)
	if err != nil {
		return nil, fmt.Errorf("could not parse file '%s': %w", path, err)
	}
	log.Info().Str("path", path).Int("rows", t.Len()).Int("columns", t.Width()).Msg("loaded table")
	return t, nil
}

// Parse reads a csv with a header row into a table.
// A column is numeric if every non-missing cell parses as a number, categorical otherwise.
// Cells are taken as they are, only the header names are matched after trimming.
func Parse(r io.Reader, opts Options) (*model.Table, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	reader := csv.NewReader(bytes.NewReader(b))
	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("no header row: %w", model.SchemaMismatchErr)
	}
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(header))
	for _, name := range header {
		if _, ok := seen[name]; ok {
			return nil, fmt.Errorf("duplicate column '%s': %w", name, model.SchemaMismatchErr)
		}
		seen[name] = struct{}{}
	}
	_, err = reader.Read()
	empty := errors.Is(err, io.EOF)

	missing := opts.Missing
	if missing == nil {
		missing = DefaultMissing
	}
	categorical := set(opts.Categorical)
	types := make(map[string]series.Type)
	for _, name := range header {
		if _, ok := categorical[strings.TrimSpace(name)]; ok {
			types[name] = series.String
		}
	}

	if empty {
		return emptyTable(header, types)
	}
	df := dataframe.ReadCSV(bytes.NewReader(b),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.DefaultType(series.Float),
		dataframe.WithTypes(types),
		dataframe.NaNValues(missing),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("could not load csv: %w", df.Err)
	}
	// a column without any value is a numeric one
	for _, name := range df.Names() {
		if _, ok := types[name]; ok {
			continue
		}
		if s := df.Col(name); s.Type() == series.String && allMissing(s) {
			df = df.Mutate(series.New(s.Float(), series.Float, name))
		}
	}
	return model.FromDataFrame(df)
}

func allMissing(s series.Series) bool {
	for _, m := range s.IsNaN() {
		if !m {
			return false
		}
	}
	return true
}

func emptyTable(header []string, types map[string]series.Type) (*model.Table, error) {
	columns := make([]*model.Column, len(header))
	for i, name := range header {
		if types[name] == series.String {
			columns[i] = model.NewCategorical(name, []string{})
		} else {
			columns[i] = model.NewNumeric(name, []float64{})
		}
	}
	return model.NewTable(columns...)
}

// Write stores the columns as a csv file at the given path.
// The file is written to a temporary file first and moved into place once complete.
func Write(path string, columns ...*model.Column) error {
	t, err := model.NewTable(columns...)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("could not make dir: %s: %w", dir, err)
	}
	f, err := os.CreateTemp(dir, fmt.Sprintf(".%s-*", filepath.Base(path)))
	if err != nil {
		return fmt.Errorf("could not create file for '%s': %w", path, err)
	}
	defer os.Remove(f.Name())

	if err := Format(f, t); err != nil {
		f.Close()
		return fmt.Errorf("could not write '%s': %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("could not close '%s': %w", path, err)
	}
	if err := os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("could not move file into '%s': %w", path, err)
	}
	log.Info().Str("path", path).Int("rows", t.Len()).Msg("stored table")
	return nil
}

// Format writes the table as csv with a header row.
// Missing cells are written empty.
func Format(w io.Writer, t *model.Table) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.Names()); err != nil {
		return err
	}
	columns := t.Columns()
	record := make([]string, len(columns))
	for i := 0; i < t.Len(); i++ {
		for j, c := range columns {
			switch c.Kind {
			case model.Numeric:
				if xmath.IsMissing(c.Floats[i]) {
					record[j] = ""
				} else {
					record[j] = strconv.FormatFloat(c.Floats[i], 'f', -1, 64)
				}
			case model.Categorical:
				record[j] = c.Strings[i]
			}
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func set(values []string) map[string]struct{} {
	s := make(map[string]struct{}, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}
