package pipeline

import (
	"fmt"
	"strings"

	xmath "github.com/drakos74/lifexp/internal/math"
	"github.com/drakos74/lifexp/internal/math/ml"
	"github.com/drakos74/lifexp/internal/model"
	"github.com/rs/zerolog/log"
)

// TrimColumnNames removes leading and trailing whitespace from all column names.
func TrimColumnNames(t *model.Table) error {
	return t.Rename(strings.TrimSpace)
}

// DropMissingTarget removes the rows without a target value.
// It returns the number of dropped rows.
func DropMissingTarget(t *model.Table, target string) (int, error) {
	if !t.Has(target) {
		return 0, fmt.Errorf("no column '%s' in %v: %w", target, t.Names(), model.MissingTargetErr)
	}
	dropped, err := t.DropMissing(target)
	if err != nil {
		return 0, err
	}
	log.Debug().Str("target", target).Int("dropped", dropped).Int("rows", t.Len()).Msg("dropped rows without target")
	return dropped, nil
}

// RecodeStatus turns the status column into a binary numeric column.
// Only the exact positive value maps to 1, everything else to 0.
func RecodeStatus(t *model.Table, column, positive string) error {
	values, err := t.Strings(column)
	if err != nil {
		return err
	}
	ff := make([]float64, len(values))
	for i, v := range values {
		if v == positive {
			ff[i] = 1
		}
	}
	return t.Set(model.NewNumeric(column, ff))
}

// RescaleYear applies the fixed affine map (year - offset) / scale.
func RescaleYear(t *model.Table, column string, offset, scale float64) error {
	values, err := t.Numeric(column)
	if err != nil {
		return err
	}
	params := model.ScaleParams{
		Column:  column,
		Offset:  offset,
		Divisor: scale,
	}
	return t.Set(model.NewNumeric(column, xmath.Transform(values, params)))
}

// FitScale fits and applies the scaler to each of the given columns, in order.
// It returns the fitted params in the same order.
func FitScale(t *model.Table, columns []string, mode model.Mode) ([]model.ScaleParams, error) {
	if err := requireColumns(t, columns...); err != nil {
		return nil, err
	}
	params := make([]model.ScaleParams, 0, len(columns))
	for _, c := range columns {
		values, err := t.Numeric(c)
		if err != nil {
			return nil, err
		}
		out, p, err := xmath.FitTransform(c, values, mode)
		if err != nil {
			return nil, err
		}
		if err := t.Set(model.NewNumeric(c, out)); err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	return params, nil
}

// ApplyScale applies previously fitted params to the matching columns by name.
// Params for the skipped columns are ignored.
func ApplyScale(t *model.Table, params []model.ScaleParams, skip ...string) error {
	skipped := set(skip)
	for _, p := range params {
		if _, ok := skipped[p.Column]; ok {
			continue
		}
		values, err := t.Numeric(p.Column)
		if err != nil {
			return err
		}
		if err := t.Set(model.NewNumeric(p.Column, xmath.Transform(values, p))); err != nil {
			return err
		}
	}
	return nil
}

// BackFill replaces each missing cell with the next valid cell below it in the same column.
// Trailing missing cells cannot be resolved, they fail the step unless the column is exempt.
// It returns the number of filled cells.
func BackFill(t *model.Table, exempt ...string) (int, error) {
	exempted := set(exempt)
	var filled int
	unresolved := make([]string, 0)
	for _, c := range t.Columns() {
		n, trailing := backFill(c)
		filled += n
		if n > 0 {
			if err := t.Set(c); err != nil {
				return filled, err
			}
		}
		if trailing > 0 {
			if _, ok := exempted[c.Name]; ok {
				log.Debug().Str("column", c.Name).Int("cells", trailing).Msg("ignoring trailing missing values")
				continue
			}
			unresolved = append(unresolved, fmt.Sprintf("%s(%d)", c.Name, trailing))
		}
	}
	if len(unresolved) > 0 {
		return filled, fmt.Errorf("trailing missing cells in %v: %w", unresolved, model.UnresolvedMissingValueErr)
	}
	return filled, nil
}

// backFill fills the column in place and returns the filled and trailing missing counts.
func backFill(c *model.Column) (int, int) {
	var filled int
	next := -1
	for i := c.Len() - 1; i >= 0; i-- {
		if !c.Missing(i) {
			next = i
			continue
		}
		if next < 0 {
			continue
		}
		switch c.Kind {
		case model.Numeric:
			c.Floats[i] = c.Floats[next]
		case model.Categorical:
			c.Strings[i] = c.Strings[next]
		}
		filled++
	}
	trailing := 0
	for i := c.Len() - 1; i >= 0 && c.Missing(i); i-- {
		trailing++
	}
	return filled, trailing
}

// OneHotFit fits the vocabulary of the column and replaces it with its indicator columns.
func OneHotFit(t *model.Table, column string) (model.Vocabulary, error) {
	values, err := t.Strings(column)
	if err != nil {
		return model.Vocabulary{}, err
	}
	vocabulary := ml.Fit(column, values)
	if _, err := OneHotApply(t, vocabulary); err != nil {
		return model.Vocabulary{}, err
	}
	return vocabulary, nil
}

// OneHotApply replaces the vocabulary column with its indicator columns, appended at the end.
// It returns the number of rows whose category is not in the vocabulary.
func OneHotApply(t *model.Table, vocabulary model.Vocabulary) (int, error) {
	values, err := t.Strings(vocabulary.Column)
	if err != nil {
		return 0, err
	}
	columns, unseen := ml.Transform(values, vocabulary)
	t.Drop(vocabulary.Column)
	for _, c := range columns {
		if err := t.Append(c); err != nil {
			return 0, err
		}
	}
	if unseen > 0 {
		log.Warn().Str("column", vocabulary.Column).Int("rows", unseen).Msg("categories not seen at train time")
	}
	return unseen, nil
}

// DropColumns removes the given columns. All of them must be present.
func DropColumns(t *model.Table, columns ...string) error {
	if err := requireColumns(t, columns...); err != nil {
		return err
	}
	t.Drop(columns...)
	return nil
}

func requireColumns(t *model.Table, columns ...string) error {
	missing := make([]string, 0)
	for _, c := range columns {
		if !t.Has(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing columns %v: %w", missing, model.SchemaMismatchErr)
	}
	return nil
}

func set(names []string) map[string]struct{} {
	s := make(map[string]struct{}, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}
