package pipeline

import (
	"fmt"

	"github.com/drakos74/lifexp/internal/model"
	"github.com/rs/zerolog/log"
)

// Report counts what the pipeline did to a table.
type Report struct {
	Rows             int
	DroppedRows      int
	FilledCells      int
	UnseenCategories int
}

// Train runs the pipeline on the training table and captures the fitted params.
// The returned table still carries the target column.
// The coefficients of the returned Fitted are left for the regression to fill.
func Train(t *model.Table, s Schema) (*model.Table, model.Fitted, Report, error) {
	var report Report
	if err := s.Validate(); err != nil {
		return nil, model.Fitted{}, report, err
	}
	mode, _ := model.ParseMode(string(s.Mode))
	t = t.Clone()

	if err := TrimColumnNames(t); err != nil {
		return nil, model.Fitted{}, report, err
	}
	dropped, err := DropMissingTarget(t, s.Target)
	if err != nil {
		return nil, model.Fitted{}, report, err
	}
	report.DroppedRows = dropped

	if err := requireColumns(t, s.Status, s.Year, s.Country); err != nil {
		return nil, model.Fitted{}, report, err
	}
	if t.Has(s.ID) {
		log.Warn().Str("column", s.ID).Msg("dropping identifier column from train table")
		t.Drop(s.ID)
	}

	if err := RecodeStatus(t, s.Status, s.StatusPositive); err != nil {
		return nil, model.Fitted{}, report, err
	}
	if err := RescaleYear(t, s.Year, s.YearOffset, s.YearScale); err != nil {
		return nil, model.Fitted{}, report, err
	}

	scales, err := FitScale(t, s.Scaled, mode)
	if err != nil {
		return nil, model.Fitted{}, report, err
	}

	filled, err := BackFill(t, s.Excluded...)
	if err != nil {
		return nil, model.Fitted{}, report, err
	}
	report.FilledCells = filled

	vocabulary, err := OneHotFit(t, s.Country)
	if err != nil {
		return nil, model.Fitted{}, report, err
	}

	if err := DropColumns(t, s.Excluded...); err != nil {
		return nil, model.Fitted{}, report, err
	}
	report.Rows = t.Len()

	features := make([]string, 0, t.Width()-1)
	for _, n := range t.Names() {
		if n != s.Target {
			features = append(features, n)
		}
	}

	fitted := model.Fitted{
		Target:     s.Target,
		Scales:     scales,
		Vocabulary: vocabulary,
		Features:   features,
	}

	log.Info().
		Int("rows", report.Rows).
		Int("dropped", report.DroppedRows).
		Int("filled", report.FilledCells).
		Int("scaled", len(scales)).
		Int("categories", len(vocabulary.Values)).
		Int("features", len(features)).
		Msg("processed train table")

	return t, fitted, report, nil
}

// Transform runs the pipeline on the test table with the params captured at train time.
// It returns the feature table in train order, and the row identifiers split off the table.
func Transform(t *model.Table, s Schema, fitted model.Fitted) (*model.Table, []string, Report, error) {
	var report Report
	if err := s.Validate(); err != nil {
		return nil, nil, report, err
	}
	t = t.Clone()

	if err := TrimColumnNames(t); err != nil {
		return nil, nil, report, err
	}
	if t.Has(fitted.Target) {
		return nil, nil, report, fmt.Errorf("test table carries target column '%s': %w", fitted.Target, model.SchemaMismatchErr)
	}
	if err := requireColumns(t, s.ID, s.Status, s.Year, fitted.Vocabulary.Column); err != nil {
		return nil, nil, report, err
	}

	ids, err := identifiers(t, s.ID)
	if err != nil {
		return nil, nil, report, err
	}
	t.Drop(s.ID)

	if err := RecodeStatus(t, s.Status, s.StatusPositive); err != nil {
		return nil, nil, report, err
	}
	if err := RescaleYear(t, s.Year, s.YearOffset, s.YearScale); err != nil {
		return nil, nil, report, err
	}

	scaled := make([]string, 0, len(fitted.Scales))
	for _, p := range fitted.Scales {
		if p.Column != fitted.Target {
			scaled = append(scaled, p.Column)
		}
	}
	if err := requireColumns(t, scaled...); err != nil {
		return nil, nil, report, err
	}
	if err := ApplyScale(t, fitted.Scales, fitted.Target); err != nil {
		return nil, nil, report, err
	}

	filled, err := BackFill(t, s.Excluded...)
	if err != nil {
		return nil, nil, report, err
	}
	report.FilledCells = filled

	unseen, err := OneHotApply(t, fitted.Vocabulary)
	if err != nil {
		return nil, nil, report, err
	}
	report.UnseenCategories = unseen

	if err := DropColumns(t, s.Excluded...); err != nil {
		return nil, nil, report, err
	}

	if t.Width() != len(fitted.Features) {
		return nil, nil, report, fmt.Errorf("test table has columns %v, expected %v: %w", t.Names(), fitted.Features, model.SchemaMismatchErr)
	}
	x, err := t.Select(fitted.Features...)
	if err != nil {
		return nil, nil, report, err
	}
	report.Rows = x.Len()

	log.Info().
		Int("rows", report.Rows).
		Int("filled", report.FilledCells).
		Int("unseen", report.UnseenCategories).
		Msg("processed test table")

	return x, ids, report, nil
}

// Split separates the features from the target of a processed train table.
func Split(t *model.Table, fitted model.Fitted) (*model.Table, []float64, error) {
	y, err := t.Numeric(fitted.Target)
	if err != nil {
		return nil, nil, err
	}
	x, err := t.Select(fitted.Features...)
	if err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

func identifiers(t *model.Table, column string) ([]string, error) {
	c, err := t.Column(column)
	if err != nil {
		return nil, err
	}
	if c.Kind == model.Categorical {
		return append([]string{}, c.Strings...), nil
	}
	ids := make([]string, c.Len())
	for i, v := range c.Floats {
		ids[i] = fmt.Sprintf("%v", v)
	}
	return ids, nil
}
