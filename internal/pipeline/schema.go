package pipeline

import (
	"fmt"

	"github.com/drakos74/lifexp/internal/model"
)

// Schema names the columns the pipeline works on.
// It replaces positional column selection with explicit names,
// validated against every loaded table.
type Schema struct {
	Target string
	ID     string

	Status         string
	StatusPositive string

	Year       string
	YearOffset float64
	YearScale  float64

	Country string

	// Scaled are the numeric columns normalised with fitted params, target first.
	Scaled []string
	// Excluded are the predictor columns dropped at the end.
	Excluded []string

	Mode model.Mode
}

// Validate checks the schema is usable.
func (s Schema) Validate() error {
	required := map[string]string{
		"target":  s.Target,
		"id":      s.ID,
		"status":  s.Status,
		"year":    s.Year,
		"country": s.Country,
	}
	for k, v := range required {
		if v == "" {
			return fmt.Errorf("no column name for '%s': %w", k, model.SchemaMismatchErr)
		}
	}
	if s.YearScale == 0 {
		return fmt.Errorf("year scale must not be zero: %w", model.SchemaMismatchErr)
	}
	if len(s.Scaled) == 0 || s.Scaled[0] != s.Target {
		return fmt.Errorf("target '%s' must be the first scaled column: %w", s.Target, model.SchemaMismatchErr)
	}
	if err := unique("scaled", s.Scaled); err != nil {
		return err
	}
	if err := unique("excluded", s.Excluded); err != nil {
		return err
	}
	for _, e := range s.Excluded {
		if e == s.Target || e == s.Country || e == s.ID {
			return fmt.Errorf("column '%s' cannot be excluded: %w", e, model.SchemaMismatchErr)
		}
	}
	if _, err := model.ParseMode(string(s.Mode)); err != nil {
		return fmt.Errorf("%s: %w", err.Error(), model.SchemaMismatchErr)
	}
	return nil
}

func unique(list string, names []string) error {
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if n == "" {
			return fmt.Errorf("empty column name in %s list: %w", list, model.SchemaMismatchErr)
		}
		if _, ok := seen[n]; ok {
			return fmt.Errorf("duplicate column '%s' in %s list: %w", n, list, model.SchemaMismatchErr)
		}
		seen[n] = struct{}{}
	}
	return nil
}
