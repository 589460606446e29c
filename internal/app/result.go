package app

import (
	"fmt"

	xmath "github.com/drakos74/lifexp/internal/math"
	"github.com/drakos74/lifexp/internal/model"
	"github.com/drakos74/lifexp/internal/storage/file"
	"github.com/drakos74/lifexp/internal/storage/file/csv"
	"github.com/rs/zerolog/log"
)

// ResultPath returns the file the predictions go to.
// An explicit output wins, otherwise the name follows the latest result file in the directory.
func ResultPath(dir, pattern, output string) (string, error) {
	if output != "" {
		return output, nil
	}
	path, err := file.NextResultFile(dir, pattern)
	if err != nil {
		return "", fmt.Errorf("could not name result file in '%s': %w", dir, err)
	}
	return path, nil
}

// WriteResult maps the predictions back to target units and writes them next to the row identifiers.
func WriteResult(path, id string, ids []string, predicted []float64, fitted model.Fitted) error {
	if len(ids) != len(predicted) {
		return fmt.Errorf("%d identifiers for %d predictions: %w", len(ids), len(predicted), model.SchemaMismatchErr)
	}
	params, err := fitted.TargetScale()
	if err != nil {
		return err
	}
	values := xmath.Invert(predicted, params)
	if err := csv.Write(path,
		model.NewCategorical(id, ids),
		model.NewNumeric(fitted.Target, values),
	); err != nil {
		return fmt.Errorf("could not write result: %w", err)
	}
	log.Info().Str("path", path).Int("predictions", len(values)).Msg("wrote result")
	return nil
}
