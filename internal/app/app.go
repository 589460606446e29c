package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/drakos74/lifexp/infra/config"
	"github.com/drakos74/lifexp/internal/math/ml"
	"github.com/drakos74/lifexp/internal/metrics"
	"github.com/drakos74/lifexp/internal/model"
	"github.com/drakos74/lifexp/internal/pipeline"
	"github.com/drakos74/lifexp/internal/report"
	"github.com/drakos74/lifexp/internal/storage"
	"github.com/drakos74/lifexp/internal/storage/file/csv"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ModelKey is the storage key of the latest fitted model.
var ModelKey = storage.Key{
	Name:  "model",
	Label: "latest",
}

// App runs the train and test stages of the life expectancy regression.
type App struct {
	cfg     config.Config
	schema  pipeline.Schema
	store   storage.Persistence
	metrics *metrics.Metrics
	out     io.Writer
}

// NewApp creates an app for the given configuration.
// It stores nothing, records into a throwaway registry and prints no reports until told otherwise.
func NewApp(cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &App{
		cfg:     cfg,
		schema:  cfg.Schema(),
		store:   storage.NewVoidStorage(),
		metrics: metrics.New(uuid.New().String()),
		out:     io.Discard,
	}, nil
}

// WithStorage sets the storage of the fitted model.
func (a *App) WithStorage(store storage.Persistence) *App {
	a.store = store
	return a
}

// WithMetrics sets the metrics of the run.
func (a *App) WithMetrics(m *metrics.Metrics) *App {
	a.metrics = m
	return a
}

// WithReports sets where the console summaries go, if they are enabled.
func (a *App) WithReports(w io.Writer) *App {
	a.out = w
	return a
}

// Run trains on the train file and writes the predictions for the test file.
// output overrides the result file naming if not empty.
// It returns the path of the result file.
func (a *App) Run(ctx context.Context, output string) (string, error) {
	fitted, err := a.Train(ctx)
	if err != nil {
		return "", err
	}
	return a.Predict(ctx, fitted, output)
}

// Train fits the pipeline and the regression on the train file and stores the fitted model.
func (a *App) Train(ctx context.Context) (model.Fitted, error) {
	start := time.Now()
	defer a.metrics.Time("train", start)

	if err := ctx.Err(); err != nil {
		return model.Fitted{}, err
	}
	raw, err := csv.Read(a.cfg.Paths.Train, a.readOptions())
	if err != nil {
		return model.Fitted{}, fmt.Errorf("could not load train table: %w", err)
	}
	a.metrics.Rows("train", raw.Len())

	if err := ctx.Err(); err != nil {
		return model.Fitted{}, err
	}
	processed, fitted, rep, err := pipeline.Train(raw, a.schema)
	if err != nil {
		return model.Fitted{}, fmt.Errorf("could not process train table: %w", err)
	}
	a.metrics.Dropped(rep.DroppedRows)
	a.metrics.Filled("train", rep.FilledCells)

	if err := ctx.Err(); err != nil {
		return model.Fitted{}, err
	}
	x, y, err := pipeline.Split(processed, fitted)
	if err != nil {
		return model.Fitted{}, err
	}
	regression, err := ml.FitRegression(x, y, a.cfg.Intercept)
	if err != nil {
		return model.Fitted{}, fmt.Errorf("could not fit regression: %w", err)
	}

	fitted.ID = uuid.New().String()
	fitted.Created = time.Now()
	fitted.Intercept = regression.Intercept()
	fitted.Coefficients = regression.Coefficients()

	meta := regression.Metadata()
	a.metrics.Fit("r2", meta.R2)
	a.metrics.Fit("adj_r2", meta.AdjR2)
	a.metrics.Fit("sse", meta.SSE)
	a.metrics.Fit("rank", float64(meta.Rank))

	if a.cfg.Report.Enabled {
		opts := a.cfg.ReportOptions()
		report.Head(a.out, "train", processed, opts)
		report.Describe(a.out, "train", processed, opts)
		report.Summary(a.out, regression, opts)
	}

	if err := a.store.Store(ModelKey, fitted); err != nil {
		return model.Fitted{}, fmt.Errorf("could not store model: %w", err)
	}

	log.Info().
		Str("model", fitted.ID).
		Int("features", len(fitted.Features)).
		Float64("r2", meta.R2).
		Msg("trained model")
	return fitted, nil
}

// LoadModel loads the latest stored fitted model.
func (a *App) LoadModel() (model.Fitted, error) {
	var fitted model.Fitted
	if err := a.store.Load(ModelKey, &fitted); err != nil {
		return model.Fitted{}, fmt.Errorf("could not load model: %w", err)
	}
	log.Info().Str("model", fitted.ID).Time("created", fitted.Created).Msg("loaded model")
	return fitted, nil
}

// Predict applies the fitted model to the test file and writes the result file.
// It returns the path of the result file.
func (a *App) Predict(ctx context.Context, fitted model.Fitted, output string) (string, error) {
	start := time.Now()
	defer a.metrics.Time("predict", start)

	if err := ctx.Err(); err != nil {
		return "", err
	}
	regression, err := ml.NewRegression(fitted.Intercept, fitted.Features, fitted.Coefficients)
	if err != nil {
		return "", fmt.Errorf("could not restore regression: %w", err)
	}
	raw, err := csv.Read(a.cfg.Paths.Test, a.readOptions())
	if err != nil {
		return "", fmt.Errorf("could not load test table: %w", err)
	}
	a.metrics.Rows("test", raw.Len())

	if err := ctx.Err(); err != nil {
		return "", err
	}
	x, ids, rep, err := pipeline.Transform(raw, a.schema, fitted)
	if err != nil {
		return "", fmt.Errorf("could not process test table: %w", err)
	}
	a.metrics.Filled("test", rep.FilledCells)
	a.metrics.Unseen(rep.UnseenCategories)

	if a.cfg.Report.Enabled {
		report.Head(a.out, "test", x, a.cfg.ReportOptions())
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}
	predicted, err := regression.Predict(x)
	if err != nil {
		return "", fmt.Errorf("could not predict: %w", err)
	}

	path, err := ResultPath(a.cfg.Paths.Results, a.cfg.Paths.Pattern, output)
	if err != nil {
		return "", err
	}
	if err := WriteResult(path, a.schema.ID, ids, predicted, fitted); err != nil {
		return "", err
	}
	a.metrics.Predictions(len(predicted))
	return path, nil
}

// Flush writes the run metrics to the configured textfile.
func (a *App) Flush() error {
	return a.metrics.Flush(a.cfg.Paths.Metrics)
}

func (a *App) readOptions() csv.Options {
	return csv.Options{
		Categorical: []string{a.schema.Country, a.schema.Status, a.schema.ID},
		Missing:     a.cfg.Missing,
	}
}
