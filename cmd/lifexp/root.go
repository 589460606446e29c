package main

import (
	"fmt"
	"os"
	"time"

	"github.com/drakos74/lifexp/infra/config"
	"github.com/drakos74/lifexp/internal/app"
	"github.com/drakos74/lifexp/internal/metrics"
	"github.com/drakos74/lifexp/internal/storage/file/json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logLevel string

	// cfg is loaded before any command that needs it runs
	cfg   config.Config
	runID string
)

var rootCmd = &cobra.Command{
	Use:           "lifexp",
	Short:         "Life expectancy regression on the WHO dataset",
	Long:          `lifexp normalises the train and test tables, fits an OLS regression with an intercept on the train table and writes the predicted life expectancy of every test row into the next result file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			c.LogLevel = logLevel
		}
		if err := setupLogger(c.LogLevel); err != nil {
			return err
		}
		cfg = c
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is lifexp.yaml in . or "+config.DefaultPath+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
}

func setupLogger(level string) error {
	l, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level '%s': %w", level, err)
	}
	zerolog.SetGlobalLevel(l)
	runID = uuid.New().String()
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().
		Timestamp().
		Str("run", runID).
		Logger()
	return nil
}

func newApp() (*app.App, error) {
	a, err := app.NewApp(cfg)
	if err != nil {
		return nil, err
	}
	a.WithMetrics(metrics.New(runID)).WithReports(os.Stdout)
	if cfg.Paths.Models != "" {
		a.WithStorage(json.NewJsonBlob(cfg.Paths.Models))
	}
	return a, nil
}

// flush writes the metrics of the run, without hiding the error of the run itself.
func flush(a *app.App, err error) error {
	if ferr := a.Flush(); ferr != nil {
		if err != nil {
			log.Error().Err(ferr).Msg("could not flush metrics")
			return err
		}
		return ferr
	}
	return err
}
