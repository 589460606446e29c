package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/drakos74/lifexp/internal/model"
	"github.com/drakos74/lifexp/internal/pipeline"
	"github.com/drakos74/lifexp/internal/report"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultPath is where the config file is looked up when none is given.
	DefaultPath = "infra/config"
	// EnvPrefix prefixes the environment overrides e.g. LIFEXP_PATHS_TRAIN.
	EnvPrefix = "LIFEXP"
)

// Columns names the dataset columns the pipeline depends on.
type Columns struct {
	Target         string   `mapstructure:"target" yaml:"target"`
	ID             string   `mapstructure:"id" yaml:"id"`
	Status         string   `mapstructure:"status" yaml:"status"`
	StatusPositive string   `mapstructure:"status_positive" yaml:"status_positive"`
	Year           string   `mapstructure:"year" yaml:"year"`
	Country        string   `mapstructure:"country" yaml:"country"`
	Scaled         []string `mapstructure:"scaled" yaml:"scaled"`
	Excluded       []string `mapstructure:"excluded" yaml:"excluded"`
}

// Year holds the fixed affine map of the year column.
type Year struct {
	Offset float64 `mapstructure:"offset" yaml:"offset"`
	Scale  float64 `mapstructure:"scale" yaml:"scale"`
}

// Paths are the files and directories of a run.
type Paths struct {
	Train   string `mapstructure:"train" yaml:"train"`
	Test    string `mapstructure:"test" yaml:"test"`
	Results string `mapstructure:"results" yaml:"results"`
	Pattern string `mapstructure:"pattern" yaml:"pattern"`
	Models  string `mapstructure:"models" yaml:"models"`
	Metrics string `mapstructure:"metrics" yaml:"metrics"`
}

// Report controls the console summaries.
type Report struct {
	Enabled    bool `mapstructure:"enabled" yaml:"enabled"`
	MaxRows    int  `mapstructure:"max_rows" yaml:"max_rows"`
	MaxColumns int  `mapstructure:"max_columns" yaml:"max_columns"`
	Precision  int  `mapstructure:"precision" yaml:"precision"`
}

// Config is the configuration of lifexp.
type Config struct {
	Columns   Columns  `mapstructure:"columns" yaml:"columns"`
	Year      Year     `mapstructure:"year" yaml:"year"`
	ScaleMode string   `mapstructure:"scale_mode" yaml:"scale_mode"`
	Intercept string   `mapstructure:"intercept" yaml:"intercept"`
	Missing   []string `mapstructure:"missing" yaml:"missing"`
	Paths     Paths    `mapstructure:"paths" yaml:"paths"`
	Report    Report   `mapstructure:"report" yaml:"report"`
	LogLevel  string   `mapstructure:"log_level" yaml:"log_level"`
}

// Default returns the configuration of the WHO life expectancy dataset.
func Default() Config {
	return Config{
		Columns: Columns{
			Target:         "Life expectancy",
			ID:             "ID",
			Status:         "Status",
			StatusPositive: "Developed",
			Year:           "Year",
			Country:        "Country",
			Scaled: []string{
				"Life expectancy",
				"Adult Mortality",
				"infant deaths",
				"Alcohol",
				"percentage expenditure",
				"Hepatitis B",
				"Measles",
				"BMI",
				"under-five deaths",
				"Polio",
				"Total expenditure",
				"Diphtheria",
				"HIV/AIDS",
				"GDP",
				"Population",
				"thinness  1-19 years",
				"thinness 5-9 years",
				"Income composition of resources",
				"Schooling",
			},
			Excluded: []string{
				"BMI",
				"Population",
				"thinness  1-19 years",
				"thinness 5-9 years",
				"Income composition of resources",
			},
		},
		Year: Year{
			Offset: 2000,
			Scale:  15,
		},
		ScaleMode: string(model.MinScale),
		Intercept: "const",
		Missing:   []string{"", "NA", "NaN", "nan", "N/A", "null"},
		Paths: Paths{
			Train:   "train.csv",
			Test:    "test.csv",
			Results: "test_results",
			Pattern: "*.csv",
			Models:  "file-storage/models",
		},
		Report: Report{
			Enabled:   true,
			MaxRows:   5,
			Precision: 4,
		},
		LogLevel: "info",
	}
}

// Load loads the configuration from the defaults, the config file and the environment.
// Precedence: env > config file > defaults.
// An empty cfgFile looks for lifexp.yaml in the working directory and in DefaultPath, and
// it is fine for it not to exist.
func Load(cfgFile string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := setDefaults(v, Default()); err != nil {
		return Config{}, err
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("could not read config '%s': %w", cfgFile, err)
		}
	} else {
		v.SetConfigName("lifexp")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(DefaultPath)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("could not read config: %w", err)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("could not unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	log.Debug().Str("file", v.ConfigFileUsed()).Msg("loaded config")
	return c, nil
}

// Save writes the configuration as yaml to the given path.
func Save(c Config, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("could not make config dir: %w", err)
		}
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("could not marshal config: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("could not write config: %w", err)
	}
	return nil
}

// Validate fails fast on an unusable configuration.
func (c Config) Validate() error {
	if err := c.Schema().Validate(); err != nil {
		return fmt.Errorf("invalid columns config: %w", err)
	}
	if c.Intercept == "" {
		return fmt.Errorf("no intercept column name: %w", model.SchemaMismatchErr)
	}
	if c.Report.Precision < 0 || c.Report.MaxRows < 0 || c.Report.MaxColumns < 0 {
		return fmt.Errorf("report options must not be negative")
	}
	return nil
}

// Schema returns the pipeline schema described by the configuration.
func (c Config) Schema() pipeline.Schema {
	return pipeline.Schema{
		Target:         c.Columns.Target,
		ID:             c.Columns.ID,
		Status:         c.Columns.Status,
		StatusPositive: c.Columns.StatusPositive,
		Year:           c.Columns.Year,
		YearOffset:     c.Year.Offset,
		YearScale:      c.Year.Scale,
		Country:        c.Columns.Country,
		Scaled:         c.Columns.Scaled,
		Excluded:       c.Columns.Excluded,
		Mode:           model.Mode(c.ScaleMode),
	}
}

// ReportOptions returns the formatting options of the console summaries.
func (c Config) ReportOptions() report.Options {
	return report.Options{
		MaxRows:    c.Report.MaxRows,
		MaxColumns: c.Report.MaxColumns,
		Precision:  c.Report.Precision,
	}
}

// setDefaults registers every key of the default config, so that env overrides apply to all of them.
func setDefaults(v *viper.Viper, c Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("could not marshal defaults: %w", err)
	}
	defaults := make(map[string]interface{})
	if err := yaml.Unmarshal(b, &defaults); err != nil {
		return fmt.Errorf("could not unmarshal defaults: %w", err)
	}
	for k, val := range flatten("", defaults) {
		v.SetDefault(k, val)
	}
	return nil
}

func flatten(prefix string, m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{})
	for k, val := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := val.(map[string]interface{}); ok {
			for sk, sv := range flatten(key, sub) {
				out[sk] = sv
			}
			continue
		}
		out[key] = val
	}
	return out
}
