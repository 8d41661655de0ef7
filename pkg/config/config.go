package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/BoyarinO/dataroot2/pkg/dataprep"
	"github.com/BoyarinO/dataroot2/pkg/sweep"
)

type Config struct {
	Sweep  SweepConfig  `yaml:"sweep"`
	Data   DataConfig   `yaml:"data"`
	Output OutputConfig `yaml:"output"`
	Log    LogConfig    `yaml:"log"`
}

type SweepConfig struct {
	KMin    int `yaml:"kmin"`
	KMax    int `yaml:"kmax"`
	KStep   int `yaml:"kstep"`
	Workers int `yaml:"workers"`
}

type DataConfig struct {
	Input        string  `yaml:"input"`
	LabelColumn  int     `yaml:"label_column"`
	Header       bool    `yaml:"header"`
	Observations int     `yaml:"observations"`
	SplitRatio   float64 `yaml:"split_ratio"`
	Seed         uint64  `yaml:"seed"`
	Standardize  bool    `yaml:"standardize"`
	AllowMissing bool    `yaml:"allow_missing"`
	Impute       string  `yaml:"impute"`
	Columns      []int   `yaml:"columns"`
	Components   int     `yaml:"components"`
}

type OutputConfig struct {
	PlotDir   string `yaml:"plot_dir"`
	ResultsDB string `yaml:"results_db"`
	CSV       string `yaml:"csv"`
	Table     bool   `yaml:"table"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Sweep: SweepConfig{
			KMin:  sweep.DefaultKMin,
			KMax:  sweep.DefaultKMax,
			KStep: sweep.DefaultKStep,
		},
		Data: DataConfig{
			LabelColumn:  -1,
			Observations: 300,
			SplitRatio:   0.67,
			Impute:       "mean",
		},
		Output: OutputConfig{
			Table: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks every section and joins all problems into one error.
func (c Config) Validate() error {
	var errs []error
	if _, err := c.KValues(); err != nil {
		errs = append(errs, err)
	}
	if c.Data.SplitRatio <= 0 || c.Data.SplitRatio >= 1 {
		errs = append(errs, fmt.Errorf("data.split_ratio %v must be in (0, 1)", c.Data.SplitRatio))
	}
	if c.Data.Input == "" && c.Data.Observations <= 0 {
		errs = append(errs, fmt.Errorf("data.observations %d must be positive", c.Data.Observations))
	}
	if _, err := dataprep.ParseStrategy(c.Data.Impute); c.Data.AllowMissing && err != nil {
		errs = append(errs, err)
	}
	if c.Data.Components < 0 {
		errs = append(errs, fmt.Errorf("data.components %d must not be negative", c.Data.Components))
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// KValues returns the k values of the sweep section.
func (c Config) KValues() ([]int, error) {
	return sweep.KRange(c.Sweep.KMin, c.Sweep.KMax, c.Sweep.KStep)
}

// SlogLevel maps the configured level name to a slog.Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("log.level %q is not one of debug, info, warn, error", l.Level)
	}
}
