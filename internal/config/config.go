// Package config loads nomsim simulation configuration from YAML files and
// NOMSIM_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/nomsim/csvio"
	"github.com/katalvlaran/nomsim/internal/logging"
	"github.com/katalvlaran/nomsim/norta"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid")

// SimConfig is the top-level configuration of one simulation run.
type SimConfig struct {
	// Subjects is R, the number of clusters.
	Subjects int `json:"subjects" yaml:"subjects"`

	// ClusterSize is T, the number of occasions per subject.
	ClusterSize int `json:"clsize" yaml:"clsize"`

	// Categories is J, the number of response categories.
	Categories int `json:"ncategories" yaml:"ncategories"`

	// Seed for the latent generator. 0 selects the built-in default seed.
	Seed int64 `json:"seed" yaml:"seed"`

	// Margin of the latent noise: gumbel (default), logistic or normal.
	Margin string `json:"margin" yaml:"margin"`

	// Workers for the latent margin transform.
	Workers int `json:"workers" yaml:"workers"`

	Coefficients CoefficientsConfig `json:"coefficients" yaml:"coefficients"`

	Design DesignConfig `json:"design" yaml:"design"`

	Correlation CorrelationConfig `json:"correlation" yaml:"correlation"`

	// LatentFile is a CSV of R×(T·J) latent values. When set, the
	// correlation section is ignored.
	LatentFile string `json:"latent_file,omitempty" yaml:"latent_file,omitempty"`

	Output OutputConfig `json:"output" yaml:"output"`

	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// CoefficientsConfig holds exactly one of the two coefficient forms.
type CoefficientsConfig struct {
	// Shared is one row of (p+1)(J-1) values used at every occasion.
	Shared []float64 `json:"shared,omitempty" yaml:"shared,omitempty"`

	// PerOccasion holds T rows of (p+1)(J-1) values.
	PerOccasion [][]float64 `json:"per_occasion,omitempty" yaml:"per_occasion,omitempty"`
}

// DesignConfig holds the covariate matrix inline or as a CSV file.
// Both empty means no covariates.
type DesignConfig struct {
	File string      `json:"file,omitempty" yaml:"file,omitempty"`
	Rows [][]float64 `json:"rows,omitempty" yaml:"rows,omitempty"`
}

// CorrelationConfig holds the (T·J)×(T·J) latent correlation as a full
// matrix (inline or file) or as an occasion-level structure expanded with
// the identity over categories.
type CorrelationConfig struct {
	Matrix   [][]float64     `json:"matrix,omitempty" yaml:"matrix,omitempty"`
	File     string          `json:"file,omitempty" yaml:"file,omitempty"`
	Occasion *OccasionConfig `json:"occasion,omitempty" yaml:"occasion,omitempty"`
}

// OccasionConfig describes a T×T occasion correlation; exactly one field is set.
type OccasionConfig struct {
	Exchangeable *float64    `json:"exchangeable,omitempty" yaml:"exchangeable,omitempty"`
	AR1          *float64    `json:"ar1,omitempty" yaml:"ar1,omitempty"`
	Matrix       [][]float64 `json:"matrix,omitempty" yaml:"matrix,omitempty"`
}

// OutputConfig controls where results are written.
type OutputConfig struct {
	// Table is the long-format CSV path; "-" writes to stdout.
	Table string `json:"table" yaml:"table"`

	// Latent is an optional CSV path for the latent matrix.
	Latent string `json:"latent,omitempty" yaml:"latent,omitempty"`

	// Format is csv or tsv.
	Format string `json:"format" yaml:"format"`

	// Precision is the number of decimals for floats; -1 round-trips.
	Precision int `json:"precision" yaml:"precision"`
}

// LoggingConfig controls CLI logging.
type LoggingConfig struct {
	// Level: debug, info, warn or error.
	Level string `json:"level" yaml:"level"`
}

// Default returns a SimConfig with defaults for every optional field.
// Subjects, ClusterSize, Categories, Coefficients and Correlation have no
// defaults.
func Default() *SimConfig {
	return &SimConfig{
		Margin:  norta.DefaultMargin.String(),
		Workers: norta.DefaultWorkers,
		Output: OutputConfig{
			Table:     "-",
			Format:    string(csvio.DialectStandard),
			Precision: -1,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads path (if non-empty) over the defaults and applies environment
// overrides.
func Load(path string) (*SimConfig, error) {
	config := Default()
	if path != "" {
		fileConfig, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		config = fileConfig
	}
	applyEnvOverrides(config)

	return config, nil
}

// LoadFromFile parses a YAML file over Default(). Unknown keys are rejected.
func LoadFromFile(path string) (*SimConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	defer f.Close()

	config := Default()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(config); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return config, nil
}

// Validate checks field ranges and that exactly one source is given where
// the sections are alternatives. Numeric checks on the matrices themselves
// are left to the simulator.
func (c *SimConfig) Validate() error {
	if c.Subjects < 1 {
		return fmt.Errorf("%w: subjects must be positive, got %d", ErrInvalid, c.Subjects)
	}
	if c.ClusterSize < 1 {
		return fmt.Errorf("%w: clsize must be positive, got %d", ErrInvalid, c.ClusterSize)
	}
	if c.Categories < 2 {
		return fmt.Errorf("%w: ncategories must be at least 2, got %d", ErrInvalid, c.Categories)
	}
	if _, err := norta.ParseMargin(c.Margin); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalid, c.Workers)
	}

	hasShared, hasPer := len(c.Coefficients.Shared) > 0, len(c.Coefficients.PerOccasion) > 0
	if hasShared == hasPer {
		return fmt.Errorf("%w: coefficients need exactly one of shared or per_occasion", ErrInvalid)
	}
	if c.Design.File != "" && len(c.Design.Rows) > 0 {
		return fmt.Errorf("%w: design has both file and rows", ErrInvalid)
	}

	if c.LatentFile == "" {
		if err := c.Correlation.validate(); err != nil {
			return err
		}
	}

	if _, err := csvio.ParseDialect(c.Output.Format); err != nil {
		return fmt.Errorf("%w: output: %w", ErrInvalid, err)
	}
	if c.Output.Precision < -1 {
		return fmt.Errorf("%w: output precision must be >= -1, got %d", ErrInvalid, c.Output.Precision)
	}
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("%w: invalid log level: %s (valid: debug, info, warn, error)", ErrInvalid, c.Logging.Level)
	}

	return nil
}

func (c CorrelationConfig) validate() error {
	n := 0
	if len(c.Matrix) > 0 {
		n++
	}
	if c.File != "" {
		n++
	}
	if c.Occasion != nil {
		n++
		o := c.Occasion
		m := 0
		if o.Exchangeable != nil {
			m++
		}
		if o.AR1 != nil {
			m++
		}
		if len(o.Matrix) > 0 {
			m++
		}
		if m != 1 {
			return fmt.Errorf("%w: correlation.occasion needs exactly one of exchangeable, ar1 or matrix", ErrInvalid)
		}
	}
	if n != 1 {
		return fmt.Errorf("%w: correlation needs exactly one of matrix, file or occasion (or set latent_file)", ErrInvalid)
	}

	return nil
}

func applyEnvOverrides(config *SimConfig) {
	if v := os.Getenv("NOMSIM_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.Seed = n
		}
	}
	if v := os.Getenv("NOMSIM_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Workers = n
		}
	}
	if v := os.Getenv("NOMSIM_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
}
