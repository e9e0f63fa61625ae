package config

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/katalvlaran/nomsim/bcl"
	"github.com/katalvlaran/nomsim/csvio"
	"github.com/katalvlaran/nomsim/linpred"
	"github.com/katalvlaran/nomsim/matrix"
	"github.com/katalvlaran/nomsim/norta"
)

// Params turns a validated config into simulator inputs. Relative file
// paths are resolved against baseDir (usually the config file's directory).
func (c *SimConfig) Params(baseDir string) (bcl.Params, error) {
	p := bcl.Params{
		Subjects:    c.Subjects,
		ClusterSize: c.ClusterSize,
		Categories:  c.Categories,
	}
	if len(c.Coefficients.PerOccasion) > 0 {
		p.Coefficients = linpred.PerOccasion(c.Coefficients.PerOccasion)
	} else {
		p.Coefficients = linpred.Shared(c.Coefficients.Shared)
	}

	var err error
	switch {
	case c.Design.File != "":
		if p.Design, err = csvio.ReadMatrixFile(resolve(baseDir, c.Design.File), nil); err != nil {
			return bcl.Params{}, fmt.Errorf("design: %w", err)
		}
	case len(c.Design.Rows) > 0:
		if p.Design, err = matrix.NewDenseFromRows(c.Design.Rows); err != nil {
			return bcl.Params{}, fmt.Errorf("design: %w", err)
		}
	}

	if c.LatentFile != "" {
		if p.Latent, err = csvio.ReadMatrixFile(resolve(baseDir, c.LatentFile), nil); err != nil {
			return bcl.Params{}, fmt.Errorf("latent: %w", err)
		}
		return p, nil
	}
	if p.Correlation, err = c.Correlation.build(baseDir, c.ClusterSize, c.Categories); err != nil {
		return bcl.Params{}, fmt.Errorf("correlation: %w", err)
	}

	return p, nil
}

// Options returns the simulator options the config selects.
func (c *SimConfig) Options(logger *slog.Logger) ([]bcl.Option, error) {
	margin, err := norta.ParseMargin(c.Margin)
	if err != nil {
		return nil, err
	}
	workers := max(c.Workers, 1)

	return []bcl.Option{
		bcl.WithSeed(c.Seed),
		bcl.WithMargin(margin),
		bcl.WithWorkers(workers),
		bcl.WithLogger(logger),
	}, nil
}

// CSV returns the output CSV settings.
func (c *SimConfig) CSV() (*csvio.Config, error) {
	dialect, err := csvio.ParseDialect(c.Output.Format)
	if err != nil {
		return nil, err
	}
	cfg := csvio.DefaultConfig()
	cfg.Dialect = dialect
	cfg.Precision = c.Output.Precision

	return cfg, nil
}

func (c CorrelationConfig) build(baseDir string, clsize, categories int) (*matrix.Dense, error) {
	switch {
	case len(c.Matrix) > 0:
		return matrix.NewDenseFromRows(c.Matrix)
	case c.File != "":
		return csvio.ReadMatrixFile(resolve(baseDir, c.File), nil)
	case c.Occasion != nil:
		occ, err := c.Occasion.build(clsize)
		if err != nil {
			return nil, err
		}
		return norta.KroneckerIdentity(occ, categories)
	default:
		return nil, bcl.ErrInvalidCorrelationMatrix
	}
}

func (o *OccasionConfig) build(clsize int) (*matrix.Dense, error) {
	switch {
	case o.Exchangeable != nil:
		return norta.Exchangeable(clsize, *o.Exchangeable)
	case o.AR1 != nil:
		return norta.AR1(clsize, *o.AR1)
	default:
		return matrix.NewDenseFromRows(o.Matrix)
	}
}

func resolve(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) || baseDir == "" {
		return path
	}

	return filepath.Join(baseDir, path)
}
