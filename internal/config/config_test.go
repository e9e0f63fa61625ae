package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/nomsim/bcl"
	"github.com/katalvlaran/nomsim/csvio"
	"github.com/katalvlaran/nomsim/linpred"
	"github.com/katalvlaran/nomsim/norta"
)

const sampleYAML = `
subjects: 50
clsize: 2
ncategories: 3
seed: 7
coefficients:
  shared: [0.5, 1.0, -0.2, 0.3]
design:
  file: x.csv
correlation:
  occasion:
    exchangeable: 0.4
output:
  table: out.csv
  latent: latent.csv
  format: tsv
  precision: 4
logging:
  level: debug
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func validConfig() *SimConfig {
	c := Default()
	c.Subjects, c.ClusterSize, c.Categories = 10, 2, 2
	c.Coefficients.Shared = []float64{0}
	c.Correlation.Matrix = [][]float64{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}

	return c
}

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, "gumbel", c.Margin)
	assert.Equal(t, 1, c.Workers)
	assert.Equal(t, "-", c.Output.Table)
	assert.Equal(t, "standard", c.Output.Format)
	assert.Equal(t, -1, c.Output.Precision)
	assert.Equal(t, "info", c.Logging.Level)
	assert.Zero(t, c.Subjects)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "sim.yaml", sampleYAML)

	c, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 50, c.Subjects)
	assert.Equal(t, 2, c.ClusterSize)
	assert.Equal(t, 3, c.Categories)
	assert.Equal(t, int64(7), c.Seed)
	assert.Equal(t, []float64{0.5, 1.0, -0.2, 0.3}, c.Coefficients.Shared)
	require.NotNil(t, c.Correlation.Occasion)
	require.NotNil(t, c.Correlation.Occasion.Exchangeable)
	assert.Equal(t, 0.4, *c.Correlation.Occasion.Exchangeable)
	assert.Equal(t, "tsv", c.Output.Format)
	assert.Equal(t, 4, c.Output.Precision)
	// Untouched fields keep their defaults.
	assert.Equal(t, "gumbel", c.Margin)
	assert.Equal(t, 1, c.Workers)
	require.NoError(t, c.Validate())
}

func TestLoadFromFile_Errors(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadFromFile(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadFromFile(writeFile(t, dir, "typo.yaml", "subjcts: 3\n"))
	require.Error(t, err)

	_, err = LoadFromFile(writeFile(t, dir, "bad.yaml", "subjects: [1\n"))
	require.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeFile(t, t.TempDir(), "sim.yaml", sampleYAML)
	t.Setenv("NOMSIM_SEED", "123")
	t.Setenv("NOMSIM_WORKERS", "4")
	t.Setenv("NOMSIM_LOG_LEVEL", "warn")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(123), c.Seed)
	assert.Equal(t, 4, c.Workers)
	assert.Equal(t, "warn", c.Logging.Level)

	t.Setenv("NOMSIM_SEED", "not-a-number")
	c, err = Load("")
	require.NoError(t, err)
	assert.Zero(t, c.Seed)
}

func TestValidate(t *testing.T) {
	rho := 0.3
	tests := []struct {
		name string
		mut  func(c *SimConfig)
	}{
		{"subjects", func(c *SimConfig) { c.Subjects = 0 }},
		{"clsize", func(c *SimConfig) { c.ClusterSize = -1 }},
		{"ncategories", func(c *SimConfig) { c.Categories = 1 }},
		{"margin", func(c *SimConfig) { c.Margin = "weibull" }},
		{"workers", func(c *SimConfig) { c.Workers = 0 }},
		{"no coefficients", func(c *SimConfig) { c.Coefficients.Shared = nil }},
		{"both coefficients", func(c *SimConfig) { c.Coefficients.PerOccasion = [][]float64{{0}, {0}} }},
		{"both design sources", func(c *SimConfig) {
			c.Design.File = "x.csv"
			c.Design.Rows = [][]float64{{1}}
		}},
		{"two correlation sources", func(c *SimConfig) { c.Correlation.File = "s.csv" }},
		{"no correlation", func(c *SimConfig) { c.Correlation.Matrix = nil }},
		{"occasion ambiguous", func(c *SimConfig) {
			c.Correlation.Matrix = nil
			c.Correlation.Occasion = &OccasionConfig{Exchangeable: &rho, AR1: &rho}
		}},
		{"format", func(c *SimConfig) { c.Output.Format = "xlsx" }},
		{"precision", func(c *SimConfig) { c.Output.Precision = -2 }},
		{"log level", func(c *SimConfig) { c.Logging.Level = "trace" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			require.NoError(t, c.Validate())
			tt.mut(c)
			require.ErrorIs(t, c.Validate(), ErrInvalid)
		})
	}

	t.Run("latent file replaces correlation", func(t *testing.T) {
		c := validConfig()
		c.Correlation.Matrix = nil
		c.LatentFile = "latent.csv"
		require.NoError(t, c.Validate())
	})
}

func TestParams_OccasionStructureAndDesignFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "x.csv", "x\n1\n2\n3\n4\n")
	path := writeFile(t, dir, "sim.yaml", sampleYAML)
	c, err := LoadFromFile(path)
	require.NoError(t, err)
	c.Subjects = 2

	p, err := c.Params(dir)
	require.NoError(t, err)
	assert.Equal(t, linpred.FormShared, p.Coefficients.Form())
	require.NotNil(t, p.Design)
	assert.Equal(t, 4, p.Design.Rows())
	require.NotNil(t, p.Correlation)
	assert.Equal(t, 6, p.Correlation.Rows())
	v, err := p.Correlation.At(0, 3)
	require.NoError(t, err)
	assert.Equal(t, 0.4, v)
	assert.Nil(t, p.Latent)

	res, err := bcl.Simulate(p, bcl.WithSeed(c.Seed))
	require.NoError(t, err)
	assert.Len(t, res.Table, 4)
}

func TestParams_LatentFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "latent.csv", "0,1,0,0\n1,0,0,1\n")
	c := validConfig()
	c.Subjects = 2
	c.Correlation.Matrix = nil
	c.LatentFile = "latent.csv"
	require.NoError(t, c.Validate())

	p, err := c.Params(dir)
	require.NoError(t, err)
	assert.Nil(t, p.Correlation)

	res, err := bcl.Simulate(p)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{2, 1}, {1, 2}}, res.Responses)
}

func TestParams_InlineMatricesAndAR1(t *testing.T) {
	rho := 0.5
	c := validConfig()
	c.Design.Rows = [][]float64{{1}, {2}}
	c.Coefficients.Shared = []float64{0, 1}
	c.Correlation.Matrix = nil
	c.Correlation.Occasion = &OccasionConfig{AR1: &rho}
	c.Subjects = 2

	p, err := c.Params("")
	require.NoError(t, err)
	assert.Equal(t, 2, p.Design.Rows())
	v, err := p.Correlation.At(0, 2)
	require.NoError(t, err)
	assert.Equal(t, 0.5, v)

	c.Design.Rows = [][]float64{{1}, {2, 3}}
	_, err = c.Params("")
	require.Error(t, err)
}

func TestOptionsAndCSV(t *testing.T) {
	c := validConfig()
	c.Margin = "normal"
	opts, err := c.Options(nil)
	require.NoError(t, err)
	assert.Len(t, opts, 4)

	c.Output.Format = "tsv"
	c.Output.Precision = 3
	cfg, err := c.CSV()
	require.NoError(t, err)
	assert.Equal(t, csvio.DialectTSV, cfg.Dialect)
	assert.Equal(t, 3, cfg.Precision)
	assert.True(t, cfg.IncludeHeader)

	c.Margin = "bogus"
	_, err = c.Options(nil)
	require.ErrorIs(t, err, norta.ErrUnknownMargin)
}
