package csvio_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/nomsim/bcl"
	"github.com/katalvlaran/nomsim/csvio"
	"github.com/katalvlaran/nomsim/matrix"
)

func at(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

func TestReadMatrix(t *testing.T) {
	in := "# design\nx1,x2\n1, 2.5\n-3,4e-1\n"
	m, err := csvio.ReadMatrix(strings.NewReader(in), nil)
	require.NoError(t, err)
	require.Equal(t, 2, m.Rows())
	require.Equal(t, 2, m.Cols())
	assert.Equal(t, 2.5, at(t, m, 0, 1))
	assert.Equal(t, 0.4, at(t, m, 1, 1))
}

func TestReadMatrix_NoHeaderTSV(t *testing.T) {
	cfg := csvio.DefaultConfig()
	cfg.Dialect = csvio.DialectTSV
	m, err := csvio.ReadMatrix(strings.NewReader("1\t0\n0\t1\n"), cfg)
	require.NoError(t, err)
	assert.Equal(t, 1.0, at(t, m, 1, 1))
}

func TestReadMatrix_Errors(t *testing.T) {
	_, err := csvio.ReadMatrix(strings.NewReader("a,b\n"), nil)
	require.ErrorIs(t, err, csvio.ErrNoData)

	_, err = csvio.ReadMatrix(strings.NewReader("1,2\n3\n"), nil)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = csvio.ReadMatrix(strings.NewReader("1,2\n3,x\n"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2 column 2")

	_, err = csvio.ReadMatrix(strings.NewReader("1,NaN\n"), nil)
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

func TestReadMatrixFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sigma.tsv")
	require.NoError(t, os.WriteFile(path, []byte("1\t0.5\n0.5\t1\n"), 0o600))

	m, err := csvio.ReadMatrixFile(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.5, at(t, m, 0, 1))

	_, err = csvio.ReadMatrixFile(filepath.Join(dir, "missing.csv"), nil)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteTable(t *testing.T) {
	records := []bcl.Record{
		{Subject: 1, Occasion: 1, Response: 2, Covariates: []float64{0.5, -1}},
		{Subject: 1, Occasion: 2, Response: 3, Covariates: []float64{0.25, 2}},
	}
	var buf bytes.Buffer
	require.NoError(t, csvio.WriteTable(&buf, records, nil))
	assert.Equal(t,
		"subject,occasion,response,x1,x2\n1,1,2,0.5,-1\n1,2,3,0.25,2\n",
		buf.String())
}

func TestTableWriter_PrecisionAndMismatch(t *testing.T) {
	cfg := &csvio.Config{Dialect: csvio.DialectTSV, IncludeHeader: false, Precision: 2}
	var buf bytes.Buffer
	tw := csvio.NewTableWriter(&buf, cfg, 1)
	require.NoError(t, tw.Write(bcl.Record{Subject: 3, Occasion: 1, Response: 1, Covariates: []float64{1.0 / 3}}))
	err := tw.Write(bcl.Record{Subject: 3, Occasion: 2, Response: 1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	require.NoError(t, tw.Flush())

	assert.Equal(t, "3\t1\t1\t0.33\n", buf.String())
	assert.Equal(t, 1, tw.RowsWritten())
}

func TestWriteLatent_RoundTrip(t *testing.T) {
	latent, err := matrix.NewDenseFrom(2, 4, []float64{0.1, -2, 3.5, 1e-7, 0, 1, 2, 3})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, csvio.WriteLatent(&buf, latent, 2, 2, nil))
	first, _, _ := strings.Cut(buf.String(), "\n")
	assert.Equal(t, "e_t1_c1,e_t1_c2,e_t2_c1,e_t2_c2", first)

	back, err := csvio.ReadMatrix(&buf, nil)
	require.NoError(t, err)
	assert.Equal(t, latent.String(), back.String())

	err = csvio.WriteLatent(&buf, latent, 3, 2, nil)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestParseDialect(t *testing.T) {
	d, err := csvio.ParseDialect("")
	require.NoError(t, err)
	assert.Equal(t, csvio.DialectStandard, d)
	d, err = csvio.ParseDialect("tsv")
	require.NoError(t, err)
	assert.Equal(t, csvio.DialectTSV, d)
	_, err = csvio.ParseDialect("xlsx")
	require.Error(t, err)
}
