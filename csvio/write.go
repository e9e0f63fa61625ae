package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/katalvlaran/nomsim/bcl"
	"github.com/katalvlaran/nomsim/matrix"
)

// TableWriter writes long-format records: subject, occasion, response,
// then one column per covariate (x1..xp).
type TableWriter struct {
	config      *Config
	writer      *csv.Writer
	covariates  int
	headerDone  bool
	rowsWritten int
}

// NewTableWriter creates a TableWriter for records with p covariates.
// If config is nil, DefaultConfig() is used.
func NewTableWriter(w io.Writer, config *Config, covariates int) *TableWriter {
	if config == nil {
		config = DefaultConfig()
	}
	cw := csv.NewWriter(w)
	cw.Comma = config.comma()

	return &TableWriter{config: config, writer: cw, covariates: covariates}
}

// WriteHeader writes the header row once.
func (tw *TableWriter) WriteHeader() error {
	if tw.headerDone {
		return nil
	}
	header := make([]string, 0, 3+tw.covariates)
	header = append(header, "subject", "occasion", "response")
	for k := 1; k <= tw.covariates; k++ {
		header = append(header, "x"+strconv.Itoa(k))
	}
	if err := tw.writer.Write(header); err != nil {
		return fmt.Errorf("csvio: write header: %w", err)
	}
	tw.headerDone = true

	return nil
}

// Write writes one record, preceded by the header on the first call when
// IncludeHeader is set.
func (tw *TableWriter) Write(r bcl.Record) error {
	if tw.config.IncludeHeader && !tw.headerDone {
		if err := tw.WriteHeader(); err != nil {
			return err
		}
	}
	if len(r.Covariates) != tw.covariates {
		return fmt.Errorf("csvio: record (%d,%d) has %d covariates, want %d: %w",
			r.Subject, r.Occasion, len(r.Covariates), tw.covariates, matrix.ErrDimensionMismatch)
	}

	row := make([]string, 0, 3+tw.covariates)
	row = append(row, strconv.Itoa(r.Subject), strconv.Itoa(r.Occasion), strconv.Itoa(r.Response))
	for _, v := range r.Covariates {
		row = append(row, tw.config.formatFloat(v))
	}
	if err := tw.writer.Write(row); err != nil {
		return fmt.Errorf("csvio: write row: %w", err)
	}
	tw.rowsWritten++

	return nil
}

// WriteAll writes every record.
func (tw *TableWriter) WriteAll(records []bcl.Record) error {
	for _, r := range records {
		if err := tw.Write(r); err != nil {
			return err
		}
	}

	return nil
}

// Flush flushes buffered data to the underlying writer.
func (tw *TableWriter) Flush() error {
	tw.writer.Flush()
	if err := tw.writer.Error(); err != nil {
		return fmt.Errorf("csvio: flush: %w", err)
	}

	return nil
}

// RowsWritten returns the number of data rows written (excluding header).
func (tw *TableWriter) RowsWritten() int { return tw.rowsWritten }

// WriteTable writes records with a TableWriter and flushes. p is taken from
// the first record.
func WriteTable(w io.Writer, records []bcl.Record, config *Config) error {
	p := 0
	if len(records) > 0 {
		p = len(records[0].Covariates)
	}
	tw := NewTableWriter(w, config, p)
	if err := tw.WriteAll(records); err != nil {
		return err
	}

	return tw.Flush()
}

// WriteLatent writes an R×(T·J) latent matrix, one subject per row. The
// header names columns e_t<occasion>_c<category>, both 1-based.
func WriteLatent(w io.Writer, latent matrix.Matrix, clsize, categories int, config *Config) error {
	if config == nil {
		config = DefaultConfig()
	}
	if err := matrix.ValidateNotNil(latent); err != nil {
		return fmt.Errorf("csvio: latent: %w", err)
	}
	if clsize < 1 || categories < 1 || latent.Cols() != clsize*categories {
		return fmt.Errorf("csvio: latent has %d columns for T=%d J=%d: %w",
			latent.Cols(), clsize, categories, matrix.ErrDimensionMismatch)
	}
	cw := csv.NewWriter(w)
	cw.Comma = config.comma()

	n := latent.Cols()
	row := make([]string, n)
	var i, k int
	if config.IncludeHeader {
		for k = 0; k < n; k++ {
			row[k] = fmt.Sprintf("e_t%d_c%d", k/categories+1, k%categories+1)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("csvio: write header: %w", err)
		}
	}
	var v float64
	var err error
	for i = 0; i < latent.Rows(); i++ {
		for k = 0; k < n; k++ {
			if v, err = latent.At(i, k); err != nil {
				return fmt.Errorf("csvio: latent: %w", err)
			}
			row[k] = config.formatFloat(v)
		}
		if err = cw.Write(row); err != nil {
			return fmt.Errorf("csvio: write row: %w", err)
		}
	}
	cw.Flush()
	if err = cw.Error(); err != nil {
		return fmt.Errorf("csvio: flush: %w", err)
	}

	return nil
}
