package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/nomsim/matrix"
)

// ReadMatrix parses a numeric matrix, one CSV record per row.
// Lines starting with '#' are comments. A first record that does not parse
// as numbers is taken as a header and skipped. Every row must have the same
// number of fields.
//
// Errors:
//   - ErrNoData for an empty input.
//   - matrix.ErrDimensionMismatch for ragged rows.
//   - a parse error naming line and column for a non-numeric cell.
func ReadMatrix(r io.Reader, cfg *Config) (*matrix.Dense, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cr := csv.NewReader(r)
	cr.Comma = cfg.comma()
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var (
		rows  [][]float64
		first = true
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csvio: %w", err)
		}
		line, _ := cr.FieldPos(0)
		row, perr := parseRow(rec, line)
		if perr != nil {
			if first {
				first = false
				continue
			}
			return nil, perr
		}
		first = false
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, ErrNoData
	}

	m, err := matrix.NewDenseFromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("csvio: %w", err)
	}

	return m, nil
}

// ReadMatrixFile opens path and calls ReadMatrix. A ".tsv" suffix selects
// DialectTSV when cfg is nil.
func ReadMatrixFile(path string, cfg *Config) (*matrix.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csvio: %w", err)
	}
	defer f.Close()

	if cfg == nil {
		cfg = DefaultConfig()
		if strings.HasSuffix(strings.ToLower(path), ".tsv") {
			cfg.Dialect = DialectTSV
		}
	}
	m, err := ReadMatrix(f, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

func parseRow(rec []string, line int) ([]float64, error) {
	row := make([]float64, len(rec))
	for k, field := range rec {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, fmt.Errorf("csvio: line %d column %d: %w", line, k+1, err)
		}
		row[k] = v
	}

	return row, nil
}
