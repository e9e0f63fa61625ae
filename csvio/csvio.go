// Package csvio reads numeric matrices from CSV and writes simulation output
// (the long-format table and the latent matrix) as CSV.
package csvio

import (
	"errors"
	"fmt"
	"strconv"
)

// Dialect specifies the CSV format variant.
type Dialect string

const (
	// DialectStandard uses RFC 4180 comma-separated values.
	DialectStandard Dialect = "standard"

	// DialectTSV uses tab-separated values.
	DialectTSV Dialect = "tsv"
)

// ErrNoData is returned by the readers when the input holds no numeric rows.
var ErrNoData = errors.New("csvio: no numeric rows")

// Config specifies CSV read and write options.
type Config struct {
	// Dialect specifies the separator.
	// Default: DialectStandard
	Dialect Dialect

	// IncludeHeader writes column headers as the first row.
	// Default: true
	IncludeHeader bool

	// Precision is the number of decimal places for floating-point values.
	// -1 selects the shortest representation that round-trips.
	// Default: -1
	Precision int
}

// DefaultConfig returns a Config for round-trippable RFC 4180 output.
func DefaultConfig() *Config {
	return &Config{
		Dialect:       DialectStandard,
		IncludeHeader: true,
		Precision:     -1,
	}
}

// ParseDialect resolves a dialect name; "" and "csv" map to DialectStandard.
func ParseDialect(s string) (Dialect, error) {
	switch s {
	case "", "csv", string(DialectStandard):
		return DialectStandard, nil
	case string(DialectTSV):
		return DialectTSV, nil
	default:
		return "", fmt.Errorf("csvio: unknown dialect %q", s)
	}
}

func (c *Config) comma() rune {
	if c.Dialect == DialectTSV {
		return '\t'
	}

	return ','
}

func (c *Config) formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', c.Precision, 64)
}
