package diagnostics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Fit is the outcome of a Pearson chi-square test.
type Fit struct {
	Statistic float64
	DF        int
	PValue    float64
}

// GoodnessOfFit runs Pearson's chi-square test of observed counts against
// expected counts. Categories with zero expectation are dropped; the test
// has (kept categories − 1) degrees of freedom.
//
// Errors:
//   - ErrLengthMismatch for different lengths; ErrEmpty when fewer than two
//     categories have positive expectation.
func GoodnessOfFit(observed, expected []float64) (Fit, error) {
	if len(observed) != len(expected) {
		return Fit{}, fmt.Errorf("%w: %d observed vs %d expected", ErrLengthMismatch, len(observed), len(expected))
	}
	obs := make([]float64, 0, len(observed))
	exp := make([]float64, 0, len(expected))
	for j := range expected {
		if expected[j] > 0 {
			obs = append(obs, observed[j])
			exp = append(exp, expected[j])
		}
	}
	if len(exp) < 2 {
		return Fit{}, ErrEmpty
	}

	x2 := stat.ChiSquare(obs, exp)
	df := len(exp) - 1

	return Fit{Statistic: x2, DF: df, PValue: distuv.ChiSquared{K: float64(df)}.Survival(x2)}, nil
}

// Contingency cross-tabulates labels at occasions s and t (0-based):
// table[a][b] counts subjects answering a+1 at s and b+1 at t.
func Contingency(responses [][]int, s, t, categories int) ([][]float64, error) {
	if len(responses) == 0 {
		return nil, ErrEmpty
	}
	if categories < 1 {
		return nil, fmt.Errorf("%w: categories=%d", ErrLengthMismatch, categories)
	}
	table := make([][]float64, categories)
	for a := range table {
		table[a] = make([]float64, categories)
	}
	for i, row := range responses {
		if s < 0 || t < 0 || s >= len(row) || t >= len(row) {
			return nil, fmt.Errorf("%w: subject %d has %d occasions", ErrLengthMismatch, i+1, len(row))
		}
		a, b := row[s], row[t]
		if a < 1 || a > categories || b < 1 || b > categories {
			return nil, fmt.Errorf("%w: subject %d labels (%d,%d) outside 1..%d", ErrLengthMismatch, i+1, a, b, categories)
		}
		table[a-1][b-1]++
	}

	return table, nil
}

// CramersV measures association between the responses at occasions s and t:
// V = √(χ² / (n·(k−1))), k = min(non-empty rows, non-empty columns).
// V is 0 under independence and 1 under a perfect one-to-one relation.
// A table with a single non-empty row or column has V = 0.
func CramersV(responses [][]int, s, t, categories int) (float64, error) {
	table, err := Contingency(responses, s, t, categories)
	if err != nil {
		return 0, err
	}

	rows := make([]float64, categories)
	cols := make([]float64, categories)
	var n float64
	for a := range table {
		for b, v := range table[a] {
			rows[a] += v
			cols[b] += v
			n += v
		}
	}

	var obs, exp []float64
	var kr, kc int
	for a := range rows {
		if rows[a] > 0 {
			kr++
		}
		if cols[a] > 0 {
			kc++
		}
	}
	k := min(kr, kc)
	if k < 2 {
		return 0, nil
	}
	for a := range table {
		for b := range table[a] {
			e := rows[a] * cols[b] / n
			if e > 0 {
				obs = append(obs, table[a][b])
				exp = append(exp, e)
			}
		}
	}

	return math.Sqrt(stat.ChiSquare(obs, exp) / (n * float64(k-1))), nil
}
