package bcl

import (
	"fmt"

	"github.com/katalvlaran/nomsim/linpred"
	"github.com/katalvlaran/nomsim/matrix"
)

// Record is one row of the long-format table: a single subject-occasion
// observation. Subject and Occasion are 1-based.
type Record struct {
	Subject    int
	Occasion   int
	Response   int
	Covariates []float64
}

// Compose reshapes an R×T response matrix into R·T records in subject-major,
// occasion-minor order, attaching each observation's design row. A nil
// design yields records without covariates.
//
// Errors:
//   - ErrDimensionMismatch when the design has neither R·T nor R rows or a
//     response row does not have T entries.
func Compose(responses [][]int, design matrix.Matrix, clsize int) ([]Record, error) {
	subjects := len(responses)
	layout, err := linpred.ResolveLayout(design, subjects, clsize)
	if err != nil {
		return nil, err
	}

	table := make([]Record, 0, subjects*clsize)
	var i, t, k int
	var v float64
	for i = 0; i < subjects; i++ {
		if len(responses[i]) != clsize {
			return nil, fmt.Errorf("%w: subject %d has %d responses, want %d",
				ErrDimensionMismatch, i+1, len(responses[i]), clsize)
		}
		for t = 0; t < clsize; t++ {
			rec := Record{Subject: i + 1, Occasion: t + 1, Response: responses[i][t]}
			if layout.Covariates > 0 {
				rec.Covariates = make([]float64, layout.Covariates)
				for k = 0; k < layout.Covariates; k++ {
					if v, err = design.At(layout.Row(i, t), k); err != nil {
						return nil, fmt.Errorf("bcl: compose: %w", err)
					}
					rec.Covariates[k] = v
				}
			}
			table = append(table, rec)
		}
	}

	return table, nil
}
