package linpred

import (
	"errors"
	"fmt"
)

// ErrDimensionMismatch is returned when the coefficient shape does not match
// the covariate count, occasion count or category count, or when the design
// matrix has neither R·T nor R rows.
var ErrDimensionMismatch = errors.New("linpred: dimension mismatch")

// ErrNoCoefficients is returned when Build receives a zero Coefficients value.
var ErrNoCoefficients = errors.New("linpred: coefficients not set")

// Form tags which coefficient shape a Coefficients value carries.
type Form int

const (
	// FormUnset is the zero value; Build rejects it.
	FormUnset Form = iota

	// FormShared applies one coefficient row to every occasion.
	FormShared

	// FormPerOccasion holds one coefficient row per occasion.
	FormPerOccasion
)

// String returns the form name used in error messages and logs.
func (f Form) String() string {
	switch f {
	case FormShared:
		return "shared"
	case FormPerOccasion:
		return "per-occasion"
	default:
		return "unset"
	}
}

// Coefficients is a closed variant over the two supported coefficient shapes.
// Construct it with Shared or PerOccasion; the zero value is invalid.
type Coefficients struct {
	form Form
	rows [][]float64
}

// Shared returns coefficients applied identically at every occasion.
// The slice is copied.
func Shared(row []float64) Coefficients {
	return Coefficients{form: FormShared, rows: [][]float64{append([]float64(nil), row...)}}
}

// PerOccasion returns occasion-specific coefficients, rows[t] for occasion t.
// The rows are copied.
func PerOccasion(rows [][]float64) Coefficients {
	cp := make([][]float64, len(rows))
	for t := range rows {
		cp[t] = append([]float64(nil), rows[t]...)
	}

	return Coefficients{form: FormPerOccasion, rows: cp}
}

// Form reports which shape c carries.
func (c Coefficients) Form() Form { return c.form }

// Len returns the number of stored rows (1 for Shared).
func (c Coefficients) Len() int { return len(c.rows) }

// Width is the row width required for p covariates and J categories.
func Width(covariates, categories int) int {
	return (covariates + 1) * (categories - 1)
}

// row returns the coefficient row used at occasion t.
func (c Coefficients) row(t int) []float64 {
	if c.form == FormShared {
		return c.rows[0]
	}

	return c.rows[t]
}

// check validates the shape against (p, T, J).
func (c Coefficients) check(covariates, clsize, categories int) error {
	want := Width(covariates, categories)
	switch c.form {
	case FormShared:
		if len(c.rows[0]) != want {
			return fmt.Errorf("%w: shared coefficients have %d values, want (p+1)(J-1) = %d",
				ErrDimensionMismatch, len(c.rows[0]), want)
		}
	case FormPerOccasion:
		if len(c.rows) != clsize {
			return fmt.Errorf("%w: per-occasion coefficients have %d rows, want %d",
				ErrDimensionMismatch, len(c.rows), clsize)
		}
		for t, r := range c.rows {
			if len(r) != want {
				return fmt.Errorf("%w: occasion %d has %d coefficients, want (p+1)(J-1) = %d",
					ErrDimensionMismatch, t+1, len(r), want)
			}
		}
	default:
		return ErrNoCoefficients
	}

	return nil
}
