package norta

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/katalvlaran/nomsim/matrix"
)

// Generator draws NORTA latent matrices for a fixed Σ, T and J.
// It is immutable after construction and may be shared; each Generate call
// needs its own *rand.Rand.
type Generator struct {
	clsize     int
	categories int
	margin     Margin
	workers    int
	method     FactorMethod
	lower      *matrix.Dense // L, L·Lᵀ = Σ
	lowerT     *matrix.Dense // Lᵀ, right operand of Z·Lᵀ
}

// NewGenerator validates sigma and factors it.
//
// Errors:
//   - matrix.ErrInvalidDimensions for clsize < 1 or categories < 2.
//   - ErrInvalidCorrelationMatrix, ErrChoiceIndependence (see ValidateCorrelation).
func NewGenerator(sigma matrix.Matrix, clsize, categories int, opts ...Option) (*Generator, error) {
	if clsize < 1 || categories < 2 {
		return nil, fmt.Errorf("norta: T=%d J=%d: %w", clsize, categories, matrix.ErrInvalidDimensions)
	}
	o := gatherOptions(opts...)
	if err := ValidateCorrelation(sigma, clsize, categories, o.eps, o.psdTol); err != nil {
		return nil, err
	}
	lower, method, err := Factor(sigma)
	if err != nil {
		return nil, invalid(err)
	}
	lowerT, err := matrix.Transpose(lower)
	if err != nil {
		return nil, invalid(err)
	}

	return &Generator{
		clsize:     clsize,
		categories: categories,
		margin:     o.margin,
		workers:    o.workers,
		method:     method,
		lower:      lower,
		lowerT:     lowerT,
	}, nil
}

// Margin returns the target margin.
func (g *Generator) Margin() Margin { return g.margin }

// Method reports how Σ was factored.
func (g *Generator) Method() FactorMethod { return g.method }

// Lower returns a copy of the factor L.
func (g *Generator) Lower() *matrix.Dense { return g.lower.Clone().(*matrix.Dense) }

// Generate draws an R × (T·J) latent matrix.
// MAIN DESCRIPTION:
//   - Z is filled cell by cell in subject → occasion → category order from
//     rng.NormFloat64; Zc = Z·Lᵀ; each cell becomes Margin.Transform(Zc).
//
// Behavior highlights:
//   - rng==nil uses NewRand(0).
//   - Exactly R·T·J normal draws are consumed from rng.
//
// Errors:
//   - matrix.ErrInvalidDimensions for subjects < 1.
//
// Complexity:
//   - Time O(R·(T·J)²), Space O(R·T·J).
func (g *Generator) Generate(rng *rand.Rand, subjects int) (*matrix.Dense, error) {
	if subjects < 1 {
		return nil, fmt.Errorf("norta: R=%d: %w", subjects, matrix.ErrInvalidDimensions)
	}
	if rng == nil {
		rng = NewRand(0)
	}
	n := g.clsize * g.categories

	z := make([]float64, subjects*n)
	var k int
	for k = range z {
		z[k] = rng.NormFloat64()
	}
	Z, err := matrix.NewDenseFrom(subjects, n, z)
	if err != nil {
		return nil, fmt.Errorf("norta: %w", err)
	}
	latent, err := matrix.Mul(Z, g.lowerT)
	if err != nil {
		return nil, fmt.Errorf("norta: %w", err)
	}
	if err = g.transform(latent); err != nil {
		return nil, fmt.Errorf("norta: margin %s: %w", g.margin, err)
	}

	return latent, nil
}

// transform applies the margin in place, striped over g.workers goroutines.
func (g *Generator) transform(m *matrix.Dense) error {
	f := func(_, _ int, v float64) float64 { return g.margin.Transform(v) }
	rows := m.Rows()
	workers := min(g.workers, rows)
	if workers <= 1 {
		return m.Apply(f)
	}

	stripe := (rows + workers - 1) / workers
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		r0 := w * stripe
		r1 := min(r0+stripe, rows)
		if r0 >= r1 {
			break
		}
		wg.Add(1)
		go func(w, r0, r1 int) {
			defer wg.Done()
			errs[w] = m.ApplyRows(r0, r1, f)
		}(w, r0, r1)
	}
	wg.Wait()

	return errors.Join(errs...)
}
