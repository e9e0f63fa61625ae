package bcl

import (
	"io"
	"log/slog"
	"math"
	"math/rand"

	"github.com/katalvlaran/nomsim/matrix"
	"github.com/katalvlaran/nomsim/norta"
)

const (
	panicRandNil        = "bcl: WithRand: nil *rand.Rand"
	panicWorkersInvalid = "bcl: WithWorkers: n must be >= 1"
	panicEpsilonInvalid = "bcl: WithEpsilon: eps must be finite, non-negative"
	panicMarginInvalid  = "bcl: WithMargin: unknown margin"
)

// Option configures Simulate.
type Option func(*options)

type options struct {
	seed    int64
	rng     *rand.Rand
	margin  norta.Margin
	eps     float64
	workers int
	logger  *slog.Logger
}

func gatherOptions(user ...Option) options {
	o := options{
		margin:  norta.DefaultMargin,
		eps:     matrix.DefaultEpsilon,
		workers: norta.DefaultWorkers,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, set := range user {
		set(&o)
	}

	return o
}

// WithSeed seeds the internal generator; 0 selects the package default.
// Ignored when WithRand is also given.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed }
}

// WithRand draws from r instead of a freshly seeded generator. r advances by
// exactly R·T·J normal draws on success and is untouched on a validation error.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic(panicRandNil)
	}

	return func(o *options) { o.rng = r }
}

// WithMargin replaces the Gumbel latent margin. Responses then follow a
// different random-utility model (e.g. multinomial probit for Normal), not
// the baseline-category logit.
func WithMargin(m norta.Margin) Option {
	if m < norta.Gumbel || m > norta.Normal {
		panic(panicMarginInvalid)
	}

	return func(o *options) { o.margin = m }
}

// WithEpsilon sets the tolerance for the symmetry, unit-diagonal and
// identity-block checks on Σ.
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *options) { o.eps = eps }
}

// WithWorkers runs the latent margin transform on n goroutines. The output
// is identical for every n.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkersInvalid)
	}

	return func(o *options) { o.workers = n }
}

// WithLogger receives debug records for each stage. nil restores the
// silent default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = slog.New(slog.NewTextHandler(io.Discard, nil))
		}
		o.logger = l
	}
}
