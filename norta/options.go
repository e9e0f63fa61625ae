package norta

import "math"

// Defaults for a Generator.
const (
	// DefaultMargin is the margin of the baseline-category logit model.
	DefaultMargin = Gumbel

	// DefaultWorkers runs the margin transform on the calling goroutine.
	DefaultWorkers = 1
)

const (
	panicEpsilonInvalid = "norta: WithEpsilon: eps must be finite, non-negative"
	panicPSDTolInvalid  = "norta: WithPSDTolerance: tol must be finite, non-negative"
	panicWorkersInvalid = "norta: WithWorkers: n must be >= 1"
	panicMarginInvalid  = "norta: WithMargin: unknown margin"
)

// Option configures a Generator. Constructors panic only on nonsensical
// values (programmer error).
type Option func(*options)

type options struct {
	margin  Margin
	workers int
	eps     float64
	psdTol  float64
}

func defaultOptions() options {
	return options{
		margin:  DefaultMargin,
		workers: DefaultWorkers,
		eps:     1e-9,
		psdTol:  DefaultPSDTolerance,
	}
}

func gatherOptions(user ...Option) options {
	o := defaultOptions()
	for _, set := range user {
		set(&o)
	}

	return o
}

// WithMargin selects the latent margin.
func WithMargin(m Margin) Option {
	if m < Gumbel || m > Normal {
		panic(panicMarginInvalid)
	}

	return func(o *options) { o.margin = m }
}

// WithWorkers stripes the margin transform over n goroutines. Draws stay
// sequential, so the output does not depend on n.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkersInvalid)
	}

	return func(o *options) { o.workers = n }
}

// WithEpsilon sets the tolerance for symmetry, unit diagonal and
// identity-block checks.
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *options) { o.eps = eps }
}

// WithPSDTolerance sets the slack on the smallest eigenvalue.
func WithPSDTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicPSDTolInvalid)
	}

	return func(o *options) { o.psdTol = tol }
}
