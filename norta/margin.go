package norta

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"
)

// Margin is the closed set of target marginal distributions for latent noise.
type Margin int

const (
	// Gumbel is the standard type-I extreme-value distribution for maxima,
	// F(x) = exp(-exp(-x)). Utilities perturbed by independent Gumbel noise
	// are maximized with multinomial-logit probabilities.
	Gumbel Margin = iota

	// Logistic is the standard logistic distribution, F(x) = 1/(1+exp(-x)).
	Logistic

	// Normal leaves the correlated normals untouched.
	Normal
)

// marginNames is indexed by Margin.
var marginNames = [...]string{
	Gumbel:   "gumbel",
	Logistic: "logistic",
	Normal:   "normal",
}

// String returns the lowercase margin name.
func (m Margin) String() string {
	if m < 0 || int(m) >= len(marginNames) {
		return fmt.Sprintf("margin(%d)", int(m))
	}

	return marginNames[m]
}

// ParseMargin resolves a margin name (case-insensitive). The empty string
// selects Gumbel.
func ParseMargin(s string) (Margin, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return Gumbel, nil
	}
	for m, n := range marginNames {
		if n == name {
			return Margin(m), nil
		}
	}

	return 0, fmt.Errorf("%w: %q (valid: gumbel, logistic, normal)", ErrUnknownMargin, s)
}

// Quantile is the inverse CDF of the margin at u ∈ (0,1).
func (m Margin) Quantile(u float64) float64 {
	switch m {
	case Logistic:
		return math.Log(u) - math.Log1p(-u)
	case Normal:
		return distuv.UnitNormal.Quantile(u)
	default:
		return -math.Log(-math.Log(u))
	}
}

// Transform maps a standard normal value z to the margin: Quantile(Φ(z)).
// The upper tail is taken as Φ(-z), which gonum evaluates through Erfc
// and keeps accurate far past the point where 1-Φ(z) rounds to zero.
func (m Margin) Transform(z float64) float64 {
	switch m {
	case Normal:
		return z
	case Logistic:
		return math.Log(distuv.UnitNormal.CDF(z)) - math.Log(distuv.UnitNormal.CDF(-z))
	default:
		// -log(-log Φ(z)); for z ≥ 0 use log Φ = log1p(-Φ(-z)).
		var nlog float64
		if z < 0 {
			nlog = -math.Log(distuv.UnitNormal.CDF(z))
		} else {
			nlog = -math.Log1p(-distuv.UnitNormal.CDF(-z))
		}
		return -math.Log(nlog)
	}
}
