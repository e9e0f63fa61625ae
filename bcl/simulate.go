package bcl

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/nomsim/linpred"
	"github.com/katalvlaran/nomsim/matrix"
	"github.com/katalvlaran/nomsim/norta"
	"github.com/katalvlaran/nomsim/rum"
)

// Params holds the model inputs of one simulation.
type Params struct {
	// Subjects is R, the number of clusters.
	Subjects int

	// ClusterSize is T, the number of occasions per subject.
	ClusterSize int

	// Categories is J, the number of response categories. Category J is the
	// baseline with η = 0.
	Categories int

	// Coefficients hold (p+1)(J-1) values per row: for each non-baseline
	// category an intercept followed by p slopes.
	Coefficients linpred.Coefficients

	// Design is the p-column covariate matrix with R·T rows (row i*T+t) or
	// R rows (time-invariant). nil means no covariates.
	Design matrix.Matrix

	// Correlation is the (T·J)×(T·J) latent correlation Σ. Ignored when
	// Latent is set.
	Correlation matrix.Matrix

	// Latent, when set, is used as the R×(T·J) latent noise as is.
	Latent matrix.Matrix
}

// Result is the output of Simulate.
type Result struct {
	// Responses[i][t] ∈ 1..J.
	Responses [][]int

	// Table has one Record per subject-occasion, subject-major.
	Table []Record

	// Latent is the R×(T·J) noise that produced Responses (generated, or a
	// copy of Params.Latent).
	Latent *matrix.Dense

	// Eta is the R×(T·J) linear-predictor matrix.
	Eta *matrix.Dense

	// Factor reports how Σ was factored; meaningless when Params.Latent was
	// supplied.
	Factor norta.FactorMethod
}

// Simulate draws one data set of clustered nominal responses.
//
// Implementation:
//   - Stage 1: validate R, T, J.
//   - Stage 2: build η; this also validates coefficients and design.
//   - Stage 3: validate the supplied latent matrix, or validate and factor Σ.
//   - Stage 4: draw latent noise (only now is the generator touched).
//   - Stage 5: utility maximization and composition.
//
// Errors:
//   - ErrInvalidSampleSize, ErrInvalidClusterSize, ErrInvalidCategoryCount,
//     ErrDimensionMismatch, ErrLatentDimensionMismatch,
//     ErrInvalidCorrelationMatrix (also when neither Σ nor Latent is given),
//     ErrChoiceIndependence. No partial result is returned.
//   - matrix.ErrNaNInf when a supplied Latent holds a NaN or ±Inf entry.
//     Only foreign Matrix implementations can carry one; *matrix.Dense
//     rejects non-finite values on construction.
//
// Complexity:
//   - Time O(R·(T·J)² + R·T·J·p) plus O((T·J)³) to factor Σ.
func Simulate(p Params, opts ...Option) (*Result, error) {
	o := gatherOptions(opts...)
	log := o.logger.With(
		slog.Int("subjects", p.Subjects),
		slog.Int("clsize", p.ClusterSize),
		slog.Int("categories", p.Categories),
	)

	if err := validateCounts(p); err != nil {
		return nil, err
	}

	eta, err := linpred.Build(p.Design, p.Coefficients, p.Subjects, p.ClusterSize, p.Categories)
	if err != nil {
		if errors.Is(err, linpred.ErrNoCoefficients) {
			return nil, fmt.Errorf("bcl: %w: %w", ErrDimensionMismatch, err)
		}
		return nil, fmt.Errorf("bcl: %w", err)
	}
	log.Debug("linear predictor built")

	res := &Result{Eta: eta}
	if p.Latent != nil {
		if err = norta.CheckLatent(p.Latent, p.Subjects, p.ClusterSize, p.Categories); err != nil {
			return nil, fmt.Errorf("bcl: %w", err)
		}
		if res.Latent, err = matrix.DenseOf(p.Latent); err != nil {
			return nil, fmt.Errorf("bcl: %w", err)
		}
		log.Debug("using supplied latent matrix")
	} else {
		if p.Correlation == nil {
			return nil, fmt.Errorf("bcl: %w: neither correlation nor latent matrix given", ErrInvalidCorrelationMatrix)
		}
		gen, err := norta.NewGenerator(p.Correlation, p.ClusterSize, p.Categories,
			norta.WithMargin(o.margin),
			norta.WithEpsilon(o.eps),
			norta.WithWorkers(o.workers),
		)
		if err != nil {
			return nil, fmt.Errorf("bcl: %w", err)
		}
		rng := o.rng
		if rng == nil {
			rng = norta.NewRand(o.seed)
		}
		if res.Latent, err = gen.Generate(rng, p.Subjects); err != nil {
			return nil, fmt.Errorf("bcl: %w", err)
		}
		res.Factor = gen.Method()
		log.Debug("latent generated",
			slog.String("margin", gen.Margin().String()),
			slog.String("factor", res.Factor.String()),
			slog.Int("workers", o.workers),
		)
	}

	if res.Responses, err = rum.Assign(eta, res.Latent, p.ClusterSize, p.Categories); err != nil {
		return nil, fmt.Errorf("bcl: %w", err)
	}
	if res.Table, err = Compose(res.Responses, p.Design, p.ClusterSize); err != nil {
		return nil, fmt.Errorf("bcl: %w", err)
	}
	log.Debug("responses assigned", slog.Int("records", len(res.Table)))

	return res, nil
}

func validateCounts(p Params) error {
	switch {
	case p.Subjects < 1:
		return fmt.Errorf("%w: R=%d", ErrInvalidSampleSize, p.Subjects)
	case p.ClusterSize < 1:
		return fmt.Errorf("%w: T=%d", ErrInvalidClusterSize, p.ClusterSize)
	case p.Categories < 2:
		return fmt.Errorf("%w: J=%d", ErrInvalidCategoryCount, p.Categories)
	}

	return nil
}
