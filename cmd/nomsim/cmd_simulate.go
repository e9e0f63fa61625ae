package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/nomsim/bcl"
	"github.com/katalvlaran/nomsim/csvio"
	"github.com/katalvlaran/nomsim/diagnostics"
)

// occasionCheck is the per-occasion goodness of fit reported by --check.
type occasionCheck struct {
	Occasion    int       `json:"occasion"`
	Frequencies []float64 `json:"frequencies"`
	Expected    []float64 `json:"expected"`
	ChiSquare   float64   `json:"chi_square"`
	DF          int       `json:"df"`
	PValue      float64   `json:"p_value"`
	CramersV    *float64  `json:"cramers_v_prev,omitempty"`
}

type simulateSummary struct {
	Subjects    int             `json:"subjects"`
	ClusterSize int             `json:"clsize"`
	Categories  int             `json:"ncategories"`
	Seed        int64           `json:"seed"`
	Records     int             `json:"records"`
	Factor      string          `json:"factor,omitempty"`
	Table       string          `json:"table"`
	Latent      string          `json:"latent,omitempty"`
	Checks      []occasionCheck `json:"checks,omitempty"`
}

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a simulation and write the long-format table",
		Long: `Run the simulation described by --config and write one CSV row per
subject-occasion (subject, occasion, response, x1..xp).

Examples:
  nomsim simulate -c sim.yaml                      # table to stdout
  nomsim simulate -c sim.yaml --out data.csv       # table to a file
  nomsim simulate -c sim.yaml --out data.csv --latent-out eps.csv --check`,
		RunE: runSimulate,
	}

	cmd.Flags().StringP("out", "o", "", "Table output path, '-' for stdout (overrides config)")
	cmd.Flags().String("latent-out", "", "Latent matrix output path (overrides config)")
	cmd.Flags().Int64("seed", 0, "Random seed (overrides config and NOMSIM_SEED)")
	cmd.Flags().Bool("check", false, "Report per-occasion chi-square fit and Cramér's V")

	return cmd
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, baseDir, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed, _ = cmd.Flags().GetInt64("seed")
	}
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		cfg.Output.Table = out
	}
	if out, _ := cmd.Flags().GetString("latent-out"); out != "" {
		cfg.Output.Latent = out
	}
	jsonOut, _ := cmd.Flags().GetBool("json")
	check, _ := cmd.Flags().GetBool("check")

	params, err := cfg.Params(baseDir)
	if err != nil {
		return err
	}
	opts, err := cfg.Options(logger)
	if err != nil {
		return err
	}
	res, err := bcl.Simulate(params, opts...)
	if err != nil {
		return err
	}
	csvCfg, err := cfg.CSV()
	if err != nil {
		return err
	}

	summary := simulateSummary{
		Subjects:    cfg.Subjects,
		ClusterSize: cfg.ClusterSize,
		Categories:  cfg.Categories,
		Seed:        cfg.Seed,
		Records:     len(res.Table),
		Table:       cfg.Output.Table,
		Latent:      cfg.Output.Latent,
	}
	if params.Latent == nil {
		summary.Factor = res.Factor.String()
	}

	// With --json on stdout the table must go to a file.
	if jsonOut && cfg.Output.Table == "-" {
		return fmt.Errorf("--json needs --out or output.table set to a file")
	}
	if err = writeTo(cmd.OutOrStdout(), cfg.Output.Table, func(w io.Writer) error {
		return csvio.WriteTable(w, res.Table, csvCfg)
	}); err != nil {
		return err
	}
	if cfg.Output.Latent != "" {
		if err = writeTo(cmd.OutOrStdout(), cfg.Output.Latent, func(w io.Writer) error {
			return csvio.WriteLatent(w, res.Latent, cfg.ClusterSize, cfg.Categories, csvCfg)
		}); err != nil {
			return err
		}
	}
	logger.Info("simulation complete",
		slog.Int("records", summary.Records),
		slog.String("table", summary.Table),
		slog.Int64("seed", summary.Seed),
	)

	if check {
		if summary.Checks, err = occasionChecks(res, cfg.ClusterSize, cfg.Categories); err != nil {
			return err
		}
		for _, c := range summary.Checks {
			logger.Info("occasion fit",
				slog.Int("occasion", c.Occasion),
				slog.Float64("chi_square", c.ChiSquare),
				slog.Int("df", c.DF),
				slog.Float64("p_value", c.PValue),
			)
		}
	}

	if jsonOut {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	return nil
}

func occasionChecks(res *bcl.Result, clsize, categories int) ([]occasionCheck, error) {
	checks := make([]occasionCheck, 0, clsize)
	for t := 0; t < clsize; t++ {
		obs, err := diagnostics.Counts(res.Responses, t, categories)
		if err != nil {
			return nil, err
		}
		exp, err := diagnostics.ExpectedCounts(res.Eta, t, categories)
		if err != nil {
			return nil, err
		}
		fit, err := diagnostics.GoodnessOfFit(obs, exp)
		if err != nil {
			return nil, err
		}
		freq, err := diagnostics.Frequencies(res.Responses, t, categories)
		if err != nil {
			return nil, err
		}
		n := float64(len(res.Responses))
		for j := range exp {
			exp[j] /= n
		}
		c := occasionCheck{
			Occasion:    t + 1,
			Frequencies: freq,
			Expected:    exp,
			ChiSquare:   fit.Statistic,
			DF:          fit.DF,
			PValue:      fit.PValue,
		}
		if t > 0 {
			v, err := diagnostics.CramersV(res.Responses, t-1, t, categories)
			if err != nil {
				return nil, err
			}
			c.CramersV = &v
		}
		checks = append(checks, c)
	}

	return checks, nil
}

// writeTo runs write against stdout for "-" or a freshly created file.
func writeTo(stdout io.Writer, path string, write func(io.Writer) error) error {
	if path == "-" {
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err = write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return f.Close()
}
