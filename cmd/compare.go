/*
Copyright © 2025 NoteWell Authors
*/
package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/notewell/notewell/internal/harness"
	"github.com/notewell/notewell/internal/nvq"
	"github.com/notewell/notewell/internal/report"
	"github.com/notewell/notewell/internal/resultstore"
	"github.com/notewell/notewell/internal/strategy"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run every strategy against the scenarios and compare them",
	Long: `Runs each matching strategy against the selected scenarios (all
builtin scenarios by default), aggregates per-strategy metrics by counter
sums, and applies the quality gate to the best strategy. Exits non-zero
when the gate fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		scenarioName, _ := cmd.Flags().GetString("scenario")
		scenarioFile, _ := cmd.Flags().GetString("scenario-file")
		quality, _ := cmd.Flags().GetBool("quality")
		reversed, _ := cmd.Flags().GetBool("include-reversed")
		output, _ := cmd.Flags().GetString("output")
		historyPath, _ := cmd.Flags().GetString("history")
		ci, _ := cmd.Flags().GetBool("ci")

		scenarios, err := resolveScenarios(scenarioName, scenarioFile)
		if err != nil {
			return err
		}
		scenarios = scenarioPairs(scenarios, reversed)

		ctx := cmd.Context()
		providers, mode := newProviderFactory(ctx)
		slog.Debug("embedding mode resolved", "mode", mode)

		var pairs []harness.Pair
		for _, scn := range scenarios {
			for _, kind := range strategy.Kinds() {
				strat, err := buildStrategy(kind, providers)
				if err != nil {
					return err
				}
				pairs = append(pairs, harness.Pair{Scenario: scn, Strategy: strat})
			}
		}

		opts := harness.Options{Logger: slog.Default()}
		if quality {
			opts.Quality = nvq.NewScorer(nvq.Config{})
		}
		h := harness.New(harness.NewMockExtractor(scenarios...), opts)
		results := h.RunAll(ctx, pairs)

		comparison := report.Build(results)
		gate := comparison.Evaluate(report.DefaultThresholds())
		report.Render(cmd.OutOrStdout(), comparison, gate, ci)

		if output != "" {
			if err := report.WriteJSON(scenarioFs(), output, comparison, gate); err != nil {
				return err
			}
		}
		if historyPath != "" {
			if err := saveHistory(ctx, historyPath, results, gate); err != nil {
				return err
			}
		}

		if !gate.Passed {
			return fmt.Errorf("quality gate failed")
		}
		return nil
	},
}

func saveHistory(ctx context.Context, path string, results []harness.Result, gate report.Gate) error {
	store, err := resultstore.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runID, err := store.SaveRun(ctx, results, gate)
	if err != nil {
		return err
	}
	slog.Info("run saved to history", "path", path, "run", runID)
	return nil
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().String("scenario", "", "run a single builtin scenario by name")
	compareCmd.Flags().String("scenario-file", "", "run a scenario loaded from a YAML file")
	compareCmd.Flags().Bool("quality", false, "score extracted notes on the NVQ rubric")
	compareCmd.Flags().Bool("include-reversed", false, "also run each scenario with document order reversed")
	compareCmd.Flags().String("output", "", "write the comparison as JSON to this path")
	compareCmd.Flags().String("history", "", "append this run to a SQLite history database")
	compareCmd.Flags().Bool("ci", false, "terse machine-readable output")
}
