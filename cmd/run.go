/*
Copyright © 2025 NoteWell Authors
*/
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/notewell/notewell/internal/config"
	"github.com/notewell/notewell/internal/harness"
	"github.com/notewell/notewell/internal/llm"
	"github.com/notewell/notewell/internal/nvq"
	"github.com/notewell/notewell/internal/report"
	"github.com/notewell/notewell/internal/strategy"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one strategy against the scenarios",
	Long: `Runs a single matching strategy against the selected scenarios.
By default extraction candidates come from the scenario's deterministic
mock; --e2e extracts through the configured chat model instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		strategyName, _ := cmd.Flags().GetString("strategy")
		scenarioName, _ := cmd.Flags().GetString("scenario")
		scenarioFile, _ := cmd.Flags().GetString("scenario-file")
		quality, _ := cmd.Flags().GetBool("quality")
		reversed, _ := cmd.Flags().GetBool("include-reversed")
		output, _ := cmd.Flags().GetString("output")
		historyPath, _ := cmd.Flags().GetString("history")
		ci, _ := cmd.Flags().GetBool("ci")
		e2e, _ := cmd.Flags().GetBool("e2e")

		kind, err := strategy.ParseKind(strategyName)
		if err != nil {
			return err
		}
		scenarios, err := resolveScenarios(scenarioName, scenarioFile)
		if err != nil {
			return err
		}
		scenarios = scenarioPairs(scenarios, reversed)

		ctx := cmd.Context()
		providers, mode := newProviderFactory(ctx)
		slog.Debug("embedding mode resolved", "mode", mode)

		var extractor harness.Extractor = harness.NewMockExtractor(scenarios...)
		if e2e {
			cfg, err := config.LoadLLMConfig()
			if err != nil {
				return err
			}
			if !cfg.HasCredential() {
				return fmt.Errorf("--e2e needs a configured provider credential")
			}
			chatModel, err := llm.NewChatModel(ctx, cfg)
			if err != nil {
				return fmt.Errorf("build chat model: %w", err)
			}
			extractor = harness.NewLLMExtractor(chatModel)
		}

		var pairs []harness.Pair
		for _, scn := range scenarios {
			strat, err := buildStrategy(kind, providers)
			if err != nil {
				return err
			}
			pairs = append(pairs, harness.Pair{Scenario: scn, Strategy: strat})
		}

		opts := harness.Options{Logger: slog.Default()}
		if quality {
			opts.Quality = nvq.NewScorer(nvq.Config{})
		}
		h := harness.New(extractor, opts)
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

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringP("strategy", "s", string(strategy.KindHybrid), "matching strategy: lexical, embedding, or hybrid")
	runCmd.Flags().String("scenario", "", "run a single builtin scenario by name")
	runCmd.Flags().String("scenario-file", "", "run a scenario loaded from a YAML file")
	runCmd.Flags().Bool("quality", false, "score extracted notes on the NVQ rubric")
	runCmd.Flags().Bool("include-reversed", false, "also run each scenario with document order reversed")
	runCmd.Flags().String("output", "", "write the result as JSON to this path")
	runCmd.Flags().String("history", "", "append this run to a SQLite history database")
	runCmd.Flags().Bool("ci", false, "terse machine-readable output")
	runCmd.Flags().Bool("e2e", false, "extract through the configured chat model instead of the scenario mock")
}
