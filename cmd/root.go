/*
Copyright © 2025 NoteWell Authors
*/
package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notewell/notewell/internal/config"
	"github.com/notewell/notewell/internal/embedding"
	"github.com/notewell/notewell/internal/llm"
	"github.com/notewell/notewell/internal/scenario"
	"github.com/notewell/notewell/internal/strategy"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables debug logging.
	verbose bool
	// version is the application version.
	version = "0.1.0"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "notewell-eval",
	Short: "NoteWell extraction evaluation harness",
	Long: `Evaluates note-extraction matching strategies against ground-truth
scenarios: relatedness ranking, duplicate consolidation, tag reuse, and
note quality. Exit code is non-zero when the best strategy misses the
quality gate.`,
	SilenceUsage: true,
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.notewell.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	config.LoadEnvFile()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".notewell")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("NOTEWELL")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		slog.Debug("using config file", "path", viper.ConfigFileUsed())
	}

	level := slog.LevelInfo
	if verbose || viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// GetVersion returns the application version.
func GetVersion() string {
	return version
}

// newProviderFactory resolves the embedding configuration once and returns
// a constructor yielding a fresh provider per strategy instance, so each
// run owns its cache. Missing credentials mean local approximation, never
// an error.
func newProviderFactory(ctx context.Context) (func() *embedding.Provider, string) {
	cfg, err := config.LoadLLMConfig()
	if err != nil {
		slog.Warn("invalid llm configuration, using local similarity", "error", err)
		return func() *embedding.Provider { return embedding.NewProvider(nil) }, "local"
	}
	if !cfg.HasCredential() {
		slog.Debug("no embedding credential configured, using local similarity")
		return func() *embedding.Provider { return embedding.NewProvider(nil) }, "local"
	}

	embedder, err := llm.NewEmbedder(ctx, cfg)
	if err != nil {
		slog.Warn("embedding client unavailable, using local similarity", "error", err)
		return func() *embedding.Provider { return embedding.NewProvider(nil) }, "local"
	}
	return func() *embedding.Provider { return embedding.NewProvider(embedder) }, string(cfg.Provider)
}

// buildStrategy constructs a fresh strategy with its own provider.
func buildStrategy(kind strategy.Kind, providers func() *embedding.Provider) (strategy.MatchingStrategy, error) {
	if kind == strategy.KindLexical {
		return strategy.Build(kind, nil)
	}
	return strategy.Build(kind, providers())
}

// resolveScenarios returns the scenarios a command should run: the named
// builtin, a scenario file, or every builtin.
func resolveScenarios(name, file string) ([]scenario.Scenario, error) {
	if file != "" {
		s, err := scenario.LoadFile(scenarioFs(), file)
		if err != nil {
			return nil, err
		}
		return []scenario.Scenario{s}, nil
	}
	if name != "" {
		s, err := scenario.ByName(name)
		if err != nil {
			return nil, err
		}
		return []scenario.Scenario{s}, nil
	}
	return scenario.Builtin()
}

// scenarioFs is the filesystem scenario files and reports go through.
// Indirection keeps commands testable against an in-memory fs.
var scenarioFs = func() afero.Fs { return afero.NewOsFs() }

func scenarioPairs(scenarios []scenario.Scenario, reversed bool) []scenario.Scenario {
	if !reversed {
		return scenarios
	}
	out := make([]scenario.Scenario, 0, len(scenarios)*2)
	for _, s := range scenarios {
		out = append(out, s, s.Reversed())
	}
	return out
}
