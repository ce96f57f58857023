package cli

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz/internal/config"
	"github.com/aliskhannn/vocab-quiz/internal/infra/postgres"
	"github.com/aliskhannn/vocab-quiz/internal/logger"
	"github.com/aliskhannn/vocab-quiz/internal/repository"
	"github.com/aliskhannn/vocab-quiz/internal/service"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vocabquiz",
	Short: "Vocabulary quiz: pick the word that matches the meaning",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A missing .env is fine; the environment may already be set.
		_ = godotenv.Load()
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("words", "", "primary word source (overrides words.primary)")
	rootCmd.PersistentFlags().String("fallback", "", "fallback word source (overrides words.fallback)")
}

// loadConfig loads configuration and applies command-line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if cmd.Flags().Changed("words") {
		cfg.Words.Primary, _ = cmd.Flags().GetString("words")
	}
	if cmd.Flags().Changed("fallback") {
		cfg.Words.Fallback, _ = cmd.Flags().GetString("fallback")
	}

	return cfg, nil
}

// newLoader builds the primary/fallback word loader described by cfg.
func newLoader(cfg *config.Config, log *zap.Logger) (*service.WordLoader, error) {
	opts := sourceOptions(cfg)

	primary, err := repository.NewSource(cfg.Words.Primary, opts)
	if err != nil {
		return nil, fmt.Errorf("primary word source: %w", err)
	}

	var fallback service.WordSource
	if cfg.Words.Fallback != "" {
		fallback, err = repository.NewSource(cfg.Words.Fallback, opts)
		if err != nil {
			return nil, fmt.Errorf("fallback word source: %w", err)
		}
	}

	return service.NewWordLoader(primary, fallback, log), nil
}

// sourceOptions maps word and database settings onto source and sink options.
func sourceOptions(cfg *config.Config) repository.SourceOptions {
	return repository.SourceOptions{
		Table:   cfg.Words.Table,
		Sheet:   cfg.Words.Sheet,
		Timeout: cfg.Words.FetchTimeout,
		Pool: postgres.PoolConfig{
			MaxConns:        cfg.Database.MaxConnections,
			MaxConnLifetime: cfg.Database.MaxConnLifetime,
		},
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	log, err := logger.New(cfg.IsLocal(), cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return log, nil
}
