// Command silver is the pokelake silver-stage CLI.
//
// Usage:
//
//	pokelake-silver migrate
//	pokelake-silver run --source raw_pokemon --workers 4
//	pokelake-silver run --dry-run
//	pokelake-silver verify
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/lunarbyte/pokelake/internal/config"
	"github.com/lunarbyte/pokelake/internal/db"
	"github.com/lunarbyte/pokelake/internal/stage"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "pokelake-silver",
		Short: "Pokelake silver-stage CLI",
	}

	root.AddCommand(migrateCmd())
	root.AddCommand(runCmd())
	root.AddCommand(verifyCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// migrate command
// --------------------------------------------------------------------------

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply embedded schema migrations (bronze + silver tables)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return db.Migrate(cfg.DatabaseURL, logger)
		},
	}
}

// --------------------------------------------------------------------------
// run command
// --------------------------------------------------------------------------

func runCmd() *cobra.Command {
	var (
		source  string
		workers int
		dryRun  bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Flatten the bronze layer into the five silver tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStage(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				if source == "" {
					source = cfg.BronzeTable
				}
				if workers == 0 {
					workers = cfg.SilverWorkers
				}

				start := time.Now()
				result, err := stage.Run(ctx, pool.Pool, stage.Options{
					Source:  source,
					Workers: workers,
					DryRun:  dryRun,
				}, logger)
				logger.Info("Silver run finished",
					"duration", time.Since(start).Round(time.Millisecond),
					"summary", result.Summary())
				for _, e := range result.Errors {
					logger.Error("run error", "error", e)
				}
				return err
			})
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "Bronze table to read (default from BRONZE_TABLE)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Flatten worker count (default from SILVER_WORKERS)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Flatten and report counts without writing")
	return cmd
}

// --------------------------------------------------------------------------
// verify command
// --------------------------------------------------------------------------

func verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check silver table counts and base/detail consistency",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStage(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				result, err := stage.Verify(ctx, pool.Pool, logger)
				if err != nil {
					return err
				}
				logger.Info("Verification finished", "summary", result.Summary())
				if !result.OK() {
					return fmt.Errorf("silver layer has orphan detail rows")
				}
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// runStage handles config loading, DB connection, and context cancellation.
func runStage(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}
