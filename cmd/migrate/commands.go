package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"library-api/internal/config"
	authorRepository "library-api/internal/domains/author/repository"
	bookRepository "library-api/internal/domains/book/repository"
	"library-api/internal/infrastructure/database"
	"library-api/internal/infrastructure/seed"
	"library-api/pkg/logger"
)

var (
	driverFlag string
	dsnFlag    string
)

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the library database schema",
	Long: `Apply, roll back and inspect the embedded schema migrations.

Connection settings come from DB_DRIVER and DB_DSN (or .env) unless
overridden with --driver and --dsn. The memory driver has no schema.`,
	SilenceUsage: true,
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd.Context(), func(ctx context.Context, db *database.DB) error {
			return db.Migrate(ctx)
		})
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd.Context(), func(ctx context.Context, db *database.DB) error {
			provider, err := db.Migrator()
			if err != nil {
				return err
			}
			res, err := provider.Down(ctx)
			if err != nil {
				return fmt.Errorf("failed to roll back: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rolled back %d (%s)\n", res.Source.Version, res.Duration)
			return nil
		})
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show applied and pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd.Context(), func(ctx context.Context, db *database.DB) error {
			provider, err := db.Migrator()
			if err != nil {
				return err
			}
			statuses, err := provider.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to read migration status: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "VERSION\tSTATE\tAPPLIED AT")
			for _, s := range statuses {
				applied := "-"
				if !s.AppliedAt.IsZero() {
					applied = s.AppliedAt.Format("2006-01-02 15:04:05")
				}
				fmt.Fprintf(w, "%d\t%s\t%s\n", s.Source.Version, s.State, applied)
			}
			return w.Flush()
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd.Context(), func(ctx context.Context, db *database.DB) error {
			provider, err := db.Migrator()
			if err != nil {
				return err
			}
			v, err := provider.GetDBVersion(ctx)
			if err != nil {
				return fmt.Errorf("failed to read schema version: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		})
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Apply migrations and load the sample library into an empty store",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd.Context(), func(ctx context.Context, db *database.DB) error {
			if err := db.Migrate(ctx); err != nil {
				return err
			}
			res, err := seed.Run(ctx, authorRepository.NewSQLRepository(db), bookRepository.NewSQLRepository(db))
			if err != nil {
				return err
			}
			if res.Skipped {
				fmt.Fprintln(cmd.OutOrStdout(), "store already has authors, nothing seeded")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d authors and %d books\n", res.Authors, res.Books)
			return nil
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&driverFlag, "driver", "", "database driver (sqlite or postgres), overrides DB_DRIVER")
	rootCmd.PersistentFlags().StringVar(&dsnFlag, "dsn", "", "connection string, overrides DB_DSN")

	rootCmd.AddCommand(upCmd, downCmd, statusCmd, versionCmd, seedCmd)
}

// loadConfig reads the environment and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if driverFlag != "" {
		cfg.Database.Driver = driverFlag
	}
	if dsnFlag != "" {
		cfg.Database.DSN = dsnFlag
	}
	if cfg.Database.Driver == config.DriverMemory {
		return nil, fmt.Errorf("the memory driver has no schema to migrate")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func withDB(ctx context.Context, fn func(context.Context, *database.DB) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger.InitWithWriter(cfg.App.Environment, cfg.App.LogLevel, os.Stderr)

	if ctx == nil {
		ctx = context.Background()
	}

	db := database.NewDB(cfg.DBConfig())
	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	return fn(ctx, db)
}
