package main

import (
	"context"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/felixgrant/shiftwise/cmd/cli/commands"
	"github.com/felixgrant/shiftwise/internal/config"
	"github.com/felixgrant/shiftwise/pkg/notify"
	"github.com/felixgrant/shiftwise/pkg/postgres"
	"github.com/felixgrant/shiftwise/pkg/roster"
	"github.com/felixgrant/shiftwise/pkg/shiftcatalog"
	"github.com/felixgrant/shiftwise/pkg/utils/keymutex"
	"github.com/felixgrant/shiftwise/pkg/utils/logging"
)

var (
	env   string
	actor string
	app   = &commands.AppContext{}
	pgDB  *postgres.DB
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "shiftwise",
		Short: "Shiftwise CLI - Manage employee shift schedules",
		Long:  `A CLI tool for generating, validating, publishing, and revising weekly shift schedules.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if pgDB != nil {
				pgDB.Close()
			}
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().StringVar(&actor, "actor", "system", "Actor id recorded in audit fields")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.GenerateScheduleCmd(app))
	rootCmd.AddCommand(commands.ValidateScheduleCmd(app))
	rootCmd.AddCommand(commands.SubmitValidationCmd(app))
	rootCmd.AddCommand(commands.PublishScheduleCmd(app))
	rootCmd.AddCommand(commands.OptimizeScheduleCmd(app))
	rootCmd.AddCommand(commands.ArchiveScheduleCmd(app))
	rootCmd.AddCommand(commands.ReassignAssignmentCmd(app))
	rootCmd.AddCommand(commands.RespondAssignmentCmd(app))
	rootCmd.AddCommand(commands.ListVersionsCmd(app))
	rootCmd.AddCommand(commands.ViewScheduleCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp fills the shared AppContext: logger, config, database, providers,
// and locks. Runs once per invocation via PersistentPreRunE.
func initApp() error {
	ctx := context.Background()

	logger, err := logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Info("Starting application", zap.String("environment", env))

	logger.Info("Loading configuration")
	cfg, err := config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Debug("Configuration loaded successfully")

	logger.Info("Connecting to database")
	pgDB, err = postgres.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pgDB.RunMigrations(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Debug("Database ready")

	// Roster cache is optional; no redis address means reads go straight to
	// the database
	var cache *redis.Client
	if cfg.Redis.Addr != "" {
		cache = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		logger.Info("Roster cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	app.Cfg = cfg
	app.Database = pgDB
	app.Roster = roster.New(pgDB, cache, cfg.RosterTTL(), logger)
	app.Catalog = shiftcatalog.New(cfg.ShiftTemplates)
	app.Notifier = notify.NewLogNotifier(logger)
	app.Locks = keymutex.New()
	app.Logger = logger
	app.Ctx = ctx
	app.Actor = actor

	logger.Info("Application initialized successfully")
	return nil
}
