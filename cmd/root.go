// Package cmd holds the packs command line: schema migration, pool inspection
// and the pack lifecycle operations against PostgreSQL.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/ellavondegurechaff/packengine/internal/config"
	"github.com/ellavondegurechaff/packengine/internal/domain/packs"
	"github.com/ellavondegurechaff/packengine/internal/gateways/database"
	"github.com/ellavondegurechaff/packengine/internal/gateways/database/repositories"
	"github.com/ellavondegurechaff/packengine/internal/logger"
)

// App holds the clients built once per process and shared by every command.
type App struct {
	Config  *config.Config
	DB      *database.DB
	Store   *repositories.PackStore
	Users   *repositories.UserRepository
	Ranks   *repositories.RankingRepository
	Service packs.Service
}

func NewRootCommand(version, commit string) *cobra.Command {
	app := &App{}
	var configPath string

	root := &cobra.Command{
		Use:           "packs",
		Short:         "Card pool allocation and pack lifecycle engine",
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			app.Config = cfg
			slog.SetDefault(slog.New(logger.New(logger.Options{
				Level:  cfg.Log.Level,
				Format: cfg.Log.Format,
				Color:  cfg.Log.Color,
				Writer: cmd.ErrOrStderr(),
			})))
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if app.DB != nil {
				app.DB.Close()
			}
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config.toml", "path to config")

	root.AddCommand(
		newMigrateCommand(app),
		newPoolCommand(app),
		newCreatePacksCommand(app),
		newAssignPackCommand(app),
		newOpenCardCommand(app),
		newOpenPackCommand(app),
		newDeletePackCommand(app),
		newDeleteFirstPackCommand(app),
		newBackfillBestRarityCommand(app),
		newSeedDesignsCommand(app),
		newSetRanksCommand(app),
	)
	return root
}

// connect opens the database and wires the engine on first use.
func (a *App) connect(ctx context.Context) error {
	if a.DB != nil {
		return nil
	}

	start := time.Now()
	db, err := database.New(ctx, a.Config.DB)
	if err != nil {
		return err
	}
	slog.Info("Database connected successfully",
		slog.String("type", "db"),
		slog.String("database", a.Config.DB.Database),
		slog.Duration("took", time.Since(start)))

	engine := a.Config.Engine
	a.DB = db
	a.Store = repositories.NewPackStore(db.BunDB(), engine.TxTimeout.Duration)
	a.Users = repositories.NewUserRepository(db.Pool())
	a.Ranks = repositories.NewRankingRepository(db.Pool())
	a.Service = packs.NewService(a.Store, a.Users, packs.Options{
		MaxConflictRetries: engine.MaxConflictRetries,
		BatchConcurrency:   engine.BatchConcurrency,
		Sorter:             packs.NewRankingSorter(a.Ranks, engine.RankingCacheSize),
	})
	return nil
}

// run connects, executes fn and logs the command outcome.
func (a *App) run(cmd *cobra.Command, fn func(ctx context.Context) error) error {
	start := time.Now()
	ctx := cmd.Context()

	err := a.connect(ctx)
	if err == nil {
		err = fn(ctx)
	}
	logger.LogCommand(cmd.Name(), time.Since(start), err)
	return err
}
