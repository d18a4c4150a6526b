package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ellavondegurechaff/packengine/internal/gateways/database"
)

func newMigrateCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return database.Migrate(cmd.Context(), app.Config.DB.DSN())
		},
	}
}
