package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ellavondegurechaff/packengine/internal/domain/packs"
)

func newCreatePacksCommand(app *App) *cobra.Command {
	var (
		ptFlags  packTypeFlags
		userID   string
		username string
		count    int
	)

	cmd := &cobra.Command{
		Use:   "create-packs",
		Short: "Create packs for a user, or unassigned packs without --user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.run(cmd, func(ctx context.Context) error {
				pt, err := ptFlags.packType()
				if err != nil {
					return err
				}

				if userID == "" {
					for range count {
						pack, err := app.Service.CreatePack(ctx, packs.CreatePackRequest{Count: pt.CardCount, PackType: pt})
						if err != nil {
							return err
						}
						printPack(cmd.OutOrStdout(), pack)
					}
					return nil
				}

				res, err := app.Service.CreatePacksForUser(ctx, pt, userID, username, count)
				if res != nil {
					for _, p := range res.Packs {
						printPack(cmd.OutOrStdout(), p)
					}
				}
				var out *packs.PackTypeIsOutOfCardsError
				if errors.As(err, &out) && res != nil && len(res.Packs) > 0 {
					slog.Warn("Pool ran dry during batch",
						slog.String("type", "engine"),
						slog.Int("created", len(res.Packs)),
						slog.Int("failed", out.FailedCount))
				}
				return err
			})
		},
	}
	ptFlags.register(cmd)
	cmd.Flags().StringVar(&userID, "user", "", "owner user id")
	cmd.Flags().StringVar(&username, "username", "", "owner display name")
	cmd.Flags().IntVar(&count, "count", 1, "number of packs")
	return cmd
}

func newAssignPackCommand(app *App) *cobra.Command {
	var username string
	cmd := &cobra.Command{
		Use:   "assign-pack <pack-id> <user-id>",
		Short: "Give an unassigned pack to a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context) error {
				pack, err := app.Service.AssignPack(ctx, args[0], args[1], username)
				if err != nil {
					return err
				}
				printPack(cmd.OutOrStdout(), pack)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "owner display name")
	return cmd
}

func newOpenCardCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "open-card <pack-id> <design-id> <instance-id>",
		Short: "Open one card of a pack",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context) error {
				inst, err := app.Service.OpenCard(ctx, args[0], args[1], args[2])
				if packs.IsAlreadyOpened(err) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s was already opened\n", args[2])
					return nil
				}
				if err != nil {
					return err
				}
				printInstance(cmd.OutOrStdout(), inst)
				return nil
			})
		},
	}
}

func newOpenPackCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "open-pack <pack-id>",
		Short: "Open every remaining card of a pack",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context) error {
				opened, err := app.Service.OpenPack(ctx, args[0])
				for i := range opened {
					printInstance(cmd.OutOrStdout(), &opened[i])
				}
				return err
			})
		},
	}
}

func newDeletePackCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-pack <pack-id>",
		Short: "Delete a pack and the cards still inside it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context) error {
				return app.Service.DeletePack(ctx, args[0])
			})
		},
	}
}

func newDeleteFirstPackCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-first-pack <user-id>",
		Short: "Delete a user's oldest pack",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context) error {
				pack, err := app.Service.DeleteFirstPackForUser(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", pack.PackID)
				return nil
			})
		},
	}
}

func newBackfillBestRarityCommand(app *App) *cobra.Command {
	var seasonID string
	cmd := &cobra.Command{
		Use:   "backfill-best-rarity [design-id...]",
		Short: "Recompute the best rarity found of designs from their opened cards",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(ctx context.Context) error {
				designIDs := args
				if seasonID != "" {
					designs, err := app.Store.ListDesignsBySeason(ctx, seasonID)
					if err != nil {
						return err
					}
					for _, d := range designs {
						designIDs = append(designIDs, d.DesignID)
					}
				}
				if len(designIDs) == 0 {
					return fmt.Errorf("no designs given")
				}

				for _, id := range designIDs {
					best, err := app.Service.RecomputeBestRarity(ctx, id)
					if err != nil {
						return err
					}
					if best.Found() {
						fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d\n", id, best.RarityID, best.TotalOfType)
					} else {
						fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", id, packs.NoCardsOpenedRarityID)
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&seasonID, "season", "", "backfill every design of this season")
	return cmd
}

func printPack(w io.Writer, p *packs.Pack) {
	owner := p.UserID
	if !p.Assigned() {
		owner = "(unassigned)"
	}
	fmt.Fprintf(w, "%s\t%s\t%s\n", p.PackID, p.PackTypeID, owner)
	for _, c := range p.CardDetails {
		state := "sealed"
		if c.Opened {
			state = "opened"
		}
		fmt.Fprintf(w, "  %s\t%s\t#%d/%d\t%s\n", c.InstanceID, c.RarityID, c.CardNumber, c.TotalOfType, state)
	}
}

func printInstance(w io.Writer, inst *packs.CardInstance) {
	fmt.Fprintf(w, "%s\t%s\t%s #%d/%d\t%v\n",
		inst.InstanceID, inst.CardName, inst.RarityID, inst.CardNumber, inst.TotalOfType, inst.Stamps)
}
