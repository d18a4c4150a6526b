package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/ellavondegurechaff/packengine/internal/domain/packs"
)

func newPoolCommand(app *App) *cobra.Command {
	var (
		ptFlags     packTypeFlags
		designQuery string
	)

	cmd := &cobra.Command{
		Use:   "pool",
		Short: "Show how many serials remain per design and rarity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.run(cmd, func(ctx context.Context) error {
				pt, err := ptFlags.packType()
				if err != nil {
					return err
				}
				pool, err := app.Service.ResolveCardPool(ctx, pt)
				if err != nil {
					return err
				}
				if designQuery != "" {
					pool = filterPool(pool, designQuery)
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "DESIGN\tNAME\tRARITY\tREMAINING\tCAP")
				total := 0
				for _, c := range pool.Summary() {
					fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n", c.DesignID, c.CardName, c.RarityID, c.Remaining, c.Cap)
					total += c.Remaining
				}
				fmt.Fprintf(w, "\t\tTOTAL\t%d\t\n", total)
				return w.Flush()
			})
		},
	}
	ptFlags.register(cmd)
	cmd.Flags().StringVar(&designQuery, "design-query", "", "only show designs whose name fuzzily matches")
	return cmd
}

type designNames []packs.CardDesign

func (d designNames) String(i int) string { return d[i].CardName }
func (d designNames) Len() int            { return len(d) }

// filterPool keeps the designs whose name fuzzily matches query.
func filterPool(pool *packs.CardPool, query string) *packs.CardPool {
	matches := fuzzy.FindFrom(query, designNames(pool.Designs))

	keep := make(map[string]bool, len(matches))
	out := &packs.CardPool{}
	for _, m := range matches {
		d := pool.Designs[m.Index]
		keep[d.DesignID] = true
		out.Designs = append(out.Designs, d)
	}
	for _, inst := range pool.Instances {
		if keep[inst.DesignID] {
			out.Instances = append(out.Instances, inst)
		}
	}
	return out
}
