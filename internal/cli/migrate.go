package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dailishaw/dailishaw-api/internal/infrastructure/postgres"
)

// NewMigrateCommand crea el comando migrate.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "migrate",
		Short:        "Aplica las migraciones SQL pendientes",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pool, err := rootOpts.connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			applied, err := postgres.Migrate(ctx, pool, rootOpts.log)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(applied) == 0 {
				fmt.Fprintln(out, "sin migraciones pendientes")
				return nil
			}
			for _, v := range applied {
				fmt.Fprintf(out, "aplicada %s\n", v)
			}
			return nil
		},
	}
	return cmd
}
