package cli

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dailishaw/dailishaw-api/internal/infrastructure/postgres"
	"github.com/dailishaw/dailishaw-api/pkg/config"
	"github.com/dailishaw/dailishaw-api/pkg/logger"
)

// RootOptions flags globales y dependencias compartidas por los subcomandos.
type RootOptions struct {
	Verbose bool

	cfg *config.Config
	log zerolog.Logger
}

// NewRootCommand crea el comando raíz de dailishawctl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "dailishawctl",
		Short: "Herramientas de operación de dailishaw-api",
		Long:  "Migraciones de base de datos y alta del primer administrador.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("cargar configuración: %w", err)
			}
			level := cfg.App.LogLevel
			if opts.Verbose {
				level = "debug"
			}
			opts.cfg = cfg
			opts.log = logger.New(logger.Config{
				Env:     "development",
				Level:   level,
				Service: "dailishawctl",
				Out:     cmd.ErrOrStderr(),
			})
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "salida detallada")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewSeedAdminCommand(opts))

	return cmd
}

// connect abre el pool con la configuración cargada.
func (o *RootOptions) connect(ctx context.Context) (*pgxpool.Pool, error) {
	return postgres.NewPool(ctx, o.cfg.DB, o.log)
}
