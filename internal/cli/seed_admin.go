package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dailishaw/dailishaw-api/internal/application/dto"
	"github.com/dailishaw/dailishaw-api/internal/application/usecase"
	"github.com/dailishaw/dailishaw-api/internal/domain/entity"
	"github.com/dailishaw/dailishaw-api/internal/domain/repository"
	"github.com/dailishaw/dailishaw-api/internal/infrastructure/postgres"
)

// SeedAdminOptions flags de seed-admin.
type SeedAdminOptions struct {
	Email    string
	Password string
	FullName string
	Reset    bool // si ya existe: restablecer contraseña, promover a admin y activar
}

// NewSeedAdminCommand crea el comando seed-admin.
func NewSeedAdminCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedAdminOptions{}

	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Crea (o restablece) una cuenta de administrador",
		Long: `Crea una cuenta con rol admin. Con --reset, si el email ya existe
se restablece la contraseña, se promueve a admin y se activa.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pool, err := rootOpts.connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			return runSeedAdmin(ctx, postgres.NewProfileRepository(pool), opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.Email, "email", "", "email del administrador")
	cmd.Flags().StringVar(&opts.Password, "password", "", "contraseña (mínimo 6 caracteres)")
	cmd.Flags().StringVar(&opts.FullName, "name", "Administrator", "nombre completo")
	cmd.Flags().BoolVar(&opts.Reset, "reset", false, "restablecer si ya existe")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

type noSessions struct{}

func (noSessions) Forget(string) {}

func runSeedAdmin(ctx context.Context, profiles repository.ProfileRepository, opts *SeedAdminOptions, out io.Writer) error {
	uc := usecase.NewProfileUseCase(profiles, noSessions{})

	p, err := profiles.GetByEmail(ctx, strings.TrimSpace(opts.Email))
	if err != nil {
		return err
	}
	if p == nil {
		created, err := uc.Create(ctx, dto.CreateProfileRequest{
			Email:    opts.Email,
			Password: opts.Password,
			FullName: opts.FullName,
			Role:     string(entity.RoleAdmin),
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "administrador creado: %s (%s)\n", created.Email, created.ID)
		return nil
	}
	if !opts.Reset {
		return fmt.Errorf("%s ya existe; usar --reset para restablecerlo", opts.Email)
	}

	if err := uc.ResetPassword(ctx, p.ID, opts.Password); err != nil {
		return err
	}
	role := string(entity.RoleAdmin)
	if _, err := uc.Update(ctx, p.ID, dto.UpdateProfileRequest{Role: &role}); err != nil {
		return err
	}
	if err := profiles.SetActive(ctx, p.ID, true); err != nil {
		return err
	}
	fmt.Fprintf(out, "administrador restablecido: %s (%s)\n", p.Email, p.ID)
	return nil
}
