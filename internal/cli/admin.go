package cli

import (
	"fmt"

	"github.com/ErlanBelekov/league-manager/internal/auth"
	"github.com/ErlanBelekov/league-manager/internal/domain"
	"github.com/ErlanBelekov/league-manager/internal/infrastructure/postgres"
	"github.com/ErlanBelekov/league-manager/internal/usecase"
	"github.com/spf13/cobra"
)

func newCreateAdminCmd(s *session) *cobra.Command {
	var c domain.UserCandidate

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account",
		Long: `Creates a user with role admin. Admins cannot register through the API,
so the first one is created here.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := s.open(cmd.Context())
			if err != nil {
				return err
			}

			c.Role = domain.RoleAdmin
			users := usecase.NewUserUsecase(postgres.NewUserRepository(pool), hasher, auth.NewPolicy(), s.notifier())
			u, err := users.Provision(cmd.Context(), c)
			if err != nil {
				return fmt.Errorf("create admin: %w", err)
			}

			s.logger.Info("admin created", "user_id", u.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (id %d)\n", u.Email, u.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&c.Email, "email", "", "Admin email")
	cmd.Flags().StringVar(&c.Password, "password", "", "Admin password")
	cmd.Flags().StringVar(&c.FirstName, "first-name", "League", "First name")
	cmd.Flags().StringVar(&c.LastName, "last-name", "Admin", "Last name")
	cmd.Flags().StringVar(&c.Phone, "phone", "", "Phone number")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
