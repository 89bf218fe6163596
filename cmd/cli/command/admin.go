package command

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"bookhub/database/seed"
	"bookhub/internal/microservices/http-api/dto"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the demo authors, books, libraries and librarians",
		Long:  `Inserts the embedded demo catalog. Rows that already exist are kept, so running it again creates nothing.`,
		Args:  cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, _ []string, e *env) error {
			fixtures, err := seed.Load()
			if err != nil {
				return err
			}
			res, err := seed.Run(cmd.Context(), e.db, fixtures)
			if err != nil {
				return fmt.Errorf("seed failed: %w", err)
			}
			printSeedResult(cmd.OutOrStdout(), res)
			return nil
		}),
	}
}

func newCreateSuperuserCmd() *cobra.Command {
	var req dto.RegisterRequest

	cmd := &cobra.Command{
		Use:   "createsuperuser",
		Short: "Create a staff superuser with the admin role",
		Long: `Creates an account with is_staff, is_superuser and the admin role set.
The password is read from --password or the BOOKHUB_SUPERUSER_PASSWORD variable.`,
		Args: cobra.NoArgs,
		PreRunE: func(*cobra.Command, []string) error {
			if req.Password == "" {
				req.Password = os.Getenv("BOOKHUB_SUPERUSER_PASSWORD")
			}
			if req.Password == "" {
				return fmt.Errorf("a password is required: pass --password or set BOOKHUB_SUPERUSER_PASSWORD")
			}
			req.PasswordConfirm = req.Password
			return nil
		},
		RunE: withEnv(func(cmd *cobra.Command, _ []string, e *env) error {
			user, err := e.services.Auth.CreateSuperuser(cmd.Context(), req)
			if err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Superuser %q created (id %s)\n", user.Username, user.ID)
			return nil
		}),
	}

	cmd.Flags().StringVar(&req.Username, "username", "", "username (required)")
	cmd.Flags().StringVar(&req.Email, "email", "", "email address (required)")
	cmd.Flags().StringVar(&req.Password, "password", "", "password, at least 8 characters")
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "last name")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newCleanupTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup-tokens",
		Short: "Delete refresh tokens that have expired",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, _ []string, e *env) error {
			n, err := e.repos.RefreshTokens.DeleteExpired(cmd.Context(), time.Now())
			if err != nil {
				return fmt.Errorf("cleanup failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d expired refresh tokens\n", n)
			return nil
		}),
	}
}
