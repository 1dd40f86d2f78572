package main

import (
	"fmt"

	"saathi/internal/dto"
	"saathi/internal/repository"
	"saathi/internal/service"
	"saathi/internal/validation"

	"github.com/spf13/cobra"
)

func newAuthService(e *env) (service.AuthService, error) {
	return service.NewAuthService(
		repository.NewSQLXUserRepository(e.db),
		repository.NewSQLXSessionRepository(e.db),
		repository.NewTransactionManagerAdapter(e.db),
		e.cfg.JWT,
		e.cfg.GoogleOAuth,
	)
}

func newAddUserCmd() *cobra.Command {
	var req dto.RegisterRequest
	cmd := &cobra.Command{
		Use:   "adduser",
		Short: "Create a credentials account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validation.NewValidator().Struct(req); err != nil {
				return err
			}
			e, closeEnv, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer closeEnv()

			auth, err := newAuthService(e)
			if err != nil {
				return err
			}
			if _, err := auth.Register(cmd.Context(), req); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %s\n", req.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "account password (8-72 characters)")
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "last name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("first-name")
	return cmd
}

func newPurgeSessionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purge-sessions",
		Short: "Delete expired sessions now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, closeEnv, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer closeEnv()

			auth, err := newAuthService(e)
			if err != nil {
				return err
			}
			n, err := auth.PurgeExpiredSessions(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "purged %d expired session(s)\n", n)
			return nil
		},
	}
}
