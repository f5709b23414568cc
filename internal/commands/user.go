package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/siklus/internal/auditlog"
	"github.com/cleared-dev/siklus/internal/auth"
)

type credentials struct {
	username string
	password string
}

func (c *credentials) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&c.username, "username", "u", "", "username (required)")
	cmd.Flags().StringVarP(&c.password, "password", "p", "", "password (required)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
}

func newRegisterCommand(opts *rootOptions) *cobra.Command {
	var creds credentials

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.authService().Register(ctx, creds.username, creds.password); err != nil {
				return err
			}
			hash, err := a.commit("register: " + creds.username)
			if err != nil {
				return err
			}
			if err := a.audit(creds.username, auditlog.ActionRegister, "user created", "", hash); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s. Log in with `siklus login`.\n", creds.username)
			return nil
		},
	}
	creds.bind(cmd)
	return cmd
}

func newLoginCommand(opts *rootOptions) *cobra.Command {
	var creds credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to this workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := openApp(ctx, opts)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.authService().Login(ctx, a.session, creds.username, creds.password); err != nil {
				return err
			}
			if err := a.audit(creds.username, auditlog.ActionLogin, "", "", ""); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", creds.username)
			return nil
		},
	}
	creds.bind(cmd)
	return cmd
}

func newLogoutCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out of this workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			name, err := a.session.Current()
			if errors.Is(err, auth.ErrNotLoggedIn) {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
				return nil
			}
			if err != nil {
				return err
			}
			if err := a.session.Logout(); err != nil {
				return err
			}
			if err := a.audit(name, auditlog.ActionLogout, "", "", ""); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged out %s\n", name)
			return nil
		},
	}
}

func newWhoamiCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			u, err := a.currentUser(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), u.Username)
			return nil
		},
	}
}
