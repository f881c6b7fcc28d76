package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	szurubooru "github.com/rzk3/szurubooru-client"
)

func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Browse and manage users",
	}

	cmd.AddCommand(newUsersListCmd())
	cmd.AddCommand(newUsersGetCmd())
	cmd.AddCommand(newUsersTokensCmd())

	return cmd
}

func newUsersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [query...]",
		Short: "Search users",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			result, err := newRequest(client).ListUsers(cmd.Context(), parseQueryTokens(args))
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}
}

func newUsersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <name>",
		Short: "Show a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			user, err := newRequest(client).GetUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, user)
		},
	}
}

func newUsersTokensCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens <name>",
		Short: "List a user's login tokens",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			result, err := newRequest(client).ListUserTokens(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, result.Results)
		},
	}

	createCmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a login token for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			note, _ := cmd.Flags().GetString("note")
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			token, err := newRequest(client).CreateUserToken(cmd.Context(), args[0], &szurubooru.CreateUpdateUserToken{
				Note: note,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, token)
		},
	}
	createCmd.Flags().String("note", "", "Note describing what the token is for")
	cmd.AddCommand(createCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <name> <token>",
		Short: "Revoke a login token",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			req := newRequest(client)
			tokens, err := req.ListUserTokens(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			version := 0
			for _, t := range tokens.Results {
				if t.Token == args[1] {
					version = t.Version
					break
				}
			}
			if version == 0 {
				return fmt.Errorf("token not found for user %s", args[0])
			}
			if err := req.DeleteUserToken(cmd.Context(), args[0], args[1], version); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Token revoked")
			return nil
		},
	})

	return cmd
}
