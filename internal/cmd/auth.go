package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rzk3/szurubooru-client/internal/config"
)

// newAuthCmd returns the auth command with subcommands
func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage authentication credentials",
		Long:  "Configure and manage szurubooru credentials stored securely in your OS keychain.",
	}

	cmd.AddCommand(newAuthLoginCmd())
	cmd.AddCommand(newAuthStatusCmd())
	cmd.AddCommand(newAuthLogoutCmd())
	cmd.AddCommand(newAuthProfilesCmd())

	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	var (
		url      string
		username string
		token    string
		profile  string
		insecure bool
		noVerify bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Save server credentials to the OS keychain",
		Long: strings.TrimSpace(`
Save szurubooru credentials securely to your OS keychain.

You'll need:
- Server URL: Your szurubooru instance URL (e.g. https://booru.example.com)
- Username and user token: create one under Account > Login tokens

Leave username and token empty for anonymous access to a public server.
`),
		Example: strings.TrimSpace(`
  # Authenticated login
  szuru auth login --url https://booru.example.com --auth-username alice --auth-token YOUR_TOKEN

  # Anonymous access to a public server
  szuru auth login --url https://booru.example.com

  # Save to a named profile
  szuru auth login --url https://booru.example.com --auth-username alice --auth-token YOUR_TOKEN --profile home
`),
		RunE: func(cmd *cobra.Command, _ []string) error {
			url = strings.TrimSpace(url)
			if url == "" {
				return fmt.Errorf("--url is required")
			}
			if (username == "") != (token == "") {
				return fmt.Errorf("set both --auth-username and --auth-token, or neither for anonymous access")
			}

			account := config.Account{
				BaseURL:  strings.TrimSuffix(url, "/"),
				Username: strings.TrimSpace(username),
				Token:    strings.TrimSpace(token),
				Insecure: insecure,
			}

			if !noVerify {
				if err := verifyAccount(cmd, account); err != nil {
					return fmt.Errorf("credential check failed: %w", err)
				}
			}

			if err := config.SaveProfile(profile, account); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if account.Anonymous() {
				_, _ = fmt.Fprintf(out, "Saved anonymous access for %s\n", account.BaseURL)
			} else {
				_, _ = fmt.Fprintf(out, "Saved credentials for %s@%s\n", account.Username, account.BaseURL)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "Server URL")
	cmd.Flags().StringVar(&username, "auth-username", "", "Username the token belongs to")
	cmd.Flags().StringVar(&token, "auth-token", "", "User token")
	cmd.Flags().StringVar(&profile, "profile", "", "Profile name to save under (default profile when empty)")
	cmd.Flags().BoolVar(&insecure, "insecure", false, "Store the profile with TLS verification disabled")
	cmd.Flags().BoolVar(&noVerify, "no-verify", false, "Skip the connectivity check before saving")

	return cmd
}

// verifyAccount checks the credentials by fetching server info.
func verifyAccount(cmd *cobra.Command, account config.Account) error {
	client, err := clientForAccount(account)
	if err != nil {
		return err
	}
	_, err = client.Request().GetGlobalInfo(cmd.Context())
	return err
}

func newAuthStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the active profile and server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			account, err := config.LoadAccount()
			if err != nil {
				return err
			}
			current, err := config.CurrentProfile()
			if err != nil {
				current = "default"
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Profile: %s\n", current)
			_, _ = fmt.Fprintf(out, "Server:  %s\n", account.BaseURL)
			if account.Anonymous() {
				_, _ = fmt.Fprintln(out, "Auth:    anonymous")
			} else {
				_, _ = fmt.Fprintf(out, "Auth:    token (user %s)\n", account.Username)
			}
			return nil
		},
	}
}

func newAuthLogoutCmd() *cobra.Command {
	var profile string

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Remove stored credentials",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.DeleteProfile(profile); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Credentials removed")
			return nil
		},
	}

	cmd.Flags().StringVar(&profile, "profile", "", "Profile to remove (default profile when empty)")
	return cmd
}

func newAuthProfilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List stored profiles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			profiles, err := config.ListProfiles()
			if err != nil {
				return err
			}
			current, err := config.CurrentProfile()
			if err != nil {
				current = ""
			}

			out := cmd.OutOrStdout()
			if len(profiles) == 0 {
				_, _ = fmt.Fprintln(out, "No profiles configured - run 'szuru auth login' first")
				return nil
			}
			for _, p := range profiles {
				marker := " "
				if p == current {
					marker = "*"
				}
				_, _ = fmt.Fprintf(out, "%s %s\n", marker, p)
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "use <profile>",
		Short: "Switch the active profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.LoadProfile(args[0]); err != nil {
				return err
			}
			if err := config.SetCurrentProfile(args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Switched to profile %s\n", args[0])
			return nil
		},
	})

	return cmd
}
