// Package cmd implements the szuru command tree.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	szurubooru "github.com/rzk3/szurubooru-client"
	"github.com/rzk3/szurubooru-client/internal/debug"
)

// rootFlags holds global CLI flags
type rootFlags struct {
	JQ       string
	Fields   string
	Limit    int
	Offset   int
	Debug    bool
	Insecure bool
	Timeout  time.Duration
	URL      string
	Username string
	Token    string
}

// flags holds the global command flags. This is package-level mutable
// state that MUST be reset at the start of every Execute() call. Tests
// depend on this reset to get clean state.
var flags = rootFlags{
	Limit:   -1,
	Offset:  -1,
	Timeout: szurubooru.DefaultTimeout,
}

// loadSzuruEnv loads environment variables from ~/.config/szuru/.env if
// the file exists. Variables already set in the environment are not
// overwritten, so explicit exports always take precedence.
func loadSzuruEnv() {
	dir, err := os.UserConfigDir()
	if err != nil {
		return
	}
	path := filepath.Join(dir, "szuru", ".env")
	if _, err := os.Stat(path); err != nil {
		return
	}
	_ = godotenv.Load(path)
}

// Execute runs the root command
func Execute(ctx context.Context, args []string) error {
	loadSzuruEnv()

	// Reset flags to defaults for each execution. This is critical for
	// test isolation — see the invariant comment on the flags
	// declaration above.
	flags = rootFlags{
		Limit:   -1,
		Offset:  -1,
		Timeout: szurubooru.DefaultTimeout,
	}

	root := &cobra.Command{
		Use:           "szuru",
		Short:         "CLI for szurubooru image boards",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if flags.Limit != -1 && flags.Limit < 0 {
				return fmt.Errorf("--limit must be >= 0")
			}
			if flags.Offset != -1 && flags.Offset < 0 {
				return fmt.Errorf("--offset must be >= 0")
			}

			debug.SetupLogger(flags.Debug)
			ctx = debug.WithDebug(ctx, flags.Debug)

			cmd.SetContext(ctx)
			return nil
		},
	}

	root.SetContext(ctx)
	root.SetArgs(args)

	root.PersistentFlags().StringVar(&flags.JQ, "jq", "", "jq expression to filter JSON output")
	root.PersistentFlags().StringVar(&flags.Fields, "fields", "", "Comma-separated resource fields to request")
	root.PersistentFlags().IntVar(&flags.Limit, "limit", -1, "Maximum number of results per page")
	root.PersistentFlags().IntVar(&flags.Offset, "offset", -1, "Number of results to skip")
	root.PersistentFlags().BoolVar(&flags.Debug, "debug", false, "Enable debug logging")
	root.PersistentFlags().BoolVar(&flags.Insecure, "insecure", false, "Skip TLS certificate verification")
	root.PersistentFlags().DurationVar(&flags.Timeout, "timeout", flags.Timeout, "HTTP request timeout (e.g., 30s, 2m)")
	root.PersistentFlags().StringVar(&flags.URL, "url", "", "Server URL (overrides profile and SZURU_BASE_URL)")
	root.PersistentFlags().StringVar(&flags.Username, "username", "", "Username for token auth (overrides profile)")
	root.PersistentFlags().StringVar(&flags.Token, "token", "", "User token (overrides profile)")

	root.AddCommand(newAuthCmd())
	root.AddCommand(newTagsCmd())
	root.AddCommand(newPostsCmd())
	root.AddCommand(newPoolsCmd())
	root.AddCommand(newCommentsCmd())
	root.AddCommand(newUsersCmd())
	root.AddCommand(newInfoCmd())
	root.AddCommand(newSnapshotsCmd())
	root.AddCommand(newRawCmd())
	root.AddCommand(newBulkCmd())
	root.AddCommand(newCacheCmd())
	root.AddCommand(newVersionCmd())

	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		return err
	}
	return nil
}
