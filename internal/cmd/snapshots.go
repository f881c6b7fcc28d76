package cmd

import (
	"github.com/spf13/cobra"
)

func newSnapshotsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "Browse the server's change history",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list [query...]",
		Short: "Search snapshots",
		Example: `  szuru snapshots list type:post
  szuru snapshots list user:alice operation:deleted`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			result, err := newRequest(client).ListSnapshots(cmd.Context(), parseQueryTokens(args))
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	})

	return cmd
}
