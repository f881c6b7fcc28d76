package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rzk3/szurubooru-client/internal/filter"
)

// printJSON renders v as indented JSON on the command's stdout,
// applying the --jq expression when set.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	if flags.JQ != "" {
		data, err = filter.ApplyToJSON(data, flags.JQ)
		if err != nil {
			return err
		}
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
