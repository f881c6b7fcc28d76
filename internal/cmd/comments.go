package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	szurubooru "github.com/rzk3/szurubooru-client"
)

func newCommentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comments",
		Short: "Browse and write comments",
	}

	cmd.AddCommand(newCommentsListCmd())
	cmd.AddCommand(newCommentsCreateCmd())
	cmd.AddCommand(newCommentsRateCmd())

	return cmd
}

func newCommentsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [query...]",
		Short: "Search comments",
		Example: `  szuru comments list post:42
  szuru comments list user:alice sort:creation-date`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			result, err := newRequest(client).ListComments(cmd.Context(), parseQueryTokens(args))
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}
}

func newCommentsCreateCmd() *cobra.Command {
	var postID int

	cmd := &cobra.Command{
		Use:   "create <text>",
		Short: "Comment on a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if postID <= 0 {
				return fmt.Errorf("--post is required")
			}
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			comment, err := newRequest(client).CreateComment(cmd.Context(), &szurubooru.CreateUpdateComment{
				Text:   args[0],
				PostID: postID,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, comment)
		},
	}

	cmd.Flags().IntVar(&postID, "post", 0, "Post ID to comment on")
	return cmd
}

func newCommentsRateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rate <id> <score>",
		Short: "Rate a comment (-1, 0 or 1)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid comment ID %q: must be a number", args[0])
			}
			score, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid score %q: must be -1, 0 or 1", args[1])
			}
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			comment, err := newRequest(client).RateComment(cmd.Context(), id, score)
			if err != nil {
				return err
			}
			return printJSON(cmd, comment)
		},
	}
}
