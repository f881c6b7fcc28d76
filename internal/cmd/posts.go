package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	szurubooru "github.com/rzk3/szurubooru-client"
)

func newPostsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Search, upload and manage posts",
	}

	cmd.AddCommand(newPostsListCmd())
	cmd.AddCommand(newPostsGetCmd())
	cmd.AddCommand(newPostsRateCmd())
	cmd.AddCommand(newPostsFavoriteCmd())
	cmd.AddCommand(newPostsUnfavoriteCmd())
	cmd.AddCommand(newPostsUploadCmd())
	cmd.AddCommand(newPostsDownloadCmd())
	cmd.AddCommand(newPostsReverseSearchCmd())
	cmd.AddCommand(newPostsFeaturedCmd())
	cmd.AddCommand(newPostsDeleteCmd())

	return cmd
}

func parsePostID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid post ID %q: must be a number", arg)
	}
	return id, nil
}

func newPostsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [query...]",
		Short: "Search posts",
		Example: `  szuru posts list safety:safe sort:random
  szuru posts list tag_you_like -- -tag_you_dislike`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			result, err := newRequest(client).ListPosts(cmd.Context(), parseQueryTokens(args))
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}
}

func newPostsGetCmd() *cobra.Command {
	var around bool

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePostID(args[0])
			if err != nil {
				return err
			}
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			if around {
				result, err := newRequest(client).GetAroundPost(cmd.Context(), id)
				if err != nil {
					return err
				}
				return printJSON(cmd, result)
			}
			post, err := newRequest(client).GetPost(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd, post)
		},
	}

	cmd.Flags().BoolVar(&around, "around", false, "Show the neighboring post IDs instead of the post")
	return cmd
}

func newPostsRateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rate <id> <score>",
		Short: "Rate a post (-1, 0 or 1)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePostID(args[0])
			if err != nil {
				return err
			}
			score, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid score %q: must be -1, 0 or 1", args[1])
			}
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			post, err := newRequest(client).RatePost(cmd.Context(), id, score)
			if err != nil {
				return err
			}
			return printJSON(cmd, post)
		},
	}
	return cmd
}

func newPostsFavoriteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "favorite <id>",
		Short: "Add a post to your favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePostID(args[0])
			if err != nil {
				return err
			}
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			post, err := newRequest(client).FavoritePost(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd, post)
		},
	}
}

func newPostsUnfavoriteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unfavorite <id>",
		Short: "Remove a post from your favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePostID(args[0])
			if err != nil {
				return err
			}
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			post, err := newRequest(client).UnfavoritePost(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd, post)
		},
	}
}

func newPostsUploadCmd() *cobra.Command {
	var (
		safety    string
		source    string
		tags      []string
		fromURL   string
		thumbnail string
		anonymous bool
	)

	cmd := &cobra.Command{
		Use:   "upload [file]",
		Short: "Upload a new post from a file or URL",
		Example: `  szuru posts upload image.png --safety safe --tags landscape,sky
  szuru posts upload --from-url https://example.com/image.png --safety sketchy`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (len(args) == 0) == (fromURL == "") {
				return fmt.Errorf("provide either a file argument or --from-url")
			}

			client, err := newAPIClient()
			if err != nil {
				return err
			}
			post := &szurubooru.CreateUpdatePost{
				Tags:      tags,
				Safety:    szurubooru.PostSafety(safety),
				Source:    source,
				Anonymous: anonymous,
			}

			var created *szurubooru.Post
			if fromURL != "" {
				post.ContentURL = fromURL
				created, err = newRequest(client).CreatePostFromURL(cmd.Context(), post)
			} else {
				created, err = newRequest(client).CreatePostFromFilePath(cmd.Context(), args[0], thumbnail, post)
			}
			if err != nil {
				return err
			}
			return printJSON(cmd, created)
		},
	}

	cmd.Flags().StringVar(&safety, "safety", "", "Post safety: safe|sketchy|unsafe (required)")
	cmd.Flags().StringVar(&source, "source", "", "Post source URL")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "Tag names to apply")
	cmd.Flags().StringVar(&fromURL, "from-url", "", "Upload from a URL instead of a local file")
	cmd.Flags().StringVar(&thumbnail, "thumbnail", "", "Custom thumbnail file")
	cmd.Flags().BoolVar(&anonymous, "anonymous", false, "Hide your name from the post")

	return cmd
}

func newPostsDownloadCmd() *cobra.Command {
	var (
		output    string
		thumbnail bool
	)

	cmd := &cobra.Command{
		Use:   "download <id>",
		Short: "Download a post's content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePostID(args[0])
			if err != nil {
				return err
			}
			if output == "" {
				return fmt.Errorf("--output is required")
			}

			client, err := newAPIClient()
			if err != nil {
				return err
			}
			req := newRequest(client)
			post, err := req.GetPost(cmd.Context(), id)
			if err != nil {
				return err
			}
			if thumbnail {
				err = req.DownloadPostThumbnailToPath(cmd.Context(), post, output)
			} else {
				err = req.DownloadPostContentToPath(cmd.Context(), post, output)
			}
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved post %d to %s\n", id, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "O", "", "Destination file path")
	cmd.Flags().BoolVar(&thumbnail, "thumbnail", false, "Download the thumbnail instead of the content")

	return cmd
}

func newPostsReverseSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reverse-search <file>",
		Short: "Find posts visually similar to a local file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			result, err := newRequest(client).ReverseSearchFilePath(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}
}

func newPostsFeaturedCmd() *cobra.Command {
	var set int

	cmd := &cobra.Command{
		Use:   "featured",
		Short: "Show or set the featured post",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("set") {
				post, err := newRequest(client).SetFeaturedPost(cmd.Context(), set)
				if err != nil {
					return err
				}
				return printJSON(cmd, post)
			}
			post, err := newRequest(client).GetFeaturedPost(cmd.Context())
			if err != nil {
				return err
			}
			if post == nil {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No post is currently featured")
				return nil
			}
			return printJSON(cmd, post)
		},
	}

	cmd.Flags().IntVar(&set, "set", 0, "Feature the post with this ID")
	return cmd
}

func newPostsDeleteCmd() *cobra.Command {
	var version int

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePostID(args[0])
			if err != nil {
				return err
			}
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("resource-version") {
				post, err := newRequest(client).GetPost(cmd.Context(), id)
				if err != nil {
					return err
				}
				version = post.Version
			}
			if err := newRequest(client).DeletePost(cmd.Context(), id, version); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted post %d\n", id)
			return nil
		},
	}

	cmd.Flags().IntVar(&version, "resource-version", 0, "Expected resource version (fetched when omitted)")
	return cmd
}
