package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	szurubooru "github.com/rzk3/szurubooru-client"
	"github.com/rzk3/szurubooru-client/internal/cache"
	"github.com/rzk3/szurubooru-client/internal/resolve"
)

// parseQueryTokens turns positional search arguments into query
// tokens. "key:value" becomes a named token, a bare word an anonymous
// one, and a leading "-" negates the token. Sort values pass through
// unescaped.
func parseQueryTokens(args []string) []szurubooru.QueryToken {
	var tokens []szurubooru.QueryToken
	for _, arg := range args {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			continue
		}
		negate := strings.HasPrefix(arg, "-")
		if negate {
			arg = arg[1:]
		}
		key, value, found := strings.Cut(arg, ":")
		var tok szurubooru.QueryToken
		switch {
		case !found:
			tok = szurubooru.AnonymousToken(arg)
		case key == "sort":
			tok = szurubooru.SortToken(value)
		case key == "special":
			tok = szurubooru.SpecialToken(value)
		default:
			tok = szurubooru.Token(key, value)
		}
		if negate {
			tok = tok.Negate()
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

func newTagsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Manage tags and tag categories",
	}

	cmd.AddCommand(newTagsListCmd())
	cmd.AddCommand(newTagsGetCmd())
	cmd.AddCommand(newTagsCreateCmd())
	cmd.AddCommand(newTagsDeleteCmd())
	cmd.AddCommand(newTagsMergeCmd())
	cmd.AddCommand(newTagsSiblingsCmd())
	cmd.AddCommand(newTagsResolveCmd())
	cmd.AddCommand(newTagsCategoriesCmd())

	return cmd
}

func newTagsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [query...]",
		Short: "Search tags",
		Example: strings.TrimSpace(`
  szuru tags list
  szuru tags list category:character sort:usages
  szuru tags list -- -usage-count:0`),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			result, err := newRequest(client).ListTags(cmd.Context(), parseQueryTokens(args))
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}
}

func newTagsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <name>",
		Short: "Show a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			tag, err := newRequest(client).GetTag(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, tag)
		},
	}
}

func newTagsCreateCmd() *cobra.Command {
	var (
		category    string
		description string
		implies     []string
		suggests    []string
	)

	cmd := &cobra.Command{
		Use:   "create <name> [alias...]",
		Short: "Create a tag",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			tag, err := newRequest(client).CreateTag(cmd.Context(), &szurubooru.CreateUpdateTag{
				Names:        args,
				Category:     category,
				Description:  description,
				Implications: implies,
				Suggestions:  suggests,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, tag)
		},
	}

	cmd.Flags().StringVar(&category, "category", "default", "Tag category")
	cmd.Flags().StringVar(&description, "description", "", "Tag description (markdown)")
	cmd.Flags().StringSliceVar(&implies, "implies", nil, "Implied tag names")
	cmd.Flags().StringSliceVar(&suggests, "suggests", nil, "Suggested tag names")

	return cmd
}

func newTagsDeleteCmd() *cobra.Command {
	var version int

	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("resource-version") {
				tag, err := newRequest(client).GetTag(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				version = tag.Version
			}
			if err := newRequest(client).DeleteTag(cmd.Context(), args[0], version); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted tag %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().IntVar(&version, "resource-version", 0, "Expected resource version (fetched when omitted)")
	return cmd
}

func newTagsMergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge <remove> <merge-to>",
		Short: "Merge one tag into another",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			req := newRequest(client)
			remove, err := req.GetTag(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			target, err := req.GetTag(cmd.Context(), args[1])
			if err != nil {
				return err
			}
			merged, err := req.MergeTags(cmd.Context(), &szurubooru.MergeTags{
				RemoveVersion:  remove.Version,
				Remove:         args[0],
				MergeToVersion: target.Version,
				MergeTo:        args[1],
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, merged)
		},
	}
}

func newTagsSiblingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "siblings <name>",
		Short: "Show tags that often appear together with a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			siblings, err := newRequest(client).GetTagSiblings(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, siblings)
		},
	}
}

// newTagsResolveCmd fuzzy-matches a partial name against the server's
// tag list and prints the canonical tag.
func newTagsResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <partial-name>",
		Short: "Resolve a partial tag name to its canonical form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			req := client.WithFields("names").WithLimit(100)
			result, err := req.ListTags(cmd.Context(), parseQueryTokens([]string{"*" + args[0] + "*"}))
			if err != nil {
				return err
			}
			var names []string
			for _, tag := range result.Results {
				names = append(names, tag.Names...)
			}
			name, err := resolve.FuzzyMatchName(args[0], names)
			if err != nil {
				return err
			}
			tag, err := newRequest(client).GetTag(cmd.Context(), name)
			if err != nil {
				return err
			}
			return printJSON(cmd, tag)
		},
	}
}

func newTagsCategoriesCmd() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List tag categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}

			var store *cache.Store
			if dir, err := cache.DefaultDir(); err == nil {
				store = cache.NewStore(dir, "tag-categories", client.BaseURL())
			}

			if store != nil && !noCache {
				var cached []szurubooru.TagCategory
				if store.Get(&cached) {
					return printJSON(cmd, cached)
				}
			}

			result, err := newRequest(client).ListTagCategories(cmd.Context())
			if err != nil {
				return err
			}
			if store != nil {
				store.Put(result.Results)
			}
			return printJSON(cmd, result.Results)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the local category cache")
	return cmd
}
