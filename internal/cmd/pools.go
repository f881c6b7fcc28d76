package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	szurubooru "github.com/rzk3/szurubooru-client"
	"github.com/rzk3/szurubooru-client/internal/resolve"
)

func newPoolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pools",
		Short: "Browse and manage pools",
	}

	cmd.AddCommand(newPoolsListCmd())
	cmd.AddCommand(newPoolsGetCmd())
	cmd.AddCommand(newPoolsCreateCmd())
	cmd.AddCommand(newPoolsCategoriesCmd())

	return cmd
}

func newPoolsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [query...]",
		Short: "Search pools",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			result, err := newRequest(client).ListPools(cmd.Context(), parseQueryTokens(args))
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}
}

// resolvePoolID accepts either a numeric ID or a pool name, fuzzy
// matched against the server's pool list.
func resolvePoolID(cmd *cobra.Command, client *szurubooru.Client, arg string) (int, error) {
	if id, err := strconv.Atoi(arg); err == nil {
		return id, nil
	}

	result, err := client.WithFields("id", "names").WithLimit(100).
		ListPools(cmd.Context(), []szurubooru.QueryToken{szurubooru.AnonymousToken("*" + arg + "*")})
	if err != nil {
		return 0, err
	}
	var items []resolve.Named
	for _, pool := range result.Results {
		for _, name := range pool.Names {
			items = append(items, resolve.Named{ID: pool.ID, Name: name})
		}
	}
	id, err := resolve.FuzzyMatch(arg, items)
	if err != nil {
		return 0, fmt.Errorf("resolving pool %q: %w", arg, err)
	}
	return id, nil
}

func newPoolsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id-or-name>",
		Short: "Show a pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			id, err := resolvePoolID(cmd, client, args[0])
			if err != nil {
				return err
			}
			pool, err := newRequest(client).GetPool(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd, pool)
		},
	}
}

func newPoolsCreateCmd() *cobra.Command {
	var (
		category    string
		description string
		posts       []int
	)

	cmd := &cobra.Command{
		Use:   "create <name> [alias...]",
		Short: "Create a pool",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			pool, err := newRequest(client).CreatePool(cmd.Context(), &szurubooru.CreateUpdatePool{
				Names:       args,
				Category:    category,
				Description: description,
				Posts:       posts,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, pool)
		},
	}

	cmd.Flags().StringVar(&category, "category", "default", "Pool category")
	cmd.Flags().StringVar(&description, "description", "", "Pool description (markdown)")
	cmd.Flags().IntSliceVar(&posts, "posts", nil, "Ordered post IDs")

	return cmd
}

func newPoolsCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List pool categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			result, err := newRequest(client).ListPoolCategories(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, result.Results)
		},
	}
}
