package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	catalogx "github.com/tanpawarit/catalog-agent/agent/catalog"
	configx "github.com/tanpawarit/catalog-agent/pkg/config"
)

// openStore opens the configured catalog. The returned func releases it.
func openStore(cmd *cobra.Command) (catalogx.Store, func() error, error) {
	ctx := cmd.Context()
	cfg, err := configx.New[catalogx.Config]("CATALOG")
	if err != nil {
		return nil, nil, fmt.Errorf("load catalog config: %w", err)
	}
	if path := getGlobalOptions(ctx).StorePath; path != "" {
		cfg.Path = path
	}

	store, err := catalogx.Open(ctx, *cfg, getFileSystem(ctx))
	if err != nil {
		return nil, nil, err
	}
	release := func() error { return nil }
	if closer, ok := store.(io.Closer); ok {
		release = closer.Close
	}
	return store, release, nil
}

func NewListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List all products",
		GroupID: "catalog",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, release, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer release()

			products, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if products == nil {
				products = []catalogx.Product{}
			}
			return render(cmd.OutOrStdout(), products, getGlobalOptions(cmd.Context()).Output)
		},
	}
}

func NewGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <id>",
		Short:   "Show one product by id",
		GroupID: "catalog",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}

			store, release, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer release()

			product, err := store.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), product, getGlobalOptions(cmd.Context()).Output)
		},
	}
}

func NewAddCmd() *cobra.Command {
	var outOfStock bool
	cmd := &cobra.Command{
		Use:     "add <name> <price> <category>",
		Short:   "Add a product",
		GroupID: "catalog",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			price, err := strconv.ParseFloat(strings.TrimSpace(args[1]), 64)
			if err != nil {
				return fmt.Errorf("invalid price %q", args[1])
			}

			store, release, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer release()

			product, err := store.Add(cmd.Context(), catalogx.NewProduct{
				Name:     args[0],
				Price:    price,
				Category: args[2],
				InStock:  !outOfStock,
			})
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), product, getGlobalOptions(cmd.Context()).Output)
		},
	}
	cmd.Flags().BoolVar(&outOfStock, "out-of-stock", false, "mark the product as out of stock")
	return cmd
}

func NewStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "stats",
		Short:   "Show product count and average price",
		GroupID: "catalog",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, release, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer release()

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), stats, getGlobalOptions(cmd.Context()).Output)
		},
	}
}
