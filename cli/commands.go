package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kbukum/tripcost/budget"
	"github.com/kbukum/tripcost/version"
)

func intArg(name, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", name, value)
	}
	return n, nil
}

func categoryCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "category <id>",
		Short: "Show one cost category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := intArg("id", args[0])
			if err != nil {
				return err
			}
			return g.run(func(ctx context.Context, c *budget.Client) (any, error) {
				return one(c.Category(ctx, id))
			})(cmd, args)
		},
	}
}

func categoriesCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List cost categories",
		Args:  cobra.NoArgs,
		RunE: g.run(func(ctx context.Context, c *budget.Client) (any, error) {
			return many(c.Categories(ctx))
		}),
	}
}

func currencyCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "currency <code>",
		Short: "Show one currency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.run(func(ctx context.Context, c *budget.Client) (any, error) {
				return one(c.Currency(ctx, args[0]))
			})(cmd, args)
		},
	}
}

func currenciesCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "currencies",
		Short: "List currencies",
		Args:  cobra.NoArgs,
		RunE: g.run(func(ctx context.Context, c *budget.Client) (any, error) {
			return many(c.Currencies(ctx))
		}),
	}
}

func locationCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "location <geonameid>",
		Short: "Show one location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := intArg("geonameid", args[0])
			if err != nil {
				return err
			}
			return g.run(func(ctx context.Context, c *budget.Client) (any, error) {
				return one(c.Location(ctx, id))
			})(cmd, args)
		},
	}
}

func locationInfoCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "location-info <geonameid>",
		Short: "Show one location with its costs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := intArg("geonameid", args[0])
			if err != nil {
				return err
			}
			return g.run(func(ctx context.Context, c *budget.Client) (any, error) {
				return one(c.LocationInfo(ctx, id))
			})(cmd, args)
		},
	}
}

func searchLocationsCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "search-locations <term>",
		Short: "Search locations by name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := strings.Join(args, " ")
			return g.run(func(ctx context.Context, c *budget.Client) (any, error) {
				return many(c.SearchLocations(ctx, term))
			})(cmd, args)
		},
	}
}

func countryCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "country <code>",
		Short: "Show one country with its costs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.run(func(ctx context.Context, c *budget.Client) (any, error) {
				return one(c.CountryInfo(ctx, args[0]))
			})(cmd, args)
		},
	}
}

func searchCountriesCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "search-countries <term>",
		Short: "Search countries by name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := strings.Join(args, " ")
			return g.run(func(ctx context.Context, c *budget.Client) (any, error) {
				return many(c.SearchCountries(ctx, term))
			})(cmd, args)
		},
	}
}

func costsCmd(g *globalFlags) *cobra.Command {
	parent := &cobra.Command{
		Use:   "costs",
		Short: "List per-category costs",
	}
	parent.AddCommand(&cobra.Command{
		Use:   "country <code>",
		Short: "Costs of a country",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.run(func(ctx context.Context, c *budget.Client) (any, error) {
				return many(c.CountryCosts(ctx, args[0]))
			})(cmd, args)
		},
	}, &cobra.Command{
		Use:   "location <geonameid>",
		Short: "Costs of a location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := intArg("geonameid", args[0])
			if err != nil {
				return err
			}
			return g.run(func(ctx context.Context, c *budget.Client) (any, error) {
				return many(c.LocationCosts(ctx, id))
			})(cmd, args)
		},
	})
	return parent
}

func convertCmd(g *globalFlags) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "convert <amount>",
		Short: "Convert an amount between currencies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseFloat(strings.TrimSpace(args[0]), 64)
			if err != nil {
				return fmt.Errorf("amount must be a number, got %q", args[0])
			}
			return g.run(func(ctx context.Context, c *budget.Client) (any, error) {
				v, err := c.ConvertCurrency(ctx, amount, from, to)
				if err != nil || v == nil {
					return nil, err
				}
				return *v, nil
			})(cmd, args)
		},
	}

	cmd.Flags().StringVar(&from, "from", budget.DefaultFromCurrency, "source currency code")
	cmd.Flags().StringVar(&to, "to", budget.DefaultToCurrency, "target currency code")
	return cmd
}

func rawCmd(g *globalFlags) *cobra.Command {
	var params []string

	cmd := &cobra.Command{
		Use:   "raw <path>",
		Short: "Fetch any API path and print the unwrapped data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := make(map[string]string, len(params))
			for _, p := range params {
				k, v, ok := strings.Cut(p, "=")
				if !ok || k == "" {
					return fmt.Errorf("param must be key=value, got %q", p)
				}
				query[k] = v
			}
			return g.run(func(ctx context.Context, c *budget.Client) (any, error) {
				return c.Raw(ctx, args[0], query)
			})(cmd, args)
		},
	}

	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "query parameter key=value (repeatable)")
	return cmd
}

func versionCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return render(cmd.OutOrStdout(), version.Get(), g.output, g.query)
		},
	}
}
