package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mcdev12/clubmanager/go/internal/models"
	"github.com/mcdev12/clubmanager/go/internal/transfer"
)

var (
	filterName     string
	filterPosition string
	filterMinPrice string
	filterMaxPrice string

	togglePrice string
)

// marketCmd groups the transfer market commands
var marketCmd = &cobra.Command{
	Use:   "market",
	Short: "Browse and trade on the transfer market",
	Long: `Browse and trade on the transfer market.

Available subcommands:
  list   - Show players on the transfer list
  mine   - Show your roster with listing state
  price  - Show what a listed player costs
  toggle - Add a player to, or remove it from, the transfer list
  buy    - Buy a listed player at 95% of the asking price`,
}

var marketListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show players on the transfer list",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		criteria, err := filterFromFlags()
		if err != nil {
			return err
		}

		return withMarket(cmd, func(ctx context.Context, app *transfer.App) error {
			printListings(cmd.OutOrStdout(), app.Store().Filtered(criteria), time.Now())
			return nil
		})
	},
}

var marketMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Show your roster with listing state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMarket(cmd, func(ctx context.Context, app *transfer.App) error {
			printPlayers(cmd.OutOrStdout(), app.Store().OwnedPlayers())
			return nil
		})
	},
}

var marketPriceCmd = &cobra.Command{
	Use:   "price <player-id>",
	Short: "Show what a listed player costs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMarket(cmd, func(ctx context.Context, app *transfer.App) error {
			listing, ok := app.Store().ListingFor(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", transfer.ErrListingNotFound, args[0])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render(listing.Player.Name))
			fmt.Fprintf(out, "Asking price: %s\n", models.FormatMoney(listing.Price))
			fmt.Fprintf(out, "You pay:      %s\n", models.FormatMoney(transfer.EffectivePrice(listing.Price)))
			return nil
		})
	},
}

var marketToggleCmd = &cobra.Command{
	Use:   "toggle <player-id>",
	Short: "Add a player to, or remove it from, the transfer list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMarket(cmd, func(ctx context.Context, app *transfer.App) error {
			playerID := args[0]
			if togglePrice != "" {
				price, err := decimal.NewFromString(togglePrice)
				if err != nil {
					return fmt.Errorf("invalid --price %q: %w", togglePrice, err)
				}
				if err := app.SetAskingPrice(playerID, price); err != nil {
					return err
				}
			}

			result, err := app.TogglePlayer(ctx, playerID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		})
	},
}

var marketBuyCmd = &cobra.Command{
	Use:   "buy <player-id>",
	Short: "Buy a listed player at 95% of the asking price",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMarket(cmd, func(ctx context.Context, app *transfer.App) error {
			result, err := app.BuyListed(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Paid %s\n", result.Message, models.FormatMoney(result.PricePaid))
			return nil
		})
	},
}

func init() {
	marketListCmd.Flags().StringVar(&filterName, "name", "", "Only players whose name contains this text")
	marketListCmd.Flags().StringVar(&filterPosition, "position", "", "Goalkeeper, Defender, Midfielder or Attacker")
	marketListCmd.Flags().StringVar(&filterMinPrice, "min-price", "0", "Lowest asking price")
	marketListCmd.Flags().StringVar(&filterMaxPrice, "max-price", transfer.DefaultMaxFilterPrice.String(), "Highest asking price")

	marketToggleCmd.Flags().StringVar(&togglePrice, "price", "", "Asking price to list the player at")

	marketCmd.AddCommand(marketListCmd)
	marketCmd.AddCommand(marketMineCmd)
	marketCmd.AddCommand(marketPriceCmd)
	marketCmd.AddCommand(marketToggleCmd)
	marketCmd.AddCommand(marketBuyCmd)
}

// withMarket loads the market into a fresh store before running fn
func withMarket(cmd *cobra.Command, fn func(ctx context.Context, app *transfer.App) error) error {
	return withServices(cmd, func(ctx context.Context, s *Services) error {
		if err := s.Transfer.Store().RefreshMarket(ctx); err != nil {
			return err
		}
		return fn(ctx, s.Transfer)
	})
}

func filterFromFlags() (transfer.FilterCriteria, error) {
	criteria := transfer.DefaultFilterCriteria()
	criteria.Name = filterName

	if filterPosition != "" {
		pos, err := models.ParsePosition(filterPosition)
		if err != nil {
			return criteria, err
		}
		criteria.Position = pos
	}

	var err error
	if criteria.MinPrice, err = decimal.NewFromString(filterMinPrice); err != nil {
		return criteria, fmt.Errorf("invalid --min-price %q: %w", filterMinPrice, err)
	}
	if criteria.MaxPrice, err = decimal.NewFromString(filterMaxPrice); err != nil {
		return criteria, fmt.Errorf("invalid --max-price %q: %w", filterMaxPrice, err)
	}
	return criteria, nil
}
