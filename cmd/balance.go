package cmd

import (
	"context"
	"fmt"

	"github.com/sifranet/sifra-wallet/logx"
	"github.com/spf13/cobra"
)

var balanceShowPrice bool

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show the wallet balance",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runBalance(); err != nil {
			logx.Error("BALANCE CLI", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(balanceCmd)

	balanceCmd.Flags().BoolVar(&balanceShowPrice, "price", false, "also show the current SFR market price")
}

func runBalance() error {
	app, err := newWalletApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.requireAuth(); err != nil {
		return err
	}

	ctx := context.Background()
	resp, err := app.gw.Balance(ctx, app.sessions.WalletAddress())
	if err != nil {
		return err
	}
	fmt.Println("Address:", resp.Address)
	fmt.Println("Balance:", resp.Balance, "SFR")

	if balanceShowPrice {
		price, err := app.gw.MarketPrice(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Market price: %.4f USD/SFR\n", price.CurrentPriceUSD)
	}
	return nil
}
