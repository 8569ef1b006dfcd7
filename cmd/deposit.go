package cmd

import (
	"context"
	"fmt"

	"github.com/sifranet/sifra-wallet/logx"
	"github.com/sifranet/sifra-wallet/types"
	"github.com/spf13/cobra"
)

var depositAmount string

var depositCmd = &cobra.Command{
	Use:   "deposit",
	Short: "Request a deposit to the wallet",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runDeposit(); err != nil {
			logx.Error("DEPOSIT CLI", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(depositCmd)

	depositCmd.Flags().StringVarP(&depositAmount, "amount", "a", "", "amount in SFR, decimal string")
}

func runDeposit() error {
	app, err := newWalletApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.requireAuth(); err != nil {
		return err
	}

	resp, err := app.gw.Deposit(context.Background(), types.DepositRequest{
		Address: app.sessions.WalletAddress(),
		Amount:  depositAmount,
	})
	if err != nil {
		return err
	}
	fmt.Println("Deposit submitted, tx hash:", resp.TxHash)
	if resp.Message != "" {
		fmt.Println(resp.Message)
	}
	return nil
}
