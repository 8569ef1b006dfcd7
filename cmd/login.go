package cmd

import (
	"context"
	"fmt"

	"github.com/sifranet/sifra-wallet/logx"
	"github.com/sifranet/sifra-wallet/types"
	"github.com/spf13/cobra"
)

type LoginConfig struct {
	Username string
	Password string
}

var loginConfig LoginConfig

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to an existing account",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runLogin(); err != nil {
			logx.Error("LOGIN CLI", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().StringVarP(&loginConfig.Username, "username", "u", "", "account username")
	loginCmd.Flags().StringVarP(&loginConfig.Password, "password", "p", "", "account password")
}

func runLogin() error {
	app, err := newWalletApp()
	if err != nil {
		return err
	}
	defer app.Close()

	resp, err := app.auth.Login(context.Background(), types.LoginRequest{
		Username: loginConfig.Username,
		Password: loginConfig.Password,
	})
	if err != nil {
		return err
	}

	fmt.Println("Logged in as", resp.User.Username)
	fmt.Println("Wallet address:", resp.Wallet.Address)
	fmt.Println("Balance:", resp.Wallet.Balance, "SFR")
	return nil
}
