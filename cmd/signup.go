package cmd

import (
	"context"
	"fmt"

	"github.com/sifranet/sifra-wallet/logx"
	"github.com/sifranet/sifra-wallet/types"
	"github.com/spf13/cobra"
)

type SignupConfig struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	TransactionPin  string
}

var signupConfig SignupConfig

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Register a new account and wallet",
	Long: `Registers a new account with the ledger service and creates its wallet.

The private key and recovery mnemonic are printed exactly once and never
stored anywhere. Write them down before closing the terminal.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSignup(); err != nil {
			logx.Error("SIGNUP CLI", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(signupCmd)

	signupCmd.Flags().StringVarP(&signupConfig.Username, "username", "u", "", "account username")
	signupCmd.Flags().StringVarP(&signupConfig.Email, "email", "e", "", "account email")
	signupCmd.Flags().StringVarP(&signupConfig.Password, "password", "p", "", "account password")
	signupCmd.Flags().StringVar(&signupConfig.ConfirmPassword, "confirm-password", "", "password confirmation (defaults to --password)")
	signupCmd.Flags().StringVar(&signupConfig.TransactionPin, "pin", "", "4-digit transaction PIN")
}

func runSignup() error {
	app, err := newWalletApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if signupConfig.ConfirmPassword == "" {
		signupConfig.ConfirmPassword = signupConfig.Password
	}

	resp, err := app.auth.Signup(context.Background(), types.SignupRequest{
		Username:        signupConfig.Username,
		Email:           signupConfig.Email,
		Password:        signupConfig.Password,
		ConfirmPassword: signupConfig.ConfirmPassword,
		TransactionPin:  signupConfig.TransactionPin,
	})
	if err != nil {
		return err
	}

	fmt.Println("Account created for", resp.User.Username)
	fmt.Println("Wallet address:", resp.Wallet.Address)
	fmt.Println()
	fmt.Println("The following are shown once and never stored. Write them down now.")
	fmt.Println("  Private key:", resp.Wallet.PrivateKey)
	fmt.Println("  Mnemonic:   ", resp.Wallet.Mnemonic)
	if resp.Warning != "" {
		fmt.Println()
		fmt.Println(resp.Warning)
	}
	return nil
}
