package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sifranet/sifra-wallet/logx"
	"github.com/spf13/cobra"
)

type RecoverConfig struct {
	Mnemonic     string
	MnemonicFile string
}

var recoverConfig RecoverConfig

var recoverCmd = &cobra.Command{
	Use:   "recover",
	Short: "Recover wallet keys from a mnemonic",
	Long: `Exchanges a 12-word recovery mnemonic for the wallet's key pair.

The result is printed for immediate use and never stored.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runRecover(); err != nil {
			logx.Error("RECOVER CLI", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(recoverCmd)

	recoverCmd.Flags().StringVarP(&recoverConfig.Mnemonic, "mnemonic", "m", "", "recovery mnemonic phrase")
	recoverCmd.Flags().StringVarP(&recoverConfig.MnemonicFile, "mnemonic-file", "f", "", "file containing the mnemonic phrase")
}

func runRecover() error {
	mnemonic := recoverConfig.Mnemonic
	if mnemonic == "" {
		if recoverConfig.MnemonicFile == "" {
			return fmt.Errorf("either --mnemonic or --mnemonic-file is required")
		}
		raw, err := os.ReadFile(recoverConfig.MnemonicFile)
		if err != nil {
			return err
		}
		mnemonic = strings.TrimSpace(string(raw))
	}

	app, err := newWalletApp()
	if err != nil {
		return err
	}
	defer app.Close()

	resp, err := app.auth.Recover(context.Background(), mnemonic)
	if err != nil {
		return err
	}

	if !resp.WalletExists {
		fmt.Println("No wallet is registered for this mnemonic.")
		return nil
	}
	fmt.Println("Wallet recovered. These keys are not stored; copy them now.")
	fmt.Println("  Public key: ", resp.PublicKey)
	fmt.Println("  Private key:", resp.PrivateKey)
	if resp.Balance != "" {
		fmt.Println("  Balance:    ", resp.Balance, "SFR")
	}
	return nil
}
