package cmd

import (
	"os"

	"github.com/sifranet/sifra-wallet/logx"
	"github.com/spf13/cobra"
)

var (
	configPath   string
	tunablesPath string
)

var rootCmd = &cobra.Command{
	Use:   "sifra-wallet",
	Short: "SIFRA wallet CLI",
	Long:  "Command line client for the SIFRA ledger: accounts, balances and signed transfers.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logx.Error("CMD", "Command execution failed:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to wallet.yml (built-in defaults when empty)")
	rootCmd.PersistentFlags().StringVar(&tunablesPath, "tunables", "", "path to client.ini with low-level HTTP knobs")
}
