package cmd

import (
	"context"

	"github.com/sifranet/sifra-wallet/logx"
	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the local session",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runLogout(); err != nil {
			logx.Error("LOGOUT CLI", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout() error {
	app, err := newWalletApp()
	if err != nil {
		return err
	}
	defer app.Close()

	// Best-effort against the backend; the local session is cleared either way.
	app.auth.Logout(context.Background())
	return nil
}
