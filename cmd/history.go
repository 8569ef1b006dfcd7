package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/sifranet/sifra-wallet/logx"
	"github.com/sifranet/sifra-wallet/types"
	"github.com/spf13/cobra"
)

var historyPending bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List wallet transactions",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runHistory(); err != nil {
			logx.Error("HISTORY CLI", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().BoolVar(&historyPending, "pending", false, "list mempool transactions instead of confirmed history")
}

func runHistory() error {
	app, err := newWalletApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.requireAuth(); err != nil {
		return err
	}

	ctx := context.Background()
	var records []types.TransactionRecord
	if historyPending {
		resp, err := app.gw.PendingTransactions(ctx)
		if err != nil {
			return err
		}
		records = resp.Transactions
	} else {
		resp, err := app.gw.WalletTransactions(ctx, app.sessions.WalletAddress())
		if err != nil {
			return err
		}
		records = resp.Transactions
	}

	if len(records) == 0 {
		fmt.Println("No transactions.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TX HASH\tSENDER\tRECEIVER\tAMOUNT\tSTATUS\tTIME")
	for _, tx := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.TxHash, tx.Sender, tx.Receiver, tx.Amount, tx.Status, tx.Timestamp)
	}
	return w.Flush()
}
