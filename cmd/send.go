package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sifranet/sifra-wallet/logx"
	"github.com/sifranet/sifra-wallet/sendflow"
	"github.com/sifranet/sifra-wallet/types"
	"github.com/spf13/cobra"
)

type SendConfig struct {
	To             string
	Amount         string
	PrivateKey     string
	PrivateKeyFile string
}

var sendConfig SendConfig

var sendCmd = &cobra.Command{
	Use:   "send [flags]",
	Short: "Send tokens to another wallet",
	Long: `Signs and submits a transfer to the ledger service.

The private key can be provided either directly via --private-key flag
or via a file using --private-key-file flag. The transaction PIN is
always prompted interactively and never accepted as a flag.

Examples:
  # Send 12.50 SFR using a private key file
  send -t 0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb -a 12.50 -f /path/to/key.txt

  # Send 5 SFR using the private key directly
  send -t 0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb -a 5 -p "your-private-key-here"`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSend(); err != nil {
			logx.Error("SEND CLI", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().StringVarP(&sendConfig.To, "to", "t", "", "address of recipient")
	sendCmd.Flags().StringVarP(&sendConfig.Amount, "amount", "a", "", "amount in SFR, decimal string")
	sendCmd.Flags().StringVarP(&sendConfig.PrivateKey, "private-key", "p", "", "sender private key in hex")
	sendCmd.Flags().StringVarP(&sendConfig.PrivateKeyFile, "private-key-file", "f", "", "sender private key file")
}

func runSend() error {
	app, err := newWalletApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.requireAuth(); err != nil {
		return err
	}

	privKey, err := loadSenderPrivateKey()
	if err != nil {
		return fmt.Errorf("failed to load sender private key: %w", err)
	}

	ctx := context.Background()
	sender := app.sessions.WalletAddress()

	balance, err := app.gw.Balance(ctx, sender)
	if err != nil {
		return err
	}

	machine := sendflow.NewMachine(app.gw, app.keys)
	machine.SetKnownBalance(balance.Balance)

	intent := types.TransactionIntent{
		Sender:   sender,
		Receiver: sendConfig.To,
		Amount:   sendConfig.Amount,
	}
	if err := machine.Submit(intent, privKey); err != nil {
		return err
	}

	fmt.Printf("Sending %s SFR\n", intent.Amount)
	fmt.Println("  From:", intent.Sender)
	fmt.Println("  To:  ", intent.Receiver)

	pin, err := promptLine("Enter your 4-digit PIN (empty to cancel): ")
	if err != nil {
		machine.Cancel()
		return err
	}
	if pin == "" {
		machine.Cancel()
		fmt.Println("Transfer cancelled.")
		return nil
	}

	if err := machine.Confirm(ctx, pin); err != nil {
		if reason := machine.ErrorReason(); reason != "" {
			return fmt.Errorf("transfer failed: %s", reason)
		}
		return err
	}

	fmt.Println("Transfer accepted, tx hash:", machine.TxHash())
	return nil
}

// loadSenderPrivateKey reads the key from the command flags. The key is
// hex; surrounding whitespace from key files is trimmed.
func loadSenderPrivateKey() (string, error) {
	if sendConfig.PrivateKey != "" {
		return sendConfig.PrivateKey, nil
	}
	if sendConfig.PrivateKeyFile == "" {
		return "", fmt.Errorf("either --private-key or --private-key-file is required")
	}
	raw, err := os.ReadFile(sendConfig.PrivateKeyFile)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}

func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
