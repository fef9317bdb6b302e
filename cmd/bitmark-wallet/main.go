// Command bitmark-wallet keeps a Bitmark account in a local key vault and
// signs records with it, from the command line or through a local HTTP API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bitmark-wallet",
	Short: "Local Bitmark account vault and signer",
	Long: `Keeps one Bitmark account encrypted in a local key vault.

Configuration is read from the environment (VAULT_DIR, KEYSTORE_PATH,
BITMARK_NETWORK, ...). The keystore passphrase is prompted at start-up.

Examples:
  bitmark-wallet account new --words 24
  bitmark-wallet account show
  bitmark-wallet serve`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, accountCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
