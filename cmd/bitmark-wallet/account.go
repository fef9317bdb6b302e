package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AlexZinkM/bitmark-wallet/bitmark"
	"github.com/AlexZinkM/bitmark-wallet/internal/config"
	"github.com/AlexZinkM/bitmark-wallet/internal/mnemonic"
	"github.com/AlexZinkM/bitmark-wallet/internal/seed"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage the saved account",
	Long: `Account commands.

Examples:
  bitmark-wallet account new --words 12 --language zh-tw
  bitmark-wallet account recover < phrase.txt
  bitmark-wallet account show
  bitmark-wallet account phrase
  bitmark-wallet account remove`,
}

var accountNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Generate and save a new account",
	Args:  cobra.NoArgs,
	RunE:  runAccountNew,
}

var accountRecoverCmd = &cobra.Command{
	Use:   "recover",
	Short: "Recover an account from its phrase read on stdin",
	Args:  cobra.NoArgs,
	RunE:  runAccountRecover,
}

var accountShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the account number",
	Args:  cobra.NoArgs,
	RunE:  runAccountShow,
}

var accountPhraseCmd = &cobra.Command{
	Use:   "phrase",
	Short: "Print the recovery phrase",
	Args:  cobra.NoArgs,
	RunE:  runAccountPhrase,
}

var accountRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove the account and its wrapping key",
	Long: `Remove the saved account. This action cannot be undone.

Write the recovery phrase down first: it is the only way back.`,
	Args: cobra.NoArgs,
	RunE: runAccountRemove,
}

func init() {
	accountNewCmd.Flags().Int("words", 24, "phrase length (12 or 24)")
	for _, c := range []*cobra.Command{accountNewCmd, accountRecoverCmd, accountPhraseCmd} {
		c.Flags().String("language", "", "phrase language (en, zh-tw), defaults to MNEMONIC_LANGUAGE")
	}

	accountCmd.AddCommand(accountNewCmd, accountRecoverCmd, accountShowCmd, accountPhraseCmd, accountRemoveCmd)
}

func phraseLanguage(cmd *cobra.Command) (mnemonic.Language, error) {
	tag, _ := cmd.Flags().GetString("language")
	if tag == "" {
		return config.GetLanguage(), nil
	}
	return mnemonic.ParseLanguage(tag)
}

func printGenerated(cmd *cobra.Command, gen *bitmark.Generated) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Account number: %s (%s)\n", gen.AccountNumber, gen.Network)
	if len(gen.Phrase) > 0 {
		fmt.Fprintln(out, "Recovery phrase, write it down:")
		fmt.Fprintln(out, "  "+mnemonic.Join(gen.Phrase))
	}
}

func runAccountNew(cmd *cobra.Command, _ []string) error {
	words, _ := cmd.Flags().GetInt("words")
	version := seed.TwentyFour
	switch words {
	case 12:
		version = seed.Twelve
	case 24:
	default:
		return fmt.Errorf("words must be 12 or 24")
	}

	w, err := openWallet(true)
	if err != nil {
		return err
	}
	defer w.Close()

	lang, err := phraseLanguage(cmd)
	if err != nil {
		return err
	}
	gen, err := bitmark.GenerateAccount(cmd.Context(), w.store, version, config.GetNetwork(), lang)
	if err != nil {
		return err
	}
	printGenerated(cmd, gen)
	return nil
}

func runAccountRecover(cmd *cobra.Command, _ []string) error {
	w, err := openWallet(true)
	if err != nil {
		return err
	}
	defer w.Close()

	lang, err := phraseLanguage(cmd)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, "Enter recovery phrase:")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && strings.TrimSpace(line) == "" {
		return fmt.Errorf("failed to read phrase: %w", err)
	}

	gen, err := bitmark.ImportAccount(cmd.Context(), w.store, line, config.GetNetwork(), lang)
	if err != nil {
		return err
	}
	gen.Phrase = nil
	printGenerated(cmd, gen)
	return nil
}

func runAccountShow(cmd *cobra.Command, _ []string) error {
	w, err := openWallet(true)
	if err != nil {
		return err
	}
	defer w.Close()

	a, err := w.store.Load(cmd.Context(), config.GetNetwork())
	if err != nil {
		return err
	}
	defer a.Destroy()

	fmt.Fprintf(cmd.OutOrStdout(), "Account number: %s (%s)\n", a.AccountNumber(), a.Network())
	return nil
}

func runAccountPhrase(cmd *cobra.Command, _ []string) error {
	w, err := openWallet(true)
	if err != nil {
		return err
	}
	defer w.Close()

	lang, err := phraseLanguage(cmd)
	if err != nil {
		return err
	}
	a, err := w.store.Load(cmd.Context(), config.GetNetwork())
	if err != nil {
		return err
	}
	defer a.Destroy()

	phrase, err := a.Phrase(lang)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), mnemonic.Join(phrase))
	return nil
}

func runAccountRemove(cmd *cobra.Command, _ []string) error {
	w, err := openWallet(true)
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.store.Remove(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Account removed")
	return nil
}
