package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendfold/internal/cli"
	"github.com/theirongolddev/spendfold/internal/config"
	"github.com/theirongolddev/spendfold/internal/share"
)

var (
	flagShareCopy    bool
	flagShareBaseURL string
)

var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Print a link that carries all folders and expenses",
	Args:  cobra.NoArgs,
	RunE:  runShare,
}

var importCmd = &cobra.Command{
	Use:   "import <link|payload>",
	Short: "Replace all folders with the contents of a shared link",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	shareCmd.Flags().BoolVar(&flagShareCopy, "copy", false, "Copy the link to the clipboard")
	shareCmd.Flags().StringVar(&flagShareBaseURL, "base-url", "", "Base URL for the link (default from config)")
	rootCmd.AddCommand(shareCmd, importCmd)
}

func runShare(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	base := config.ShareBaseURL(appCfg)
	if flagShareBaseURL != "" {
		base = flagShareBaseURL
	}
	link, err := share.Link(base, share.NewPayload(s.ledger.Folders()))
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("  Share this link with your friend to collaborate on expenses")
	fmt.Println()
	fmt.Println(link)
	fmt.Println()

	if flagShareCopy {
		if err := clipboard.WriteAll(link); err != nil {
			return fmt.Errorf("copying link: %w", err)
		}
		fmt.Println(cli.RenderMuted("  Link copied to clipboard!"))
	}
	return nil
}

// runImport never fails on a bad link: the problem is logged and the
// existing folders are kept.
func runImport(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if consumeShared(s.ledger, args[0]) {
		fmt.Printf("  Imported %s\n", cli.Plural(s.ledger.Len(), "folder", "folders"))
	}
	return nil
}
