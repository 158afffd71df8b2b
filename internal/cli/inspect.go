package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dmitrijs2005/daybook/internal/cryptox"
	"github.com/dmitrijs2005/daybook/internal/kvstore"
)

func (a *App) inspectCommand() *cobra.Command {
	var askSecret bool
	var showValues bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Report per-key storage sizes, largest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := a.store
			if askSecret {
				secret, err := promptSecret()
				if err != nil {
					return err
				}
				// Rebuild the store with the supplied secret so encrypted
				// previews decrypt against it instead of the configured one.
				medium := kvstore.NewDiskvMedium(a.cfg.StoragePath)
				store = kvstore.New(medium, cryptox.NewCodec(secret), a.cfg.KeyPrefix, a.log)
			}

			report, err := store.SizeReport(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tBYTES")
			for _, entry := range report.Entries {
				fmt.Fprintf(w, "%s\t%d\n", entry.Key, entry.Bytes)
				if showValues {
					fmt.Fprintf(w, "\t%s\n", indent(entry.Preview))
				}
			}
			fmt.Fprintf(w, "TOTAL\t%d\n", report.TotalBytes)
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&askSecret, "ask-secret", false, "prompt for the encryption secret instead of using the configured one")
	cmd.Flags().BoolVar(&showValues, "values", false, "print decoded values alongside sizes")
	return cmd
}

func promptSecret() (string, error) {
	fmt.Fprint(os.Stderr, "secret: ")
	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading secret: %w", err)
	}
	return string(secret), nil
}

func indent(s string) string {
	return strings.ReplaceAll(s, "\n", "\n\t")
}
