package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/JimHagan/nr-alert-analyzer/internal/config"
	"github.com/JimHagan/nr-alert-analyzer/internal/nerdgraph"
)

var accountsFlags struct {
	apiKey string
}

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List accounts accessible to the API key",
	RunE:  runAccounts,
}

func init() {
	accountsCmd.Flags().StringVar(&accountsFlags.apiKey, "api-key", "", "New Relic User API key (default: NEW_RELIC_API_KEY or config)")
}

func runAccounts(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}

	key, err := resolveAPIKey(accountsFlags.apiKey, cfg)
	if err != nil {
		return err
	}

	endpoint, err := resolveEndpoint(cfg.Region)
	if err != nil {
		return err
	}

	client := nerdgraph.NewClient(endpoint, key)
	accounts, err := client.ListAccounts(cmd.Context())
	if err != nil {
		return enhanceError("list accounts", err)
	}

	if len(accounts) == 0 {
		fmt.Println("No accounts found for this API key.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME")
	for _, acc := range accounts {
		fmt.Fprintf(tw, "%d\t%s\n", acc.ID, acc.Name)
	}
	return tw.Flush()
}
