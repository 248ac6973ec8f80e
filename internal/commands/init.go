package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initFlags struct {
	force bool
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a sample config file",
	Long:  `Creates a sample .nr-alert-analyzer.yaml config file in the current directory.`,
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initFlags.force, "force", false, "Overwrite an existing file")
}

func runInit(_ *cobra.Command, _ []string) error {
	configPath := ".nr-alert-analyzer.yaml"

	if err := writeIfNotExists(configPath, sampleConfig, initFlags.force); err != nil {
		return err
	}

	fmt.Printf("Created %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Add one or more User API keys under api_keys")
	fmt.Println("  2. Set account_id (or run: nr-alert-analyzer accounts)")
	fmt.Println("  3. Run: nr-alert-analyzer analyze")
	return nil
}

func writeIfNotExists(path, content string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("Skipping %s (already exists, use --force to overwrite)\n", path)
			return nil
		}
	}

	return os.WriteFile(path, []byte(content), 0o644)
}

const sampleConfig = `# nr-alert-analyzer configuration

# Named New Relic User API keys. With more than one entry you will be asked
# to pick one at run time; NEW_RELIC_API_KEY or --api-key always wins.
# api_keys:
#   production: NRAK-XXXXXXXXXXXXXXXXXXXXXXXXXXX
#   staging: NRAK-YYYYYYYYYYYYYYYYYYYYYYYYYYY

# Default account to analyze
# account_id: 1234567

# NerdGraph region: us or eu
region: us

# Window length in days (ending now)
days: 7

# Maximum incident events to fetch per run
limit: 100000

# Entries shown per ranking in text output
top_n: 10

# Output format: text or json
format: text

# Exclude warning-priority incidents at fetch time
exclude_warnings: false

# Optional AI summarization (used with --ai-summary)
# ai:
#   endpoint: https://api.openai.com/v1/chat/completions
#   model: gpt-4o-mini
#   api_key: sk-...
`
