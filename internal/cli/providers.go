package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/commit-assistant/caa/internal/config"
	"github.com/commit-assistant/caa/internal/llm"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List supported LLM providers",
	Long: `List the supported providers with their default model, default endpoint
and the environment variable holding the API key.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		bold := color.New(color.Bold)
		green := color.New(color.FgGreen)
		cyan := color.New(color.FgCyan)

		// The configured provider is marked when a config file is available
		current := ""
		if cfg, err := config.Load(configFile); err == nil {
			current = cfg.Provider.Name
		}

		bold.Fprintln(out, "Supported Providers:")
		fmt.Fprintln(out)

		for _, name := range config.SupportedProviders() {
			p := config.ProviderConfig{Name: name}
			if name == current {
				green.Fprintf(out, "  ✓ %s (configured)\n", name)
			} else {
				fmt.Fprintf(out, "    %s\n", name)
			}

			cyan.Fprintf(out, "      Default model: %s\n", config.DefaultModel(name))
			if url := llm.DefaultBaseURL(name); url != "" {
				cyan.Fprintf(out, "      Base URL:      %s\n", url)
			}
			if p.RequiresAPIKey() {
				status := "not set"
				if os.Getenv(p.APIKeyEnv()) != "" {
					status = "set"
				}
				cyan.Fprintf(out, "      API key:       %s (%s)\n", p.APIKeyEnv(), status)
			} else {
				cyan.Fprintln(out, "      API key:       not required")
			}
			fmt.Fprintln(out)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(providersCmd)
}
