package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/commit-assistant/caa/internal/config"
)

const defaultConfigTemplate = `# caa configuration
# API keys are read from the environment or a .env file as <PROVIDER>_API_KEY,
# e.g. DEEPSEEK_API_KEY. Ollama needs no key.

# Default language for generated content (en, zh, zh-tw, ja, ko)
language: en

provider:
  # openai, deepseek, ollama, gemini or grok
  name: deepseek
  model: deepseek-chat
  # base_url: https://api.deepseek.com/v1  # optional, uses the provider default
  temperature: 0.7
  max_tokens: 500

commit:
  types:
    - feat
    - fix
    - docs
    - style
    - refactor
    - perf
    - test
    - chore
    - build
    - ci
    - revert
  max_header_length: 50

pr:
  template:
    title_format: "<type>: <summary>"
    sections:
      - Summary
      - Changes
      - Testing

diff:
  # Diffs longer than this many characters are truncated by --simplified
  simplify_threshold: 1000

# Transport retry for transient network failures (off by default)
# retry:
#   enabled: true
#   max_attempts: 3
#   backoff_base: 1.0
#   backoff_max: 8.0
`

var (
	initForce  bool
	initGlobal bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a configuration file",
	Long: `Create a template configuration file.

By default config.yaml is written to the current directory. With --global
it is written to ~/.caa.yaml, which is used when no config.yaml is found.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite existing config file")
	initCmd.Flags().BoolVarP(&initGlobal, "global", "g", false, "Write ~/.caa.yaml instead of ./config.yaml")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	configPath := config.DefaultConfigName
	if initGlobal {
		p, err := config.GlobalPath()
		if err != nil {
			return err
		}
		configPath = p
	}

	if _, err := os.Stat(configPath); err == nil && !initForce {
		return fmt.Errorf("config file already exists: %s\nUse --force to overwrite", configPath)
	}

	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := os.WriteFile(configPath, []byte(defaultConfigTemplate), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(out, "✅ Configuration file created: %s\n", configPath)
	fmt.Fprintln(out, "\nNext steps:")
	fmt.Fprintln(out, "  1. Pick your provider and model in the config file")
	fmt.Fprintln(out, "  2. Put the API key in .env or your environment (e.g. DEEPSEEK_API_KEY=...)")
	fmt.Fprintln(out, "  3. Run 'caa commit' to generate a commit message")
	return nil
}
