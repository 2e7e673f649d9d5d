package cli

import (
	"github.com/spf13/cobra"

	"github.com/commit-assistant/caa/internal/config"
	"github.com/commit-assistant/caa/internal/log"
)

var (
	// Global flags
	debugMode  bool
	configFile string
	modelName  string
	envFile    string

	// Version info
	version   = "dev"
	gitCommit = "unknown"
	buildTime = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "caa",
	Short: "Commit Assistant Agent - AI-powered git helper",
	Long: `caa generates commit messages and pull request descriptions from your
git changes using a configurable LLM provider.

Generated commit messages are checked against the semantic prefixes and
header length configured in config.yaml.

Use "caa [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Set debug mode before any command runs
		log.SetDebugMode(debugMode)
		if debugMode {
			log.Debug("Debug mode enabled")
		}
		return config.LoadDotEnv(envFile)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		log.Error("%v", err)
	}
	return err
}

// SetVersionInfo sets version information from build flags
func SetVersionInfo(v, commit, time string) {
	version = v
	gitCommit = commit
	buildTime = time
}

// GetVersionInfo returns version information
func GetVersionInfo() (string, string, string) {
	return version, gitCommit, buildTime
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode for verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file path (default: ./config.yaml, then ~/.caa.yaml)")
	rootCmd.PersistentFlags().StringVarP(&modelName, "model", "m", "", "LLM model to use (overrides config and CAA_MODEL)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", config.DefaultEnvFile, "Dotenv file with provider API keys")
}
