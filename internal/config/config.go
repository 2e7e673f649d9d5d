package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

var (
	// ErrConfigMissing is returned when no configuration file can be found
	ErrConfigMissing = errors.New("configuration file not found")

	// ErrAPIKeyMissing is returned when the provider API key is not set in the environment
	ErrAPIKeyMissing = errors.New("API key not found in environment")
)

// DefaultConfigName is the configuration file looked up in the working directory
const DefaultConfigName = "config.yaml"

// Supported providers
var supportedProviders = map[string]bool{
	"openai":   true,
	"deepseek": true,
	"ollama":   true,
	"gemini":   true,
	"grok":     true,
}

// defaultModels is used when provider.model is left empty
var defaultModels = map[string]string{
	"openai":   "gpt-4o-mini",
	"deepseek": "deepseek-chat",
	"ollama":   "llama3.2",
	"gemini":   "gemini-2.0-flash",
	"grok":     "grok-beta",
}

// Defaults applied when the config file leaves a key unset
const (
	DefaultMaxHeaderLength   = 50
	DefaultSimplifyThreshold = 1000
	DefaultTitleFormat       = "<type>: <summary>"
)

// DefaultPRSections are the PR description sections used when pr.template.sections is not set
var DefaultPRSections = []string{"Summary", "Changes", "Testing"}

// DefaultCommitTypes is the semantic prefix vocabulary used when commit.types is not set
var DefaultCommitTypes = []string{
	"feat", "fix", "docs", "style", "refactor", "perf", "test", "chore", "build", "ci", "revert",
}

// SupportedProviders returns a sorted list of supported providers
func SupportedProviders() []string {
	providers := make([]string, 0, len(supportedProviders))
	for p := range supportedProviders {
		providers = append(providers, p)
	}
	sort.Strings(providers)
	return providers
}

// IsSupportedProvider reports whether name is a known provider
func IsSupportedProvider(name string) bool {
	return supportedProviders[strings.ToLower(name)]
}

// DefaultModel returns the fallback model for a provider, or "" if none is known
func DefaultModel(provider string) string {
	return defaultModels[strings.ToLower(provider)]
}

// Config represents the application configuration
type Config struct {
	Language string         `yaml:"language" mapstructure:"language" json:"language"`
	Provider ProviderConfig `yaml:"provider" mapstructure:"provider" json:"provider"`
	Commit   CommitConfig   `yaml:"commit" mapstructure:"commit" json:"commit"`
	PR       PRConfig       `yaml:"pr" mapstructure:"pr" json:"pr"`
	Diff     DiffConfig     `yaml:"diff" mapstructure:"diff" json:"diff"`
	Retry    *RetryConfig   `yaml:"retry" mapstructure:"retry" json:"retry,omitempty"`
}

// ProviderConfig describes the chat-completion provider. The API key is never
// stored here; it is read from the environment at call time.
type ProviderConfig struct {
	Name        string  `yaml:"name" mapstructure:"name" json:"name"`
	Model       string  `yaml:"model" mapstructure:"model" json:"model"`
	BaseURL     string  `yaml:"base_url" mapstructure:"base_url" json:"base_url,omitempty"`
	Temperature float32 `yaml:"temperature" mapstructure:"temperature" json:"temperature"`
	MaxTokens   int     `yaml:"max_tokens" mapstructure:"max_tokens" json:"max_tokens"`
}

// APIKeyEnv returns the environment variable holding the provider API key
func (p ProviderConfig) APIKeyEnv() string {
	return strings.ToUpper(p.Name) + "_API_KEY"
}

// RequiresAPIKey reports whether the provider needs an API key.
// Ollama runs locally and accepts any key.
func (p ProviderConfig) RequiresAPIKey() bool {
	return strings.ToLower(p.Name) != "ollama"
}

// Validate validates the provider configuration
func (p *ProviderConfig) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("provider.name is required")
	}
	if !IsSupportedProvider(p.Name) {
		return fmt.Errorf("unsupported provider: %s", p.Name)
	}
	if p.MaxTokens < 0 {
		return fmt.Errorf("provider.max_tokens must be non-negative")
	}
	if p.Temperature < 0 {
		return fmt.Errorf("provider.temperature must be non-negative")
	}
	return nil
}

// CommitConfig holds the commit message convention. Immutable once loaded.
type CommitConfig struct {
	Types           []string `yaml:"types" mapstructure:"types" json:"types"`
	MaxHeaderLength int      `yaml:"max_header_length" mapstructure:"max_header_length" json:"max_header_length"`
}

// HasType reports whether t is an allowed semantic prefix
func (c CommitConfig) HasType(t string) bool {
	for _, allowed := range c.Types {
		if allowed == t {
			return true
		}
	}
	return false
}

// Validate validates the commit configuration
func (c *CommitConfig) Validate() error {
	if len(c.Types) == 0 {
		return fmt.Errorf("commit.types must list at least one type")
	}
	if c.MaxHeaderLength <= 0 {
		return fmt.Errorf("commit.max_header_length must be positive")
	}
	return nil
}

// PRConfig holds the pull request settings
type PRConfig struct {
	Template PRTemplateConfig `yaml:"template" mapstructure:"template" json:"template"`
}

// PRTemplateConfig represents the PR template configuration
type PRTemplateConfig struct {
	TitleFormat string   `yaml:"title_format" mapstructure:"title_format" json:"title_format"`
	Sections    []string `yaml:"sections" mapstructure:"sections" json:"sections"`
}

// DiffConfig controls how diffs are prepared before being sent
type DiffConfig struct {
	SimplifyThreshold int `yaml:"simplify_threshold" mapstructure:"simplify_threshold" json:"simplify_threshold"`
}

// RetryConfig represents the retry configuration
type RetryConfig struct {
	Enabled     bool    `yaml:"enabled" mapstructure:"enabled" json:"enabled"`
	MaxAttempts int     `yaml:"max_attempts" mapstructure:"max_attempts" json:"max_attempts"`
	BackoffBase float64 `yaml:"backoff_base" mapstructure:"backoff_base" json:"backoff_base"` // in seconds
	BackoffMax  float64 `yaml:"backoff_max" mapstructure:"backoff_max" json:"backoff_max"`    // in seconds
}

// DefaultRetryConfig returns the default retry configuration.
// Retry is off so that a command makes a single network call unless asked otherwise.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		Enabled:     false,
		MaxAttempts: 3,
		BackoffBase: 1.0,
		BackoffMax:  8.0,
	}
}

// Validate validates the retry configuration
func (r *RetryConfig) Validate() error {
	if r.MaxAttempts < 0 {
		return fmt.Errorf("max_attempts must be non-negative")
	}
	if r.BackoffBase < 0 {
		return fmt.Errorf("backoff_base must be non-negative")
	}
	if r.BackoffMax < r.BackoffBase {
		return fmt.Errorf("backoff_max must be greater than or equal to backoff_base")
	}
	return nil
}

// Validate validates the entire configuration
func (c *Config) Validate() error {
	if err := c.Provider.Validate(); err != nil {
		return fmt.Errorf("invalid provider configuration: %w", err)
	}
	if err := c.Commit.Validate(); err != nil {
		return fmt.Errorf("invalid commit configuration: %w", err)
	}
	if c.Diff.SimplifyThreshold < 0 {
		return fmt.Errorf("diff.simplify_threshold must be non-negative")
	}
	if c.Retry != nil {
		if err := c.Retry.Validate(); err != nil {
			return fmt.Errorf("invalid retry configuration: %w", err)
		}
	}
	return nil
}

// APIKey reads the provider API key from the environment.
// Returns ErrAPIKeyMissing if the variable is unset and the provider needs one.
func (c *Config) APIKey() (string, error) {
	key := os.Getenv(c.Provider.APIKeyEnv())
	if key == "" && c.Provider.RequiresAPIKey() {
		return "", fmt.Errorf("%w: %s", ErrAPIKeyMissing, c.Provider.APIKeyEnv())
	}
	return key, nil
}

// GetProvider returns the provider configuration with the model resolved.
// Priority: parameter > env variable (CAA_MODEL) > provider.model > provider default.
// The second return value is true when the provider default was used.
func (c *Config) GetProvider(modelName string) (ProviderConfig, bool) {
	p := c.Provider

	if modelName == "" {
		modelName = os.Getenv("CAA_MODEL")
	}
	if modelName != "" {
		p.Model = modelName
	}

	if strings.TrimSpace(p.Model) == "" {
		p.Model = DefaultModel(p.Name)
		return p, true
	}
	return p, false
}

// GetLanguage returns the language to use
// Priority: parameter > env variable (CAA_LANG) > config file > default (en)
func (c *Config) GetLanguage(langParam string) string {
	if langParam != "" {
		return langParam
	}

	if envLang := os.Getenv("CAA_LANG"); envLang != "" {
		return envLang
	}

	if c.Language != "" {
		return c.Language
	}

	return "en"
}

// GetRetryConfig returns the retry configuration with defaults applied
func (c *Config) GetRetryConfig() *RetryConfig {
	if c.Retry == nil {
		return DefaultRetryConfig()
	}
	defaults := DefaultRetryConfig()
	if c.Retry.MaxAttempts < 0 {
		c.Retry.MaxAttempts = defaults.MaxAttempts
	}
	if c.Retry.BackoffBase < 0 {
		c.Retry.BackoffBase = defaults.BackoffBase
	}
	if c.Retry.BackoffMax < 0 {
		c.Retry.BackoffMax = defaults.BackoffMax
	}
	return c.Retry
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("language", "en")
	v.SetDefault("provider.temperature", 0.7)
	v.SetDefault("provider.max_tokens", 500)
	v.SetDefault("commit.types", DefaultCommitTypes)
	v.SetDefault("commit.max_header_length", DefaultMaxHeaderLength)
	v.SetDefault("pr.template.title_format", DefaultTitleFormat)
	v.SetDefault("pr.template.sections", DefaultPRSections)
	v.SetDefault("diff.simplify_threshold", DefaultSimplifyThreshold)
}

// LoadFromFile loads configuration from a file
func LoadFromFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigMissing, path)
		}
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// GlobalPath returns the per-user configuration path (~/.caa.yaml)
func GlobalPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".caa.yaml"), nil
}

// Load loads configuration with the following priority:
// 1. Custom path if provided
// 2. Current directory config.yaml
// 3. Home directory ~/.caa.yaml
func Load(customPath string) (*Config, error) {
	if customPath != "" {
		return LoadFromFile(customPath)
	}

	cfg, err := LoadFromFile(DefaultConfigName)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, ErrConfigMissing) {
		return nil, err
	}

	homeCfgPath, err := GlobalPath()
	if err != nil {
		return nil, err
	}
	cfg, err = LoadFromFile(homeCfgPath)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, ErrConfigMissing) {
		return nil, err
	}

	return nil, fmt.Errorf("%w in current directory or home directory. Run 'caa init' to create one", ErrConfigMissing)
}
