package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/commit-assistant/caa/internal/config"
	"github.com/commit-assistant/caa/internal/git"
	"github.com/commit-assistant/caa/internal/llm"
	"github.com/commit-assistant/caa/internal/log"
	"github.com/commit-assistant/caa/internal/ui"
	"github.com/commit-assistant/caa/pkg/lang"
)

// Constructors swapped out in tests
var (
	newExecutor = func(dir string) git.Executor {
		return git.NewExecutor(dir)
	}
	newProvider = func(cfg *config.Config, model string) (llm.Provider, error) {
		return llm.NewProviderFactory().CreateFromConfig(cfg, model)
	}
)

// session bundles what a generation command needs for one run
type session struct {
	ctx        context.Context
	cfg        *config.Config
	git        git.Executor
	printer    *ui.StreamPrinter
	interrupts *InterruptHandler
	stop       func()
}

// newSession loads the configuration and wires the git executor, printer and
// interrupt handling. Callers must call stop.
func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	log.DebugConfig("Configuration", cfg)

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	printer := ui.NewStreamPrinter(cmd.OutOrStdout(), ui.WithVerbose(debugMode))

	ctx, cancel := context.WithCancel(cmd.Context())
	handler := NewInterruptHandler(cancel, printer)
	handler.Start()

	return &session{
		ctx:        ctx,
		cfg:        cfg,
		git:        newExecutor(cwd),
		printer:    printer,
		interrupts: handler,
		stop: func() {
			handler.Stop()
			cancel()
		},
	}, nil
}

// releaseInterrupts restores default Ctrl+C handling once the request is
// done, so an interrupt at a later prompt exits instead of cancelling.
func (s *session) releaseInterrupts() {
	s.interrupts.Stop()
}

// provider resolves the model and creates the configured LLM provider
func (s *session) provider() (llm.Provider, error) {
	p, defaulted := s.cfg.GetProvider(modelName)
	if defaulted {
		log.Warn("No model specified, using default model '%s'", p.Model)
	}
	log.Debug("Using provider=%s model=%s", p.Name, p.Model)

	provider, err := newProvider(s.cfg, modelName)
	if err != nil {
		return nil, err
	}
	return provider, nil
}

// language resolves the output language, warning when it is not supported
func (s *session) language(flag string) string {
	code := s.cfg.GetLanguage(flag)
	l, ok := lang.Lookup(code)
	if !ok {
		log.Warn("Unsupported language '%s', falling back to English", code)
		return lang.English.String()
	}
	return l.String()
}

// retry returns the transport retry policy from the configuration
func (s *session) retry() llm.RetryConfig {
	return llm.RetryConfigFrom(s.cfg.GetRetryConfig())
}

// reportFailure prints provider failures with remediation hints. They are
// reported rather than returned, so the command exits cleanly. Other errors
// are passed through.
func (s *session) reportFailure(err error) error {
	var netErr *llm.NetworkError
	var parseErr *llm.ResponseParseError

	switch {
	case errors.Is(err, context.Canceled):
		if s.interrupts.IsInterrupted() {
			_ = s.printer.PrintWarning("Request cancelled by user")
		} else {
			_ = s.printer.PrintWarning("Request cancelled")
		}
		return err
	case errors.As(err, &netErr):
		_ = s.printer.PrintError(fmt.Sprintf("API Error: %v", netErr.Err))
	case errors.As(err, &parseErr):
		_ = s.printer.PrintError(parseErr.Error())
	default:
		return err
	}

	_ = s.printer.PrintHints(llm.Hints(llm.Diagnose(err), s.cfg.Provider.APIKeyEnv()))
	return nil
}
