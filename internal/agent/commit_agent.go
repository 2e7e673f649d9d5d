package agent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/commit-assistant/caa/internal/config"
	"github.com/commit-assistant/caa/internal/llm"
	"github.com/commit-assistant/caa/internal/log"
	"github.com/commit-assistant/caa/internal/policy"
	"github.com/commit-assistant/caa/internal/ui"
)

// CommitRequest represents a request to generate a commit message
type CommitRequest struct {
	Diff       string // Diff to describe
	Scope      string // Commit scope (optional)
	Brief      bool   // Ask for brief language
	Emoji      bool   // Ask for an emoji at the start of the title
	Simplified bool   // Truncate the diff before sending it
	Force      bool   // Accept a message that fails validation
	Language   string // Output language
}

// CommitResponse represents the generated commit message
type CommitResponse struct {
	Message          string
	Simplified       bool // the diff sent was truncated
	Extracted        bool // the message was salvaged from provider error output
	Forced           bool // the message failed validation and was accepted anyway
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// CommitAgentOptions contains configuration for CommitAgent
type CommitAgentOptions struct {
	Commit            config.CommitConfig // Commit message policy
	SimplifyThreshold int                 // Diff length above which simplification applies
	LLMProvider       llm.Provider        // LLM provider for generating messages
	Retry             llm.RetryConfig     // Transport retry (disabled by default)
	Printer           *ui.StreamPrinter   // Stream printer for output (optional)
	Output            io.Writer           // Output writer (used if Printer is nil)
	Debug             bool                // Enable debug mode
}

// Validate validates the options and sets defaults
func (o *CommitAgentOptions) Validate() error {
	if o.LLMProvider == nil {
		return fmt.Errorf("LLM provider is required")
	}
	if o.SimplifyThreshold <= 0 {
		o.SimplifyThreshold = policy.DefaultSimplifyThreshold
	}
	if len(o.Commit.Types) == 0 {
		o.Commit.Types = config.DefaultCommitTypes
	}
	if o.Commit.MaxHeaderLength <= 0 {
		o.Commit.MaxHeaderLength = config.DefaultMaxHeaderLength
	}
	return nil
}

// CommitAgent handles commit message generation
type CommitAgent struct {
	opts CommitAgentOptions
	llm  completer
	out  reporter
}

// NewCommitAgent creates a new CommitAgent instance
func NewCommitAgent(opts CommitAgentOptions) (*CommitAgent, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	return &CommitAgent{
		opts: opts,
		llm:  completer{provider: opts.LLMProvider, retry: opts.Retry, system: CommitSystemPrompt},
		out:  newReporter(opts.Printer, opts.Output, opts.Debug),
	}, nil
}

// BuildCommitPrompt renders the commit request prompt for a diff
func (a *CommitAgent) BuildCommitPrompt(req CommitRequest, diff string) (string, error) {
	data := struct {
		Diff            string
		Scope           string
		Brief           bool
		Emoji           bool
		Language        string
		Types           string
		MaxHeaderLength int
	}{
		Diff:            diff,
		Scope:           req.Scope,
		Brief:           req.Brief,
		Emoji:           req.Emoji,
		Language:        languageName(req.Language),
		Types:           strings.Join(a.opts.Commit.Types, ", "),
		MaxHeaderLength: a.opts.Commit.MaxHeaderLength,
	}
	return renderTemplate("commit_prompt", CommitUserPrompt, data)
}

// Generate produces a commit message for the request's diff.
//
// A failed call is first searched for a message embedded in the provider's
// error text. Deserialization failures on an unsimplified diff are retried
// once with the simplified diff. Any other failure is a *llm.NetworkError.
func (a *CommitAgent) Generate(ctx context.Context, req CommitRequest) (*CommitResponse, error) {
	if strings.TrimSpace(req.Diff) == "" {
		return nil, ErrNoChanges
	}

	provider := a.opts.LLMProvider
	a.out.progress(fmt.Sprintf("Initializing LLM provider (%s/%s)...", provider.Name(), provider.GetConfig().Model))
	cm, err := a.llm.chatModel(ctx)
	if err != nil {
		return nil, err
	}

	diff := req.Diff
	simplified := false
	if req.Simplified {
		diff = policy.Simplify(req.Diff, a.opts.SimplifyThreshold)
		if simplified = policy.Simplified(req.Diff, diff); simplified {
			a.out.warn("Using simplified diff for API compatibility")
		}
	}

	a.out.step(1, "Building prompt...")
	prompt, err := a.BuildCommitPrompt(req, diff)
	if err != nil {
		return nil, err
	}
	a.out.detail(fmt.Sprintf("Prompt: %d bytes (~%d tokens)", len(prompt), estimateTokenCount(prompt)))

	a.out.step(2, "Generating commit message...")
	reply, u, err := a.llm.complete(ctx, cm, prompt)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}

		if msg, ok := policy.ExtractFromErrorOutput(err.Error()); ok {
			log.Debug("Found commit message in error output")
			if resp, accepted := a.acceptExtracted(msg, req.Force); accepted {
				resp.Simplified = simplified
				return resp, nil
			}
		}

		if simplified || llm.Diagnose(err) != llm.FailureDeserialize {
			return nil, &llm.NetworkError{Provider: provider.Name(), Err: err}
		}

		short := policy.Simplify(req.Diff, a.opts.SimplifyThreshold)
		if !policy.Simplified(req.Diff, short) {
			return nil, &llm.NetworkError{Provider: provider.Name(), Err: err}
		}

		a.out.warn("Trying again with simplified diff. Run with --simplified to use this automatically.")
		if prompt, err = a.BuildCommitPrompt(req, short); err != nil {
			return nil, err
		}
		reply, u, err = a.llm.complete(ctx, cm, prompt)
		if err != nil {
			return nil, &llm.NetworkError{Provider: provider.Name(), Err: err}
		}
		simplified = true
	}

	resp, err := a.finish(reply, req.Force)
	if err != nil {
		return nil, err
	}
	resp.Simplified = simplified
	resp.PromptTokens = u.PromptTokens
	resp.CompletionTokens = u.CompletionTokens
	resp.TotalTokens = u.TotalTokens
	return resp, nil
}

// finish cleans the reply and applies the commit policy
func (a *CommitAgent) finish(reply string, force bool) (*CommitResponse, error) {
	message := stripFences(reply)
	if message == "" {
		return nil, &llm.ResponseParseError{Raw: reply, Err: llm.ErrEmptyResponse}
	}

	resp := &CommitResponse{Message: message}
	if err := policy.Check(message, a.opts.Commit); err != nil {
		if !force {
			return nil, &ValidationError{Message: message, Err: err}
		}
		a.out.warn(fmt.Sprintf("Accepting message despite failed validation: %v", err))
		resp.Forced = true
		return resp, nil
	}

	a.out.success("Commit message generated successfully")
	return resp, nil
}

// acceptExtracted decides whether a message salvaged from error output is usable
func (a *CommitAgent) acceptExtracted(message string, force bool) (*CommitResponse, bool) {
	err := policy.Check(message, a.opts.Commit)
	if err != nil && !force {
		a.out.warn("The extracted message does not follow the commit convention. Run with --force to use it anyway.")
		return nil, false
	}

	a.out.success("Commit message extracted from error output")
	return &CommitResponse{Message: message, Extracted: true, Forced: err != nil}, true
}
