package agent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/commit-assistant/caa/internal/config"
	"github.com/commit-assistant/caa/internal/llm"
	"github.com/commit-assistant/caa/internal/policy"
	"github.com/commit-assistant/caa/internal/ui"
)

const (
	titleMarker       = "TITLE:"
	descriptionMarker = "DESCRIPTION:"

	markupCutset = "*_#` \t\r\n"
)

// PRRequest contains the input for PR description generation
type PRRequest struct {
	Diff       string // Diff to describe
	Commits    string // One-line commit log of the range (optional)
	Source     string // Source branch (optional)
	Target     string // Target branch (optional)
	Title      string // Title override
	Body       string // Additional context for the description
	Scope      string // Scope (optional)
	Brief      bool
	Simplified bool
	Language   string
}

// PRResponse contains the result of PR description generation
type PRResponse struct {
	Title            string
	Description      string
	Simplified       bool
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// GetTitle returns the PR title (implements ui.PRDescriptionDisplayer)
func (r *PRResponse) GetTitle() string {
	return r.Title
}

// GetDescription returns the PR description (implements ui.PRDescriptionDisplayer)
func (r *PRResponse) GetDescription() string {
	return r.Description
}

// PRAgentOptions contains configuration for PRAgent
type PRAgentOptions struct {
	Template          config.PRTemplateConfig
	SimplifyThreshold int
	LLMProvider       llm.Provider
	Retry             llm.RetryConfig
	Printer           *ui.StreamPrinter
	Output            io.Writer
	Debug             bool
}

// PRAgent generates PR descriptions using LLM
type PRAgent struct {
	opts PRAgentOptions
	llm  completer
	out  reporter
}

// NewPRAgent creates a new PRAgent
func NewPRAgent(opts PRAgentOptions) (*PRAgent, error) {
	if opts.LLMProvider == nil {
		return nil, fmt.Errorf("invalid options: LLM provider is required")
	}
	if opts.SimplifyThreshold <= 0 {
		opts.SimplifyThreshold = policy.DefaultSimplifyThreshold
	}
	if opts.Template.TitleFormat == "" {
		opts.Template.TitleFormat = config.DefaultTitleFormat
	}
	if len(opts.Template.Sections) == 0 {
		opts.Template.Sections = config.DefaultPRSections
	}

	return &PRAgent{
		opts: opts,
		llm:  completer{provider: opts.LLMProvider, retry: opts.Retry, system: PRSystemPrompt},
		out:  newReporter(opts.Printer, opts.Output, opts.Debug),
	}, nil
}

// BuildPRPrompt renders the pull request prompt for a diff
func (a *PRAgent) BuildPRPrompt(req PRRequest, diff string) (string, error) {
	data := struct {
		PRRequest
		Diff        string
		Language    string
		TitleFormat string
		Sections    string
	}{
		PRRequest:   req,
		Diff:        diff,
		Language:    languageName(req.Language),
		TitleFormat: a.opts.Template.TitleFormat,
		Sections:    strings.Join(a.opts.Template.Sections, ", "),
	}
	return renderTemplate("pr_prompt", PRUserPrompt, data)
}

// Generate produces a pull request title and description
func (a *PRAgent) Generate(ctx context.Context, req PRRequest) (*PRResponse, error) {
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

	if req.Source != "" {
		a.out.info(fmt.Sprintf("Comparing %s against %s", req.Source, req.Target))
	}

	a.out.step(1, "Building prompt...")
	prompt, err := a.BuildPRPrompt(req, diff)
	if err != nil {
		return nil, err
	}
	a.out.detail(fmt.Sprintf("Prompt: %d bytes (~%d tokens)", len(prompt), estimateTokenCount(prompt)))

	a.out.step(2, "Generating pull request...")
	reply, u, err := a.llm.complete(ctx, cm, prompt)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}

		short := policy.Simplify(req.Diff, a.opts.SimplifyThreshold)
		if simplified || llm.Diagnose(err) != llm.FailureDeserialize || !policy.Simplified(req.Diff, short) {
			return nil, &llm.NetworkError{Provider: provider.Name(), Err: err}
		}

		a.out.warn("Trying again with simplified diff. Run with --simplified to use this automatically.")
		if prompt, err = a.BuildPRPrompt(req, short); err != nil {
			return nil, err
		}
		if reply, u, err = a.llm.complete(ctx, cm, prompt); err != nil {
			return nil, &llm.NetworkError{Provider: provider.Name(), Err: err}
		}
		simplified = true
	}

	title, description := ParsePRReply(reply)
	if title == "" && description == "" {
		return nil, &llm.ResponseParseError{Raw: reply, Err: llm.ErrEmptyResponse}
	}
	if req.Title != "" {
		title = req.Title
	}

	a.out.success("Pull request generated successfully")
	return &PRResponse{
		Title:            title,
		Description:      description,
		Simplified:       simplified,
		PromptTokens:     u.PromptTokens,
		CompletionTokens: u.CompletionTokens,
		TotalTokens:      u.TotalTokens,
	}, nil
}

// ParsePRReply splits a reply on the DESCRIPTION: marker. Text before the
// marker, minus a leading TITLE:, is the title. Without the marker the first
// line is the title and the rest the description.
func ParsePRReply(reply string) (title, description string) {
	reply = stripFences(reply)

	head, tail, found := strings.Cut(reply, descriptionMarker)
	if !found {
		head, tail, _ = strings.Cut(reply, "\n")
	}

	// Markers are often wrapped in markdown emphasis, as in **TITLE:**
	title = strings.Trim(head, markupCutset)
	title = strings.TrimPrefix(title, titleMarker)
	title = strings.Trim(title, markupCutset)

	description = strings.TrimSpace(strings.TrimLeft(tail, "*_"))
	return title, description
}
