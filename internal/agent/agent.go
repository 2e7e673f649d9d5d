package agent

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/commit-assistant/caa/internal/llm"
	"github.com/commit-assistant/caa/internal/log"
	"github.com/commit-assistant/caa/internal/ui"
	"github.com/commit-assistant/caa/pkg/lang"
)

var (
	// ErrNoChanges is returned when there is no diff to describe
	ErrNoChanges = errors.New("no changes detected")

	// ErrValidationFailed marks a generated message rejected by the commit policy
	ErrValidationFailed = errors.New("generated commit message does not follow the convention")
)

// ValidationError carries the rejected message and the policy reason
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %v", ErrValidationFailed, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is reports ErrValidationFailed as a match so callers can test for the kind
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// usage is the token accounting of one completion
type usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// reporter wraps an optional printer so agents can report progress unconditionally
type reporter struct {
	printer *ui.StreamPrinter
}

func newReporter(printer *ui.StreamPrinter, output io.Writer, verbose bool) reporter {
	if printer == nil && output != nil {
		printer = ui.NewStreamPrinter(output, ui.WithVerbose(verbose))
	}
	return reporter{printer: printer}
}

func (r reporter) step(step int, msg string) {
	if r.printer != nil {
		_ = r.printer.PrintStep(step, msg)
	}
	log.Debug("Step %d: %s", step, msg)
}

func (r reporter) progress(msg string) {
	if r.printer != nil {
		_ = r.printer.PrintProgress(msg)
	}
	log.Debug("%s", msg)
}

func (r reporter) info(msg string) {
	if r.printer != nil {
		_ = r.printer.PrintInfo(msg)
	}
}

func (r reporter) detail(msg string) {
	if r.printer != nil {
		_ = r.printer.PrintDetail(msg)
	}
}

func (r reporter) warn(msg string) {
	if r.printer != nil {
		_ = r.printer.PrintWarning(msg)
	}
	log.Debug("%s", msg)
}

func (r reporter) success(msg string) {
	if r.printer != nil {
		_ = r.printer.PrintSuccess(msg)
	}
}

// completer runs single-turn chat completions against one provider
type completer struct {
	provider llm.Provider
	retry    llm.RetryConfig
	system   string
}

// chatModel creates the provider's chat model
func (c completer) chatModel(ctx context.Context) (model.BaseChatModel, error) {
	if c.provider == nil {
		return nil, fmt.Errorf("LLM provider is not configured")
	}

	cm, err := c.provider.CreateChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}
	if cm == nil {
		return nil, fmt.Errorf("chat model is nil (provider: %s)", c.provider.Name())
	}
	return cm, nil
}

type completion struct {
	content string
	usage   usage
}

// complete sends the prompt and collects the streamed reply.
// Transport failures come back unwrapped so callers can inspect their text.
func (c completer) complete(ctx context.Context, cm model.BaseChatModel, prompt string) (string, usage, error) {
	messages := []*schema.Message{
		{Role: schema.System, Content: c.system},
		{Role: schema.User, Content: prompt},
	}
	opts := llm.CallOptions(c.provider.GetConfig())

	log.DebugPrompt("Prompt", prompt)
	start := time.Now()

	result, err := llm.WithRetry(ctx, c.retry, func() (completion, error) {
		return c.stream(ctx, cm, messages, opts)
	})
	log.DebugDuration("Chat completion", time.Since(start))
	if err != nil {
		return "", usage{}, err
	}

	log.DebugPrompt("Reply", result.content)
	log.DebugTokenUsage(result.usage.PromptTokens, result.usage.CompletionTokens, result.usage.TotalTokens)
	return result.content, result.usage, nil
}

func (c completer) stream(ctx context.Context, cm model.BaseChatModel, messages []*schema.Message, opts []model.Option) (completion, error) {
	reader, err := cm.Stream(ctx, messages, opts...)
	if err != nil {
		return completion{}, err
	}
	defer reader.Close()

	var content strings.Builder
	var u usage
	for {
		chunk, err := reader.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return completion{}, err
		}

		content.WriteString(chunk.Content)

		// Token usage usually arrives with the last chunk
		if chunk.ResponseMeta != nil && chunk.ResponseMeta.Usage != nil {
			mu := chunk.ResponseMeta.Usage
			u.PromptTokens = max(u.PromptTokens, mu.PromptTokens)
			u.CompletionTokens = max(u.CompletionTokens, mu.CompletionTokens)
			u.TotalTokens = max(u.TotalTokens, mu.TotalTokens)
		}
	}

	return completion{content: content.String(), usage: u}, nil
}

// renderTemplate executes a prompt template with the given data
func renderTemplate(name, text string, data any) (string, error) {
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s template: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s template: %w", name, err)
	}
	return buf.String(), nil
}

// languageName returns the display name for a non-English output language, or ""
func languageName(code string) string {
	l := lang.ParseLanguage(code)
	if l == lang.English {
		return ""
	}
	return l.DisplayName()
}

// stripFences removes a markdown code fence wrapping the whole reply
func stripFences(reply string) string {
	reply = strings.TrimSpace(reply)
	if !strings.HasPrefix(reply, "```") || !strings.HasSuffix(reply, "```") || len(reply) < 6 {
		return reply
	}

	inner := strings.TrimSuffix(strings.TrimPrefix(reply, "```"), "```")
	// Drop a language tag on the opening fence
	if nl := strings.IndexByte(inner, '\n'); nl >= 0 && !strings.ContainsAny(inner[:nl], " :") {
		inner = inner[nl+1:]
	}
	return strings.TrimSpace(inner)
}

// estimateTokenCount roughly estimates the token count of a prompt
func estimateTokenCount(text string) int {
	if len(text) == 0 {
		return 0
	}
	// CJK unified ideographs run about 1.5 chars per token, everything else about 4
	cjk := 0
	for _, r := range text {
		if r >= 0x4E00 && r <= 0x9FFF {
			cjk++
		}
	}
	other := len([]rune(text)) - cjk
	tokens := (cjk * 2 / 3) + (other / 4)
	if tokens == 0 {
		tokens = 1
	}
	return tokens
}
