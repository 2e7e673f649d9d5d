package agent

import (
	"context"
	"errors"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/commit-assistant/caa/internal/config"
)

// scriptedReply is one canned outcome of a chat call
type scriptedReply struct {
	content string
	err     error
}

// fakeChatModel replays scripted replies in order and records prompts
type fakeChatModel struct {
	mu      sync.Mutex
	replies []scriptedReply
	prompts []string
}

func (m *fakeChatModel) next(input []*schema.Message) (scriptedReply, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(input) > 0 {
		m.prompts = append(m.prompts, input[len(input)-1].Content)
	}
	if len(m.replies) == 0 {
		return scriptedReply{}, errors.New("fake chat model: no scripted reply")
	}
	r := m.replies[0]
	m.replies = m.replies[1:]
	return r, nil
}

func (m *fakeChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	r, err := m.next(input)
	if err != nil {
		return nil, err
	}
	if r.err != nil {
		return nil, r.err
	}
	return schema.AssistantMessage(r.content, nil), nil
}

func (m *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	r, err := m.next(input)
	if err != nil {
		return nil, err
	}
	if r.err != nil {
		return nil, r.err
	}

	// Split the reply so the stream has more than one chunk
	half := len(r.content) / 2
	chunks := []*schema.Message{
		{Role: schema.Assistant, Content: r.content[:half]},
		{
			Role:    schema.Assistant,
			Content: r.content[half:],
			ResponseMeta: &schema.ResponseMeta{
				Usage: &schema.TokenUsage{PromptTokens: 120, CompletionTokens: 30, TotalTokens: 150},
			},
		},
	}
	return schema.StreamReaderFromArray(chunks), nil
}

func (m *fakeChatModel) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// fakeProvider hands out a fixed chat model
type fakeProvider struct {
	model model.BaseChatModel
	err   error
}

func (p *fakeProvider) Name() string {
	return "fake"
}

func (p *fakeProvider) GetConfig() config.ProviderConfig {
	return config.ProviderConfig{Name: "openai", Model: "fake-model", Temperature: 0.7, MaxTokens: 500}
}

func (p *fakeProvider) CreateChatModel(ctx context.Context) (model.BaseChatModel, error) {
	return p.model, p.err
}

func replies(rs ...scriptedReply) *fakeChatModel {
	return &fakeChatModel{replies: rs}
}
