package ui

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStreamPrinter(t *testing.T) {
	var buf bytes.Buffer
	printer := NewStreamPrinter(&buf)
	require.NotNil(t, printer)
	assert.True(t, printer.colorEnabled)
	assert.False(t, printer.verbose)
}

func TestStreamPrinter_Messages(t *testing.T) {
	tests := []struct {
		name  string
		print func(p *StreamPrinter) error
		want  string
	}{
		{name: "step", print: func(p *StreamPrinter) error { return p.PrintStep(1, "Reading diff") }, want: "📋 Step 1: Reading diff\n"},
		{name: "progress", print: func(p *StreamPrinter) error { return p.PrintProgress("Calling model") }, want: "⏳ Calling model\n"},
		{name: "info", print: func(p *StreamPrinter) error { return p.PrintInfo("Using deepseek") }, want: "ℹ️  Using deepseek\n"},
		{name: "success", print: func(p *StreamPrinter) error { return p.PrintSuccess("Committed") }, want: "✅ Committed\n"},
		{name: "warning", print: func(p *StreamPrinter) error { return p.PrintWarning("Diff truncated") }, want: "⚠️  Diff truncated\n"},
		{name: "error", print: func(p *StreamPrinter) error { return p.PrintError("boom") }, want: "❌ Error: boom\n"},
		{name: "newline", print: func(p *StreamPrinter) error { return p.Newline() }, want: "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printer := NewStreamPrinter(&buf, WithColor(false))
			require.NoError(t, tt.print(printer))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestStreamPrinter_PrintDetail(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewStreamPrinter(&buf, WithColor(false)).PrintDetail("hidden"))
	assert.Empty(t, buf.String())

	require.NoError(t, NewStreamPrinter(&buf, WithColor(false), WithVerbose(true)).PrintDetail("shown"))
	assert.Equal(t, "   shown\n", buf.String())
}

func TestStreamPrinter_PrintHints(t *testing.T) {
	var buf bytes.Buffer
	printer := NewStreamPrinter(&buf, WithColor(false))

	require.NoError(t, printer.PrintHints([]string{"first", "second"}))
	assert.Equal(t, "   • first\n   • second\n", buf.String())
}

func TestStreamPrinter_PrintStats(t *testing.T) {
	var buf bytes.Buffer
	printer := NewStreamPrinter(&buf, WithColor(false))

	require.NoError(t, printer.PrintStats(nil))
	assert.Empty(t, buf.String())

	start := time.Now()
	stats := &ExecutionStats{
		StartTime:        start,
		EndTime:          start.Add(1500 * time.Millisecond),
		PromptTokens:     100,
		CompletionTokens: 20,
		TotalTokens:      120,
	}
	require.NoError(t, printer.PrintStats(stats))
	assert.Contains(t, buf.String(), "120 tokens (prompt: 100, completion: 20)")
	assert.Contains(t, buf.String(), "Time: 1.50s")
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "250ms", formatDuration(250*time.Millisecond))
	assert.Equal(t, "2.00s", formatDuration(2*time.Second))
}
