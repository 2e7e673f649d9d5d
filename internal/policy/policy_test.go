package policy

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commit-assistant/caa/internal/config"
)

func commitConfig(maxLen int, types ...string) config.CommitConfig {
	return config.CommitConfig{Types: types, MaxHeaderLength: maxLen}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		message string
		cfg     config.CommitConfig
		want    bool
	}{
		{
			name:    "simple type",
			message: "feat: add x",
			cfg:     commitConfig(50, "feat", "fix"),
			want:    true,
		},
		{
			name:    "type not in set",
			message: "feature: add x",
			cfg:     commitConfig(50, "feat", "fix"),
			want:    false,
		},
		{
			name:    "scope stripped before matching",
			message: "feat(cli): add x",
			cfg:     commitConfig(50, "feat"),
			want:    true,
		},
		{
			name:    "empty message",
			message: "",
			cfg:     commitConfig(50, "feat"),
			want:    false,
		},
		{
			name:    "no colon",
			message: "add x",
			cfg:     commitConfig(50, "feat"),
			want:    false,
		},
		{
			name:    "header at exact limit",
			message: "fix: " + strings.Repeat("a", 45),
			cfg:     commitConfig(50, "fix"),
			want:    true,
		},
		{
			name:    "header one over limit",
			message: "fix: " + strings.Repeat("a", 46),
			cfg:     commitConfig(50, "fix"),
			want:    false,
		},
		{
			name:    "long body does not count",
			message: "fix: short\n\n" + strings.Repeat("b", 200),
			cfg:     commitConfig(50, "fix"),
			want:    true,
		},
		{
			name:    "multiple colons use the first",
			message: "fix: handle a: b",
			cfg:     commitConfig(50, "fix"),
			want:    true,
		},
		{
			name:    "colon only in body",
			message: "update things\n\nnote: see docs",
			cfg:     commitConfig(50, "note"),
			want:    false,
		},
		{
			name:    "leading emoji is part of the type",
			message: "✨ feat: add x",
			cfg:     commitConfig(50, "feat"),
			want:    false,
		},
		{
			name:    "length counts characters not bytes",
			message: "feat: " + strings.Repeat("é", 44),
			cfg:     commitConfig(50, "feat"),
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Validate(tt.message, tt.cfg))
		})
	}
}

func TestValidate_EmptyAlwaysFails(t *testing.T) {
	configs := []config.CommitConfig{
		commitConfig(50, "feat"),
		commitConfig(1000, ""),
		commitConfig(1, "fix", "chore"),
	}
	for i, cfg := range configs {
		t.Run(fmt.Sprintf("config %d", i), func(t *testing.T) {
			assert.False(t, Validate("", cfg))
		})
	}
}

func TestValidate_HeaderTooLongRegardlessOfType(t *testing.T) {
	for _, maxLen := range []int{1, 10, 50, 72} {
		header := "feat: " + strings.Repeat("x", maxLen)
		assert.False(t, Validate(header, commitConfig(maxLen, "feat")), "limit %d", maxLen)
	}
}

func TestCheck_Reasons(t *testing.T) {
	cfg := commitConfig(20, "feat", "fix")

	assert.True(t, errors.Is(Check("", cfg), ErrEmptyMessage))
	assert.True(t, errors.Is(Check("feat: "+strings.Repeat("x", 30), cfg), ErrHeaderTooLong))
	assert.True(t, errors.Is(Check("docs: readme", cfg), ErrUnknownType))
	assert.True(t, errors.Is(Check("readme", cfg), ErrUnknownType))
	assert.NoError(t, Check("fix: typo", cfg))

	err := Check("docs: readme", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"docs"`)
	assert.Contains(t, err.Error(), "feat, fix")
}

func TestCommitType(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"feat: add", "feat"},
		{"feat(cli): add", "feat"},
		{"feat(cli)!: breaking", "feat"},
		{"fix(a(b)): nested", "fix"},
		{"no colon here", ""},
		{": empty type", ""},
		{"(scope): no type", ""},
		{"chore: a\nfeat: b", "chore"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.want, CommitType(tt.message))
		})
	}
}

func TestHeader(t *testing.T) {
	assert.Equal(t, "feat: a", Header("feat: a\n\nbody"))
	assert.Equal(t, "single", Header("single"))
	assert.Equal(t, "", Header(""))
}

func makeLines(n, width int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("%03d%s", i, strings.Repeat("+", width))
	}
	return lines
}

func TestSimplifyLines(t *testing.T) {
	t.Run("short diff unchanged", func(t *testing.T) {
		lines := makeLines(5, 10)
		assert.Equal(t, lines, SimplifyLines(lines, DefaultSimplifyThreshold))
	})

	t.Run("at threshold unchanged", func(t *testing.T) {
		lines := []string{strings.Repeat("a", 500), strings.Repeat("b", 499)}
		assert.Equal(t, 1000, textLength(lines))
		assert.Equal(t, lines, SimplifyLines(lines, 1000))
	})

	t.Run("long diff keeps head and tail", func(t *testing.T) {
		lines := makeLines(100, 50)
		out := SimplifyLines(lines, DefaultSimplifyThreshold)

		require.Len(t, out, 21)
		assert.Equal(t, lines[:10], out[:10])
		assert.Equal(t, TruncationMarker, out[10])
		assert.Equal(t, lines[90:], out[11:])
	})

	t.Run("few long lines unchanged", func(t *testing.T) {
		lines := makeLines(5, 400)
		assert.Equal(t, lines, SimplifyLines(lines, DefaultSimplifyThreshold))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, SimplifyLines(nil, DefaultSimplifyThreshold))
	})
}

func TestSimplifyLines_Idempotent(t *testing.T) {
	cases := map[string][]string{
		"short":        makeLines(3, 5),
		"long":         makeLines(200, 40),
		"wide":         makeLines(25, 400),
		"few and wide": makeLines(4, 600),
		"exactly 21":   makeLines(21, 100),
		"exactly 22":   makeLines(22, 100),
	}

	for name, lines := range cases {
		t.Run(name, func(t *testing.T) {
			once := SimplifyLines(lines, DefaultSimplifyThreshold)
			twice := SimplifyLines(once, DefaultSimplifyThreshold)
			assert.Equal(t, once, twice)
		})
	}
}

func TestSimplify(t *testing.T) {
	t.Run("identity under threshold", func(t *testing.T) {
		diff := "diff --git a/x b/x\n+hello"
		assert.Equal(t, diff, Simplify(diff, DefaultSimplifyThreshold))
		assert.False(t, Simplified(diff, Simplify(diff, DefaultSimplifyThreshold)))
	})

	t.Run("truncates long diff", func(t *testing.T) {
		diff := strings.Join(makeLines(60, 30), "\n")
		out := Simplify(diff, DefaultSimplifyThreshold)

		assert.True(t, Simplified(diff, out))
		assert.Contains(t, out, TruncationMarker)
		assert.True(t, strings.HasPrefix(out, "000"))
		assert.True(t, strings.HasSuffix(out, strings.Split(diff, "\n")[59]))
		assert.Equal(t, out, Simplify(out, DefaultSimplifyThreshold))
	})

	t.Run("custom threshold", func(t *testing.T) {
		diff := strings.Join(makeLines(30, 1), "\n")
		assert.Equal(t, diff, Simplify(diff, len(diff)))
		assert.NotEqual(t, diff, Simplify(diff, len(diff)-1))
	})
}

func TestExtractFromErrorOutput(t *testing.T) {
	t.Run("no marker", func(t *testing.T) {
		_, ok := ExtractFromErrorOutput("connection reset by peer")
		assert.False(t, ok)
	})

	t.Run("extracts between markers", func(t *testing.T) {
		text := strings.Join([]string{
			"Error in code parsing:",
			"Your code snippet is invalid. Here is your code snippet:",
			"            feat(cli): add brief flag",
			"",
			"            Adds a flag for shorter output.",
			"Make sure to include code with the correct pattern",
			"ignored trailing line",
		}, "\n")

		msg, ok := ExtractFromErrorOutput(text)
		require.True(t, ok)
		assert.Equal(t, "feat(cli): add brief flag\nAdds a flag for shorter output.", msg)
	})

	t.Run("marker with nothing after", func(t *testing.T) {
		_, ok := ExtractFromErrorOutput("code parsing failed\nHere is your code snippet:\n\nMake sure to include code")
		assert.False(t, ok)
	})

	t.Run("snippet outside a code parsing error", func(t *testing.T) {
		_, ok := ExtractFromErrorOutput("rate limited\nHere is your code snippet:\nfeat: add login\nMake sure to include code")
		assert.False(t, ok)
	})
}
