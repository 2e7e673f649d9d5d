package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/commit-assistant/caa/internal/agent"
	"github.com/commit-assistant/caa/internal/log"
	"github.com/commit-assistant/caa/internal/ui"
)

var (
	prTitle      string
	prBody       string
	prScope      string
	prBrief      bool
	prSimplified bool
	prLanguage   string
)

var prCmd = &cobra.Command{
	Use:   "pr [[source-branch] target-branch]",
	Short: "Generate a Pull Request title and description",
	Long: `Generate a pull request title and description.

Without arguments the working tree changes are described. With a source
and target branch, the diff and commit log of target..source are used. A
single branch is the target, compared against the current branch.

Examples:
  caa pr
  caa pr -t "Add login" -b "Part of the auth epic"
  caa pr main
  caa pr feature/login main --scope auth --brief`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) > 2 {
			return fmt.Errorf("accepts at most <source-branch> <target-branch>, received %d", len(args))
		}
		return nil
	},
	RunE: runPR,
}

func init() {
	prCmd.Flags().StringVarP(&prTitle, "title", "t", "", "Custom PR title")
	prCmd.Flags().StringVarP(&prBody, "body", "b", "", "Additional context for PR description")
	prCmd.Flags().StringVarP(&prScope, "scope", "s", "", "The scope of the change")
	prCmd.Flags().BoolVar(&prBrief, "brief", false, "Use brief style for the description")
	prCmd.Flags().BoolVar(&prSimplified, "simplified", false, "Use simplified diff for API compatibility")
	prCmd.Flags().StringVarP(&prLanguage, "language", "l", "", "Output language (en, zh, ja, etc.)")
	rootCmd.AddCommand(prCmd)
}

func runPR(cmd *cobra.Command, args []string) error {
	startTime := time.Now()
	out := cmd.OutOrStdout()

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.stop()

	req := agent.PRRequest{
		Title:      prTitle,
		Body:       prBody,
		Scope:      prScope,
		Brief:      prBrief,
		Simplified: prSimplified,
		Language:   s.language(prLanguage),
	}

	switch len(args) {
	case 1:
		req.Target = args[0]
		if req.Source, err = s.git.CurrentBranch(s.ctx); err != nil {
			return fmt.Errorf("failed to get current branch: %w", err)
		}
		log.Info("Comparing current branch '%s' against '%s'", req.Source, req.Target)
	case 2:
		req.Source, req.Target = args[0], args[1]
	}

	if req.Target != "" {
		if req.Diff, err = s.git.DiffBranches(s.ctx, req.Target, req.Source); err != nil {
			return fmt.Errorf("failed to get branch diff: %w", err)
		}
		if req.Commits, err = s.git.LogRange(s.ctx, req.Target, req.Source); err != nil {
			return fmt.Errorf("failed to get commit log: %w", err)
		}
	} else if req.Diff, err = s.git.Changes(s.ctx); err != nil {
		return fmt.Errorf("failed to get git diff: %w", err)
	}

	if req.Diff == "" {
		fmt.Fprintln(out, "No changes detected")
		return nil
	}

	provider, err := s.provider()
	if err != nil {
		return err
	}

	prAgent, err := agent.NewPRAgent(agent.PRAgentOptions{
		Template:          s.cfg.PR.Template,
		SimplifyThreshold: s.cfg.Diff.SimplifyThreshold,
		LLMProvider:       provider,
		Retry:             s.retry(),
		Printer:           s.printer,
		Debug:             debugMode,
	})
	if err != nil {
		return fmt.Errorf("failed to create PR agent: %w", err)
	}

	resp, err := prAgent.Generate(s.ctx, req)
	s.releaseInterrupts()
	if err != nil {
		return s.reportFailure(err)
	}

	if err := ui.ShowPRDescription(resp, out); err != nil {
		return err
	}

	_ = s.printer.PrintStats(&ui.ExecutionStats{
		StartTime:        startTime,
		EndTime:          time.Now(),
		PromptTokens:     resp.PromptTokens,
		CompletionTokens: resp.CompletionTokens,
		TotalTokens:      resp.TotalTokens,
	})
	return nil
}
