package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/commit-assistant/caa/internal/agent"
	"github.com/commit-assistant/caa/internal/ui"
)

var (
	commitScope      string
	commitBrief      bool
	commitEmoji      bool
	commitSimplified bool
	commitForce      bool
	commitApply      bool
	commitAutoYes    bool
	commitLanguage   string
)

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Generate a commit message",
	Long: `Generate a commit message based on your changes.

Staged changes are described when there are any, otherwise unstaged
changes to tracked files. The message must use one of the configured
semantic prefixes and fit the configured header length.

Examples:
  caa commit
  caa commit -s auth --brief
  caa commit --simplified --force
  caa commit --apply -y`,
	Args: cobra.NoArgs,
	RunE: runCommit,
}

func init() {
	commitCmd.Flags().StringVarP(&commitScope, "scope", "s", "", "The scope of the commit")
	commitCmd.Flags().BoolVar(&commitBrief, "brief", false, "Use brief style for commit message")
	commitCmd.Flags().BoolVar(&commitEmoji, "emoji", false, "Include emoji in commit message")
	commitCmd.Flags().BoolVar(&commitSimplified, "simplified", false, "Use simplified diff for API compatibility")
	commitCmd.Flags().BoolVar(&commitForce, "force", false, "Force accept the message even if validation fails")
	commitCmd.Flags().BoolVar(&commitApply, "apply", false, "Create the commit with the generated message")
	commitCmd.Flags().BoolVarP(&commitAutoYes, "yes", "y", false, "Auto-confirm the commit without prompting")
	commitCmd.Flags().StringVarP(&commitLanguage, "language", "l", "", "Output language (en, zh, ja, etc.)")
	rootCmd.AddCommand(commitCmd)
}

func runCommit(cmd *cobra.Command, args []string) error {
	startTime := time.Now()
	out := cmd.OutOrStdout()

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.stop()

	diff, err := s.git.Changes(s.ctx)
	if err != nil {
		return fmt.Errorf("failed to get git diff: %w", err)
	}
	if diff == "" {
		fmt.Fprintln(out, "No changes detected")
		return nil
	}

	provider, err := s.provider()
	if err != nil {
		return err
	}

	commitAgent, err := agent.NewCommitAgent(agent.CommitAgentOptions{
		Commit:            s.cfg.Commit,
		SimplifyThreshold: s.cfg.Diff.SimplifyThreshold,
		LLMProvider:       provider,
		Retry:             s.retry(),
		Printer:           s.printer,
		Debug:             debugMode,
	})
	if err != nil {
		return fmt.Errorf("failed to create commit agent: %w", err)
	}

	resp, err := commitAgent.Generate(s.ctx, agent.CommitRequest{
		Diff:       diff,
		Scope:      commitScope,
		Brief:      commitBrief,
		Emoji:      commitEmoji,
		Simplified: commitSimplified,
		Force:      commitForce,
		Language:   s.language(commitLanguage),
	})
	s.releaseInterrupts()
	if err != nil {
		var vErr *agent.ValidationError
		if errors.As(err, &vErr) {
			_ = ui.ShowCommitMessage(vErr.Message, out)
			_ = s.printer.PrintInfo("Run with --force to use it anyway.")
			return err
		}
		return s.reportFailure(err)
	}

	if err := ui.ShowCommitMessage(resp.Message, out); err != nil {
		return err
	}

	_ = s.printer.PrintStats(&ui.ExecutionStats{
		StartTime:        startTime,
		EndTime:          time.Now(),
		PromptTokens:     resp.PromptTokens,
		CompletionTokens: resp.CompletionTokens,
		TotalTokens:      resp.TotalTokens,
	})

	if !commitApply {
		return nil
	}

	if !commitAutoYes {
		confirmed, err := ui.ConfirmWithDefault("\nDo you want to commit with this message?", true, cmd.InOrStdin(), out)
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(out, "Commit cancelled.")
			return nil
		}
	}

	if err := s.git.Commit(s.ctx, resp.Message); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	_ = s.printer.PrintSuccess("Commit created successfully!")
	return nil
}
