package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

const (
	thinRule  = "─────────────────────────────────────────────"
	thickRule = "═════════════════════════════════════════════"
)

// Confirm asks the user for a yes/no confirmation
// Default is no (returns false on empty input)
func Confirm(message string, input io.Reader, output io.Writer) (bool, error) {
	return ConfirmWithDefault(message, false, input, output)
}

// ConfirmWithDefault asks the user for a yes/no confirmation with a specified default.
// Unrecognized answers re-prompt; EOF returns io.EOF.
func ConfirmWithDefault(message string, defaultYes bool, input io.Reader, output io.Writer) (bool, error) {
	scanner := bufio.NewScanner(input)

	choices := "[y/N]"
	if defaultYes {
		choices = "[Y/n]"
	}

	for {
		if _, err := fmt.Fprintf(output, "%s %s: ", message, choices); err != nil {
			return false, err
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return false, err
			}
			return false, io.EOF
		}

		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "":
			return defaultYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}

		if _, err := fmt.Fprintln(output, "Please enter 'y' or 'n'"); err != nil {
			return false, err
		}
	}
}

// ShowCommitMessage displays a generated commit message between rules
func ShowCommitMessage(message string, output io.Writer) error {
	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)

	if _, err := bold.Fprintln(output, "\n📝 Generated Commit Message:"); err != nil {
		return err
	}
	if _, err := cyan.Fprintln(output, thinRule); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(output, message); err != nil {
		return err
	}
	_, err := cyan.Fprintln(output, thinRule)
	return err
}

// PRDescriptionDisplayer is implemented by PR results that can be displayed
type PRDescriptionDisplayer interface {
	GetTitle() string
	GetDescription() string
}

// ShowPRDescription displays a generated PR title and body.
// An empty title or body is left out.
func ShowPRDescription(pr PRDescriptionDisplayer, output io.Writer) error {
	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)

	if _, err := bold.Fprintln(output, "\n📋 Generated PR:"); err != nil {
		return err
	}
	if _, err := cyan.Fprintln(output, thickRule); err != nil {
		return err
	}

	if title := pr.GetTitle(); title != "" {
		if _, err := green.Fprint(output, "Title: "); err != nil {
			return err
		}
		if _, err := bold.Fprintln(output, title); err != nil {
			return err
		}
		if _, err := cyan.Fprintln(output, thinRule); err != nil {
			return err
		}
	}

	if body := pr.GetDescription(); body != "" {
		if _, err := fmt.Fprintln(output, body); err != nil {
			return err
		}
	}

	_, err := cyan.Fprintln(output, thickRule)
	return err
}
