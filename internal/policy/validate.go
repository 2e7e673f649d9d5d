// Package policy holds the deterministic rules applied to commit messages
// and diffs: header validation against the configured convention and the
// lossy diff shortening used to keep request payloads small.
package policy

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/commit-assistant/caa/internal/config"
)

var (
	// ErrEmptyMessage is returned for an empty candidate message
	ErrEmptyMessage = errors.New("commit message is empty")

	// ErrHeaderTooLong is returned when the first line exceeds max_header_length
	ErrHeaderTooLong = errors.New("commit header is too long")

	// ErrUnknownType is returned when the semantic prefix is not an allowed type
	ErrUnknownType = errors.New("commit type is not allowed")
)

// Header returns the first line of a message
func Header(message string) string {
	header, _, _ := strings.Cut(message, "\n")
	return header
}

// CommitType extracts the semantic prefix from the header: the text before the
// first colon, cut at the first opening parenthesis. A header without a colon
// has no type.
func CommitType(message string) string {
	header := Header(message)
	prefix, _, found := strings.Cut(header, ":")
	if !found {
		return ""
	}
	prefix, _, _ = strings.Cut(prefix, "(")
	return prefix
}

// Check validates a candidate message against the commit convention and
// reports why it was rejected.
func Check(message string, cfg config.CommitConfig) error {
	if message == "" {
		return ErrEmptyMessage
	}

	header := Header(message)
	if n := utf8.RuneCountInString(header); n > cfg.MaxHeaderLength {
		return fmt.Errorf("%w: %d characters, limit is %d", ErrHeaderTooLong, n, cfg.MaxHeaderLength)
	}

	commitType := CommitType(message)
	if !cfg.HasType(commitType) {
		if commitType == "" {
			return fmt.Errorf("%w: header has no semantic prefix", ErrUnknownType)
		}
		return fmt.Errorf("%w: %q (allowed: %s)", ErrUnknownType, commitType, strings.Join(cfg.Types, ", "))
	}

	return nil
}

// Validate reports whether message follows the commit convention
func Validate(message string, cfg config.CommitConfig) bool {
	return Check(message, cfg) == nil
}
