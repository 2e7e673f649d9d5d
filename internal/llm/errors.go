package llm

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyResponse is returned when the model replies with no content
var ErrEmptyResponse = errors.New("empty response from model")

// NetworkError wraps a failed chat-completion call
type NetworkError struct {
	Provider string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s API request failed: %v", e.Provider, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ResponseParseError reports a reply that could not be turned into output
type ResponseParseError struct {
	Raw string
	Err error
}

func (e *ResponseParseError) Error() string {
	return fmt.Sprintf("failed to parse model response: %v", e.Err)
}

func (e *ResponseParseError) Unwrap() error {
	return e.Err
}

// Failure classifies an API error for user-facing remediation
type Failure int

const (
	FailureUnknown Failure = iota
	FailureDeserialize
	FailureRateLimit
	FailureAuth
)

// String returns the string representation of Failure
func (f Failure) String() string {
	switch f {
	case FailureDeserialize:
		return "deserialize"
	case FailureRateLimit:
		return "rate-limit"
	case FailureAuth:
		return "auth"
	default:
		return "unknown"
	}
}

// Diagnose matches the error text against known provider failure messages
func Diagnose(err error) Failure {
	if err == nil {
		return FailureUnknown
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "deserialize") || strings.Contains(msg, "json"):
		return FailureDeserialize
	case strings.Contains(msg, "rate") && strings.Contains(msg, "limit"):
		return FailureRateLimit
	case strings.Contains(msg, "authentication") || strings.Contains(msg, "api key"):
		return FailureAuth
	default:
		return FailureUnknown
	}
}

// Hints returns remediation steps for a failure. envVar names the API key variable.
func Hints(f Failure, envVar string) []string {
	switch f {
	case FailureDeserialize:
		return []string{
			"JSON deserialization error detected. This is likely due to an issue with the API response format.",
			"Try a different API provider or model in your config.yaml",
			"Check if your API key has the correct permissions",
			"The provider's API might be experiencing issues. Try again later.",
			"Try running with the --simplified flag to truncate large diffs",
		}
	case FailureRateLimit:
		return []string{
			"You've hit a rate limit with the API provider.",
			"Please wait a while before trying again.",
		}
	case FailureAuth:
		return []string{
			"API authentication error. Please check your API key.",
			"Make sure your .env file or environment contains a valid API key for your provider.",
			fmt.Sprintf("The expected environment variable is %s", envVar),
			"Get a valid API key from your provider's website.",
		}
	default:
		return []string{
			"An unexpected error occurred with the API. You may want to try:",
			"Using a different model in config.yaml",
			"Trying again with a smaller code diff (--simplified)",
			"Checking if your API service is functioning correctly",
		}
	}
}
