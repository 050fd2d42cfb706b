package collector

import (
	"regexp"
	"strings"
)

var (
	appidHintRegex   = regexp.MustCompile(`appid\s+(\S+)`)
	steamidHintRegex = regexp.MustCompile(`steamid\s+(\S+)`)
	httpStatusRegex  = regexp.MustCompile(`status(?:\s+code)?:?\s*[45]\d{2}`)
)

// networkKeywords mark transport-level failures. The synthetic 599 code is
// what sources report when no HTTP response was received at all.
var networkKeywords = []string{
	"status code: 599",
	"failed to connect",
	"connection",
	"timeout",
	"ssl",
	"toomanyredirects",
}

// Classify translates a source error string into a typed error. This is the
// single authoritative mapping; rules are checked in order and the first
// match wins.
//
// Parse errors are checked before the generic "not found" rule because a
// parse error message may itself contain "not found". The region rule only
// matches the exact primary-source phrasing to avoid false positives from
// transient messages like "service not available".
func Classify(sourceName, errorMessage string) error {
	lowered := strings.ToLower(errorMessage)

	if strings.Contains(lowered, "not available in the specified region") {
		return &NotFoundError{
			Identifier: identifierHint(lowered, appidHintRegex),
			Message:    errorMessage,
		}
	}

	if strings.Contains(lowered, "failed to parse") {
		return &UnavailableError{Source: sourceName, Reason: errorMessage}
	}

	if strings.Contains(lowered, "failed to fetch") || strings.Contains(lowered, "failed to obtain") {
		return &UnavailableError{Source: sourceName, Reason: errorMessage}
	}

	for _, keyword := range networkKeywords {
		if strings.Contains(lowered, keyword) {
			return &UnavailableError{Source: sourceName, Reason: errorMessage}
		}
	}

	if httpStatusRegex.MatchString(lowered) {
		return &UnavailableError{Source: sourceName, Reason: errorMessage}
	}

	if strings.Contains(lowered, "not found") {
		identifier := identifierHint(lowered, appidHintRegex)
		if identifier == "unknown" {
			identifier = identifierHint(lowered, steamidHintRegex)
		}
		return &NotFoundError{Identifier: identifier, Message: errorMessage}
	}

	return &Error{Message: errorMessage}
}

// FailureFor classifies a source failure from the collector's point of
// view. A supplementary source never yields NotFoundError: the game exists
// (the primary said so), that source just has no data for it.
func FailureFor(sourceName, errorMessage string, primary bool) error {
	err := Classify(sourceName, errorMessage)
	if _, notFound := err.(*NotFoundError); notFound && !primary {
		return &UnavailableError{Source: sourceName, Reason: errorMessage}
	}
	return err
}

func identifierHint(lowered string, pattern *regexp.Regexp) string {
	match := pattern.FindStringSubmatch(lowered)
	if match == nil {
		return "unknown"
	}
	return strings.TrimRight(match[1], ".,")
}
