package collector

import "fmt"

// Error is the base type for collector failures; the more specific types
// below wrap common cases so callers can branch with errors.As.
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

// NotFoundError means the primary source is confident the game or user does
// not exist. Identifier carries the appid/steamid extracted from the source
// error message, or "unknown" when none could be found.
type NotFoundError struct {
	Identifier string
	Message    string
}

func (e *NotFoundError) Error() string { return e.Message }

// UnavailableError means a source could not serve data right now: network
// trouble, an HTTP error status, or an unparseable response. The game may
// well exist.
type UnavailableError struct {
	Source string
	Reason string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("source %s is unavailable: %s", e.Source, e.Reason)
}

// InvalidRequestError means the caller's input was rejected before any
// fetch happened.
type InvalidRequestError struct {
	Message string
}

func (e *InvalidRequestError) Error() string { return e.Message }
