package models

import "fmt"

// FetchError covers network and HTTP failures: request errors, timeouts,
// DNS, and any non-success status code.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to fetch %s: status code %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError means the fetched payload could not be parsed as markup.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// CriticError is a model-call or response-shape failure. It is always
// absorbed into an empty/error report value at the critic boundary and
// exists as a type for logging, never as a returned error.
type CriticError struct {
	Op  string
	Err error
}

func (e *CriticError) Error() string {
	return fmt.Sprintf("critic %s failed: %v", e.Op, e.Err)
}

func (e *CriticError) Unwrap() error { return e.Err }

// ConfigError is fatal at startup, before any network activity.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Reason)
}
