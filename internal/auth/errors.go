package auth

import (
	"errors"
	"fmt"
)

// Sentinel errors; handlers map them to HTTP status codes.
var (
	// ErrInvalidAuthentication covers refresh-token validation failure
	// (bad signature, unknown token, email mismatch) and sign-out
	// against a token with no active session. No state is mutated.
	ErrInvalidAuthentication = errors.New("invalid authentication")

	// ErrInvalidCredentials means login could not bind the provider
	// profile to a user record.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ExternalProviderError wraps a failed OAuth provider call: the HTTP
// request failed or the body could not be parsed. Never retried;
// surfaced to the caller as a login failure.
type ExternalProviderError struct {
	Op  string
	Err error
}

func (e *ExternalProviderError) Error() string {
	return fmt.Sprintf("oauth provider: %s: %v", e.Op, e.Err)
}

func (e *ExternalProviderError) Unwrap() error {
	return e.Err
}

// AssertionError reports a violated invariant, such as a missing user
// or token row during account deletion. The message names the missing
// record, never token values.
type AssertionError struct {
	Msg string
}

func (e *AssertionError) Error() string {
	return e.Msg
}

// Assert returns an AssertionError with msg when cond is false.
func Assert(cond bool, msg string) error {
	if !cond {
		return &AssertionError{Msg: msg}
	}
	return nil
}
