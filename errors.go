package tailwrite

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for session construction and profile loading.
// All use prefix "tailwrite:" for identification. Callers should use errors.Is/errors.As.
var (
	ErrNilTransport   = errors.New("tailwrite: transport must not be nil")
	ErrEmptyPrompt    = errors.New("tailwrite: prompt must contain text")
	ErrReservedParam  = errors.New("tailwrite: parameter names starting with \"_\" are reserved")
	ErrInvalidProfile = errors.New("tailwrite: generation profile is malformed")
)

// CompletionError is a failure the completion service reported in its
// reply. Messages are the service's own error strings, verbatim.
type CompletionError struct {
	Messages []string
}

// Error implements error.
func (e *CompletionError) Error() string {
	return "tailwrite: completion failed: " + strings.Join(e.Messages, "; ")
}

// UnexpectedResponseError reports a service reply matching neither the
// success nor the service-error shape. Probably a bug on one side of the
// wire; Response carries the raw payload for postmortems.
type UnexpectedResponseError struct {
	Response any
}

// Error implements error.
func (e *UnexpectedResponseError) Error() string {
	return fmt.Sprintf("tailwrite: unexpected inference response: %v", e.Response)
}

// Compile-time checks that both failure types implement error.
var (
	_ error = (*CompletionError)(nil)
	_ error = (*UnexpectedResponseError)(nil)
)
