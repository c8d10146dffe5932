// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// ConfigurationError reports a missing credential or an unknown backend
// selector. It is fatal to the operation and never retried.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// TimeoutError reports that a bounded external call exceeded its deadline.
// The literature and expert review stages degrade on it; generation and
// improvement surface it as an operation failure.
type TimeoutError struct {
	Op  string
	Err error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out: %v", e.Op, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// MalformedOutputError reports that a completion backend's response could
// not be parsed into the expected structure. Raw holds the full response
// text for diagnostics.
type MalformedOutputError struct {
	Raw string
	Err error
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("malformed model output: %v", e.Err)
}

func (e *MalformedOutputError) Unwrap() error { return e.Err }

// UpstreamServiceError reports a non-timeout failure from an external HTTP
// call: a bad status or a connection error. Status is 0 when the request
// never produced a response.
type UpstreamServiceError struct {
	Service string
	Status  int
	Err     error
}

func (e *UpstreamServiceError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s returned HTTP %d", e.Service, e.Status)
	}
	return fmt.Sprintf("%s request failed: %v", e.Service, e.Err)
}

func (e *UpstreamServiceError) Unwrap() error { return e.Err }

// StateError reports an operation attempted from a session state that does
// not permit it. The session remains in its current state.
type StateError struct {
	Op    string
	State string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("operation %s not allowed in state %s", e.Op, e.State)
}
