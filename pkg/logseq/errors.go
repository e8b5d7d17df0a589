package logseq

import "fmt"

// AuthError indicates the API token was rejected (HTTP 401/403).
// Calls that fail with AuthError are never retried.
type AuthError struct {
	Status int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("logseq API rejected credentials (HTTP %d): check LOGSEQ_API_TOKEN", e.Status)
}

// RemoteError indicates the API returned a non-success status for a
// structurally valid request. Body carries the remote response verbatim.
type RemoteError struct {
	Status int
	Body   string
}

func (e *RemoteError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("logseq API call failed: HTTP %d", e.Status)
	}
	return fmt.Sprintf("logseq API call failed: HTTP %d - %s", e.Status, e.Body)
}

// TransportError indicates the request never produced an HTTP response
// (connection refused, timeout, cancelled context). The remote state is
// unknown: a timed-out write may still have succeeded.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("logseq API unreachable: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
