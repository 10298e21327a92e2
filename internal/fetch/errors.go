// File: internal/fetch/errors.go
package fetch

import (
	"errors"
	"fmt"
)

// Kind classifies a fetch failure so callers can decide whether to retry,
// skip the id, or stop a letter's enumeration early.
type Kind int

const (
	// KindNetwork covers transport-level failures: DNS, dial, TLS, read.
	KindNetwork Kind = iota
	// KindStatus covers any non-success HTTP status not classified below.
	KindStatus
	// KindNotFound is a 404; the slug does not exist and retrying is pointless.
	KindNotFound
	// KindRateLimited is a 429 from the remote side.
	KindRateLimited
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindStatus:
		return "status"
	case KindNotFound:
		return "not-found"
	case KindRateLimited:
		return "rate-limited"
	default:
		return "unknown"
	}
}

// Error is the failure type returned by the fetcher.
type Error struct {
	Kind   Kind
	URL    string
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: %s (status %d)", e.URL, e.Kind, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a fetch error for a missing page.
func IsNotFound(err error) bool {
	var fe *Error
	return errors.As(err, &fe) && fe.Kind == KindNotFound
}

// statusKind maps an HTTP status code to a failure kind.
func statusKind(status int) Kind {
	switch {
	case status == 404:
		return KindNotFound
	case status == 429:
		return KindRateLimited
	default:
		return KindStatus
	}
}

// retryable reports whether a failure of this kind is worth another attempt.
// Server-side hiccups and throttling are; a missing page never is.
func retryable(k Kind, status int) bool {
	switch k {
	case KindNetwork, KindRateLimited:
		return true
	case KindStatus:
		return status >= 500
	default:
		return false
	}
}
