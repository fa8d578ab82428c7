package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrIntegrityMismatch   = errors.New("integrity mismatch")
	ErrNetworkFailure      = errors.New("network failure")
	ErrResolutionFailure   = errors.New("resolution failure")
	ErrIncompleteClasspath = errors.New("missing dependencies")
	ErrCancelled           = errors.New("synchronization cancelled")
)

// IncompleteClasspathError lists the files that kept a classpath from being usable.
type IncompleteClasspathError struct {
	Reason  string
	Missing []string
}

func (e *IncompleteClasspathError) Error() string {
	if len(e.Missing) == 0 {
		return fmt.Sprintf("%v: %s", ErrIncompleteClasspath, e.Reason)
	}
	return fmt.Sprintf("%v: %s: %s", ErrIncompleteClasspath, e.Reason, strings.Join(e.Missing, ", "))
}

func (e *IncompleteClasspathError) Unwrap() error {
	return ErrIncompleteClasspath
}
