// Package social fetches profile data from third-party providers (GitHub, LinkedIn).
//
// Fetchers never substitute placeholder data themselves. Every failure is returned
// as an *Error carrying a Kind so the caller decides whether and how to degrade.
package social

import (
	"errors"
	"fmt"
)

// Kind classifies a provider failure.
type Kind string

// Failure kinds
const (
	KindNotConfigured Kind = "not_configured"
	KindInvalidInput  Kind = "invalid_input"
	KindNetwork       Kind = "network"
	KindStatus        Kind = "status"
	KindDecode        Kind = "decode"
)

// Provider names
const (
	ProviderGitHub   = "github"
	ProviderLinkedIn = "linkedin"
)

// Error represents a failed provider call.
type Error struct {
	Provider string
	Kind     Kind
	Status   int
	Message  string
	Cause    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s %s error", e.Provider, e.Kind)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.Status)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// KindOf returns the Kind of err, or "" when err is not a provider error.
func KindOf(err error) Kind {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return ""
}

// Result holds the outcome of one provider fetch. Exactly one of Value or Err is meaningful.
type Result[T any] struct {
	Value T
	Err   error
}

// Collect wraps a (value, error) pair into a Result.
func Collect[T any](v T, err error) Result[T] {
	if err != nil {
		var zero T
		return Result[T]{Value: zero, Err: err}
	}
	return Result[T]{Value: v}
}

// Failed wraps an error into a Result.
func Failed[T any](err error) Result[T] {
	return Result[T]{Err: err}
}

// OK reports whether the fetch succeeded.
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// Get returns the value and whether it is usable.
func (r Result[T]) Get() (T, bool) {
	return r.Value, r.Err == nil
}
