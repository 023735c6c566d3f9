package core

import (
	"errors"
	"fmt"
)

// Validation sentinels, rejected before any side effect.
var (
	ErrMissingUserID        = errors.New("user id is required")
	ErrMissingProjectFolder = errors.New("project folder is required")
	ErrMissingSessionID     = errors.New("session id is required")
	ErrEmptyQuestion        = errors.New("question must not be empty")
)

// ErrorKind classifies failures for callers mapping them onto transport codes.
type ErrorKind int

const (
	// KindUnknown is the zero value for unclassified errors.
	KindUnknown ErrorKind = iota
	// KindValidation covers missing tenant key, session id or question.
	// Client-error class: nothing was appended to memory.
	KindValidation
	// KindUnavailable covers vector index or generative service failures.
	// Server-error class: the user turn may already be in memory.
	KindUnavailable
)

// Error wraps a collaborator or validation failure with its kind and the
// tenant scope it occurred in.
type Error struct {
	Kind   ErrorKind
	Tenant TenantKey
	Op     string
	Err    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Tenant, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the ErrorKind from an error chain, or KindUnknown.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
