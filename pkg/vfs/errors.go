package vfs

import (
	"fmt"
)

// ErrorCode represents the type of error that occurred.
//
// This is the fixed vocabulary resources and the dispatcher report to the
// protocol layer. Conditions that indicate a bug in the embedding
// application (identifier exhaustion, a read returning more bytes than
// requested, a binding pointing at an unregistered inode) are not part of
// it: those panic instead of returning.
type ErrorCode int

const (
	// ErrNotFound indicates the requested inode is not bound in the registry,
	// or a directory has no child with the requested name.
	ErrNotFound ErrorCode = iota + 1

	// ErrNotSupported indicates the operation is valid for the node kind but
	// the resource does not implement it.
	ErrNotSupported

	// ErrWrongNodeKind indicates the operation can never be valid for this
	// node kind (a directory call on a file, or vice versa). Distinct from
	// ErrNotSupported so misuse is not mistaken for a missing feature.
	ErrWrongNodeKind

	// ErrPermissionDenied indicates the caller's identity does not satisfy
	// the required permission bits.
	ErrPermissionDenied

	// ErrRange indicates a requested byte range lies outside the content.
	ErrRange

	// ErrBadArgument indicates an argument the core cannot interpret.
	ErrBadArgument
)

// String returns a human-readable name for the error code.
func (e ErrorCode) String() string {
	switch e {
	case ErrNotFound:
		return "NotFound"
	case ErrNotSupported:
		return "NotSupported"
	case ErrWrongNodeKind:
		return "WrongNodeKind"
	case ErrPermissionDenied:
		return "PermissionDenied"
	case ErrRange:
		return "RangeError"
	case ErrBadArgument:
		return "BadArgument"
	default:
		return fmt.Sprintf("Unknown(%d)", e)
	}
}

// OpError represents a failed filesystem operation with an error code.
type OpError struct {
	Code    ErrorCode
	Op      string
	Inode   Inode
	Message string
}

// Error implements the error interface.
func (e *OpError) Error() string {
	if e.Inode != 0 {
		return fmt.Sprintf("%s: %s: %s (inode: %d)", e.Op, e.Code, e.Message, e.Inode)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Code, e.Message)
}

// ============================================================================
// Factory Functions
// ============================================================================

// NewNotFoundError creates a NotFound error for an unbound inode.
func NewNotFoundError(op string, ino Inode) *OpError {
	return &OpError{
		Code:    ErrNotFound,
		Op:      op,
		Inode:   ino,
		Message: "inode not bound",
	}
}

// NewNoEntryError creates a NotFound error for a missing directory entry.
func NewNoEntryError(op, name string) *OpError {
	return &OpError{
		Code:    ErrNotFound,
		Op:      op,
		Message: fmt.Sprintf("no entry named %q", name),
	}
}

// NewNotSupportedError creates a NotSupported error.
func NewNotSupportedError(op string) *OpError {
	return &OpError{
		Code:    ErrNotSupported,
		Op:      op,
		Message: "operation not implemented by resource",
	}
}

// NewWrongNodeKindError creates a WrongNodeKind error.
func NewWrongNodeKindError(op, kind string) *OpError {
	return &OpError{
		Code:    ErrWrongNodeKind,
		Op:      op,
		Message: fmt.Sprintf("operation not valid for a %s node", kind),
	}
}

// NewPermissionDeniedError creates a PermissionDenied error.
func NewPermissionDeniedError(op string) *OpError {
	return &OpError{
		Code:    ErrPermissionDenied,
		Op:      op,
		Message: "permission denied",
	}
}

// NewRangeError creates a RangeError for an out-of-bounds read.
func NewRangeError(op string, offset int64, size uint64) *OpError {
	return &OpError{
		Code:    ErrRange,
		Op:      op,
		Message: fmt.Sprintf("offset %d outside content of %d bytes", offset, size),
	}
}

// NewBadArgumentError creates a BadArgument error.
func NewBadArgumentError(op, message string) *OpError {
	return &OpError{
		Code:    ErrBadArgument,
		Op:      op,
		Message: message,
	}
}

// ============================================================================
// Error Type Checking Helpers
// ============================================================================

// CodeOf returns the error code carried by err, or 0 if err is not an OpError.
func CodeOf(err error) ErrorCode {
	if opErr, ok := err.(*OpError); ok {
		return opErr.Code
	}
	return 0
}

// IsNotFound returns true if the error is a NotFound error.
func IsNotFound(err error) bool {
	return CodeOf(err) == ErrNotFound
}

// IsNotSupported returns true if the error is a NotSupported error.
func IsNotSupported(err error) bool {
	return CodeOf(err) == ErrNotSupported
}

// IsWrongNodeKind returns true if the error is a WrongNodeKind error.
func IsWrongNodeKind(err error) bool {
	return CodeOf(err) == ErrWrongNodeKind
}

// IsPermissionDenied returns true if the error is a PermissionDenied error.
func IsPermissionDenied(err error) bool {
	return CodeOf(err) == ErrPermissionDenied
}

// IsRange returns true if the error is a RangeError.
func IsRange(err error) bool {
	return CodeOf(err) == ErrRange
}
