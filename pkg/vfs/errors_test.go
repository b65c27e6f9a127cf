package vfs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// OpError.Error() Tests
// ============================================================================

func TestOpError_Error(t *testing.T) {
	t.Parallel()

	t.Run("error with inode includes inode in message", func(t *testing.T) {
		t.Parallel()
		err := &OpError{
			Code:    ErrNotFound,
			Op:      OpGetAttr,
			Inode:   42,
			Message: "inode not bound",
		}

		assert.Equal(t, "GETATTR: NotFound: inode not bound (inode: 42)", err.Error())
	})

	t.Run("error without inode omits it", func(t *testing.T) {
		t.Parallel()
		err := &OpError{
			Code:    ErrNotSupported,
			Op:      OpRead,
			Message: "operation not implemented by resource",
		}

		assert.Equal(t, "READ: NotSupported: operation not implemented by resource", err.Error())
	})
}

// ============================================================================
// ErrorCode.String() Tests
// ============================================================================

func TestErrorCode_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code ErrorCode
		want string
	}{
		{ErrNotFound, "NotFound"},
		{ErrNotSupported, "NotSupported"},
		{ErrWrongNodeKind, "WrongNodeKind"},
		{ErrPermissionDenied, "PermissionDenied"},
		{ErrRange, "RangeError"},
		{ErrBadArgument, "BadArgument"},
		{ErrorCode(99), "Unknown(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.code.String())
		})
	}
}

// ============================================================================
// Error Factory Function Tests
// ============================================================================

func TestErrorFactories(t *testing.T) {
	t.Parallel()

	t.Run("NewNotFoundError carries inode", func(t *testing.T) {
		t.Parallel()
		err := NewNotFoundError(OpGetAttr, 7)

		assert.Equal(t, ErrNotFound, err.Code)
		assert.Equal(t, OpGetAttr, err.Op)
		assert.Equal(t, Inode(7), err.Inode)
	})

	t.Run("NewNoEntryError names the missing entry", func(t *testing.T) {
		t.Parallel()
		err := NewNoEntryError(OpLookup, "missing.txt")

		assert.Equal(t, ErrNotFound, err.Code)
		assert.Contains(t, err.Error(), `"missing.txt"`)
	})

	t.Run("NewNotSupportedError", func(t *testing.T) {
		t.Parallel()
		err := NewNotSupportedError(OpSymlink)

		assert.Equal(t, ErrNotSupported, err.Code)
		assert.Equal(t, OpSymlink, err.Op)
	})

	t.Run("NewWrongNodeKindError names the kind", func(t *testing.T) {
		t.Parallel()
		err := NewWrongNodeKindError(OpReadDir, "file")

		assert.Equal(t, ErrWrongNodeKind, err.Code)
		assert.Contains(t, err.Error(), "file node")
	})

	t.Run("NewPermissionDeniedError", func(t *testing.T) {
		t.Parallel()
		err := NewPermissionDeniedError(OpRead)

		assert.Equal(t, ErrPermissionDenied, err.Code)
		assert.Equal(t, OpRead, err.Op)
	})

	t.Run("NewRangeError names offset and size", func(t *testing.T) {
		t.Parallel()
		err := NewRangeError(OpRead, 64, 30)

		assert.Equal(t, ErrRange, err.Code)
		assert.Contains(t, err.Error(), "64")
		assert.Contains(t, err.Error(), "30")
	})

	t.Run("NewBadArgumentError keeps the message", func(t *testing.T) {
		t.Parallel()
		err := NewBadArgumentError(OpOpen, "flags out of range")

		assert.Equal(t, ErrBadArgument, err.Code)
		assert.Contains(t, err.Error(), "flags out of range")
	})
}

// ============================================================================
// Error Type Checking Helper Tests
// ============================================================================

func TestCodeOf(t *testing.T) {
	t.Parallel()

	t.Run("nil error yields zero", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, ErrorCode(0), CodeOf(nil))
	})

	t.Run("foreign error yields zero", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, ErrorCode(0), CodeOf(errors.New("some other error")))
	})

	t.Run("OpError yields its code", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, ErrRange, CodeOf(NewRangeError(OpRead, 10, 5)))
	})
}

func TestIsHelpers(t *testing.T) {
	t.Parallel()

	t.Run("matching code returns true", func(t *testing.T) {
		t.Parallel()
		assert.True(t, IsNotFound(NewNotFoundError(OpGetAttr, 1)))
		assert.True(t, IsNotSupported(NewNotSupportedError(OpRead)))
		assert.True(t, IsWrongNodeKind(NewWrongNodeKindError(OpOpen, "directory")))
		assert.True(t, IsPermissionDenied(NewPermissionDeniedError(OpRead)))
		assert.True(t, IsRange(NewRangeError(OpRead, 1, 1)))
	})

	t.Run("different code returns false", func(t *testing.T) {
		t.Parallel()
		err := NewPermissionDeniedError(OpRead)
		assert.False(t, IsNotFound(err))
		assert.False(t, IsRange(err))
	})

	t.Run("nil and foreign errors return false", func(t *testing.T) {
		t.Parallel()
		assert.False(t, IsNotFound(nil))
		assert.False(t, IsPermissionDenied(errors.New("plain")))
	})
}

// ============================================================================
// ErrorCode Tests
// ============================================================================

func TestErrorCodes(t *testing.T) {
	t.Parallel()

	// Verify all error codes have distinct values
	codes := []ErrorCode{
		ErrNotFound,
		ErrNotSupported,
		ErrWrongNodeKind,
		ErrPermissionDenied,
		ErrRange,
		ErrBadArgument,
	}

	seen := make(map[ErrorCode]bool)
	for _, code := range codes {
		require.False(t, seen[code], "duplicate error code: %d", code)
		seen[code] = true
	}
}

// ============================================================================
// Error Interface Compliance Tests
// ============================================================================

func TestOpError_ImplementsError(t *testing.T) {
	t.Parallel()

	// Verify OpError implements error interface
	var _ error = &OpError{}

	// Verify it can be used with errors.As
	err := NewNotFoundError(OpGetAttr, 3)
	var opErr *OpError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, ErrNotFound, opErr.Code)
}
