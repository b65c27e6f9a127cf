package fuse

import (
	"context"

	"github.com/hanwen/go-fuse/v2/fuse"

	"github.com/marmos91/fusekit/internal/logger"
	"github.com/marmos91/fusekit/pkg/vfs"
)

// ============================================================================
// Error Mapping - core error taxonomy → kernel status codes
// ============================================================================

// MapErrorToStatus maps core errors to FUSE status codes.
//
// The kernel expects every failed operation to come back as an errno.
// This function translates the fixed error vocabulary of the core into
// the appropriate status for kernel consumption:
//
//   - NotFound → ENOENT (no such file or directory)
//   - NotSupported → ENOSYS (operation not implemented)
//   - WrongNodeKind → EBADF (operation can never be valid for this node)
//   - PermissionDenied → EPERM (permission denied)
//   - RangeError → ERANGE (byte range outside content)
//   - BadArgument → EINVAL (invalid argument)
//   - Other errors → EIO (generic I/O error)
//
// This function also handles audit logging at appropriate levels:
//   - Client errors (NotFound, PermissionDenied, ...): logged as warnings
//   - Unclassified errors: logged as errors
//
// Parameters:
//   - ctx: Request context for log correlation
//   - err: Core error to map (nil = success)
//   - operation: Operation name for audit logging (e.g., "LOOKUP", "READ")
//
// Returns:
//   - fuse.Status: Kernel status code (fuse.OK on success)
func MapErrorToStatus(ctx context.Context, err error, operation string) fuse.Status {
	if err == nil {
		return fuse.OK
	}

	// Check if it's a typed OpError
	opErr, ok := err.(*vfs.OpError)
	if !ok {
		// Generic error: log and return I/O error
		logger.ErrorCtx(ctx, "Operation failed", "operation", operation, "error", err)
		return fuse.EIO
	}

	// Map core error codes to kernel status codes
	switch opErr.Code {
	case vfs.ErrNotFound:
		// Unbound inode or missing directory entry. The kernel probes
		// freely for names that do not exist, so this stays at debug.
		logger.DebugCtx(ctx, "Operation failed: not found", "operation", operation, "message", opErr.Message)
		return fuse.ENOENT

	case vfs.ErrNotSupported:
		// Valid for the node kind but not implemented by the resource
		logger.DebugCtx(ctx, "Operation failed: not supported", "operation", operation)
		return fuse.ENOSYS

	case vfs.ErrWrongNodeKind:
		// Never valid for this node kind (file op on a directory or
		// vice versa); distinct from NotSupported
		logger.WarnCtx(ctx, "Operation failed: wrong node kind", "operation", operation, "message", opErr.Message)
		return fuse.EBADF

	case vfs.ErrPermissionDenied:
		// Caller identity does not satisfy the permission triad
		logger.WarnCtx(ctx, "Operation failed: permission denied", "operation", operation)
		return fuse.EPERM

	case vfs.ErrRange:
		// Requested byte range outside content bounds
		logger.WarnCtx(ctx, "Operation failed: range error", "operation", operation, "message", opErr.Message)
		return fuse.ERANGE

	case vfs.ErrBadArgument:
		// Argument the core cannot interpret
		logger.WarnCtx(ctx, "Operation failed: bad argument", "operation", operation, "message", opErr.Message)
		return fuse.EINVAL

	default:
		// Unknown error code: log as server error
		logger.ErrorCtx(ctx, "Operation failed with unknown error code",
			"operation", operation, "error_code", opErr.Code.String(), "error", err)
		return fuse.EIO
	}
}
