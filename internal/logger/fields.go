package logger

import (
	"log/slog"
)

// Standard field keys for structured logging.
// Use these keys consistently across all log statements so logs stay
// easy to aggregate and query.
const (
	// ========================================================================
	// Distributed Tracing
	// ========================================================================
	KeyTraceID = "trace_id" // OpenTelemetry trace ID for request correlation
	KeySpanID  = "span_id"  // OpenTelemetry span ID for operation tracking

	// ========================================================================
	// Operation
	// ========================================================================
	KeyOperation = "operation"  // Kernel operation name: GETATTR, LOOKUP, READ, etc.
	KeyStatus    = "status"     // Kernel status code the operation mapped to
	KeyErrorCode = "error_code" // Core error code name: NotFound, RangeError, etc.

	// ========================================================================
	// File System
	// ========================================================================
	KeyInode = "inode" // Inode identifier
	KeyName  = "name"  // Entry name (basename) for lookup and symlink
	KeyPath  = "path"  // Full path, where one is known
	KeyType  = "type"  // Node type: regular, directory, symlink, etc.
	KeySize  = "size"  // Size in bytes
	KeyMode  = "mode"  // Permission bits (Unix-style)

	// ========================================================================
	// I/O
	// ========================================================================
	KeyHandle    = "handle"     // File handle for open/read/release correlation
	KeyOffset    = "offset"     // Byte offset for read operations
	KeyCount     = "count"      // Byte count requested
	KeyBytesRead = "bytes_read" // Actual bytes returned

	// ========================================================================
	// Caller Identification
	// ========================================================================
	KeyUID = "uid" // Caller user ID
	KeyGID = "gid" // Caller group ID
	KeyPID = "pid" // Caller process ID

	// ========================================================================
	// Mount & Session
	// ========================================================================
	KeyMountpoint = "mountpoint" // Filesystem mount point
	KeyFSName     = "fsname"     // Filesystem name shown in mount tables
	KeySessionID  = "session_id" // Mount session identifier

	// ========================================================================
	// Operation Metadata
	// ========================================================================
	KeyDurationMs = "duration_ms" // Operation duration in milliseconds
	KeyError      = "error"       // Error message

	// ========================================================================
	// Directory Operations
	// ========================================================================
	KeyEntries = "entries" // Number of directory entries

	// ========================================================================
	// Link Operations
	// ========================================================================
	KeyLinkTarget = "link_target" // Symbolic link target path
)

// ============================================================================
// Field constructors for type safety
// These functions provide type-safe construction of slog.Attr values.
// ============================================================================

// ----------------------------------------------------------------------------
// Distributed Tracing
// ----------------------------------------------------------------------------

// TraceID returns a slog.Attr for OpenTelemetry trace ID
func TraceID(id string) slog.Attr {
	return slog.String(KeyTraceID, id)
}

// SpanID returns a slog.Attr for OpenTelemetry span ID
func SpanID(id string) slog.Attr {
	return slog.String(KeySpanID, id)
}

// ----------------------------------------------------------------------------
// Operation
// ----------------------------------------------------------------------------

// Operation returns a slog.Attr for the kernel operation name
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// Status returns a slog.Attr for the mapped kernel status code
func Status(code int32) slog.Attr {
	return slog.Any(KeyStatus, code)
}

// ErrorCode returns a slog.Attr for a core error code name
func ErrorCode(code string) slog.Attr {
	return slog.String(KeyErrorCode, code)
}

// ----------------------------------------------------------------------------
// File System
// ----------------------------------------------------------------------------

// Inode returns a slog.Attr for an inode identifier
func Inode(ino uint64) slog.Attr {
	return slog.Uint64(KeyInode, ino)
}

// Name returns a slog.Attr for an entry name
func Name(name string) slog.Attr {
	return slog.String(KeyName, name)
}

// Path returns a slog.Attr for a full path
func Path(p string) slog.Attr {
	return slog.String(KeyPath, p)
}

// TypeStr returns a slog.Attr for a node type as string
func TypeStr(t string) slog.Attr {
	return slog.String(KeyType, t)
}

// Size returns a slog.Attr for a size in bytes
func Size(s uint64) slog.Attr {
	return slog.Uint64(KeySize, s)
}

// Mode returns a slog.Attr for permission bits
func Mode(m uint32) slog.Attr {
	return slog.Any(KeyMode, m)
}

// ----------------------------------------------------------------------------
// I/O
// ----------------------------------------------------------------------------

// Handle returns a slog.Attr for a file handle
func Handle(fh uint64) slog.Attr {
	return slog.Uint64(KeyHandle, fh)
}

// Offset returns a slog.Attr for a byte offset
func Offset(off int64) slog.Attr {
	return slog.Int64(KeyOffset, off)
}

// Count returns a slog.Attr for a requested byte count
func Count(c uint32) slog.Attr {
	return slog.Any(KeyCount, c)
}

// BytesRead returns a slog.Attr for actual bytes returned
func BytesRead(n int) slog.Attr {
	return slog.Int(KeyBytesRead, n)
}

// ----------------------------------------------------------------------------
// Caller Identification
// ----------------------------------------------------------------------------

// UID returns a slog.Attr for the caller user ID
func UID(uid uint32) slog.Attr {
	return slog.Any(KeyUID, uid)
}

// GID returns a slog.Attr for the caller group ID
func GID(gid uint32) slog.Attr {
	return slog.Any(KeyGID, gid)
}

// PID returns a slog.Attr for the caller process ID
func PID(pid uint32) slog.Attr {
	return slog.Any(KeyPID, pid)
}

// ----------------------------------------------------------------------------
// Mount & Session
// ----------------------------------------------------------------------------

// Mountpoint returns a slog.Attr for the filesystem mount point
func Mountpoint(path string) slog.Attr {
	return slog.String(KeyMountpoint, path)
}

// FSName returns a slog.Attr for the filesystem name
func FSName(name string) slog.Attr {
	return slog.String(KeyFSName, name)
}

// SessionID returns a slog.Attr for a mount session identifier
func SessionID(id string) slog.Attr {
	return slog.String(KeySessionID, id)
}

// ----------------------------------------------------------------------------
// Operation Metadata
// ----------------------------------------------------------------------------

// DurationMs returns a slog.Attr for duration in milliseconds
func DurationMs(ms float64) slog.Attr {
	return slog.Float64(KeyDurationMs, ms)
}

// Err returns a slog.Attr for an error
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// ----------------------------------------------------------------------------
// Directory Operations
// ----------------------------------------------------------------------------

// Entries returns a slog.Attr for a number of directory entries
func Entries(n int) slog.Attr {
	return slog.Int(KeyEntries, n)
}

// ----------------------------------------------------------------------------
// Link Operations
// ----------------------------------------------------------------------------

// LinkTarget returns a slog.Attr for a symbolic link target path
func LinkTarget(target string) slog.Attr {
	return slog.String(KeyLinkTarget, target)
}
