package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Common attribute keys for filesystem operations.
// These follow OpenTelemetry semantic conventions where applicable.
// Filesystem keys use "fs." prefix, mount-session keys "mount.".
const (
	// ========================================================================
	// Filesystem attributes
	// ========================================================================
	AttrOperation = "fs.operation"  // Kernel operation name
	AttrInode     = "fs.inode"      // Target inode identifier
	AttrParent    = "fs.parent"     // Parent inode for name-based operations
	AttrName      = "fs.name"       // Entry name (basename)
	AttrTarget    = "fs.target"     // Symlink target path
	AttrHandle    = "fs.handle"     // Open file handle
	AttrOffset    = "fs.offset"     // I/O or listing offset
	AttrCount     = "fs.count"      // Byte count requested
	AttrSize      = "fs.size"       // File size
	AttrType      = "fs.type"       // Node type
	AttrMode      = "fs.mode"       // Permission bits
	AttrEntries   = "fs.entries"    // Listing row count
	AttrBytesRead = "fs.bytes_read" // Actual bytes delivered
	AttrErrorCode = "fs.error_code" // Error taxonomy code name
	AttrErrno     = "fs.errno"      // Errno delivered to the kernel

	// ========================================================================
	// Mount session attributes
	// ========================================================================
	AttrMountpoint = "mount.point"
	AttrFSName     = "mount.fsname"
	AttrSessionID  = "mount.session_id"

	// ========================================================================
	// Caller attributes
	// ========================================================================
	AttrUID = "user.uid"
	AttrGID = "user.gid"
	AttrPID = "user.pid"
)

// Span names for operations.
// Format: fuse.<OPERATION> for kernel-driven spans, mount.<phase> for
// session lifecycle.
const (
	// ========================================================================
	// Kernel operation spans
	// ========================================================================
	SpanFUSELookup      = "fuse.LOOKUP"
	SpanFUSEGetattr     = "fuse.GETATTR"
	SpanFUSEOpen        = "fuse.OPEN"
	SpanFUSERead        = "fuse.READ"
	SpanFUSERelease     = "fuse.RELEASE"
	SpanFUSEOpendir     = "fuse.OPENDIR"
	SpanFUSEReaddir     = "fuse.READDIR"
	SpanFUSEReaddirplus = "fuse.READDIRPLUS"
	SpanFUSEReleasedir  = "fuse.RELEASEDIR"
	SpanFUSESymlink     = "fuse.SYMLINK"
	SpanFUSEAccess      = "fuse.ACCESS"
	SpanFUSEStatfs      = "fuse.STATFS"

	// ========================================================================
	// Mount session spans
	// ========================================================================
	SpanMount   = "mount.mount"
	SpanServe   = "mount.serve"
	SpanUnmount = "mount.unmount"
)

// Operation returns an attribute for the kernel operation name
func Operation(op string) attribute.KeyValue {
	return attribute.String(AttrOperation, op)
}

// Inode returns an attribute for the target inode
func Inode(ino uint64) attribute.KeyValue {
	return attribute.Int64(AttrInode, int64(ino))
}

// Parent returns an attribute for the parent inode
func Parent(ino uint64) attribute.KeyValue {
	return attribute.Int64(AttrParent, int64(ino))
}

// Name returns an attribute for an entry name
func Name(name string) attribute.KeyValue {
	return attribute.String(AttrName, name)
}

// Target returns an attribute for a symlink target
func Target(target string) attribute.KeyValue {
	return attribute.String(AttrTarget, target)
}

// Handle returns an attribute for an open file handle
func Handle(fh uint64) attribute.KeyValue {
	return attribute.Int64(AttrHandle, int64(fh))
}

// Offset returns an attribute for an I/O or listing offset
func Offset(offset int64) attribute.KeyValue {
	return attribute.Int64(AttrOffset, offset)
}

// Count returns an attribute for a requested byte count
func Count(count uint32) attribute.KeyValue {
	return attribute.Int64(AttrCount, int64(count))
}

// Size returns an attribute for a file size
func Size(size uint64) attribute.KeyValue {
	return attribute.Int64(AttrSize, int64(size))
}

// NodeType returns an attribute for a node type name
func NodeType(t string) attribute.KeyValue {
	return attribute.String(AttrType, t)
}

// Mode returns an attribute for permission bits
func Mode(mode uint32) attribute.KeyValue {
	return attribute.Int64(AttrMode, int64(mode))
}

// Entries returns an attribute for a listing row count
func Entries(n int) attribute.KeyValue {
	return attribute.Int(AttrEntries, n)
}

// BytesRead returns an attribute for delivered byte count
func BytesRead(n int) attribute.KeyValue {
	return attribute.Int(AttrBytesRead, n)
}

// ErrorCode returns an attribute for an error taxonomy code name
func ErrorCode(code string) attribute.KeyValue {
	return attribute.String(AttrErrorCode, code)
}

// Errno returns an attribute for the errno delivered to the kernel
func Errno(errno int32) attribute.KeyValue {
	return attribute.Int(AttrErrno, int(errno))
}

// Mountpoint returns an attribute for the mount point path
func Mountpoint(path string) attribute.KeyValue {
	return attribute.String(AttrMountpoint, path)
}

// FSName returns an attribute for the filesystem name
func FSName(name string) attribute.KeyValue {
	return attribute.String(AttrFSName, name)
}

// SessionID returns an attribute for the mount session identifier
func SessionID(id string) attribute.KeyValue {
	return attribute.String(AttrSessionID, id)
}

// UID returns an attribute for user ID
func UID(uid uint32) attribute.KeyValue {
	return attribute.Int64(AttrUID, int64(uid))
}

// GID returns an attribute for group ID
func GID(gid uint32) attribute.KeyValue {
	return attribute.Int64(AttrGID, int64(gid))
}

// PID returns an attribute for the calling process ID
func PID(pid uint32) attribute.KeyValue {
	return attribute.Int64(AttrPID, int64(pid))
}

// StartFUSESpan starts a span for a kernel operation.
// This is a convenience function that sets common attributes.
func StartFUSESpan(ctx context.Context, operation string, ino uint64, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := []attribute.KeyValue{
		Operation(operation),
		Inode(ino),
	}
	allAttrs = append(allAttrs, attrs...)

	return StartSpan(ctx, "fuse."+operation, trace.WithAttributes(allAttrs...))
}

// StartMountSpan starts a span for a mount session phase.
func StartMountSpan(ctx context.Context, phase string, mountpoint string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := []attribute.KeyValue{
		Mountpoint(mountpoint),
	}
	allAttrs = append(allAttrs, attrs...)

	return StartSpan(ctx, "mount."+phase, trace.WithAttributes(allAttrs...))
}
