// Package fuse bridges the kernel FUSE protocol to the resource
// dispatch core.
//
// The bridge implements the raw go-fuse filesystem surface: every
// kernel request arrives already decoded into a typed input struct, is
// translated into a dispatcher call, and the typed result (or the
// core's error vocabulary) is encoded back into the kernel reply shape.
// Everything the bridge does not override stays ENOSYS via the embedded
// default raw filesystem, which matches the core's contract that
// mutating operations are unsupported.
package fuse

import (
	"context"
	"time"

	"github.com/hanwen/go-fuse/v2/fuse"
	"go.opentelemetry.io/otel/trace"

	"github.com/marmos91/fusekit/internal/logger"
	"github.com/marmos91/fusekit/internal/telemetry"
	"github.com/marmos91/fusekit/pkg/metrics"
	"github.com/marmos91/fusekit/pkg/vfs"
)

// rawBridge translates raw kernel requests into dispatcher calls.
//
// Dispatch is serialized inside the dispatcher itself, so the bridge is
// mounted single-threaded and carries no locking of its own.
type rawBridge struct {
	fuse.RawFileSystem

	dispatcher *vfs.Dispatcher
	metrics    metrics.DispatchMetrics

	fsName       string
	mountpoint   string
	sessionID    string
	attrTimeout  time.Duration
	entryTimeout time.Duration
}

func newRawBridge(dispatcher *vfs.Dispatcher, opts Options, sessionID string) *rawBridge {
	return &rawBridge{
		RawFileSystem: fuse.NewDefaultRawFileSystem(),
		dispatcher:    dispatcher,
		metrics:       opts.Metrics,
		fsName:        opts.FSName,
		mountpoint:    opts.Mountpoint,
		sessionID:     sessionID,
		attrTimeout:   opts.AttrTimeout,
		entryTimeout:  opts.EntryTimeout,
	}
}

// String identifies the filesystem in go-fuse debug output.
func (b *rawBridge) String() string {
	return b.fsName
}

// Init runs once the kernel session is established.
func (b *rawBridge) Init(server *fuse.Server) {
	logger.Info("Kernel session established",
		logger.Mountpoint(b.mountpoint),
		logger.FSName(b.fsName),
		logger.SessionID(b.sessionID))
}

// opCall tracks one dispatched kernel operation: its context (log
// correlation and tracing), metrics, and the span to close.
type opCall struct {
	bridge *rawBridge
	op     string
	ctx    context.Context
	span   trace.Span
	start  time.Time
}

// begin opens the per-operation context: a log context carrying the
// caller identity, a tracing span, and the in-flight metrics counter.
func (b *rawBridge) begin(op string, header *fuse.InHeader) *opCall {
	lc := logger.NewLogContext(op).WithCaller(header.Uid, header.Gid, header.Pid)
	lc.Mountpoint = b.mountpoint
	ctx := logger.WithContext(context.Background(), lc)

	ctx, span := telemetry.StartFUSESpan(ctx, op, header.NodeId,
		telemetry.UID(header.Uid),
		telemetry.GID(header.Gid),
		telemetry.SessionID(b.sessionID))
	lc.TraceID = telemetry.TraceID(ctx)
	lc.SpanID = telemetry.SpanID(ctx)

	if b.metrics != nil {
		b.metrics.RecordOperationStart(op)
	}

	return &opCall{bridge: b, op: op, ctx: ctx, span: span, start: time.Now()}
}

// finish closes the operation: maps the core error onto the kernel
// status, records metrics and tracing, and returns the status.
func (c *opCall) finish(err error) fuse.Status {
	status := MapErrorToStatus(c.ctx, err, c.op)

	if err != nil {
		telemetry.RecordError(c.ctx, err)
	}
	telemetry.SetAttributes(c.ctx, telemetry.Errno(int32(status)))
	c.span.End()

	if c.bridge.metrics != nil {
		errorCode := ""
		if code := vfs.CodeOf(err); code != 0 {
			errorCode = code.String()
		} else if err != nil {
			errorCode = "Internal"
		}
		c.bridge.metrics.RecordOperation(c.op, time.Since(c.start), errorCode)
		c.bridge.metrics.RecordOperationEnd(c.op)
		c.bridge.metrics.SetRegisteredNodes(c.bridge.dispatcher.Registry().Len())
	}

	return status
}

func caller(header *fuse.InHeader) vfs.Caller {
	return vfs.Caller{UID: header.Uid, GID: header.Gid}
}

// GetAttr queries a node's attributes.
func (b *rawBridge) GetAttr(cancel <-chan struct{}, input *fuse.GetAttrIn, out *fuse.AttrOut) fuse.Status {
	call := b.begin(vfs.OpGetAttr, &input.InHeader)

	attr, err := b.dispatcher.GetAttr(call.ctx, caller(&input.InHeader), vfs.Inode(input.NodeId))
	if err == nil {
		b.fillAttrOut(attr, out)
	}
	return call.finish(err)
}

// Lookup resolves a name inside a directory node.
func (b *rawBridge) Lookup(cancel <-chan struct{}, header *fuse.InHeader, name string, out *fuse.EntryOut) fuse.Status {
	call := b.begin(vfs.OpLookup, header)

	entry, err := b.dispatcher.Lookup(call.ctx, caller(header), vfs.Inode(header.NodeId), name)
	if err == nil {
		b.fillEntryOut(entry, out)
	}
	return call.finish(err)
}

// Symlink creates a symbolic link inside a directory node. pointedTo is
// the link target, linkName the entry name under the parent.
func (b *rawBridge) Symlink(cancel <-chan struct{}, header *fuse.InHeader, pointedTo string, linkName string, out *fuse.EntryOut) fuse.Status {
	call := b.begin(vfs.OpSymlink, header)

	entry, err := b.dispatcher.Symlink(call.ctx, caller(header), vfs.Inode(header.NodeId), linkName, pointedTo)
	if err == nil {
		b.fillEntryOut(entry, out)
	}
	return call.finish(err)
}

// Open opens a file node. The reply carries the resource's handle and a
// zero flags field.
func (b *rawBridge) Open(cancel <-chan struct{}, input *fuse.OpenIn, out *fuse.OpenOut) fuse.Status {
	call := b.begin(vfs.OpOpen, &input.InHeader)

	fh, err := b.dispatcher.Open(call.ctx, caller(&input.InHeader), vfs.Inode(input.NodeId), input.Flags)
	if err == nil {
		out.Fh = uint64(fh)
		out.OpenFlags = 0
	}
	return call.finish(err)
}

// Read returns file content. The dispatcher guarantees the result never
// exceeds the requested size, so the slice is handed to the kernel
// directly.
func (b *rawBridge) Read(cancel <-chan struct{}, input *fuse.ReadIn, buf []byte) (fuse.ReadResult, fuse.Status) {
	call := b.begin(vfs.OpRead, &input.InHeader)

	data, err := b.dispatcher.Read(call.ctx, caller(&input.InHeader),
		vfs.Inode(input.NodeId), vfs.FileHandle(input.Fh), int64(input.Offset), input.Size)
	if err != nil {
		return nil, call.finish(err)
	}

	if b.metrics != nil {
		b.metrics.RecordBytesRead(uint64(len(data)))
	}
	return fuse.ReadResultData(data), call.finish(nil)
}

// Release closes an open file handle. The kernel sends no reply for
// release, so failures are logged and dropped here.
func (b *rawBridge) Release(cancel <-chan struct{}, input *fuse.ReleaseIn) {
	call := b.begin(vfs.OpRelease, &input.InHeader)

	err := b.dispatcher.Close(call.ctx, caller(&input.InHeader),
		vfs.Inode(input.NodeId), vfs.FileHandle(input.Fh), input.Flags)
	call.finish(err)
}

// OpenDir opens a directory for listing. The core keeps no per-listing
// state, so this only verifies the node exists and is a directory.
func (b *rawBridge) OpenDir(cancel <-chan struct{}, input *fuse.OpenIn, out *fuse.OpenOut) fuse.Status {
	call := b.begin(vfs.OpReadDir, &input.InHeader)

	_, err := b.dispatcher.GetAttr(call.ctx, caller(&input.InHeader), vfs.Inode(input.NodeId))
	return call.finish(err)
}

// ReadDir lists directory entries starting at the kernel's resume
// offset. The dispatcher numbers the delivered rows relative to the
// skip point, so the kernel-visible resume offset is the request offset
// plus the row's position.
func (b *rawBridge) ReadDir(cancel <-chan struct{}, input *fuse.ReadIn, out *fuse.DirEntryList) fuse.Status {
	call := b.begin(vfs.OpReadDir, &input.InHeader)

	entries, err := b.dispatcher.ReadDir(call.ctx, caller(&input.InHeader),
		vfs.Inode(input.NodeId), int64(input.Offset))
	if err != nil {
		return call.finish(err)
	}

	for _, e := range entries {
		ok := out.AddDirEntry(fuse.DirEntry{
			Ino:  uint64(e.Ino),
			Mode: kernelMode(e.Type, 0),
			Name: e.Name,
			Off:  input.Offset + e.Off,
		})
		if !ok {
			break
		}
	}
	return call.finish(nil)
}

// ReadDirPlus is ReadDir with a full lookup folded into every row. The
// synthetic "." and ".." rows are delivered without attributes, per
// kernel convention.
func (b *rawBridge) ReadDirPlus(cancel <-chan struct{}, input *fuse.ReadIn, out *fuse.DirEntryList) fuse.Status {
	call := b.begin(vfs.OpReadDir, &input.InHeader)

	ino := vfs.Inode(input.NodeId)
	entries, err := b.dispatcher.ReadDir(call.ctx, caller(&input.InHeader), ino, int64(input.Offset))
	if err != nil {
		return call.finish(err)
	}

	for _, e := range entries {
		entryOut := out.AddDirLookupEntry(fuse.DirEntry{
			Ino:  uint64(e.Ino),
			Mode: kernelMode(e.Type, 0),
			Name: e.Name,
			Off:  input.Offset + e.Off,
		})
		if entryOut == nil {
			break
		}
		if e.Name == "." || e.Name == ".." {
			continue
		}

		entry, err := b.dispatcher.Lookup(call.ctx, caller(&input.InHeader), ino, e.Name)
		if err != nil {
			// Row stays, just without attributes; the kernel will
			// issue its own LOOKUP if it cares.
			logger.DebugCtx(call.ctx, "READDIRPLUS lookup failed",
				logger.Name(e.Name), logger.Err(err))
			continue
		}
		b.fillEntryOut(entry, entryOut)
	}
	return call.finish(nil)
}

// ReleaseDir releases a directory opened by OpenDir. Nothing to do.
func (b *rawBridge) ReleaseDir(input *fuse.ReleaseIn) {}

// Access answers the kernel's access(2) probe by evaluating the
// permission triad against the node's attributes. The mask uses the
// conventional bits (r=4, w=2, x=1), which match the evaluator's.
func (b *rawBridge) Access(cancel <-chan struct{}, input *fuse.AccessIn) fuse.Status {
	call := b.begin(vfs.OpAccess, &input.InHeader)

	attr, err := b.dispatcher.GetAttr(call.ctx, caller(&input.InHeader), vfs.Inode(input.NodeId))
	if err != nil {
		return call.finish(err)
	}

	want := vfs.Access(input.Mask & 0o7)
	err = vfs.EnsureAccess(vfs.OpAccess, caller(&input.InHeader), attr, want)
	return call.finish(err)
}

// StatFs reports fixed block geometry plus the live registry size.
func (b *rawBridge) StatFs(cancel <-chan struct{}, input *fuse.InHeader, out *fuse.StatfsOut) fuse.Status {
	call := b.begin(vfs.OpStatFS, input)

	out.Bsize = blockSize
	out.Frsize = blockSize
	out.NameLen = 255
	out.Files = uint64(b.dispatcher.Registry().Len())
	return call.finish(nil)
}
