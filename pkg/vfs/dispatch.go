package vfs

import (
	"context"
	"fmt"
	"sync"

	"github.com/marmos91/fusekit/internal/logger"
)

// Dispatcher routes structured filesystem calls to registered resources
// and enforces the per-operation result contracts. It is the only
// component that talks to resources through the wide contract.
//
// Dispatch is strictly serial: one operation runs to completion before
// the next is accepted, which is what lets resources stay free of
// internal locking. Resources must not call back into the dispatcher
// from inside an operation; reaching other resources goes through the
// Request instead.
type Dispatcher struct {
	mu  sync.Mutex
	reg *Registry
}

// NewDispatcher creates a dispatcher serving resources from reg.
func NewDispatcher(reg *Registry) *Dispatcher {
	return &Dispatcher{reg: reg}
}

// Registry returns the registry this dispatcher serves.
func (d *Dispatcher) Registry() *Registry {
	return d.reg
}

// GetAttr resolves ino and queries its attributes. The result's Ino
// field is overwritten with ino: the dispatcher is authoritative for
// identifiers, whatever the resource put there.
func (d *Dispatcher) GetAttr(ctx context.Context, caller Caller, ino Inode) (Attr, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	c, ok := d.reg.borrow(ino)
	if !ok {
		return Attr{}, NewNotFoundError(OpGetAttr, ino)
	}
	defer c.release()

	req := &Request{ctx: ctx, Caller: caller, Inode: ino, reg: d.reg}
	attr, err := c.res.GetAttr(req)
	logger.DebugCtx(ctx, "GETATTR dispatched", "inode", ino, logger.Err(err))
	if err != nil {
		return Attr{}, err
	}

	attr.Ino = ino
	return attr, nil
}

// Lookup resolves a child of parent by name. The returned entry carries
// the child's own attributes, already inode-stamped by the nested
// attribute query the parent performed, plus a generation counter that
// is always zero.
func (d *Dispatcher) Lookup(ctx context.Context, caller Caller, parent Inode, name string) (Entry, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	c, ok := d.reg.borrow(parent)
	if !ok {
		return Entry{}, NewNotFoundError(OpLookup, parent)
	}
	defer c.release()

	req := &Request{ctx: ctx, Caller: caller, Inode: parent, reg: d.reg}
	entry, err := c.res.Lookup(req, name)
	logger.DebugCtx(ctx, "LOOKUP dispatched", "inode", parent, "name", name, logger.Err(err))
	if err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// ReadDir lists the children of ino. The full sequence starts with
// synthetic "." and ".." rows, both directories pointing at ino itself,
// followed by the resource's own children. The first offset rows of
// that sequence are skipped (a previous listing already delivered
// them), and the remainder comes back with 1-based positions stamped in
// Off.
func (d *Dispatcher) ReadDir(ctx context.Context, caller Caller, ino Inode, offset int64) ([]DirEntry, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	c, ok := d.reg.borrow(ino)
	if !ok {
		return nil, NewNotFoundError(OpReadDir, ino)
	}
	defer c.release()

	entries := []DirEntry{
		{Ino: ino, Type: FileTypeDirectory, Name: "."},
		{Ino: ino, Type: FileTypeDirectory, Name: ".."},
	}

	req := &Request{ctx: ctx, Caller: caller, Inode: ino, reg: d.reg}
	children, err := c.res.ReadDir(req)
	logger.DebugCtx(ctx, "READDIR dispatched", "inode", ino, "offset", offset, "entries", len(children), logger.Err(err))
	if err != nil {
		return nil, err
	}
	entries = append(entries, children...)

	if offset < 0 {
		offset = 0
	}
	if offset >= int64(len(entries)) {
		return nil, nil
	}
	entries = entries[offset:]
	for i := range entries {
		entries[i].Off = uint64(i) + 1
	}
	return entries, nil
}

// Symlink creates a symbolic link named name under parent, pointing at
// target. The returned entry reports the created node's own inode.
func (d *Dispatcher) Symlink(ctx context.Context, caller Caller, parent Inode, name, target string) (Entry, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	c, ok := d.reg.borrow(parent)
	if !ok {
		return Entry{}, NewNotFoundError(OpSymlink, parent)
	}
	defer c.release()

	req := &Request{ctx: ctx, Caller: caller, Inode: parent, reg: d.reg}
	entry, err := c.res.Symlink(req, name, target)
	logger.DebugCtx(ctx, "SYMLINK dispatched", "inode", parent, "name", name, "target", target, logger.Err(err))
	if err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// Open opens ino and returns the handle the resource chose. The handle
// is opaque to everything but the resource itself.
func (d *Dispatcher) Open(ctx context.Context, caller Caller, ino Inode, flags uint32) (FileHandle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	c, ok := d.reg.borrow(ino)
	if !ok {
		return 0, NewNotFoundError(OpOpen, ino)
	}
	defer c.release()

	req := &Request{ctx: ctx, Caller: caller, Inode: ino, reg: d.reg}
	fh, err := c.res.Open(req, flags)
	logger.DebugCtx(ctx, "OPEN dispatched", "inode", ino, "handle", fh, logger.Err(err))
	if err != nil {
		return 0, err
	}
	return fh, nil
}

// Close releases an open handle on ino. Failures are reported to the
// caller, though the kernel conventionally discards them.
func (d *Dispatcher) Close(ctx context.Context, caller Caller, ino Inode, fh FileHandle, flags uint32) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	c, ok := d.reg.borrow(ino)
	if !ok {
		return NewNotFoundError(OpRelease, ino)
	}
	defer c.release()

	req := &Request{ctx: ctx, Caller: caller, Inode: ino, reg: d.reg}
	err := c.res.Close(req, fh, flags)
	logger.DebugCtx(ctx, "RELEASE dispatched", "inode", ino, "handle", fh, logger.Err(err))
	return err
}

// Read returns up to size bytes of ino's content starting at offset. A
// resource returning more than size bytes violates the read contract
// and panics: truncating would silently corrupt what the caller sees,
// and the bug is in the embedding application, not the caller.
func (d *Dispatcher) Read(ctx context.Context, caller Caller, ino Inode, fh FileHandle, offset int64, size uint32) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	c, ok := d.reg.borrow(ino)
	if !ok {
		return nil, NewNotFoundError(OpRead, ino)
	}
	defer c.release()

	req := &Request{ctx: ctx, Caller: caller, Inode: ino, reg: d.reg}
	data, err := c.res.Read(req, fh, offset, size)
	logger.DebugCtx(ctx, "READ dispatched", "inode", ino, "offset", offset, "count", size, "bytes_read", len(data), logger.Err(err))
	if err != nil {
		return nil, err
	}

	if uint64(len(data)) > uint64(size) {
		panic(fmt.Sprintf("vfs: READ on inode %d returned %d bytes, at most %d were requested", ino, len(data), size))
	}
	return data, nil
}
