package vfs

import (
	"fmt"
	"math"
)

// cell is a registry slot. The busy flag marks the resource as borrowed
// by an in-flight operation; a second borrow before release is a bug in
// the embedding application and panics.
type cell struct {
	res  Resource
	busy bool
}

func (c *cell) release() {
	c.busy = false
}

// Registry owns the inode to resource mapping and identifier allocation.
//
// Identifiers are handed out by a counter seeded just above RootInode
// and are never reused, so an unregistered identifier stays dead for the
// registry's lifetime. The root identifier is not allocated; it is bound
// explicitly with SetRoot.
//
// A Registry is not safe for concurrent use on its own. The dispatcher
// serializes all access to it; outside of dispatch, confine it to the
// goroutine that is assembling the filesystem.
type Registry struct {
	nodes map[Inode]*cell
	next  Inode
}

// NewRegistry creates an empty registry with the identifier counter
// seeded at RootInode + 1.
func NewRegistry() *Registry {
	return &Registry{
		nodes: make(map[Inode]*cell),
		next:  RootInode + 1,
	}
}

// Register binds the next free identifier to resource and returns it.
// It panics if the identifier space is exhausted; with 64-bit
// identifiers that only happens when the embedding application leaks
// registrations in a loop, which is a bug, not a runtime condition.
//
// Registering a resource does not index it anywhere: until a directory
// binds the identifier under a name, only direct access by the exact
// identifier reaches the resource.
func (r *Registry) Register(resource Resource) Inode {
	ino, ok := r.TryRegister(resource)
	if !ok {
		panic("vfs: inode identifier space exhausted")
	}
	return ino
}

// TryRegister is Register without the panic: it reports false when the
// identifier space is exhausted instead.
func (r *Registry) TryRegister(resource Resource) (Inode, bool) {
	ino := r.next
	if ino == math.MaxUint64 {
		return 0, false
	}
	r.next = ino + 1

	r.nodes[ino] = &cell{res: resource}
	return ino, true
}

// Unregister removes the binding for ino and returns the resource it
// held, if any. The identifier is not reclaimed.
func (r *Registry) Unregister(ino Inode) (Resource, bool) {
	c, ok := r.nodes[ino]
	if !ok {
		return nil, false
	}
	delete(r.nodes, ino)
	return c.res, true
}

// Resolve returns the resource bound to ino, if any.
func (r *Registry) Resolve(ino Inode) (Resource, bool) {
	c, ok := r.nodes[ino]
	if !ok {
		return nil, false
	}
	return c.res, true
}

// SetRoot binds resource to RootInode and returns whatever was bound
// there before. A non-nil previous resource on the first call usually
// means the filesystem was initialized twice.
func (r *Registry) SetRoot(resource Resource) (Resource, bool) {
	prev, hadPrev := r.nodes[RootInode]
	r.nodes[RootInode] = &cell{res: resource}
	if !hadPrev {
		return nil, false
	}
	return prev.res, true
}

// Len returns the number of bound identifiers, the root included once
// it is set.
func (r *Registry) Len() int {
	return len(r.nodes)
}

// borrow marks the cell for ino as being served and returns it. The
// caller must release the cell when the operation finishes. Borrowing a
// cell that is already busy means an operation re-entered a resource
// that is still on the stack, which would corrupt single-threaded
// resource state if allowed to proceed.
func (r *Registry) borrow(ino Inode) (*cell, bool) {
	c, ok := r.nodes[ino]
	if !ok {
		return nil, false
	}
	if c.busy {
		panic(fmt.Sprintf("vfs: resource %d borrowed twice by the same operation", ino))
	}
	c.busy = true
	return c, true
}
