package vfs

import (
	"context"
)

// Request is the per-call bundle handed to every resource operation: the
// caller's identity, the inode the operation targets and a back
// reference to the registry.
//
// The registry access exists because directory operations must reach
// their children: a listing needs every child's attributes to build
// complete rows, and a lookup needs the attributes of the one child it
// resolved. Request.GetAttr is the sanctioned path for that. Only one
// request is active against the registry at a time, so resources must
// not stash a Request beyond the call that delivered it.
type Request struct {
	// Caller identifies the process the kernel is acting for.
	Caller Caller

	// Inode is the node the current operation targets.
	Inode Inode

	ctx context.Context
	reg *Registry
}

// Context returns the context of the dispatched call. It carries trace
// and log correlation only; dispatch has no cancellation.
func (r *Request) Context() context.Context {
	if r.ctx != nil {
		return r.ctx
	}
	return context.Background()
}

// GetAttr resolves ino and queries its attributes, stamping the result
// with ino. The child resource is borrowed for just this one query and
// released before GetAttr returns, so a directory iterating its
// children never holds two child borrows at once.
func (r *Request) GetAttr(ino Inode) (Attr, error) {
	c, ok := r.reg.borrow(ino)
	if !ok {
		return Attr{}, NewNotFoundError(OpGetAttr, ino)
	}
	defer c.release()

	child := &Request{ctx: r.ctx, Caller: r.Caller, Inode: ino, reg: r.reg}
	attr, err := c.res.GetAttr(child)
	if err != nil {
		return Attr{}, err
	}
	attr.Ino = ino
	return attr, nil
}

// Register forwards to Registry.Register.
func (r *Request) Register(resource Resource) Inode {
	return r.reg.Register(resource)
}

// TryRegister forwards to Registry.TryRegister.
func (r *Request) TryRegister(resource Resource) (Inode, bool) {
	return r.reg.TryRegister(resource)
}

// Unregister forwards to Registry.Unregister.
func (r *Request) Unregister(ino Inode) (Resource, bool) {
	return r.reg.Unregister(ino)
}

// Resolve forwards to Registry.Resolve.
func (r *Request) Resolve(ino Inode) (Resource, bool) {
	return r.reg.Resolve(ino)
}

// Perms returns the permission triad that applies to this request's
// caller for a node with the given attributes.
func (r *Request) Perms(attr Attr) Access {
	return Perms(r.Caller, attr)
}

// EnsureAccess fails with PermissionDenied unless every class in want is
// granted to this request's caller by Perms. Resources call it before
// serving content; op names the operation being guarded.
func (r *Request) EnsureAccess(op string, attr Attr, want Access) error {
	return EnsureAccess(op, r.Caller, attr, want)
}

// Perms selects the permission triad that applies to caller for a node
// with the given attributes: the owner triad when the caller's uid
// matches the node's, else the group triad when the gid matches, else
// the other triad.
func Perms(caller Caller, attr Attr) Access {
	switch {
	case caller.UID == attr.UID:
		return Access((attr.Mode & 0o700) >> 6)
	case caller.GID == attr.GID:
		return Access((attr.Mode & 0o070) >> 3)
	default:
		return Access(attr.Mode & 0o007)
	}
}

// EnsureAccess fails with PermissionDenied unless every class in want is
// granted to caller by Perms.
func EnsureAccess(op string, caller Caller, attr Attr, want Access) error {
	if Perms(caller, attr).Has(want) {
		return nil
	}
	return NewPermissionDeniedError(op)
}
