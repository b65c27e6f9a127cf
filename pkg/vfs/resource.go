package vfs

// Operation names used in errors, logs and metrics labels. They follow
// the kernel protocol opcode names, which is why closing is RELEASE.
const (
	OpGetAttr = "GETATTR"
	OpLookup  = "LOOKUP"
	OpReadDir = "READDIR"
	OpSymlink = "SYMLINK"
	OpOpen    = "OPEN"
	OpRelease = "RELEASE"
	OpRead    = "READ"

	// Protocol-level operations answered without a resource call of
	// their own.
	OpAccess = "ACCESS"
	OpStatFS = "STATFS"
)

// Resource is the full operation surface a registered node answers to.
// The dispatcher only ever talks to this wide contract.
//
// Most implementations should not implement it directly: file-like nodes
// implement File and are wrapped with NewFileResource, directory-like
// nodes implement Directory and are wrapped with NewDirectoryResource.
// The wrappers reject operations of the other kind with WrongNodeKind,
// so a stray cross-kind call is never mistaken for a missing feature.
//
// Implementations that do take the wide contract can embed
// DefaultResource and override only what they support.
type Resource interface {
	// GetAttr returns the node's attributes. The Ino field of the result
	// is overwritten with the node's registered identifier during
	// dispatch, so implementations can leave it zero.
	GetAttr(req *Request) (Attr, error)

	// Lookup resolves the name of a direct child to its entry, assuming
	// this node is a directory.
	Lookup(req *Request, name string) (Entry, error)

	// ReadDir returns this node's children, assuming it is a directory.
	// The synthetic "." and ".." rows are added during dispatch and must
	// not be included.
	ReadDir(req *Request) ([]DirEntry, error)

	// Symlink creates a symbolic link named name pointing at target
	// inside this node, assuming it is a directory. It returns the new
	// node's entry the same way Lookup would.
	Symlink(req *Request, name, target string) (Entry, error)

	// Open opens the node, assuming it is a file. The returned handle is
	// carried back unchanged on later Read and Close calls; it means
	// nothing to anyone but this resource, and zero is fine for
	// resources without per-open state.
	Open(req *Request, flags uint32) (FileHandle, error)

	// Close releases an open handle, assuming this node is a file. It is
	// called once per handle, after the last duplicate of the open file
	// is gone. The kernel discards any error it returns.
	Close(req *Request, fh FileHandle, flags uint32) error

	// Read returns up to size bytes of content starting at offset,
	// assuming this node is a file. Returning more than size bytes is a
	// bug in the resource and panics the dispatch.
	Read(req *Request, fh FileHandle, offset int64, size uint32) ([]byte, error)
}

// DefaultResource implements every operation with its default behavior:
// NotSupported everywhere, except Open and Close which succeed without
// doing anything. Embed it to implement a subset of the wide contract.
type DefaultResource struct{}

// GetAttr reports NotSupported.
func (DefaultResource) GetAttr(_ *Request) (Attr, error) {
	return Attr{}, NewNotSupportedError(OpGetAttr)
}

// Lookup reports NotSupported.
func (DefaultResource) Lookup(_ *Request, _ string) (Entry, error) {
	return Entry{}, NewNotSupportedError(OpLookup)
}

// ReadDir reports NotSupported.
func (DefaultResource) ReadDir(_ *Request) ([]DirEntry, error) {
	return nil, NewNotSupportedError(OpReadDir)
}

// Symlink reports NotSupported.
func (DefaultResource) Symlink(_ *Request, _, _ string) (Entry, error) {
	return Entry{}, NewNotSupportedError(OpSymlink)
}

// Open succeeds with a zero handle.
func (DefaultResource) Open(_ *Request, _ uint32) (FileHandle, error) {
	return 0, nil
}

// Close succeeds.
func (DefaultResource) Close(_ *Request, _ FileHandle, _ uint32) error {
	return nil
}

// Read reports NotSupported.
func (DefaultResource) Read(_ *Request, _ FileHandle, _ int64, _ uint32) ([]byte, error) {
	return nil, NewNotSupportedError(OpRead)
}
