package vfs

// Directory is the narrow contract for directory-like resources. As with
// File, GetAttr is mandatory and everything else is optional: implement
// DirectoryLookuper, DirectoryReader or DirectorySymlinker alongside it
// and NewDirectoryResource picks them up.
type Directory interface {
	GetAttr(req *Request) (Attr, error)
}

// DirectoryLookuper is implemented by directories that resolve child
// names. Directories without it report NotSupported on lookup.
type DirectoryLookuper interface {
	Lookup(req *Request, name string) (Entry, error)
}

// DirectoryReader is implemented by directories that enumerate their
// children. Directories without it report NotSupported on listing.
type DirectoryReader interface {
	ReadDir(req *Request) ([]DirEntry, error)
}

// DirectorySymlinker is implemented by directories that accept new
// symbolic links. Directories without it report NotSupported.
type DirectorySymlinker interface {
	Symlink(req *Request, name, target string) (Entry, error)
}

// directoryResource widens a Directory to the full Resource contract.
type directoryResource struct {
	dir Directory
}

// NewDirectoryResource adapts a directory-like behavior object to the
// wide Resource contract. File operations fail with WrongNodeKind;
// directory operations delegate to the optional interfaces or report
// NotSupported.
func NewDirectoryResource(dir Directory) Resource {
	return &directoryResource{dir: dir}
}

func (r *directoryResource) GetAttr(req *Request) (Attr, error) {
	return r.dir.GetAttr(req)
}

// Directory operations

func (r *directoryResource) Lookup(req *Request, name string) (Entry, error) {
	if lookuper, ok := r.dir.(DirectoryLookuper); ok {
		return lookuper.Lookup(req, name)
	}
	return Entry{}, NewNotSupportedError(OpLookup)
}

func (r *directoryResource) ReadDir(req *Request) ([]DirEntry, error) {
	if reader, ok := r.dir.(DirectoryReader); ok {
		return reader.ReadDir(req)
	}
	return nil, NewNotSupportedError(OpReadDir)
}

func (r *directoryResource) Symlink(req *Request, name, target string) (Entry, error) {
	if symlinker, ok := r.dir.(DirectorySymlinker); ok {
		return symlinker.Symlink(req, name, target)
	}
	return Entry{}, NewNotSupportedError(OpSymlink)
}

// File operations

func (r *directoryResource) Open(_ *Request, _ uint32) (FileHandle, error) {
	return 0, NewWrongNodeKindError(OpOpen, "directory")
}

func (r *directoryResource) Close(_ *Request, _ FileHandle, _ uint32) error {
	return NewWrongNodeKindError(OpRelease, "directory")
}

func (r *directoryResource) Read(_ *Request, _ FileHandle, _ int64, _ uint32) ([]byte, error) {
	return nil, NewWrongNodeKindError(OpRead, "directory")
}
