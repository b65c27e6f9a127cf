package vfs

// File is the narrow contract for file-like resources. GetAttr is the
// only mandatory operation; most tools fail against a node that cannot
// be stat'ed, so there is no useful default for it.
//
// Optional behavior is added by also implementing FileOpener, FileCloser
// or FileReader. NewFileResource picks those up automatically.
type File interface {
	GetAttr(req *Request) (Attr, error)
}

// FileOpener is implemented by files that hand out per-open handles.
// Files without it open with a zero handle.
type FileOpener interface {
	Open(req *Request, flags uint32) (FileHandle, error)
}

// FileCloser is implemented by files that release per-open state.
// Files without it close successfully.
type FileCloser interface {
	Close(req *Request, fh FileHandle, flags uint32) error
}

// FileReader is implemented by files with readable content. Files
// without it report NotSupported on read.
type FileReader interface {
	Read(req *Request, fh FileHandle, offset int64, size uint32) ([]byte, error)
}

// fileResource widens a File to the full Resource contract.
type fileResource struct {
	file File
}

// NewFileResource adapts a file-like behavior object to the wide
// Resource contract. Directory operations fail with WrongNodeKind; file
// operations delegate to the optional interfaces or their defaults.
func NewFileResource(file File) Resource {
	return &fileResource{file: file}
}

func (r *fileResource) GetAttr(req *Request) (Attr, error) {
	return r.file.GetAttr(req)
}

// Directory operations

func (r *fileResource) Lookup(_ *Request, _ string) (Entry, error) {
	return Entry{}, NewWrongNodeKindError(OpLookup, "file")
}

func (r *fileResource) ReadDir(_ *Request) ([]DirEntry, error) {
	return nil, NewWrongNodeKindError(OpReadDir, "file")
}

func (r *fileResource) Symlink(_ *Request, _, _ string) (Entry, error) {
	return Entry{}, NewWrongNodeKindError(OpSymlink, "file")
}

// File operations

func (r *fileResource) Open(req *Request, flags uint32) (FileHandle, error) {
	if opener, ok := r.file.(FileOpener); ok {
		return opener.Open(req, flags)
	}
	return 0, nil
}

func (r *fileResource) Close(req *Request, fh FileHandle, flags uint32) error {
	if closer, ok := r.file.(FileCloser); ok {
		return closer.Close(req, fh, flags)
	}
	return nil
}

func (r *fileResource) Read(req *Request, fh FileHandle, offset int64, size uint32) ([]byte, error) {
	if reader, ok := r.file.(FileReader); ok {
		return reader.Read(req, fh, offset, size)
	}
	return nil, NewNotSupportedError(OpRead)
}
