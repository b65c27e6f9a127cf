// Package static provides ready-made resources backed by in-memory
// content: a fixed-content file and a directory with explicit name to
// inode bindings. They cover the common case of assembling a small
// read-only tree without writing resource types by hand.
package static

import (
	"github.com/marmos91/fusekit/pkg/vfs"
)

// File is a file resource serving fixed in-memory content. Register it
// wrapped: vfs.NewFileResource(file).
//
// Reads are guarded by the permission evaluator against the configured
// attributes, so a mode without the read bit for the caller denies
// access the way a real filesystem would.
type File struct {
	content []byte
	attr    vfs.Attr
}

// NewFile creates a static file with the given attributes and no
// content.
func NewFile(attr vfs.Attr) *File {
	return &File{attr: attr}
}

// Attr returns the configured attributes.
func (f *File) Attr() vfs.Attr {
	return f.attr
}

// SetAttr replaces the configured attributes.
func (f *File) SetAttr(attr vfs.Attr) {
	f.attr = attr
}

// Content returns the content being served.
func (f *File) Content() []byte {
	return f.content
}

// SetContent replaces the content being served.
func (f *File) SetContent(content []byte) {
	f.content = content
}

// GetAttr returns the configured attributes. Type, size and block count
// always reflect the actual content, whatever was configured.
func (f *File) GetAttr(_ *vfs.Request) (vfs.Attr, error) {
	attr := f.attr
	attr.Type = vfs.FileTypeRegular
	attr.Size = uint64(len(f.content))
	attr.Blocks = attr.Size / 4096
	return attr, nil
}

// Read returns up to size bytes of content starting at offset. An
// offset at or past the end of the content is a RangeError; a range
// that starts inside the content and runs past the end is truncated at
// the end instead.
func (f *File) Read(req *vfs.Request, _ vfs.FileHandle, offset int64, size uint32) ([]byte, error) {
	if err := req.EnsureAccess(vfs.OpRead, f.attr, vfs.AccessRead); err != nil {
		return nil, err
	}

	start := offset
	if start < 0 {
		start = 0
	}
	if start >= int64(len(f.content)) {
		return nil, vfs.NewRangeError(vfs.OpRead, offset, uint64(len(f.content)))
	}

	end := start + int64(size)
	if end > int64(len(f.content)) {
		end = int64(len(f.content))
	}
	return f.content[start:end], nil
}
