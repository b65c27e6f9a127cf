package vfs

import (
	"os"
	"time"
)

// FileType represents the type of a file
type FileType int

const (
	// FileTypeRegular is a regular file
	FileTypeRegular FileType = iota
	// FileTypeDirectory is a directory
	FileTypeDirectory
	// FileTypeSymlink is a symbolic link
	FileTypeSymlink
	// FileTypeBlockDevice is a block device
	FileTypeBlockDevice
	// FileTypeCharDevice is a character device
	FileTypeCharDevice
	// FileTypeSocket is a unix domain socket
	FileTypeSocket
	// FileTypeFIFO is a named pipe
	FileTypeFIFO
)

// String returns a string representation of the file type
func (t FileType) String() string {
	switch t {
	case FileTypeRegular:
		return "regular"
	case FileTypeDirectory:
		return "directory"
	case FileTypeSymlink:
		return "symlink"
	case FileTypeBlockDevice:
		return "block-device"
	case FileTypeCharDevice:
		return "char-device"
	case FileTypeSocket:
		return "socket"
	case FileTypeFIFO:
		return "fifo"
	default:
		return "unknown"
	}
}

// DefaultAttrValid is the trust duration stamped on attributes built
// without an explicit one. The kernel caches attributes for this long
// before asking again.
const DefaultAttrValid = time.Second

// Attr describes a node's metadata as reported to the kernel.
//
// Valid is the trust duration: how long the kernel may cache these
// attributes before re-fetching them. Mode carries only the nine
// permission bits; the node kind travels separately in Type.
type Attr struct {
	Ino    Inode
	Valid  time.Duration
	Type   FileType
	Size   uint64
	Blocks uint64
	Atime  time.Time
	Mtime  time.Time
	Ctime  time.Time
	Crtime time.Time
	Mode   uint32
	Nlink  uint32
	UID    uint32
	GID    uint32
	Rdev   uint32
}

// Entry is the result of resolving a name to a node: its attributes plus
// a generation counter. Inode identifiers are never reused, so the
// generation is always zero.
type Entry struct {
	Attr       Attr
	Generation uint64
}

// EntryOf wraps attributes in an Entry with a zero generation.
func EntryOf(attr Attr) Entry {
	return Entry{Attr: attr}
}

// DirEntry is a single row of a directory listing.
//
// Off is the entry's position in the full listing including the "." and
// ".." rows, counted from one. A later listing call passing that value as
// its offset resumes with the next entry.
type DirEntry struct {
	Ino  Inode
	Type FileType
	Name string
	Off  uint64
}

// AttrOpts overrides individual attribute fields when building an Attr.
// A nil field keeps the default.
type AttrOpts struct {
	Ino    *Inode
	Valid  *time.Duration
	Size   *uint64
	Blocks *uint64
	Atime  *time.Time
	Mtime  *time.Time
	Ctime  *time.Time
	Crtime *time.Time
	Mode   *uint32
	Nlink  *uint32
	UID    *uint32
	GID    *uint32
	Rdev   *uint32
}

// NewFileAttr builds attributes for a regular file, resolving defaults
// for every field opts leaves nil.
func NewFileAttr(opts AttrOpts) Attr {
	return buildAttr(FileTypeRegular, opts)
}

// NewDirAttr builds attributes for a directory, resolving defaults for
// every field opts leaves nil.
func NewDirAttr(opts AttrOpts) Attr {
	return buildAttr(FileTypeDirectory, opts)
}

// NewAttr builds attributes for an arbitrary node kind.
func NewAttr(t FileType, opts AttrOpts) Attr {
	return buildAttr(t, opts)
}

// buildAttr resolves the default cascade. Timestamps chain so that a
// single explicit one propagates: ctime falls back to the current time,
// mtime to ctime, atime to mtime and crtime to ctime. Permissions default
// to read-only: 0o555 for directories, 0o444 for everything else.
func buildAttr(t FileType, opts AttrOpts) Attr {
	attr := Attr{
		Type:  t,
		Valid: DefaultAttrValid,
	}

	if opts.Ino != nil {
		attr.Ino = *opts.Ino
	}
	if opts.Valid != nil {
		attr.Valid = *opts.Valid
	}
	if opts.Size != nil {
		attr.Size = *opts.Size
	}
	if opts.Blocks != nil {
		attr.Blocks = *opts.Blocks
	}
	if opts.Nlink != nil {
		attr.Nlink = *opts.Nlink
	}
	if opts.Rdev != nil {
		attr.Rdev = *opts.Rdev
	}

	attr.Ctime = time.Now()
	if opts.Ctime != nil {
		attr.Ctime = *opts.Ctime
	}
	attr.Mtime = attr.Ctime
	if opts.Mtime != nil {
		attr.Mtime = *opts.Mtime
	}
	attr.Atime = attr.Mtime
	if opts.Atime != nil {
		attr.Atime = *opts.Atime
	}
	attr.Crtime = attr.Ctime
	if opts.Crtime != nil {
		attr.Crtime = *opts.Crtime
	}

	if t == FileTypeDirectory {
		attr.Mode = 0o555
	} else {
		attr.Mode = 0o444
	}
	if opts.Mode != nil {
		attr.Mode = *opts.Mode & 0o777
	}

	attr.UID = uint32(os.Getuid())
	if opts.UID != nil {
		attr.UID = *opts.UID
	}
	attr.GID = uint32(os.Getgid())
	if opts.GID != nil {
		attr.GID = *opts.GID
	}

	return attr
}
