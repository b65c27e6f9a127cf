package fuse

import (
	"syscall"
	"time"

	"github.com/hanwen/go-fuse/v2/fuse"

	"github.com/marmos91/fusekit/pkg/vfs"
)

// blockSize is the I/O block size reported to the kernel for every node
// and for the filesystem itself.
const blockSize = 4096

// kernelMode combines a node type and the nine permission bits into the
// kernel's combined st_mode representation.
func kernelMode(t vfs.FileType, perm uint32) uint32 {
	perm &= 0o777
	switch t {
	case vfs.FileTypeDirectory:
		return syscall.S_IFDIR | perm
	case vfs.FileTypeSymlink:
		return syscall.S_IFLNK | perm
	case vfs.FileTypeBlockDevice:
		return syscall.S_IFBLK | perm
	case vfs.FileTypeCharDevice:
		return syscall.S_IFCHR | perm
	case vfs.FileTypeSocket:
		return syscall.S_IFSOCK | perm
	case vfs.FileTypeFIFO:
		return syscall.S_IFIFO | perm
	default:
		return syscall.S_IFREG | perm
	}
}

// fillAttr copies a core attribute record into the kernel's attribute
// shape. A zero link count is reported as 1: the node is reachable, or
// the kernel would not be asking about it.
func fillAttr(attr vfs.Attr, out *fuse.Attr) {
	out.Ino = uint64(attr.Ino)
	out.Size = attr.Size
	out.Blocks = attr.Blocks
	out.Mode = kernelMode(attr.Type, attr.Mode)
	out.Nlink = attr.Nlink
	if out.Nlink == 0 {
		out.Nlink = 1
	}
	out.Owner.Uid = attr.UID
	out.Owner.Gid = attr.GID
	out.Rdev = attr.Rdev
	out.Blksize = blockSize

	setTime(attr.Atime, &out.Atime, &out.Atimensec)
	setTime(attr.Mtime, &out.Mtime, &out.Mtimensec)
	setTime(attr.Ctime, &out.Ctime, &out.Ctimensec)
}

func setTime(t time.Time, sec *uint64, nsec *uint32) {
	if t.IsZero() {
		return
	}
	*sec = uint64(t.Unix())
	*nsec = uint32(t.Nanosecond())
}

// fillAttrOut fills a GETATTR reply: attributes plus the trust duration
// the kernel may cache them for. A record without an explicit trust
// duration falls back to the mount default.
func (b *rawBridge) fillAttrOut(attr vfs.Attr, out *fuse.AttrOut) {
	fillAttr(attr, &out.Attr)
	out.SetTimeout(b.trustDuration(attr.Valid, b.attrTimeout))
}

// fillEntryOut fills a LOOKUP or SYMLINK reply. The node identifier of
// the reply is the inode stamped into the entry's attributes; the
// generation counter is carried through unchanged (always zero, since
// identifiers are never reused).
func (b *rawBridge) fillEntryOut(entry vfs.Entry, out *fuse.EntryOut) {
	out.NodeId = uint64(entry.Attr.Ino)
	out.Generation = entry.Generation
	fillAttr(entry.Attr, &out.Attr)
	valid := b.trustDuration(entry.Attr.Valid, b.attrTimeout)
	out.SetAttrTimeout(valid)
	out.SetEntryTimeout(b.trustDuration(entry.Attr.Valid, b.entryTimeout))
}

func (b *rawBridge) trustDuration(valid, fallback time.Duration) time.Duration {
	if valid > 0 {
		return valid
	}
	return fallback
}
