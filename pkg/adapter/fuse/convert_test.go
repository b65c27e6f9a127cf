package fuse

import (
	"syscall"
	"testing"
	"time"

	"github.com/hanwen/go-fuse/v2/fuse"
	"github.com/stretchr/testify/assert"

	"github.com/marmos91/fusekit/pkg/vfs"
)

func TestKernelMode(t *testing.T) {
	tests := []struct {
		name string
		typ  vfs.FileType
		perm uint32
		want uint32
	}{
		{"regular file", vfs.FileTypeRegular, 0o644, syscall.S_IFREG | 0o644},
		{"directory", vfs.FileTypeDirectory, 0o755, syscall.S_IFDIR | 0o755},
		{"symlink", vfs.FileTypeSymlink, 0o777, syscall.S_IFLNK | 0o777},
		{"block device", vfs.FileTypeBlockDevice, 0o660, syscall.S_IFBLK | 0o660},
		{"char device", vfs.FileTypeCharDevice, 0o666, syscall.S_IFCHR | 0o666},
		{"socket", vfs.FileTypeSocket, 0o700, syscall.S_IFSOCK | 0o700},
		{"fifo", vfs.FileTypeFIFO, 0o600, syscall.S_IFIFO | 0o600},
		{"extra bits masked", vfs.FileTypeRegular, 0o7777, syscall.S_IFREG | 0o777},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, kernelMode(tt.typ, tt.perm))
		})
	}
}

func TestFillAttr(t *testing.T) {
	mtime := time.Date(2024, 3, 1, 12, 0, 0, 500, time.UTC)
	attr := vfs.Attr{
		Ino:    7,
		Type:   vfs.FileTypeRegular,
		Size:   1234,
		Blocks: 1,
		Mtime:  mtime,
		Mode:   0o640,
		Nlink:  3,
		UID:    1000,
		GID:    2000,
	}

	var out fuse.Attr
	fillAttr(attr, &out)

	assert.Equal(t, uint64(7), out.Ino)
	assert.Equal(t, uint64(1234), out.Size)
	assert.Equal(t, uint64(1), out.Blocks)
	assert.Equal(t, uint32(syscall.S_IFREG|0o640), out.Mode)
	assert.Equal(t, uint32(3), out.Nlink)
	assert.Equal(t, uint32(1000), out.Owner.Uid)
	assert.Equal(t, uint32(2000), out.Owner.Gid)
	assert.Equal(t, uint32(blockSize), out.Blksize)
	assert.Equal(t, uint64(mtime.Unix()), out.Mtime)
	assert.Equal(t, uint32(500), out.Mtimensec)

	// Zero timestamps stay zero instead of going negative.
	assert.Zero(t, out.Atime)
}

func TestFillAttr_ZeroNlinkReportsOne(t *testing.T) {
	var out fuse.Attr
	fillAttr(vfs.Attr{Ino: 1, Type: vfs.FileTypeDirectory}, &out)
	assert.Equal(t, uint32(1), out.Nlink)
}

func TestFillEntryOut_TrustDurations(t *testing.T) {
	b := &rawBridge{attrTimeout: 2 * time.Second, entryTimeout: 3 * time.Second}

	t.Run("record default falls back to mount timeouts", func(t *testing.T) {
		var out fuse.EntryOut
		b.fillEntryOut(vfs.EntryOf(vfs.Attr{Ino: 9}), &out)

		assert.Equal(t, uint64(9), out.NodeId)
		assert.Equal(t, uint64(0), out.Generation)
		assert.Equal(t, uint64(2), out.AttrValid)
		assert.Equal(t, uint64(3), out.EntryValid)
	})

	t.Run("per-record trust duration wins", func(t *testing.T) {
		var out fuse.EntryOut
		b.fillEntryOut(vfs.EntryOf(vfs.Attr{Ino: 9, Valid: 5 * time.Second}), &out)

		assert.Equal(t, uint64(5), out.AttrValid)
		assert.Equal(t, uint64(5), out.EntryValid)
	})
}

func TestFillAttrOut_TrustDuration(t *testing.T) {
	b := &rawBridge{attrTimeout: 4 * time.Second}

	var out fuse.AttrOut
	b.fillAttrOut(vfs.Attr{Ino: 3}, &out)
	assert.Equal(t, uint64(4), out.AttrValid)

	out = fuse.AttrOut{}
	b.fillAttrOut(vfs.Attr{Ino: 3, Valid: 1500 * time.Millisecond}, &out)
	assert.Equal(t, uint64(1), out.AttrValid)
	assert.Equal(t, uint32(500_000_000), out.AttrValidNsec)
}
