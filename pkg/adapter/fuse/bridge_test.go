package fuse

import (
	"testing"
	"time"

	"github.com/hanwen/go-fuse/v2/fuse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/fusekit/pkg/vfs"
	"github.com/marmos91/fusekit/pkg/vfs/static"
)

// bridgeFixture is a mounted-in-name-only bridge: a registry holding a
// small static tree behind a dispatcher, with handlers invoked directly
// the way the kernel transport would.
type bridgeFixture struct {
	bridge   *rawBridge
	registry *vfs.Registry
	fileIno  vfs.Inode
	dirIno   vfs.Inode
}

func newBridgeFixture(t *testing.T) *bridgeFixture {
	t.Helper()

	reg := vfs.NewRegistry()

	mode := uint32(0o644)
	uid := uint32(1000)
	gid := uint32(1000)
	file := static.NewFile(vfs.NewFileAttr(vfs.AttrOpts{Mode: &mode, UID: &uid, GID: &gid}))
	file.SetContent([]byte("hello from the bridge"))
	fileIno := reg.Register(vfs.NewFileResource(file))

	sub := static.NewDirectory(vfs.NewDirAttr(vfs.AttrOpts{UID: &uid, GID: &gid}))
	dirIno := reg.Register(vfs.NewDirectoryResource(sub))

	root := static.NewDirectory(vfs.NewDirAttr(vfs.AttrOpts{UID: &uid, GID: &gid}))
	root.Bind("greeting.txt", fileIno)
	root.Bind("sub", dirIno)
	reg.SetRoot(vfs.NewDirectoryResource(root))

	dispatcher := vfs.NewDispatcher(reg)
	bridge := newRawBridge(dispatcher, Options{
		Mountpoint:   "/mnt/test",
		FSName:       "fusekit-test",
		AttrTimeout:  time.Second,
		EntryTimeout: time.Second,
	}, "test-session")

	return &bridgeFixture{bridge: bridge, registry: reg, fileIno: fileIno, dirIno: dirIno}
}

func header(ino vfs.Inode, uid, gid uint32) fuse.InHeader {
	h := fuse.InHeader{NodeId: uint64(ino)}
	h.Uid = uid
	h.Gid = gid
	return h
}

func TestBridgeGetAttr(t *testing.T) {
	f := newBridgeFixture(t)

	var out fuse.AttrOut
	status := f.bridge.GetAttr(nil, &fuse.GetAttrIn{InHeader: header(vfs.RootInode, 1000, 1000)}, &out)

	require.Equal(t, fuse.OK, status)
	assert.Equal(t, uint64(vfs.RootInode), out.Ino)
	assert.NotZero(t, out.Mode&fuse.S_IFDIR)
	assert.Equal(t, uint64(1), out.AttrValid)
}

func TestBridgeGetAttr_UnknownInode(t *testing.T) {
	f := newBridgeFixture(t)

	var out fuse.AttrOut
	status := f.bridge.GetAttr(nil, &fuse.GetAttrIn{InHeader: header(999, 1000, 1000)}, &out)
	assert.Equal(t, fuse.ENOENT, status)
}

func TestBridgeLookup(t *testing.T) {
	f := newBridgeFixture(t)

	var out fuse.EntryOut
	status := f.bridge.Lookup(nil, ptr(header(vfs.RootInode, 1000, 1000)), "greeting.txt", &out)

	require.Equal(t, fuse.OK, status)
	assert.Equal(t, uint64(f.fileIno), out.NodeId)
	assert.Equal(t, uint64(f.fileIno), out.Attr.Ino)
	assert.Equal(t, uint64(0), out.Generation)
	assert.Equal(t, uint64(len("hello from the bridge")), out.Attr.Size)
}

func TestBridgeLookup_Missing(t *testing.T) {
	f := newBridgeFixture(t)

	var out fuse.EntryOut
	status := f.bridge.Lookup(nil, ptr(header(vfs.RootInode, 1000, 1000)), "nope", &out)
	assert.Equal(t, fuse.ENOENT, status)
}

func TestBridgeLookup_OnFileIsEBADF(t *testing.T) {
	f := newBridgeFixture(t)

	var out fuse.EntryOut
	status := f.bridge.Lookup(nil, ptr(header(f.fileIno, 1000, 1000)), "child", &out)
	assert.Equal(t, fuse.EBADF, status)
}

func TestBridgeOpenAndRead(t *testing.T) {
	f := newBridgeFixture(t)

	var openOut fuse.OpenOut
	openIn := fuse.OpenIn{InHeader: header(f.fileIno, 1000, 1000)}
	require.Equal(t, fuse.OK, f.bridge.Open(nil, &openIn, &openOut))
	assert.Zero(t, openOut.OpenFlags)

	readIn := fuse.ReadIn{
		InHeader: header(f.fileIno, 1000, 1000),
		Fh:       openOut.Fh,
		Offset:   6,
		Size:     4,
	}
	result, status := f.bridge.Read(nil, &readIn, make([]byte, readIn.Size))
	require.Equal(t, fuse.OK, status)

	buf := make([]byte, readIn.Size)
	data, readStatus := result.Bytes(buf)
	require.Equal(t, fuse.OK, readStatus)
	assert.Equal(t, []byte("from"), data)

	f.bridge.Release(nil, &fuse.ReleaseIn{InHeader: header(f.fileIno, 1000, 1000), Fh: openOut.Fh})
}

func TestBridgeRead_PastEndIsERANGE(t *testing.T) {
	f := newBridgeFixture(t)

	readIn := fuse.ReadIn{
		InHeader: header(f.fileIno, 1000, 1000),
		Offset:   1000,
		Size:     16,
	}
	_, status := f.bridge.Read(nil, &readIn, make([]byte, readIn.Size))
	assert.Equal(t, fuse.ERANGE, status)
}

func TestBridgeRead_PermissionDenied(t *testing.T) {
	f := newBridgeFixture(t)

	mode := uint32(0o600)
	uid := uint32(1000)
	locked := static.NewFile(vfs.NewFileAttr(vfs.AttrOpts{Mode: &mode, UID: &uid, GID: &uid}))
	locked.SetContent([]byte("secret"))
	lockedIno := f.registry.Register(vfs.NewFileResource(locked))

	readIn := fuse.ReadIn{InHeader: header(lockedIno, 4242, 4242), Size: 8}
	_, status := f.bridge.Read(nil, &readIn, make([]byte, readIn.Size))
	assert.Equal(t, fuse.EPERM, status)

	// The owner reads fine with the same mode.
	readIn.InHeader = header(lockedIno, 1000, 1000)
	_, status = f.bridge.Read(nil, &readIn, make([]byte, readIn.Size))
	assert.Equal(t, fuse.OK, status)
}

func TestBridgeReadDir(t *testing.T) {
	f := newBridgeFixture(t)

	buf := make([]byte, 8192)
	out := fuse.NewDirEntryList(buf, 0)
	readIn := fuse.ReadIn{InHeader: header(vfs.RootInode, 1000, 1000)}

	status := f.bridge.ReadDir(nil, &readIn, out)
	assert.Equal(t, fuse.OK, status)
}

func TestBridgeReadDirPlus(t *testing.T) {
	f := newBridgeFixture(t)

	buf := make([]byte, 8192)
	out := fuse.NewDirEntryList(buf, 0)
	readIn := fuse.ReadIn{InHeader: header(vfs.RootInode, 1000, 1000)}

	status := f.bridge.ReadDirPlus(nil, &readIn, out)
	assert.Equal(t, fuse.OK, status)
}

func TestBridgeReadDir_OnFileIsEBADF(t *testing.T) {
	f := newBridgeFixture(t)

	buf := make([]byte, 8192)
	out := fuse.NewDirEntryList(buf, 0)
	readIn := fuse.ReadIn{InHeader: header(f.fileIno, 1000, 1000)}

	status := f.bridge.ReadDir(nil, &readIn, out)
	assert.Equal(t, fuse.EBADF, status)
}

func TestBridgeSymlink_NotSupportedByStaticTree(t *testing.T) {
	f := newBridgeFixture(t)

	var out fuse.EntryOut
	status := f.bridge.Symlink(nil, ptr(header(vfs.RootInode, 1000, 1000)), "/target", "link", &out)
	assert.Equal(t, fuse.ENOSYS, status)
}

func TestBridgeAccess(t *testing.T) {
	f := newBridgeFixture(t)

	t.Run("owner read allowed", func(t *testing.T) {
		in := fuse.AccessIn{InHeader: header(f.fileIno, 1000, 1000), Mask: 4}
		assert.Equal(t, fuse.OK, f.bridge.Access(nil, &in))
	})

	t.Run("owner write allowed", func(t *testing.T) {
		in := fuse.AccessIn{InHeader: header(f.fileIno, 1000, 1000), Mask: 2}
		assert.Equal(t, fuse.OK, f.bridge.Access(nil, &in))
	})

	t.Run("other write denied", func(t *testing.T) {
		in := fuse.AccessIn{InHeader: header(f.fileIno, 4242, 4242), Mask: 2}
		assert.Equal(t, fuse.EPERM, f.bridge.Access(nil, &in))
	})

	t.Run("existence probe succeeds", func(t *testing.T) {
		in := fuse.AccessIn{InHeader: header(f.fileIno, 4242, 4242), Mask: 0}
		assert.Equal(t, fuse.OK, f.bridge.Access(nil, &in))
	})
}

func TestBridgeStatFs(t *testing.T) {
	f := newBridgeFixture(t)

	var out fuse.StatfsOut
	status := f.bridge.StatFs(nil, ptr(header(vfs.RootInode, 1000, 1000)), &out)

	require.Equal(t, fuse.OK, status)
	assert.Equal(t, uint32(blockSize), out.Bsize)
	assert.Equal(t, uint64(f.registry.Len()), out.Files)
}

func ptr(h fuse.InHeader) *fuse.InHeader {
	return &h
}
