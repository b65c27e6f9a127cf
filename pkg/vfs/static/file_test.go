package static

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/fusekit/pkg/vfs"
)

func newHarness() (*vfs.Dispatcher, *vfs.Registry) {
	reg := vfs.NewRegistry()
	return vfs.NewDispatcher(reg), reg
}

func fileAttr(mode, uid, gid uint32) vfs.Attr {
	return vfs.NewFileAttr(vfs.AttrOpts{Mode: &mode, UID: &uid, GID: &gid})
}

var owner = vfs.Caller{UID: 1000, GID: 1000}

func TestFile_GetAttr(t *testing.T) {
	t.Parallel()

	t.Run("size and blocks reflect the content", func(t *testing.T) {
		t.Parallel()
		d, reg := newHarness()
		file := NewFile(fileAttr(0o644, 1000, 1000))
		file.SetContent(make([]byte, 30))
		ino := reg.Register(vfs.NewFileResource(file))

		attr, err := d.GetAttr(context.Background(), owner, ino)
		require.NoError(t, err)
		assert.Equal(t, ino, attr.Ino)
		assert.Equal(t, vfs.FileTypeRegular, attr.Type)
		assert.Equal(t, uint64(30), attr.Size)
		assert.Zero(t, attr.Blocks)
		assert.Equal(t, uint32(0o644), attr.Mode)
	})

	t.Run("block count grows with the content", func(t *testing.T) {
		t.Parallel()
		d, reg := newHarness()
		file := NewFile(fileAttr(0o644, 1000, 1000))
		file.SetContent(make([]byte, 8192))
		ino := reg.Register(vfs.NewFileResource(file))

		attr, err := d.GetAttr(context.Background(), owner, ino)
		require.NoError(t, err)
		assert.Equal(t, uint64(8192), attr.Size)
		assert.Equal(t, uint64(2), attr.Blocks)
	})

	t.Run("node type is always a regular file", func(t *testing.T) {
		t.Parallel()
		d, reg := newHarness()
		// Misconfigured with directory attributes on purpose
		file := NewFile(vfs.NewDirAttr(vfs.AttrOpts{}))
		ino := reg.Register(vfs.NewFileResource(file))

		attr, err := d.GetAttr(context.Background(), owner, ino)
		require.NoError(t, err)
		assert.Equal(t, vfs.FileTypeRegular, attr.Type)
	})
}

func TestFile_Read(t *testing.T) {
	t.Parallel()

	// 30 bytes of content
	content := []byte("abcdefghijklmnopqrstuvwxyz0123")

	newReadable := func(t *testing.T) (*vfs.Dispatcher, vfs.Inode) {
		t.Helper()
		d, reg := newHarness()
		file := NewFile(fileAttr(0o644, 1000, 1000))
		file.SetContent(content)
		return d, reg.Register(vfs.NewFileResource(file))
	}

	t.Run("full content", func(t *testing.T) {
		t.Parallel()
		d, ino := newReadable(t)

		data, err := d.Read(context.Background(), owner, ino, 0, 0, 30)
		require.NoError(t, err)
		assert.Equal(t, content, data)
	})

	t.Run("partial range", func(t *testing.T) {
		t.Parallel()
		d, ino := newReadable(t)

		data, err := d.Read(context.Background(), owner, ino, 0, 10, 10)
		require.NoError(t, err)
		assert.Equal(t, []byte("klmnopqrst"), data)
	})

	t.Run("request past the end is truncated at the end", func(t *testing.T) {
		t.Parallel()
		d, ino := newReadable(t)

		data, err := d.Read(context.Background(), owner, ino, 0, 25, 100)
		require.NoError(t, err)
		assert.Len(t, data, 5)
		assert.Equal(t, []byte("z0123"), data)
	})

	t.Run("offset at the end is out of range", func(t *testing.T) {
		t.Parallel()
		d, ino := newReadable(t)

		_, err := d.Read(context.Background(), owner, ino, 0, 30, 100)
		require.Error(t, err)
		assert.True(t, vfs.IsRange(err))
	})

	t.Run("offset past the end is out of range", func(t *testing.T) {
		t.Parallel()
		d, ino := newReadable(t)

		_, err := d.Read(context.Background(), owner, ino, 0, 1000, 1)
		require.Error(t, err)
		assert.True(t, vfs.IsRange(err))
	})

	t.Run("empty file is out of range at offset zero", func(t *testing.T) {
		t.Parallel()
		d, reg := newHarness()
		ino := reg.Register(vfs.NewFileResource(NewFile(fileAttr(0o644, 1000, 1000))))

		_, err := d.Read(context.Background(), owner, ino, 0, 0, 10)
		require.Error(t, err)
		assert.True(t, vfs.IsRange(err))
	})

	t.Run("negative offset reads from the top", func(t *testing.T) {
		t.Parallel()
		d, ino := newReadable(t)

		data, err := d.Read(context.Background(), owner, ino, 0, -5, 5)
		require.NoError(t, err)
		assert.Equal(t, []byte("abcde"), data)
	})
}

func TestFile_Read_Permissions(t *testing.T) {
	t.Parallel()

	register := func(t *testing.T, mode uint32) (*vfs.Dispatcher, vfs.Inode) {
		t.Helper()
		d, reg := newHarness()
		file := NewFile(fileAttr(mode, 1000, 1000))
		file.SetContent([]byte("secret"))
		return d, reg.Register(vfs.NewFileResource(file))
	}

	t.Run("owner reads a 0600 file", func(t *testing.T) {
		t.Parallel()
		d, ino := register(t, 0o600)

		data, err := d.Read(context.Background(), owner, ino, 0, 0, 6)
		require.NoError(t, err)
		assert.Equal(t, []byte("secret"), data)
	})

	t.Run("stranger is denied on a 0600 file", func(t *testing.T) {
		t.Parallel()
		d, ino := register(t, 0o600)

		_, err := d.Read(context.Background(), vfs.Caller{UID: 2000, GID: 2000}, ino, 0, 0, 6)
		require.Error(t, err)
		assert.True(t, vfs.IsPermissionDenied(err))
	})

	t.Run("group member reads a 0640 file", func(t *testing.T) {
		t.Parallel()
		d, ino := register(t, 0o640)

		_, err := d.Read(context.Background(), vfs.Caller{UID: 2000, GID: 1000}, ino, 0, 0, 6)
		require.NoError(t, err)
	})

	t.Run("group member is denied on a 0600 file", func(t *testing.T) {
		t.Parallel()
		d, ino := register(t, 0o600)

		_, err := d.Read(context.Background(), vfs.Caller{UID: 2000, GID: 1000}, ino, 0, 0, 6)
		require.Error(t, err)
		assert.True(t, vfs.IsPermissionDenied(err))
	})

	t.Run("owner is denied on a mode zero file", func(t *testing.T) {
		t.Parallel()
		d, ino := register(t, 0)

		_, err := d.Read(context.Background(), owner, ino, 0, 0, 6)
		require.Error(t, err)
		assert.True(t, vfs.IsPermissionDenied(err))
	})
}

func TestFile_Accessors(t *testing.T) {
	t.Parallel()

	attr := fileAttr(0o644, 1000, 1000)
	file := NewFile(attr)

	assert.Equal(t, attr, file.Attr())
	assert.Nil(t, file.Content())

	file.SetContent([]byte("data"))
	assert.Equal(t, []byte("data"), file.Content())

	replacement := fileAttr(0o600, 2000, 2000)
	file.SetAttr(replacement)
	assert.Equal(t, replacement, file.Attr())
}
