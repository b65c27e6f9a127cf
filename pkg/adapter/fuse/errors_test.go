package fuse

import (
	"context"
	"errors"
	"testing"

	"github.com/hanwen/go-fuse/v2/fuse"
	"github.com/stretchr/testify/assert"

	"github.com/marmos91/fusekit/pkg/vfs"
)

func TestMapErrorToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want fuse.Status
	}{
		{"nil error", nil, fuse.OK},
		{"not found", vfs.NewNotFoundError(vfs.OpGetAttr, 42), fuse.ENOENT},
		{"no entry", vfs.NewNoEntryError(vfs.OpLookup, "missing"), fuse.ENOENT},
		{"not supported", vfs.NewNotSupportedError(vfs.OpRead), fuse.ENOSYS},
		{"wrong node kind", vfs.NewWrongNodeKindError(vfs.OpReadDir, "file"), fuse.EBADF},
		{"permission denied", vfs.NewPermissionDeniedError(vfs.OpRead), fuse.EPERM},
		{"range error", vfs.NewRangeError(vfs.OpRead, 100, 30), fuse.ERANGE},
		{"bad argument", vfs.NewBadArgumentError(vfs.OpLookup, "empty name"), fuse.EINVAL},
		{"untyped error", errors.New("boom"), fuse.EIO},
		{"unknown code", &vfs.OpError{Code: vfs.ErrorCode(99), Op: vfs.OpRead}, fuse.EIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapErrorToStatus(context.Background(), tt.err, "TEST")
			assert.Equal(t, tt.want, got)
		})
	}
}

// WrongNodeKind and NotSupported must never collapse into the same
// errno: the first means "misdirected call", the second "missing
// feature".
func TestMapErrorToStatus_KindVersusSupport(t *testing.T) {
	kind := MapErrorToStatus(context.Background(), vfs.NewWrongNodeKindError(vfs.OpOpen, "directory"), vfs.OpOpen)
	supp := MapErrorToStatus(context.Background(), vfs.NewNotSupportedError(vfs.OpOpen), vfs.OpOpen)
	assert.NotEqual(t, kind, supp)
}
