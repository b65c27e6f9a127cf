package fuse

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/hanwen/go-fuse/v2/fuse"

	"github.com/marmos91/fusekit/internal/logger"
	"github.com/marmos91/fusekit/internal/telemetry"
	"github.com/marmos91/fusekit/pkg/metrics"
	"github.com/marmos91/fusekit/pkg/vfs"
)

// Default trust durations handed to the kernel when an attribute record
// does not carry its own.
const (
	DefaultAttrTimeout  = time.Second
	DefaultEntryTimeout = time.Second
)

// Options configures a mount.
type Options struct {
	// Mountpoint is the directory the filesystem is mounted over. It
	// must exist, be a directory, and not already carry a FUSE mount.
	Mountpoint string

	// FSName is the source name shown in mount tables. Defaults to
	// "fusekit".
	FSName string

	// AllowOther permits other users (including root) to access the
	// mount. Requires user_allow_other in /etc/fuse.conf.
	AllowOther bool

	// Debug enables go-fuse request/reply logging.
	Debug bool

	// MaxWrite is the maximum kernel write size in bytes. Zero lets
	// go-fuse pick its default. Reads are unaffected, but the kernel
	// negotiates buffer sizes from it.
	MaxWrite int

	// AttrTimeout and EntryTimeout are the trust durations used for
	// attribute records that do not carry their own. Zero means the
	// package defaults.
	AttrTimeout  time.Duration
	EntryTimeout time.Duration

	// Metrics receives per-operation observations. Nil disables
	// collection with zero overhead.
	Metrics metrics.DispatchMetrics
}

// Server is one mounted kernel session. It wraps the go-fuse server
// with mount-point preflight, session identification for log
// correlation, and lifecycle helpers.
type Server struct {
	opts      Options
	sessionID string
	srv       *fuse.Server
}

// Mount mounts the dispatcher's filesystem at opts.Mountpoint and
// returns once the kernel session is live. The caller owns the returned
// server and must Unmount it; Wait blocks until the session ends.
//
// The session is served single-threaded: the kernel may queue requests,
// but only one is dispatched at a time, which is the concurrency
// contract resources are written against.
func Mount(dispatcher *vfs.Dispatcher, opts Options) (*Server, error) {
	if opts.FSName == "" {
		opts.FSName = "fusekit"
	}
	if opts.AttrTimeout == 0 {
		opts.AttrTimeout = DefaultAttrTimeout
	}
	if opts.EntryTimeout == 0 {
		opts.EntryTimeout = DefaultEntryTimeout
	}

	if err := checkMountpoint(opts.Mountpoint); err != nil {
		return nil, err
	}

	sessionID := uuid.NewString()
	ctx, span := telemetry.StartMountSpan(context.Background(), "mount", opts.Mountpoint,
		telemetry.FSName(opts.FSName), telemetry.SessionID(sessionID))
	defer span.End()

	bridge := newRawBridge(dispatcher, opts, sessionID)
	srv, err := fuse.NewServer(bridge, opts.Mountpoint, &fuse.MountOptions{
		FsName:         opts.FSName,
		Name:           "fusekit",
		AllowOther:     opts.AllowOther,
		Debug:          opts.Debug,
		MaxWrite:       opts.MaxWrite,
		SingleThreaded: true,
		DisableXAttrs:  true,
	})
	if err != nil {
		telemetry.RecordError(ctx, err)
		return nil, fmt.Errorf("failed to mount %s: %w", opts.Mountpoint, err)
	}

	go srv.Serve()
	if err := srv.WaitMount(); err != nil {
		telemetry.RecordError(ctx, err)
		return nil, fmt.Errorf("mount handshake failed for %s: %w", opts.Mountpoint, err)
	}

	logger.Info("Filesystem mounted",
		logger.Mountpoint(opts.Mountpoint),
		logger.FSName(opts.FSName),
		logger.SessionID(sessionID))

	return &Server{opts: opts, sessionID: sessionID, srv: srv}, nil
}

// SessionID returns the identifier correlating this mount's log lines.
func (s *Server) SessionID() string {
	return s.sessionID
}

// Mountpoint returns the mounted path.
func (s *Server) Mountpoint() string {
	return s.opts.Mountpoint
}

// Wait blocks until the kernel session ends, either through Unmount or
// an external umount of the mountpoint.
func (s *Server) Wait() {
	s.srv.Wait()
}

// Unmount detaches the filesystem. Busy mounts (open files, processes
// with a working directory inside) make the kernel refuse; the error is
// returned for the caller to retry or report.
func (s *Server) Unmount() error {
	if err := s.srv.Unmount(); err != nil {
		return fmt.Errorf("failed to unmount %s: %w", s.opts.Mountpoint, err)
	}

	logger.Info("Filesystem unmounted",
		logger.Mountpoint(s.opts.Mountpoint),
		logger.SessionID(s.sessionID))
	return nil
}

// checkMountpoint verifies the target is usable before handing it to
// the kernel: it must exist, be a directory, and not already carry a
// FUSE mount.
func checkMountpoint(path string) error {
	if path == "" {
		return fmt.Errorf("mountpoint is required")
	}

	if err := checkNotFUSEMount(path); err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("mountpoint does not exist: %s", path)
		}
		return fmt.Errorf("failed to stat mountpoint %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("mountpoint is not a directory: %s", path)
	}

	return nil
}
