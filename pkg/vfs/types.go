package vfs

// Inode uniquely identifies a node within a single registry.
//
// Identifiers are never reused: once an inode has been handed out it stays
// associated with that node for the lifetime of the registry, even after
// the node is unregistered.
type Inode uint64

// RootInode is the fixed identifier of the filesystem root. The kernel
// addresses the mount point through it, so the registry reserves it and the
// counter for dynamically assigned identifiers starts above it.
const RootInode Inode = 1

// FileHandle identifies an open file across read calls. Resources that do
// not track per-open state can leave it zero.
type FileHandle uint64

// Caller identifies the process on whose behalf an operation runs.
type Caller struct {
	UID uint32
	GID uint32
}

// Access is a bitmask of the three basic permission classes.
type Access uint8

const (
	// AccessExecute corresponds to the x bit.
	AccessExecute Access = 1 << iota

	// AccessWrite corresponds to the w bit.
	AccessWrite

	// AccessRead corresponds to the r bit.
	AccessRead
)

// Has reports whether every class in want is present in a.
func (a Access) Has(want Access) bool {
	return a&want == want
}

// String returns the conventional rwx rendering of the mask.
func (a Access) String() string {
	buf := []byte("---")
	if a.Has(AccessRead) {
		buf[0] = 'r'
	}
	if a.Has(AccessWrite) {
		buf[1] = 'w'
	}
	if a.Has(AccessExecute) {
		buf[2] = 'x'
	}
	return string(buf)
}
