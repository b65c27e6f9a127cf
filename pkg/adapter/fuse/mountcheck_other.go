//go:build !linux

package fuse

// checkNotFUSEMount is a no-op where statfs does not report a
// filesystem type magic; a stacked mount is caught by the kernel at
// mount time instead.
func checkNotFUSEMount(_ string) error {
	return nil
}
