package fuse

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// fuseSuperMagic is the f_type statfs reports for FUSE filesystems.
const fuseSuperMagic = 0x65735546

// checkNotFUSEMount rejects a mountpoint that already carries a FUSE
// mount. Stacking a second mount over one usually means a previous
// session was not unmounted, and hides it instead of surfacing it.
func checkNotFUSEMount(path string) error {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		// Resolution errors fall through to the stat-based checks,
		// which produce friendlier messages.
		return nil
	}
	if st.Type == fuseSuperMagic {
		return fmt.Errorf("mountpoint already carries a FUSE mount: %s (unmount it first)", path)
	}
	return nil
}
