//go:build darwin

package persist

import (
	"os"

	"golang.org/x/sys/unix"
)

// fdatasync uses F_FULLFSYNC for power-loss durability; macOS has no
// fdatasync() and plain fsync() does not flush the drive's write cache.
func fdatasync(f *os.File) error {
	_, err := unix.FcntlInt(f.Fd(), unix.F_FULLFSYNC, 0)
	return err
}
