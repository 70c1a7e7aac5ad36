//go:build linux || freebsd

package persist

import (
	"os"

	"golang.org/x/sys/unix"
)

// fdatasync flushes file data (not necessarily metadata) to disk.
// fdatasync() gives sufficient durability on Linux and FreeBSD.
func fdatasync(f *os.File) error {
	return unix.Fdatasync(int(f.Fd()))
}
