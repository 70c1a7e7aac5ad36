//go:build unix

package persist

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// mapRead maps path into memory read-only, for LoadSnapshot to decode
// without a bulk copy. Built on golang.org/x/sys/unix rather than raw
// syscall since the rest of this package already depends on it for
// msync/fdatasync.
func mapRead(path string) ([]byte, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	size := info.Size()
	if size == 0 {
		return []byte{}, func() error { return nil }, nil
	}
	if size > int64(^uint(0)>>1) {
		return nil, nil, fmt.Errorf("persist: snapshot too large to map (%d bytes)", size)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, err
	}
	return data, func() error { return unix.Munmap(data) }, nil
}

// syncFile durably flushes a just-written snapshot file: it maps the
// file read-write, msyncs the mapping, then fdatasyncs the descriptor.
func syncFile(path string) error {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.Size() == 0 {
		return fdatasync(f)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(info.Size()), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return err
	}
	defer unix.Munmap(data)

	if err := unix.Msync(data, unix.MS_SYNC); err != nil {
		return err
	}
	return fdatasync(f)
}
