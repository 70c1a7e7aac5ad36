//go:build !unix

package persist

import "os"

// mapRead reads path wholesale when mmap is unavailable on this platform.
func mapRead(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return data, func() error { return nil }, nil
}

// syncFile durably flushes a just-written snapshot file using the
// descriptor-level Sync, the portable equivalent of fdatasync when an
// msync-capable mapping is not available.
func syncFile(path string) error {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
