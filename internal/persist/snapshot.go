package persist

import (
	"os"

	"github.com/hpp-embedded/hpp/internal/store"
)

// SaveSnapshot writes every live entry of s to path in a self-describing
// binary format, then durably flushes it via the platform's msync and
// fdatasync/F_FULLFSYNC path. It does not participate in any hook
// boundary; a host that never calls it sees no behavioral difference.
func SaveSnapshot(path string, s *store.Store) error {
	live := s.Entries()
	entries := make([]entryRecord, len(live))
	for i, e := range live {
		entries[i] = entryRecord{Key: e.Key, Value: e.Value}
	}

	buf, err := encode(entries)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return err
	}
	return syncFile(path)
}

// LoadSnapshot reconstructs a store.Store from a file written by
// SaveSnapshot. Entries are replayed through store.Put in reverse of
// their encoded order so the store's recency-to-head ordering invariant
// matches the instant the snapshot was taken: the most recently touched
// entry was encoded first, so it must be Put last.
func LoadSnapshot(path string) (*store.Store, error) {
	data, unmap, err := mapRead(path)
	if err != nil {
		return nil, err
	}
	defer unmap()

	entries, err := decode(data)
	if err != nil {
		return nil, err
	}

	s := store.New()
	for i := len(entries) - 1; i >= 0; i-- {
		s.Put(entries[i].Key, entries[i].Value)
	}
	return s, nil
}
