package persist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hpp-embedded/hpp/internal/store"
)

func TestSaveLoadSnapshotRoundTrip(t *testing.T) {
	s := store.New()
	s.PutString("A", "1")
	s.PutString("B", "2")
	s.PutString("C.sub", "3")

	path := filepath.Join(t.TempDir(), "snap.bin")
	require.NoError(t, SaveSnapshot(path, s))

	loaded, err := LoadSnapshot(path)
	require.NoError(t, err)
	require.Equal(t, s.Len(), loaded.Len())

	for _, key := range []string{"A", "B", "C.sub"} {
		want, ok := s.Get(key)
		require.True(t, ok)
		got, ok := loaded.Get(key)
		require.True(t, ok)
		require.Equal(t, want, got)
	}
}

func TestLoadSnapshotPreservesRecencyOrder(t *testing.T) {
	s := store.New()
	s.PutString("old", "1")
	s.PutString("new", "2")

	path := filepath.Join(t.TempDir(), "snap.bin")
	require.NoError(t, SaveSnapshot(path, s))

	loaded, err := LoadSnapshot(path)
	require.NoError(t, err)

	entries := loaded.Entries()
	require.Len(t, entries, 2)
	require.Equal(t, "new", entries[0].Key)
	require.Equal(t, "old", entries[1].Key)
}

func TestLoadSnapshotRejectsForeignFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notasnap.bin")
	require.NoError(t, os.WriteFile(path, []byte("not a snapshot"), 0o644))

	_, err := LoadSnapshot(path)
	require.Error(t, err)
}

func TestSaveSnapshotEmptyStore(t *testing.T) {
	s := store.New()
	path := filepath.Join(t.TempDir(), "empty.bin")
	require.NoError(t, SaveSnapshot(path, s))

	loaded, err := LoadSnapshot(path)
	require.NoError(t, err)
	require.Equal(t, 0, loaded.Len())
}

