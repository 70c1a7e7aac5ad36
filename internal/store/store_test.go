package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPutGetRoundTrip(t *testing.T) {
	s := New()
	ptr, ok := s.PutString("A", "hello")
	require.True(t, ok)
	require.Equal(t, "hello", string(ptr))

	got, ok := s.Get("A")
	require.True(t, ok)
	require.Equal(t, "hello", string(got))
}

func TestEmptyStringValue(t *testing.T) {
	s := New()
	ptr, ok := s.Put("A", []byte{})
	require.True(t, ok)
	require.NotNil(t, ptr)
	require.Len(t, ptr, 0)
}

func TestTrailingNullByte(t *testing.T) {
	s := New()
	s.PutString("A", "hi")
	raw, ok := s.GetCString("A")
	require.True(t, ok)
	require.Equal(t, byte(0), raw[len(raw)-1])
}

func TestDeleteRemovesEntry(t *testing.T) {
	s := New()
	s.PutString("A", "x")
	require.True(t, s.Delete("A"))
	_, ok := s.Get("A")
	require.False(t, ok)
}

func TestPutNilDeletes(t *testing.T) {
	s := New()
	s.PutString("A", "x")
	_, ok := s.Put("A", nil)
	require.False(t, ok)
	_, ok = s.Get("A")
	require.False(t, ok)
}

func TestKeyIdentityStableAcrossUpdate(t *testing.T) {
	s := New()
	s.PutString("A", "1")
	key1, _ := s.GetKey("A", true)
	s.PutString("A", "2")
	key2, _ := s.GetKey("A", true)
	require.Equal(t, key1, key2)
}

func TestGetKeyCaseInsensitive(t *testing.T) {
	s := New()
	s.PutString("Hello.World", "x")
	key, ok := s.GetKey("hello.world", false)
	require.True(t, ok)
	require.Equal(t, "Hello.World", key)
}

func TestDeleteAllPrefix(t *testing.T) {
	s := New()
	s.PutString("0000:a", "1")
	s.PutString("0000:b", "2")
	s.PutString("Global", "3")
	s.DeleteAll("0000:")
	require.Equal(t, 1, s.Count("", false))
	_, ok := s.Get("Global")
	require.True(t, ok)
}

func TestCountExcludeSubtrees(t *testing.T) {
	s := New()
	s.PutString("S.a", "1")
	s.PutString("S.b", "2")
	s.PutString("S.a.sub", "3")
	require.Equal(t, 2, s.Count("S.", true))
	require.Equal(t, 3, s.Count("S.", false))
}

func TestAllocZeroFillsTail(t *testing.T) {
	s := New()
	s.PutString("A", "ab")
	grown := s.Alloc("A", 5, true)
	require.Equal(t, []byte{'a', 'b', 0, 0, 0}, grown)
}

func TestGetAllEndNodesNoDot(t *testing.T) {
	s := New()
	s.PutString("P.a", "1")
	s.PutString("P.b", "2")
	s.PutString("P.c.sub", "3")

	// Enumeration order is recency-to-head, so the most recently put
	// end node (P.b) is visited before the older P.a. End nodes render
	// as full keys, same as the default mode.
	out, err := s.GetAll("P.", "\\e,%s")
	require.NoError(t, err)
	require.Equal(t, "P.b,P.a", out)
}

func TestGetAllRootNodesDedupAndNoTrailingDot(t *testing.T) {
	s := New()
	s.PutString("P.x.a", "1")
	s.PutString("P.x.b", "2")
	s.PutString("P.y", "3")

	out, err := s.GetAll("P.", "\\r,%s")
	require.NoError(t, err)
	require.Equal(t, "x", out)
}

func TestGetAllBothModeRetainsTrailingDotOnRoots(t *testing.T) {
	s := New()
	s.PutString("P.x.a", "1")
	s.PutString("P.y", "2")

	// Recency-to-head order visits P.y (end node) before P.x.a (root "x.").
	out, err := s.GetAll("P.", "\\b,%s")
	require.NoError(t, err)
	require.Equal(t, "P.y,x.", out)
}

func TestGetAllLeadingDigitSuppression(t *testing.T) {
	s := New()
	s.PutString("P.a", "1")
	s.PutString("P.b", "2")

	out, err := s.GetAll("P.", "\\1,%s")
	require.NoError(t, err)
	// The leading comma is stripped only on the first rendered item.
	require.Equal(t, "P.b,P.a", out)
}

func TestGetAllKeyAndValue(t *testing.T) {
	s := New()
	s.PutString("P.a", "1")
	out, err := s.GetAll("P.", "%s=%s;")
	require.NoError(t, err)
	require.Equal(t, "P.a=1;", out)
}
