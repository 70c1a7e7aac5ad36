package structlayout

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildHeaderStrideAndResolve(t *testing.T) {
	raw, hdr, err := BuildHeader("int16:x,uint8:flags,fixstr:name")
	require.NoError(t, err)
	require.Equal(t, 2+1+33, hdr.Stride)
	require.Len(t, raw, hdr.HeaderLen())

	off, typ, stride, ok := hdr.Resolve("x")
	require.True(t, ok)
	require.Equal(t, Int16, typ)
	require.Equal(t, hdr.HeaderLen(), off)
	require.Equal(t, hdr.Stride, stride)

	off, typ, _, ok = hdr.Resolve("flags")
	require.True(t, ok)
	require.Equal(t, Uint8, typ)
	require.Equal(t, hdr.HeaderLen()+2, off)

	off, typ, _, ok = hdr.Resolve("name")
	require.True(t, ok)
	require.Equal(t, FixStr, typ)
	require.Equal(t, hdr.HeaderLen()+3, off)
}

func TestResolveUnknownMemberIsInvalid(t *testing.T) {
	_, hdr, err := BuildHeader("int8:a")
	require.NoError(t, err)

	off, typ, stride, ok := hdr.Resolve("missing")
	require.False(t, ok)
	require.Equal(t, Invalid, typ)
	require.Equal(t, 0, off)
	require.Equal(t, 0, stride)
}

func TestBuildHeaderRejectsUnknownType(t *testing.T) {
	_, _, err := BuildHeader("weird:a")
	require.Error(t, err)
}

func TestBuildHeaderRejectsMalformedField(t *testing.T) {
	_, _, err := BuildHeader("int8")
	require.Error(t, err)
}

func TestBuildHeaderRejectsOverlongName(t *testing.T) {
	_, _, err := BuildHeader("int8:thisnameiswaytoolongforamember")
	require.Error(t, err)
}

func TestParseHeaderRoundTrip(t *testing.T) {
	raw, want, err := BuildHeader("int32:a,double:b")
	require.NoError(t, err)

	got, ok := ParseHeader(raw)
	require.True(t, ok)
	require.Equal(t, want.Stride, got.Stride)
	require.Equal(t, want.HeaderLen(), got.HeaderLen())
	require.Equal(t, want.Members, got.Members)
}

func TestParseHeaderRejectsTruncatedBuffer(t *testing.T) {
	raw, _, err := BuildHeader("int32:a")
	require.NoError(t, err)

	_, ok := ParseHeader(raw[:len(raw)-2])
	require.False(t, ok)
}

func TestRecordCountExactAndPartial(t *testing.T) {
	raw, hdr, err := BuildHeader("int16:x")
	require.NoError(t, err)

	// Exactly three records, no partial tail.
	full := make([]byte, len(raw)+hdr.Stride*3)
	require.Equal(t, 3, hdr.RecordCount(len(full), false))
	require.Equal(t, 3, hdr.RecordCount(len(full), true))

	// One byte into a fourth record: only counts with includePartial.
	partial := append(full, 0)
	require.Equal(t, 3, hdr.RecordCount(len(partial), false))
	require.Equal(t, 4, hdr.RecordCount(len(partial), true))
}

func TestRecordCountEmptyPayload(t *testing.T) {
	raw, hdr, err := BuildHeader("int8:a")
	require.NoError(t, err)
	require.Equal(t, 0, hdr.RecordCount(len(raw), false))
}

// TestStructLenInvariant checks that a struct value's total length
// equals its header length plus one stride once a single record has
// been written.
func TestStructLenInvariant(t *testing.T) {
	raw, hdr, err := BuildHeader("int16:x,uint8:flags,fixstr:name")
	require.NoError(t, err)

	value := append(raw, make([]byte, hdr.Stride)...)
	require.Equal(t, hdr.HeaderLen()+hdr.Stride, len(value))
	require.Equal(t, 1, hdr.RecordCount(len(value), false))
}
