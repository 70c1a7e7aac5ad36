package structlayout

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadRefNameEmptySlotMeansUnwritten(t *testing.T) {
	slot := make([]byte, MaxRefNameLen+1)
	require.Equal(t, "", ReadRefName(slot))
}

func TestWriteThenReadRefNameRoundTrip(t *testing.T) {
	slot := make([]byte, MaxRefNameLen+1)
	require.NoError(t, WriteRefName(slot, "S.items"))
	require.Equal(t, "S.items", ReadRefName(slot))
}

func TestWriteRefNameRejectsOverlong(t *testing.T) {
	slot := make([]byte, MaxRefNameLen+1)
	long := "this_name_is_definitely_too_long_for_the_slot"
	require.ErrorIs(t, WriteRefName(slot, long), ErrRefNameTooLong)
}

func TestWriteRefNameZeroPadsRemainder(t *testing.T) {
	slot := make([]byte, MaxRefNameLen+1)
	require.NoError(t, WriteRefName(slot, "a"))
	for i := 2; i < len(slot); i++ {
		require.Equal(t, byte(0), slot[i], "byte %d should be zero padding", i)
	}
}

func TestSynthesizeRefNameFormat(t *testing.T) {
	name, err := SynthesizeRefName("S", 4)
	require.NoError(t, err)
	require.Equal(t, "S.4", name)
}

func TestSynthesizeRefNameTooLong(t *testing.T) {
	_, err := SynthesizeRefName("this_parent_key_is_quite_long_already", 10)
	require.ErrorIs(t, err, ErrRefNameTooLong)
}
