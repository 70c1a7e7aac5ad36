package numeric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAtoINullTolerant(t *testing.T) {
	require.Equal(t, 0, AtoI(""))
	require.Equal(t, 42, AtoI("42"))
	require.Equal(t, -7, AtoI("-7"))
}

func TestAtoI16Clamps(t *testing.T) {
	require.Equal(t, int16(math.MaxInt16), AtoI16("999999"))
	require.Equal(t, int16(math.MinInt16), AtoI16("-999999"))
	require.Equal(t, int16(5), AtoI16("5"))
}

func TestAtoUI16Clamps(t *testing.T) {
	require.Equal(t, uint16(math.MaxUint16), AtoUI16("999999"))
	require.Equal(t, uint16(0), AtoUI16("-1"))
}

func TestAtoI32Clamps(t *testing.T) {
	require.Equal(t, int32(math.MaxInt32), AtoI32("99999999999"))
	require.Equal(t, int32(math.MinInt32), AtoI32("-99999999999"))
}

func TestAtoUI32Clamps(t *testing.T) {
	require.Equal(t, uint32(math.MaxUint32), AtoUI32("99999999999"))
	require.Equal(t, uint32(0), AtoUI32("-5"))
}

func TestAtoFNullTolerant(t *testing.T) {
	require.Equal(t, 0.0, AtoF(""))
	require.InDelta(t, 3.25, AtoF("3.25"), 1e-9)
	require.InDelta(t, -1.5e3, AtoF("-1.5e3"), 1e-6)
}
