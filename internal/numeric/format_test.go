package numeric

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatFloatFullPrecision(t *testing.T) {
	require.Equal(t, "3.5", FormatFloat(3.5, FullPrecision))
}

func TestFormatFloatIntegerPlusFraction(t *testing.T) {
	require.Equal(t, "3.5", FormatFloat(3.5, IntegerPlusFraction))
	require.Equal(t, "7", FormatFloat(7.0, IntegerPlusFraction))
	require.Equal(t, "-2.25", FormatFloat(-2.25, IntegerPlusFraction))
}

func TestFloatRoundTripFullPrecision(t *testing.T) {
	// val(val(x)) == val(x).
	x := FormatFloat(AtoF("12.3456789"), FullPrecision)
	y := FormatFloat(AtoF(x), FullPrecision)
	require.Equal(t, x, y)
}

func TestIntegerFormatters(t *testing.T) {
	require.Equal(t, "-7", I16toA(-7))
	require.Equal(t, "65535", UI16toA(65535))
	require.Equal(t, "-2147483648", I32toA(-2147483648))
	require.Equal(t, "4294967295", UI32toA(4294967295))
	require.Equal(t, "123", I2A(123))
}
