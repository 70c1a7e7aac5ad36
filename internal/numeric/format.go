package numeric

import (
	"strconv"
	"strings"
)

// FloatPrintMode selects how FormatFloat renders a double.
type FloatPrintMode int

const (
	// FullPrecision renders with the equivalent of printf's "%.12g".
	FullPrecision FloatPrintMode = iota
	// IntegerPlusFraction renders the integer part, a dot if anything
	// fractional remains, then base-10 fractional digits up to a combined
	// budget of MaxSignificantDigits significant digits.
	IntegerPlusFraction
)

// MaxSignificantDigits bounds both float-print modes.
const MaxSignificantDigits = 12

// FormatFloat renders v as text under the given mode.
func FormatFloat(v float64, mode FloatPrintMode) string {
	switch mode {
	case IntegerPlusFraction:
		return formatIntegerPlusFraction(v)
	default:
		return strconv.FormatFloat(v, 'g', MaxSignificantDigits, 64)
	}
}

func formatIntegerPlusFraction(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	intPart := int64(v)
	frac := v - float64(intPart)

	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	sb.WriteString(strconv.FormatInt(intPart, 10))

	if frac == 0 {
		return sb.String()
	}

	// Budget remaining significant digits for the fractional part: the
	// integer part already consumed some of the 12-digit budget.
	digitsUsed := len(strconv.FormatInt(intPart, 10))
	remaining := MaxSignificantDigits - digitsUsed
	if remaining <= 0 {
		return sb.String()
	}

	fracDigits := strconv.FormatFloat(frac, 'f', remaining, 64)
	// FormatFloat renders "0.xxxxx"; keep only the fractional digits and
	// trim trailing zeros left over from the fixed-width formatting.
	if dot := strings.IndexByte(fracDigits, '.'); dot >= 0 {
		fracDigits = fracDigits[dot+1:]
	}
	fracDigits = strings.TrimRight(fracDigits, "0")
	if fracDigits == "" {
		return sb.String()
	}

	sb.WriteByte('.')
	sb.WriteString(fracDigits)
	return sb.String()
}

// I2A formats a signed integer (the generic `int` conversion of the
// reference D2A/I2A family), shortest decimal representation.
func I2A(v int) string { return strconv.Itoa(v) }

// I16toA formats an int16 to its shortest decimal representation.
func I16toA(v int16) string { return strconv.FormatInt(int64(v), 10) }

// UI16toA formats a uint16 to its shortest decimal representation.
func UI16toA(v uint16) string { return strconv.FormatUint(uint64(v), 10) }

// I32toA formats an int32 to its shortest decimal representation.
func I32toA(v int32) string { return strconv.FormatInt(int64(v), 10) }

// UI32toA formats a uint32 to its shortest decimal representation.
func UI32toA(v uint32) string { return strconv.FormatUint(uint64(v), 10) }

// D2A formats a double to text in FullPrecision mode (the reference
// hppD2A always uses full precision; FormatFloat exposes both modes for
// the interpreter's process-wide setting).
func D2A(v float64) string { return FormatFloat(v, FullPrecision) }
