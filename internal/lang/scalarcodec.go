package lang

import (
	"strings"

	"github.com/hpp-embedded/hpp/internal/buf"
	"github.com/hpp-embedded/hpp/internal/numeric"
	"github.com/hpp-embedded/hpp/internal/structlayout"
)

// readScalar decodes the width-many bytes at the front of window as a
// textual value, dispatching on the binary type tag.
func readScalar(window []byte, typ structlayout.Type) string {
	switch typ {
	case structlayout.Int8:
		if len(window) < 1 {
			return "0"
		}
		return numeric.I2A(int(int8(window[0])))
	case structlayout.Uint8:
		if len(window) < 1 {
			return "0"
		}
		return numeric.UI32toA(uint32(window[0]))
	case structlayout.Int16:
		return numeric.I16toA(buf.I16LE(window))
	case structlayout.Uint16:
		return numeric.UI16toA(buf.U16LE(window))
	case structlayout.Int32:
		return numeric.I32toA(buf.I32LE(window))
	case structlayout.Uint32:
		return numeric.UI32toA(buf.U32LE(window))
	case structlayout.Bool:
		if len(window) < 1 {
			return "false"
		}
		if window[0] != 0 {
			return "true"
		}
		return "false"
	case structlayout.Float:
		return numeric.FormatFloat(float64(buf.F32LE(window)), numeric.FullPrecision)
	case structlayout.Double:
		return numeric.FormatFloat(buf.F64LE(window), numeric.FullPrecision)
	case structlayout.FixStr:
		term := indexByte(window, 0)
		if term < 0 {
			term = len(window)
		}
		return string(window[:term])
	default:
		return ""
	}
}

// writeScalar encodes text into window, which must be at least
// structlayout.Sizeof(typ) bytes.
func writeScalar(window []byte, typ structlayout.Type, text string) {
	switch typ {
	case structlayout.Int8:
		if len(window) >= 1 {
			window[0] = byte(int8(numeric.AtoI(text)))
		}
	case structlayout.Uint8:
		if len(window) >= 1 {
			window[0] = byte(numeric.AtoI(text))
		}
	case structlayout.Int16:
		buf.PutU16LE(window, uint16(numeric.AtoI16(text)))
	case structlayout.Uint16:
		buf.PutU16LE(window, numeric.AtoUI16(text))
	case structlayout.Int32:
		buf.PutU32LE(window, uint32(numeric.AtoI32(text)))
	case structlayout.Uint32:
		buf.PutU32LE(window, numeric.AtoUI32(text))
	case structlayout.Bool:
		if len(window) >= 1 {
			if text == "true" {
				window[0] = 1
			} else {
				window[0] = 0
			}
		}
	case structlayout.Float:
		buf.PutF32LE(window, float32(numeric.AtoF(text)))
	case structlayout.Double:
		buf.PutF64LE(window, numeric.AtoF(text))
	case structlayout.FixStr:
		for i := range window {
			window[i] = 0
		}
		n := len(text)
		if n > structlayout.FixStrPayloadLen {
			n = structlayout.FixStrPayloadLen
		}
		copy(window, text[:n])
	}
}

func indexByte(b []byte, c byte) int {
	return strings.IndexByte(string(b), c)
}
