// Package structlayout compiles the struct() type-definition grammar into
// a binary record header and resolves member name -> (offset, type,
// stride) lookups over the header.
package structlayout

import "fmt"

// Type identifies one of the binary type tags a struct member can hold.
// Numeric values match declaration order so that a tag byte written
// into a header round-trips through this package alone.
type Type uint8

const (
	Int8 Type = iota
	Int16
	Int32
	Bool
	VarRef
	ArrRef
	StrRef
	Float
	Double
	FixStr
	Uint8
	Uint16
	Uint32
	// Invalid marks a member lookup that failed (missing member, malformed
	// header). The byte tag never encodes Invalid on disk.
	Invalid Type = 0xFF
)

// MaxMemberNameLen bounds a struct member's name.
const MaxMemberNameLen = 15

// MaxRefNameLen bounds the name stored in a var/array/string slot, not
// including the terminating null byte.
const MaxRefNameLen = 24

// FixStrPayloadLen is the maximum non-null payload of a fixstr member.
const FixStrPayloadLen = 32

var typeNames = map[string]Type{
	"int8": Int8, "int16": Int16, "int32": Int32,
	"uint8": Uint8, "uint16": Uint16, "uint32": Uint32,
	"bool": Bool, "float": Float, "double": Double,
	"fixstr": FixStr, "var": VarRef, "array": ArrRef, "string": StrRef,
}

var typeWidths = map[Type]int{
	Int8: 1, Int16: 2, Int32: 4,
	Uint8: 1, Uint16: 2, Uint32: 4,
	Bool: 1, Float: 4, Double: 8,
	FixStr: FixStrPayloadLen + 1,
	// var/array/string occupy a fixed null-terminated name slot.
	VarRef: MaxRefNameLen + 1, ArrRef: MaxRefNameLen + 1, StrRef: MaxRefNameLen + 1,
}

// ParseTypeName resolves a type-definition keyword (e.g. "int16") to its
// Type tag. ok is false for any unrecognized name, which the caller
// should surface as UnknownMemberType/UnknownArrayType.
func ParseTypeName(name string) (Type, bool) {
	t, ok := typeNames[name]
	return t, ok
}

// Name returns the user-facing type-definition keyword for t, or
// "unvalid" if t is Invalid or otherwise unrecognized.
func (t Type) Name() string {
	for name, tag := range typeNames {
		if tag == t {
			return name
		}
	}
	return "unvalid"
}

// Sizeof returns the fixed on-disk width of one value of type t.
func Sizeof(t Type) int {
	w, ok := typeWidths[t]
	if !ok {
		return 0
	}
	return w
}

// IsRef reports whether t is one of the name-indirection types (var,
// array, string) whose storage is a fixed-width null-terminated key
// name rather than an inline value.
func (t Type) IsRef() bool {
	return t == VarRef || t == ArrRef || t == StrRef
}

func (t Type) String() string {
	return fmt.Sprintf("%s(%d)", t.Name(), int(t))
}
