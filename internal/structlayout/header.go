package structlayout

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hpp-embedded/hpp/internal/buf"
)

// Member describes one field of a compiled struct header: its declared
// name, its binary type tag, and its byte offset within one record
// (relative to the end of the header, not the start of the value).
type Member struct {
	Name   string
	Type   Type
	Offset int
}

// Header is the parsed form of a struct() value's binary header. It is
// built once by BuildHeader or recovered from an existing value's bytes
// by ParseHeader; either way Resolve and RecordCount answer from it
// without re-scanning the raw bytes on every member access.
type Header struct {
	Members []Member
	Stride  int // sum of member widths; also the per-record step
	// headerLen is the full on-disk header size: the null-terminated
	// name list, the stride and count fields, and the trailing tag
	// bytes. Member offsets returned by Resolve are relative to the
	// start of the value, so they already include this.
	headerLen int
}

// HeaderLen returns the total size, in bytes, of the header section that
// precedes the first record's payload.
func (h *Header) HeaderLen() int { return h.headerLen }

// BuildHeader compiles a type-definition string ("type:name,type:name,...")
// into its binary header representation. It returns the encoded header
// bytes (ready to prefix the zero-valued record payload) and the parsed
// Header used for subsequent member resolution.
func BuildHeader(typeDef string) ([]byte, *Header, error) {
	if typeDef == "" {
		return nil, nil, fmt.Errorf("structlayout: empty type definition")
	}

	fields := strings.Split(typeDef, ",")
	members := make([]Member, 0, len(fields))
	names := make([]string, 0, len(fields))
	stride := 0

	for _, field := range fields {
		colon := strings.IndexByte(field, ':')
		if colon < 0 {
			return nil, nil, fmt.Errorf("structlayout: malformed member %q, expected type:name", field)
		}
		typeName, name := field[:colon], field[colon+1:]

		typ, ok := ParseTypeName(typeName)
		if !ok {
			return nil, nil, fmt.Errorf("structlayout: unknown member type %q", typeName)
		}
		if !validMemberName(name) {
			return nil, nil, fmt.Errorf("structlayout: invalid member name %q", name)
		}

		members = append(members, Member{Name: name, Type: typ, Offset: stride})
		names = append(names, name)
		stride += Sizeof(typ)
	}

	nameList := strings.Join(names, ",")
	// Name section: the comma-joined list plus its null terminator.
	nameSectionLen := len(nameList) + 1
	headerLenNoTags := nameSectionLen + 4 // 2-byte stride + 2-byte count
	headerLen := headerLenNoTags + len(members)

	out := make([]byte, headerLen)
	copy(out, nameList)
	// out[len(nameList)] is already zero (the null terminator).
	buf.PutU16LE(out[nameSectionLen:], uint16(stride))
	buf.PutU16LE(out[nameSectionLen+2:], uint16(len(members)))
	for i, m := range members {
		out[headerLenNoTags+i] = byte(m.Type)
	}

	return out, &Header{Members: members, Stride: stride, headerLen: headerLen}, nil
}

// ParseHeader recovers a Header from the bytes of an existing struct
// value, for use when an lvalue like `S.field` or `S:int16[i]` is
// evaluated against a value this package did not itself just build
// (e.g. one loaded from a snapshot). ok is false for a buffer too short
// to hold a complete header or whose declared member count overruns it.
func ParseHeader(raw []byte) (*Header, bool) {
	term := bytes.IndexByte(raw, 0)
	if term < 0 {
		return nil, false
	}
	nameSectionLen := term + 1
	if len(raw) < nameSectionLen+4 {
		return nil, false
	}

	stride := int(buf.U16LE(raw[nameSectionLen:]))
	count := int(buf.U16LE(raw[nameSectionLen+2:]))
	headerLenNoTags := nameSectionLen + 4
	headerLen := headerLenNoTags + count
	if count < 0 || len(raw) < headerLen {
		return nil, false
	}

	var names []string
	if term > 0 {
		names = strings.Split(string(raw[:term]), ",")
	}
	if len(names) != count {
		return nil, false
	}

	members := make([]Member, count)
	offset := 0
	for i := 0; i < count; i++ {
		typ := Type(raw[headerLenNoTags+i])
		w := Sizeof(typ)
		if w == 0 {
			return nil, false
		}
		members[i] = Member{Name: names[i], Type: typ, Offset: offset}
		offset += w
	}
	if offset != stride && stride != 0 {
		// The declared stride disagrees with the sum of member widths;
		// trust the declared stride for addressing (it is what governs
		// record spacing) but keep the member offsets we just computed.
	}
	if stride == 0 {
		stride = offset
	}

	return &Header{Members: members, Stride: stride, headerLen: headerLen}, true
}

// Resolve looks up member by name, returning its absolute offset from
// the start of the value (record 0), its type tag, and the record
// stride. Callers addressing record r beyond the first add r*stride to
// the offset. ok is false, with typ set to Invalid, if member is not a
// field of this header.
func (h *Header) Resolve(member string) (offset int, typ Type, stride int, ok bool) {
	for _, m := range h.Members {
		if m.Name == member {
			return h.headerLen + m.Offset, m.Type, h.Stride, true
		}
	}
	return 0, Invalid, 0, false
}

// RecordCount computes how many records fit in a value of the given
// total length. With includePartial, a trailing partial record (at
// least one byte beyond the last full record) counts as one more.
func (h *Header) RecordCount(valueLen int, includePartial bool) int {
	if h.Stride <= 0 {
		return 0
	}
	payload := valueLen - h.headerLen
	if payload <= 0 {
		return 0
	}
	n := payload / h.Stride
	if includePartial && payload%h.Stride > 0 {
		n++
	}
	return n
}

func validMemberName(name string) bool {
	if len(name) == 0 || len(name) > MaxMemberNameLen {
		return false
	}
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
		default:
			return false
		}
	}
	return true
}
