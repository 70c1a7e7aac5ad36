package lang

import (
	"github.com/hpp-embedded/hpp/internal/structlayout"
)

// lvalue is a resolved assignment/read target: either a whole store entry
// addressed by key, or a scalar window inside a struct record addressed by
// (key, byte offset, type). Designator resolution produces one of these
// before an assignment or a bare-name read is carried out.
type lvalue struct {
	key    string
	scalar bool // true when offset/typ/stride describe a struct member window
	offset int
	typ    structlayout.Type
	stride int
	record int // record index, for growth accounting
}

// readValue returns the textual value an lvalue currently designates.
func (c *Context) readValue(lv lvalue) string {
	if !lv.scalar {
		v, ok := c.Store.Get(lv.key)
		if !ok {
			return ""
		}
		return string(v)
	}
	raw, ok := c.Store.Get(lv.key)
	if !ok {
		return ""
	}
	end := lv.offset + structlayout.Sizeof(lv.typ)
	if end > len(raw) {
		return readScalar(nil, lv.typ)
	}
	return readScalar(raw[lv.offset:end], lv.typ)
}

// writeValue stores text at the location lv designates, growing the
// backing buffer when a struct member write lands past the current
// length.
func (c *Context) writeValue(lv lvalue, text string) {
	if !lv.scalar {
		c.Store.PutString(lv.key, text)
		return
	}
	width := structlayout.Sizeof(lv.typ)
	need := lv.offset + width
	size := need
	if cur, ok := c.Store.Get(lv.key); ok && len(cur) > size {
		size = len(cur)
	}
	raw := c.Store.Alloc(lv.key, size, true)
	if len(raw) < need {
		return
	}
	writeScalar(raw[lv.offset:need], lv.typ, text)
}

// resolveDesignator turns a rawName plus an optional chain of trailing
// `.member`/`::extension`/`[index]` accessors into an lvalue. accessors is
// the already-split trailing accessor chain as produced by the parser.
func (c *Context) resolveDesignator(base rawName, accessors []accessor) lvalue {
	key := c.qualify(base)
	lv := lvalue{key: key}
	for _, a := range accessors {
		if c.reason == reasonError {
			return lv
		}
		switch a.kind {
		case accessExtend:
			lv.key = lv.key + "::" + a.text
		case accessMember:
			lv = c.resolveMember(lv, a.text)
		case accessIndex:
			lv = c.resolveIndex(lv, a.index, a.elemType, a.byteWise)
		}
	}
	return lv
}

// accessorKind distinguishes the trailing designator suffixes.
type accessorKind int

const (
	accessMember accessorKind = iota
	accessExtend
	accessIndex
)

type accessor struct {
	kind     accessorKind
	text     string // member name, or extension suffix
	index    int    // element index for accessIndex
	elemType string // explicit ":type" override for accessIndex, "" if none
	byteWise bool   // trailing '*' on an indexed access: offset is raw bytes
}

// resolveMember follows one `.member` step against a struct header stored
// at lv.key (or, if lv is already a scalar ref-slot, follows the
// redirection stored there first).
func (c *Context) resolveMember(lv lvalue, member string) lvalue {
	if lv.scalar && lv.typ.IsRef() {
		lv = c.followRefSlot(lv)
	}
	raw, ok := c.Store.Get(lv.key)
	if !ok {
		c.raise(newError(UnknownVariable, "unknown variable"))
		return lv
	}
	hdr, ok := structlayout.ParseHeader(raw)
	if !ok {
		c.raise(newError(UnknownMemberType, "not a struct"))
		return lv
	}
	offset, typ, stride, ok := hdr.Resolve(member)
	if !ok {
		c.raise(newError(UnknownMemberType, "unknown member %q", member))
		return lv
	}
	return lvalue{key: lv.key, scalar: true, offset: offset, typ: typ, stride: stride}
}

// resolveIndex follows one `[i]`, `:type[i]` or `:type*[i]` step.
// elemType selects the scalar type read or written at the index and
// makes the index step by that type's width; byteWise (or no elemType)
// treats the index as a raw byte offset instead of an element multiple.
func (c *Context) resolveIndex(lv lvalue, index int, elemType string, byteWise bool) lvalue {
	if lv.scalar && lv.typ.IsRef() {
		lv = c.followRefSlot(lv)
	}

	// Without an explicit :type prefix, stride defaults to 1 and type
	// defaults to uint8.
	typ := structlayout.Uint8
	if elemType != "" {
		var ok bool
		typ, ok = structlayout.ParseTypeName(elemType)
		if !ok {
			c.raise(newError(UnknownArrayType, "unknown array type %q", elemType))
			return lv
		}
	}
	width := structlayout.Sizeof(typ)

	// A typed array view over a struct-typed value starts past the
	// header, at the same base record-0 resolves to (scenario: S is a
	// struct and S:int16[0] addresses the same byte range as its first
	// int16 member). A plain byte buffer has no header to skip.
	base := 0
	if raw, ok := c.Store.Get(lv.key); ok {
		if hdr, ok := structlayout.ParseHeader(raw); ok {
			base = hdr.HeaderLen()
		}
	}

	var offset int
	if byteWise || elemType == "" {
		offset = base + index
	} else {
		offset = base + index*width
	}
	return lvalue{key: lv.key, scalar: true, offset: offset, typ: typ, stride: width, record: index}
}

// followRefSlot reads the name stored in a VarRef/ArrRef/StrRef scalar
// window and redirects lv to designate that key directly. An unset slot
// gets a synthesized name stored into it on the first access through
// it, whether that access is a read or a write; an unset slot never
// yields the empty key.
func (c *Context) followRefSlot(lv lvalue) lvalue {
	raw, ok := c.Store.Get(lv.key)
	if !ok {
		return lv
	}
	end := lv.offset + structlayout.Sizeof(lv.typ)
	if end > len(raw) {
		return lv
	}
	name := structlayout.ReadRefName(raw[lv.offset:end])
	if name == "" {
		name, err := structlayout.SynthesizeRefName(lv.key, lv.offset)
		if err != nil {
			c.raise(newError(StructVarNameTooLong, "%s", err.Error()))
			return lv
		}
		fresh := c.Store.Alloc(lv.key, end, true)
		if len(fresh) >= end {
			structlayout.WriteRefName(fresh[lv.offset:end], name)
		}
		return lvalue{key: name}
	}
	return lvalue{key: name}
}

