package structlayout

import (
	"bytes"
	"fmt"
)

// ErrRefNameTooLong is returned by WriteRefName when the synthesized or
// supplied name would not fit in the fixed ref-slot width.
var ErrRefNameTooLong = fmt.Errorf("structlayout: ref name exceeds %d bytes", MaxRefNameLen)

// ReadRefName decodes the null-terminated name stored in a var/array/
// string member's slot. An empty return means the slot has never been
// written: the interpreter must synthesize a name on first write rather
// than treat the empty string as a real target key.
func ReadRefName(slot []byte) string {
	term := bytes.IndexByte(slot, 0)
	if term < 0 {
		term = len(slot)
	}
	return string(slot[:term])
}

// WriteRefName encodes name into slot, a fixed MaxRefNameLen+1-byte
// buffer, null-terminating and zero-padding the remainder. It fails if
// name (including its terminator) does not fit.
func WriteRefName(slot []byte, name string) error {
	if len(name) > MaxRefNameLen {
		return ErrRefNameTooLong
	}
	for i := range slot {
		slot[i] = 0
	}
	copy(slot, name)
	return nil
}

// SynthesizeRefName builds the default name a var/array/string member's
// slot is assigned the first time it is written with no name already
// present: "<parentKey>.<offsetInRecord>". It returns an error if the
// synthesized name would overrun the ref-slot width, which the caller
// should surface as StructVarNameTooLong.
func SynthesizeRefName(parentKey string, offsetInRecord int) (string, error) {
	name := fmt.Sprintf("%s.%d", parentKey, offsetInRecord)
	if len(name) > MaxRefNameLen {
		return "", ErrRefNameTooLong
	}
	return name, nil
}
