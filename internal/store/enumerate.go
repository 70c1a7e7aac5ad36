package store

import (
	"fmt"
	"strings"
)

// enumMode selects which subset of matches GetAll renders, decoded from
// a leading backslash escape in the format string.
type enumMode int

const (
	modeAll       enumMode = iota // plain enumeration, no backslash escape
	modeEndNodes                  // "\e": keys with no further '.' past prefix
	modeRootNodes                 // "\r": unique first dotted segment past prefix
	modeBoth                      // "\b": end nodes and root nodes in one pass
)

// GetAll enumerates entries whose key starts with prefix and renders them
// through a printf-like format string: the first "%s" stands for the key,
// an optional second "%s" for the value. The rendering honors the leading
// escape sequences "\d", "\e", "\r", "\b".
//
// GetAll returns the complete rendered string directly rather than a
// would-be length for the caller to size a buffer against: Go strings
// have no fixed capacity to negotiate around.
func (s *Store) GetAll(prefix, format string) (string, error) {
	mode, skipFirst, rest := parseFormatEscape(format)

	var out strings.Builder
	first := true
	seenRoots := make(map[string]struct{})

	for el := s.order.Front(); el != nil; el = el.Next() {
		e := el.Value.(*entry)
		if !strings.HasPrefix(e.key, prefix) {
			continue
		}
		suffix := e.key[len(prefix):]

		switch mode {
		case modeEndNodes:
			if strings.Contains(suffix, ".") {
				continue
			}
			if err := renderKV(&out, rest, e.key, e.value[:e.logicalLen()], first, skipFirst); err != nil {
				return "", err
			}
			first = false

		case modeRootNodes:
			root, ok := firstSegment(suffix)
			if !ok {
				continue
			}
			if _, dup := seenRoots[root]; dup {
				continue
			}
			seenRoots[root] = struct{}{}
			// Root-node mode strips the trailing '.'; contrast with
			// modeBoth, which retains it.
			if err := renderKV(&out, rest, root, nil, first, skipFirst); err != nil {
				return "", err
			}
			first = false

		case modeBoth:
			if !strings.Contains(suffix, ".") {
				if err := renderKV(&out, rest, e.key, e.value[:e.logicalLen()], first, skipFirst); err != nil {
					return "", err
				}
				first = false
				continue
			}
			root, ok := firstSegment(suffix)
			if !ok {
				continue
			}
			if _, dup := seenRoots[root]; dup {
				continue
			}
			seenRoots[root] = struct{}{}
			if err := renderKV(&out, rest, root+".", nil, first, skipFirst); err != nil {
				return "", err
			}
			first = false

		default:
			if err := renderKV(&out, rest, e.key, e.value[:e.logicalLen()], first, skipFirst); err != nil {
				return "", err
			}
			first = false
		}
	}

	return out.String(), nil
}

// parseFormatEscape strips a leading "\d"/"\e"/"\r"/"\b" escape from
// format, returning the enumeration mode, the number of leading characters
// to skip on the first rendered item, and the remaining printf-style
// format string.
func parseFormatEscape(format string) (mode enumMode, skipFirst int, rest string) {
	if len(format) < 2 || format[0] != '\\' {
		return modeAll, 0, format
	}
	switch c := format[1]; {
	case c >= '0' && c <= '9':
		return modeAll, int(c - '0'), format[2:]
	case c == 'e':
		return modeEndNodes, 1, format[2:]
	case c == 'r':
		return modeRootNodes, 1, format[2:]
	case c == 'b':
		return modeBoth, 1, format[2:]
	default:
		return modeAll, 0, format
	}
}

// firstSegment returns the first '.'-delimited segment of suffix. A
// suffix with no '.' has no root node (it is itself an end node).
func firstSegment(suffix string) (string, bool) {
	i := strings.IndexByte(suffix, '.')
	if i < 0 {
		return "", false
	}
	return suffix[:i], true
}

// renderKV applies the printf-style format to one (key, value) pair,
// substituting the first "%s" with key and an optional second "%s" with
// value. On the first rendered item, skipFirst leading bytes of the
// rendered text are dropped (used to suppress a leading list separator).
func renderKV(out *strings.Builder, format, key string, value []byte, first bool, skipFirst int) error {
	var rendered string
	switch strings.Count(format, "%s") {
	case 0:
		rendered = format
	case 1:
		rendered = fmt.Sprintf(format, key)
	default:
		rendered = fmt.Sprintf(format, key, string(value))
	}
	if first && skipFirst > 0 && skipFirst <= len(rendered) {
		rendered = rendered[skipFirst:]
	}
	out.WriteString(rendered)
	return nil
}
