package lang

import (
	"strconv"
	"strings"

	"github.com/hpp-embedded/hpp/internal/numeric"
	"github.com/hpp-embedded/hpp/internal/structlayout"
)

// finishCall parses a call's argument list and dispatches it through the
// built-in / hook / user-defined resolution order.
func (p *parser) finishCall(name string) string {
	args := p.parseArgList()
	if p.ctx.reason == reasonError {
		return ""
	}
	return p.callFunction(name, args)
}

func (p *parser) callFunction(name string, args []string) string {
	if v, ok := callBuiltin(p.ctx, args, name); ok {
		return v
	}

	for _, hook := range p.ctx.hooks {
		paramTemplate := paramKey(p.ctx.callDepth, 1)
		for i, a := range args {
			if i >= 9 {
				break
			}
			p.ctx.Store.PutString(paramKey(p.ctx.callDepth, i+1), a)
		}
		resultKey := paramKey(p.ctx.callDepth, 0) + "hookresult"
		if v := hook(p.ctx.Store, name, paramTemplate, resultKey); v != nil {
			return string(v)
		}
	}

	code, ok := p.lookupFunctionCode(name)
	if !ok {
		p.ctx.raise(newError(UnknownFunctionName, "unknown function %q", name))
		return ""
	}
	return p.invokeUserFunction(name, code, args)
}

// lookupFunctionCode finds the store entry holding a user-defined
// function's body, trying the literal name first, then the current
// frame's local-prefixed spelling.
func (p *parser) lookupFunctionCode(name string) (string, bool) {
	if code, ok := p.ctx.Store.Get(name); ok {
		return string(code), true
	}
	qualified := p.ctx.qualify(rawName{text: name})
	if qualified != name {
		if code, ok := p.ctx.Store.Get(qualified); ok {
			return string(code), true
		}
	}
	return "", false
}

// invokeUserFunction enters a new frame over the callee's stored code
// text: a fresh parser with its own lexer position, sharing the same
// Context so call_depth/function_call_depth/reason stay coherent across
// the boundary.
func (p *parser) invokeUserFunction(name, code string, args []string) string {
	callerDepth := p.ctx.callDepth
	p.ctx.callDepth++
	frameDepth := p.ctx.callDepth
	if frameDepth >= maxCallDepth {
		p.ctx.raise(newError(StackOverflow, "call depth exceeded"))
		p.ctx.callDepth = callerDepth
		return ""
	}

	for i, a := range args {
		if i >= 9 {
			break
		}
		p.ctx.Store.PutString(paramKey(frameDepth, i+1), a)
	}

	savedFuncDepth := p.ctx.funcCallDepth
	p.ctx.funcCallDepth = frameDepth

	sub := newParser(p.ctx, code)
	sub.runTopLevel()

	switch p.ctx.reason {
	case reasonReturn:
		p.ctx.reason = reasonNone
	case reasonError:
		if p.ctx.err != nil && p.ctx.err.Callee == "" {
			p.ctx.err.Callee = name
		}
	}
	result := p.ctx.result

	p.ctx.Store.DeleteAll(hex4(frameDepth) + ":")
	p.ctx.funcCallDepth = savedFuncDepth
	p.ctx.callDepth = callerDepth
	return result
}

// callMethod dispatches obj.method(args...) against the store entry at
// objKey.
func (c *Context) callMethod(objKey, method string, args []string) string {
	switch method {
	case "len":
		v, ok := c.Store.Get(objKey)
		if !ok {
			return "-1"
		}
		return strconv.Itoa(len(v))

	case "count":
		raw, ok := c.Store.Get(objKey)
		if !ok {
			return "0"
		}
		hdr, ok := structlayout.ParseHeader(raw)
		if !ok {
			c.raise(newError(UnknownMemberType, "not a struct"))
			return ""
		}
		return strconv.Itoa(hdr.RecordCount(len(raw), true))

	case "typeof":
		if len(args) < 1 {
			c.raise(newError(MissingArgument, "typeof requires a member name"))
			return ""
		}
		raw, ok := c.Store.Get(objKey)
		if !ok {
			return "unvalid"
		}
		hdr, ok := structlayout.ParseHeader(raw)
		if !ok {
			return "unvalid"
		}
		_, typ, _, ok := hdr.Resolve(args[0])
		if !ok {
			return "unvalid"
		}
		return typ.Name()

	case "vars_count":
		return strconv.Itoa(c.Store.Count(objKey+".", true))

	case "vars":
		return strings.Join(c.childNames(objKey), ",")

	case "roots":
		return strings.Join(c.childRoots(objKey), ",")

	case "alloc":
		if len(args) < 1 {
			c.raise(newError(MissingArgument, "alloc requires a size"))
			return ""
		}
		c.Store.Alloc(objKey, numeric.AtoI(args[0]), true)
		return ""

	case "realloc":
		if len(args) < 1 {
			c.raise(newError(MissingArgument, "realloc requires a size"))
			return ""
		}
		c.Store.Alloc(objKey, numeric.AtoI(args[0]), false)
		return ""

	case "replace":
		if len(args) < 2 {
			c.raise(newError(MissingArgument, "replace requires offset and source"))
			return ""
		}
		i := numeric.AtoI(args[0])
		src := args[1]
		raw, _ := c.Store.Get(objKey)
		need := i + len(src)
		total := need
		if len(raw) > total {
			total = len(raw)
		}
		buf := c.Store.Alloc(objKey, total, true)
		for k := len(raw); k < i && k < len(buf); k++ {
			buf[k] = ' '
		}
		if need <= len(buf) {
			copy(buf[i:need], src)
		}
		return ""

	case "item":
		if len(args) < 1 {
			c.raise(newError(MissingArgument, "item requires an index"))
			return ""
		}
		idx := numeric.AtoI(args[0])
		raw, ok := c.Store.Get(objKey)
		if !ok {
			return ""
		}
		parts := strings.Split(string(raw), ",")
		if idx < 0 || idx >= len(parts) {
			return ""
		}
		return parts[idx]

	case "find":
		if len(args) < 1 {
			c.raise(newError(MissingArgument, "find requires a needle"))
			return ""
		}
		raw, ok := c.Store.Get(objKey)
		if !ok {
			return "-1"
		}
		return strconv.Itoa(strings.Index(string(raw), args[0]))

	case "sub":
		if len(args) < 1 {
			c.raise(newError(MissingArgument, "sub requires a start index"))
			return ""
		}
		raw, ok := c.Store.Get(objKey)
		if !ok {
			return ""
		}
		i := numeric.AtoI(args[0])
		if i < 0 || i > len(raw) {
			return ""
		}
		n := len(raw) - i
		if len(args) >= 2 {
			n = numeric.AtoI(args[1])
			if i+n > len(raw) {
				n = len(raw) - i
			}
		}
		if n < 0 {
			n = 0
		}
		return string(raw[i : i+n])

	default:
		c.raise(newError(CannotCallMethodOnResult, "unknown method %q", method))
		return ""
	}
}

// childNames lists end-node children of prefix+".".
func (c *Context) childNames(prefix string) []string {
	full := prefix + "."
	var out []string
	for _, e := range c.Store.Entries() {
		if !strings.HasPrefix(e.Key, full) {
			continue
		}
		if strings.Contains(e.Key[len(full):], ".") {
			continue
		}
		out = append(out, e.Key)
	}
	return out
}

// childRoots lists unique first-segment children of prefix+".", using a
// Go map to dedup in O(n) rather than rescanning already-emitted output.
func (c *Context) childRoots(prefix string) []string {
	full := prefix + "."
	seen := map[string]bool{}
	var out []string
	for _, e := range c.Store.Entries() {
		if !strings.HasPrefix(e.Key, full) {
			continue
		}
		rest := e.Key[len(full):]
		root := rest
		if i := strings.IndexByte(rest, '.'); i >= 0 {
			root = rest[:i]
		}
		if !seen[root] {
			seen[root] = true
			out = append(out, root)
		}
	}
	return out
}
