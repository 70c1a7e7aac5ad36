package lang

import "github.com/hpp-embedded/hpp/internal/numeric"

// niladicMethods take no argument list and so are recognized as a method
// dispatch by name alone, with no following `(`: len, count, vars_count,
// vars, roots are written without parens.
var niladicMethods = map[string]bool{
	"len": true, "count": true, "vars_count": true, "vars": true, "roots": true,
}

// argMethods require an explicit argument list and so are only recognized
// as a method dispatch when the name is immediately followed by `(`;
// otherwise the same spelling could be an ordinary struct member name.
var argMethods = map[string]bool{
	"typeof": true, "alloc": true, "realloc": true,
	"replace": true, "item": true, "find": true, "sub": true,
}

// designatorOrCall parses one designator (optional &/? prefix, a base
// name, and a chain of .member/::extend/[index] accessors) or a bare
// function call, and evaluates it.
func (p *parser) designatorOrCall(allowAssign bool) string {
	p.ctx.trackPos(p.cur.line, p.cur.column)
	refPrefix := false
	existDefault := false
	if p.atOp("&") {
		refPrefix = true
		p.advance()
	}
	if p.atOp("?") {
		existDefault = true
		p.advance()
	}

	var text string
	var dynamic bool
	switch {
	case p.cur.kind == tokIdent:
		text = p.cur.text
		p.advance()
	case p.atOp("<"):
		p.advance()
		// Parsed below the comparison level so the closing '>' is not
		// taken as a greater-than operator.
		text = p.exprConcat(false)
		if !p.expectOp(">", AngleBracketExpected) {
			return ""
		}
		dynamic = true
	default:
		p.ctx.raise(newError(InvalidOperator, "expected identifier"))
		return ""
	}

	if !refPrefix && p.atOp("(") {
		return p.finishCall(text)
	}

	accessors, isMethod, methodName := p.scanAccessorChain()
	if p.ctx.reason == reasonError {
		return ""
	}

	base := rawName{text: text, dynamic: dynamic}

	if isMethod {
		return p.dispatchMethod(base, accessors, methodName)
	}

	if existDefault {
		key := p.ctx.qualify(base)
		if _, ok := p.ctx.Store.Get(key); !ok {
			p.ctx.Store.PutString(key, "")
		}
	}

	full := p.ctx.resolveDesignator(base, accessors)
	if p.ctx.reason == reasonError {
		return ""
	}

	if refPrefix {
		return full.key
	}

	if allowAssign && p.atOp("=") {
		p.advance()
		rhs := p.expr(false)
		if p.ctx.reason == reasonError {
			return ""
		}
		p.ctx.writeValue(full, rhs)
		return rhs
	}

	if !full.scalar && !existDefault && len(accessors) == 0 {
		if _, ok := p.ctx.Store.Get(full.key); !ok {
			p.ctx.raise(newError(UnknownVariable, "unknown variable %q", full.key))
			return ""
		}
	}

	if p.atOp("++") || p.atOp("--") {
		op := p.cur.text
		p.advance()
		old := p.ctx.readValue(full)
		n := numeric.AtoI(old)
		if op == "++" {
			n++
		} else {
			n--
		}
		p.ctx.writeValue(full, numeric.I2A(n))
		return old
	}

	return p.ctx.readValue(full)
}

// scanAccessorChain consumes the trailing .member / ::extend / [index] /
// :type[index] / :type*[index] suffixes of a designator. It stops and
// reports a method call as soon as a dotted segment names one of
// niladicMethods, or one of argMethods immediately followed by `(`.
func (p *parser) scanAccessorChain() (accessors []accessor, isMethod bool, methodName string) {
	for {
		switch {
		case p.atOp("."):
			p.advance()
			if p.cur.kind != tokIdent {
				p.ctx.raise(newError(InvalidOperator, "expected member name"))
				return accessors, false, ""
			}
			name := p.cur.text
			p.advance()
			if niladicMethods[name] || (argMethods[name] && p.atOp("(")) {
				return accessors, true, name
			}
			accessors = append(accessors, accessor{kind: accessMember, text: name})

		case p.atOp("::"):
			p.advance()
			if p.cur.kind != tokIdent {
				p.ctx.raise(newError(CannotCallMethodOnResult, "expected extension name"))
				return accessors, false, ""
			}
			accessors = append(accessors, accessor{kind: accessExtend, text: p.cur.text})
			p.advance()

		case p.atOp(":"):
			p.advance()
			if p.cur.kind != tokIdent {
				p.ctx.raise(newError(UnknownArrayType, "expected array type name"))
				return accessors, false, ""
			}
			typeName := p.cur.text
			p.advance()
			byteWise := false
			if p.atOp("*") {
				byteWise = true
				p.advance()
			}
			if !p.expectOp("[", OpeningSquaredBracketExpected) {
				return accessors, false, ""
			}
			idxText := p.expr(false)
			if !p.expectOp("]", SquaredBracketExpected) {
				return accessors, false, ""
			}
			accessors = append(accessors, accessor{kind: accessIndex, index: numeric.AtoI(idxText), elemType: typeName, byteWise: byteWise})

		case p.atOp("["):
			p.advance()
			idxText := p.expr(false)
			if !p.expectOp("]", SquaredBracketExpected) {
				return accessors, false, ""
			}
			accessors = append(accessors, accessor{kind: accessIndex, index: numeric.AtoI(idxText)})

		default:
			return accessors, false, ""
		}
	}
}

// parseArgList parses a parenthesized, comma-separated argument list.
func (p *parser) parseArgList() []string {
	if !p.expectOp("(", MissingArgument) {
		return nil
	}
	var args []string
	if p.atOp(")") {
		p.advance()
		return args
	}
	for {
		v := p.expr(false)
		if p.ctx.reason == reasonError {
			return args
		}
		args = append(args, v)
		if p.atOp(",") {
			p.advance()
			continue
		}
		break
	}
	p.expectOp(")", ClosingBracketExpected)
	return args
}

func (p *parser) dispatchMethod(base rawName, accessors []accessor, method string) string {
	obj := p.ctx.resolveDesignator(base, accessors)
	if p.ctx.reason == reasonError {
		return ""
	}
	if obj.scalar && obj.typ.IsRef() {
		obj = p.ctx.followRefSlot(obj)
	}
	var args []string
	if p.atOp("(") {
		args = p.parseArgList()
		if p.ctx.reason == reasonError {
			return ""
		}
	}
	return p.ctx.callMethod(obj.key, method, args)
}
