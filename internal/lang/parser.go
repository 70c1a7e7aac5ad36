package lang

// parser drives one recursive-descent pass over a single source text.
// Each user-defined function invocation gets its own parser over the
// callee's stored code, sharing the call's Context so the shared
// return-reason field and call-depth counters stay coherent across
// the boundary.
type parser struct {
	ctx        *Context
	lx         *lexer
	cur        token
	whileDepth int
}

func newParser(ctx *Context, src string) *parser {
	p := &parser{ctx: ctx, lx: newLexer(src)}
	p.advance()
	return p
}

func (p *parser) advance() { p.cur = p.lx.next() }

func (p *parser) atOp(s string) bool      { return p.cur.kind == tokOp && p.cur.text == s }
func (p *parser) atKeyword(s string) bool { return p.cur.kind == tokKeyword && p.cur.text == s }

// expectOp consumes an expected operator token, raising kind if absent.
func (p *parser) expectOp(s string, kind ErrKind) bool {
	if !p.atOp(s) {
		p.ctx.raise(&Error{Kind: kind, Msg: "expected " + s, Line: p.cur.line, Column: p.cur.column})
		return false
	}
	p.advance()
	return true
}

type parserSnapshot struct {
	lx  lexer
	cur token
}

func (p *parser) snapshot() parserSnapshot { return parserSnapshot{lx: *p.lx, cur: p.cur} }
func (p *parser) restore(s parserSnapshot) { *p.lx = s.lx; p.cur = s.cur }

// runTopLevel executes statements until end of source, used both for the
// outermost entry point and for entering a user-defined function's body.
func (p *parser) runTopLevel() {
	for p.cur.kind != tokEOF && p.ctx.reason == reasonNone {
		p.statement()
		p.ctx.checkPoll()
	}
}

func (p *parser) statement() {
	if p.ctx.reason != reasonNone {
		return
	}
	switch {
	case p.atOp("{"):
		p.advance()
		for !p.atOp("}") && p.cur.kind != tokEOF && p.ctx.reason == reasonNone {
			p.statement()
			p.ctx.checkPoll()
		}
		if p.ctx.reason != reasonNone {
			// Left early by return/break/continue/timeout/error: consume
			// the rest of the block without executing it.
			p.skipExprUntil("}")
			if p.atOp("}") {
				p.advance()
			}
			return
		}
		p.expectOp("}", ClosingBracketExpected)

	case p.atOp(";"):
		p.advance()

	case p.atKeyword("return"):
		p.advance()
		val := p.expr(false)
		if !p.expectOp(";", SemicolonExpected) {
			return
		}
		if p.ctx.reason == reasonNone {
			p.ctx.reason = reasonReturn
			p.ctx.result = val
		}

	case p.atKeyword("break"):
		p.advance()
		if !p.expectOp(";", SemicolonExpected) {
			return
		}
		if p.whileDepth == 0 {
			p.ctx.raise(newError(BreakWithoutWhile, "break outside while"))
			return
		}
		p.ctx.reason = reasonBreak

	case p.atKeyword("continue"):
		p.advance()
		if !p.expectOp(";", SemicolonExpected) {
			return
		}
		if p.whileDepth == 0 {
			p.ctx.raise(newError(ContinueWithoutWhile, "continue outside while"))
			return
		}
		p.ctx.reason = reasonContinue

	case p.atKeyword("if"):
		p.ifStatement()

	case p.atKeyword("while"):
		p.whileStatement()

	default:
		p.expressionStatement()
	}
}

func (p *parser) expressionStatement() {
	p.expr(true)
	p.expectOp(";", SemicolonExpected)
}

func (p *parser) ifStatement() {
	p.advance()
	if !p.expectOp("(", MissingArgument) {
		return
	}
	cond := p.expr(false)
	p.expectOp(")", ClosingBracketExpected)

	if p.ctx.reason != reasonNone {
		p.skipStatement()
		if p.atKeyword("else") {
			p.advance()
			p.skipStatement()
		}
		return
	}
	if cond != "true" && cond != "false" {
		p.ctx.raise(newError(BooleanValueExpected, "if condition must be true or false"))
		p.skipStatement()
		if p.atKeyword("else") {
			p.advance()
			p.skipStatement()
		}
		return
	}

	if cond == "true" {
		p.statement()
		if p.atKeyword("else") {
			p.advance()
			p.skipStatement()
		}
	} else {
		p.skipStatement()
		if p.atKeyword("else") {
			p.advance()
			p.statement()
		}
	}
}

// whileStatement rewinds to the saved condition offset on every iteration
// rather than building an AST. A trailing `else` body, consumed here
// right after the loop's own body in the token stream, runs only when
// the while condition was false on its very first test -- the loop
// body never ran at all -- matching "while(cond) body else body".
func (p *parser) whileStatement() {
	p.advance()
	if !p.expectOp("(", MissingArgument) {
		return
	}
	condSnap := p.snapshot()
	ranOnce := false

	for {
		cond := p.expr(false)
		p.expectOp(")", ClosingBracketExpected)

		if p.ctx.reason != reasonNone {
			p.skipStatement()
			p.skipElse()
			return
		}
		if cond != "true" && cond != "false" {
			p.ctx.raise(newError(BooleanValueExpected, "while condition must be true or false"))
			p.skipStatement()
			p.skipElse()
			return
		}
		if cond == "false" {
			p.skipStatement()
			if p.atKeyword("else") {
				p.advance()
				if ranOnce {
					p.skipStatement()
				} else {
					p.statement()
				}
			}
			return
		}

		ranOnce = true
		p.whileDepth++
		p.statement()
		p.whileDepth--

		switch p.ctx.reason {
		case reasonBreak:
			p.ctx.reason = reasonNone
			p.skipElse()
			return
		case reasonContinue:
			p.ctx.reason = reasonNone
		case reasonReturn, reasonError, reasonTimeout:
			return
		}

		p.ctx.checkPoll()
		if p.ctx.reason == reasonTimeout {
			return
		}
		p.restore(condSnap)
	}
}

// skipElse consumes a trailing `else` body without executing it, for a
// while loop that is ending by a path ("else" is not reachable, or
// already ran at least once) where the else clause does not apply.
func (p *parser) skipElse() {
	if p.atKeyword("else") {
		p.advance()
		p.skipStatement()
	}
}

// skipStatement parses and discards one statement without evaluating
// it, used for the untaken branch of an if -- both branches must still
// be consumed from the token stream.
func (p *parser) skipStatement() {
	switch {
	case p.atOp("{"):
		p.advance()
		depth := 1
		for depth > 0 && p.cur.kind != tokEOF {
			if p.atOp("{") {
				depth++
			} else if p.atOp("}") {
				depth--
				if depth == 0 {
					p.advance()
					return
				}
			}
			p.advance()
		}
	case p.atOp(";"):
		p.advance()
	case p.atKeyword("if"):
		p.advance()
		p.expectOp("(", MissingArgument)
		p.skipExprUntil(")")
		p.expectOp(")", ClosingBracketExpected)
		p.skipStatement()
		if p.atKeyword("else") {
			p.advance()
			p.skipStatement()
		}
	case p.atKeyword("while"):
		p.advance()
		p.expectOp("(", MissingArgument)
		p.skipExprUntil(")")
		p.expectOp(")", ClosingBracketExpected)
		p.skipStatement()
		if p.atKeyword("else") {
			p.advance()
			p.skipStatement()
		}
	case p.atKeyword("return"):
		p.advance()
		p.skipExprUntil(";")
		p.expectOp(";", SemicolonExpected)
	case p.atKeyword("break"), p.atKeyword("continue"):
		p.advance()
		p.expectOp(";", SemicolonExpected)
	default:
		p.skipExprUntil(";")
		p.expectOp(";", SemicolonExpected)
	}
}

// skipExprUntil advances past tokens up to (not including) the next
// top-level occurrence of stop, tracking nested bracket/brace/paren depth.
func (p *parser) skipExprUntil(stop string) {
	depth := 0
	for p.cur.kind != tokEOF {
		if depth == 0 && p.atOp(stop) {
			return
		}
		if p.cur.kind == tokOp {
			switch p.cur.text {
			case "(", "[", "{":
				depth++
			case ")", "]", "}":
				if depth == 0 {
					return
				}
				depth--
			}
		}
		p.advance()
	}
}
