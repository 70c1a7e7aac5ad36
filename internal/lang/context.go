package lang

import (
	"github.com/hpp-embedded/hpp/internal/numeric"
	"github.com/hpp-embedded/hpp/internal/store"
)

// reason is the single-valued control-transfer field every recursive
// evaluator call inspects after delegating to a sub-evaluator.
type reason int

const (
	reasonNone reason = iota
	reasonBreak
	reasonContinue
	reasonReturn
	reasonError
	reasonTimeout
)

// HookFunc is a host-provided function library resolver.
// paramNameTemplate ends in the digit '1'; the hook mutates that final
// byte between '1' and '9' to walk positional parameters through the
// store. It returns the put result (non-nil) on success, or nil to
// mean "not my function" so the next hook may try.
type HookFunc func(s *store.Store, name, paramNameTemplate, resultKey string) []byte

// PollFunc is the host poll callback.
// phase is "begin", "end", or "poll". Returning true from a "poll" call
// requests an immediate Timeout abort; the return value of "begin" and
// "end" calls is ignored.
type PollFunc func(phase string) (timeout bool)

const maxHooks = 5

const pollEvery = 25 // sub-evaluations between Poll callbacks

// maxCallDepth bounds the nesting of user-defined function calls, so a
// runaway recursive call chain fails with StackOverflow instead of
// exhausting the goroutine stack.
const maxCallDepth = 200

// Context is the interpreter's transient parse-context: the store it
// runs against, the two scope-depth counters, the single return-reason
// field, and the host-supplied collaborators (hooks, poll, output sink).
type Context struct {
	Store *store.Store

	callDepth     int
	funcCallDepth int

	reason reason
	result string // carries the return expression's value when reason == reasonReturn
	err    *Error

	hooks     []HookFunc
	poll      PollFunc
	pollTicks int
	writeln   func(string)
	floatMode numeric.FloatPrintMode

	// curLine/curCol track the source position of the designator or
	// operator currently being resolved, so a Context-level raise (which
	// has no access to the parser's token stream) can stamp an error's
	// Line/Column the first time it surfaces.
	curLine, curCol int
}

// trackPos records the position of the token the parser is about to
// resolve, for use by a subsequent raise.
func (c *Context) trackPos(line, col int) {
	c.curLine, c.curCol = line, col
}

// NewContext builds a fresh parse-context over s. writeln receives the
// argument of every `writeln(...)` call; a nil writeln discards output.
func NewContext(s *store.Store, writeln func(string)) *Context {
	if writeln == nil {
		writeln = func(string) {}
	}
	return &Context{Store: s, writeln: writeln, floatMode: numeric.FullPrecision, curLine: 1, curCol: 1}
}

// SetFloatPrintMode selects the process-wide float formatting mode.
// pkg/hpp re-exports FloatPrintMode from internal/numeric so its callers
// don't need to import that package directly.
func (c *Context) SetFloatPrintMode(mode numeric.FloatPrintMode) { c.floatMode = mode }

// AddExternalFunctionLibrary registers one more host function resolver,
// tried in registration order after built-ins and before user-defined
// functions. Returns false once maxHooks are registered.
func (c *Context) AddExternalFunctionLibrary(fn HookFunc) bool {
	if len(c.hooks) >= maxHooks {
		return false
	}
	c.hooks = append(c.hooks, fn)
	return true
}

// SetPollFunction installs fn as the poll callback, returning the
// previous one.
func (c *Context) SetPollFunction(fn PollFunc) PollFunc {
	prev := c.poll
	c.poll = fn
	return prev
}

// LastError returns the error caught by the most recent Run, or nil if
// that run completed without one.
func (c *Context) LastError() *Error { return c.err }

// localPrefix renders the current function frame's %04x: prefix.
func (c *Context) localPrefix() string {
	return hex4(c.funcCallDepth)
}

func hex4(v int) string {
	const digits = "0123456789abcdef"
	b := [4]byte{'0', '0', '0', '0'}
	for i := 3; i >= 0 && v > 0; i-- {
		b[i] = digits[v&0xF]
		v >>= 4
	}
	return string(b[:])
}

// checkPoll runs the poll callback every pollEvery sub-evaluations.
// It may set reasonTimeout.
func (c *Context) checkPoll() {
	if c.poll == nil {
		return
	}
	c.pollTicks++
	if c.pollTicks%pollEvery != 0 {
		return
	}
	if c.poll("poll") {
		c.reason = reasonTimeout
	}
}

// raise records err as the active error, catching line/column/callee
// information the first time it surfaces. Subsequent calls while an
// error is already pending are no-ops, so enclosing frames unwinding
// afterward don't overwrite the record made where it first surfaced.
func (c *Context) raise(err *Error) {
	if c.reason == reasonError {
		return
	}
	c.reason = reasonError
	if err.Line == 0 && err.Column == 0 {
		err.Line, err.Column = c.curLine, c.curCol
	}
	c.err = err
}
