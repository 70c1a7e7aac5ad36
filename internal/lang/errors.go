package lang

import "fmt"

// ErrKind classifies a return-reason so callers can branch on intent
// rather than text, and carries the numeric code used in the
// "#Error <code> in line <n>..." rendering.
type ErrKind int

const (
	// EOF is not an error: normal end of source.
	EOF ErrKind = 100
	// Timeout is raised when the host poll callback flags expiry.
	Timeout ErrKind = 150

	FatalError ErrKind = 200

	// BreakWithoutWhile and ContinueWithoutWhile share one numeric code;
	// they are distinguished only in the rendered message, not in a
	// separate error number (see DESIGN.md).
	BreakWithoutWhile    ErrKind = 201
	ContinueWithoutWhile ErrKind = 201

	// ClosingBracketExpected, AngleBracketExpected and
	// SquaredBracketExpected are three variants of "unbalanced
	// delimiter" distinguished by message, each with its own code so
	// that UnknownVariable lands on exactly 205 (see DESIGN.md).
	ClosingBracketExpected ErrKind = 202
	AngleBracketExpected   ErrKind = 203
	SquaredBracketExpected ErrKind = 204

	UnknownVariable ErrKind = 205

	// BooleanValueExpected covers both the bare condition case and the
	// &&/|| operand variants, reported identically.
	BooleanValueExpected ErrKind = 206

	SemicolonExpected ErrKind = 207
	InvalidOperator   ErrKind = 208
	MissingArgument   ErrKind = 209
	DivisionByZero    ErrKind = 210

	UnknownFunctionName       ErrKind = 211
	CannotCallMethodOnResult  ErrKind = 212

	// UnknownArrayType (an unrecognized `:type` name) and
	// UnknownMemberType (a missing member, or a value that is not a
	// struct) share a code.
	UnknownArrayType  ErrKind = 213
	UnknownMemberType ErrKind = 213

	OpeningSquaredBracketExpected ErrKind = 214
	StructVarNameTooLong          ErrKind = 215
	StackOverflow                 ErrKind = 216
)

var kindNames = map[ErrKind]string{
	EOF:                           "EOF",
	Timeout:                       "Timeout",
	FatalError:                    "FatalError",
	BreakWithoutWhile:             "BreakWithoutWhile",
	ClosingBracketExpected:        "ClosingBracketExpected",
	AngleBracketExpected:          "AngleBracketExpected",
	SquaredBracketExpected:        "SquaredBracketExpected",
	UnknownVariable:               "UnknownVariable",
	BooleanValueExpected:          "BooleanValueExpected",
	SemicolonExpected:             "SemicolonExpected",
	InvalidOperator:               "InvalidOperator",
	MissingArgument:               "MissingArgument",
	DivisionByZero:                "DivisionByZero",
	UnknownFunctionName:           "UnknownFunctionName",
	CannotCallMethodOnResult:      "CannotCallMethodOnResult",
	UnknownArrayType:              "UnknownArrayType",
	OpeningSquaredBracketExpected: "OpeningSquaredBracketExpected",
	StructVarNameTooLong:          "StructVarNameTooLong",
	StackOverflow:                 "StackOverflow",
}

func (k ErrKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("ErrKind(%d)", int(k))
}

// Error is the interpreter's typed error. Line/Column/Callee are filled
// in once, at the point an error first surfaces, by the frame that
// catches it, and are left alone by every enclosing frame it unwinds
// through afterward.
type Error struct {
	Kind   ErrKind
	Msg    string
	Line   int
	Column int
	Callee string // user-defined function name, if raised inside one
	Err    error  // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Msg, e.Err.Error())
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Render produces the host-visible "#Error <code> in line <n> near
// column <c>[ in '<callee>']" string used when result_key is
// "ReturnWithError" or "ReturnWithDebugInfo".
func (e *Error) Render() string {
	s := fmt.Sprintf("#Error %d in line %d near column %d", int(e.Kind), e.Line, e.Column)
	if e.Callee != "" {
		s += fmt.Sprintf(" in '%s'", e.Callee)
	}
	return s
}

func newError(kind ErrKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
