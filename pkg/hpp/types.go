package hpp

import (
	"github.com/hpp-embedded/hpp/internal/lang"
	"github.com/hpp-embedded/hpp/internal/numeric"
)

// Re-exported for convenience, so callers need not import internal/lang
// or internal/numeric directly.
type (
	Error          = lang.Error
	ErrKind        = lang.ErrKind
	HookFunc       = lang.HookFunc
	PollFunc       = lang.PollFunc
	FloatPrintMode = numeric.FloatPrintMode
)

// Error-kind constants (re-exported from internal/lang).
const (
	EOF                  = lang.EOF
	Timeout              = lang.Timeout
	FatalError           = lang.FatalError
	BreakWithoutWhile    = lang.BreakWithoutWhile
	ContinueWithoutWhile = lang.ContinueWithoutWhile
	UnknownVariable      = lang.UnknownVariable
	BooleanValueExpected = lang.BooleanValueExpected
	SemicolonExpected    = lang.SemicolonExpected
	InvalidOperator      = lang.InvalidOperator
	MissingArgument      = lang.MissingArgument
	DivisionByZero       = lang.DivisionByZero
	UnknownFunctionName  = lang.UnknownFunctionName
	StackOverflow        = lang.StackOverflow
)

// Float-print-mode constants (re-exported from internal/numeric).
const (
	FullPrecision       = numeric.FullPrecision
	IntegerPlusFraction = numeric.IntegerPlusFraction
)
