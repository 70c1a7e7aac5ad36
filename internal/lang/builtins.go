package lang

import (
	"math"
	"strconv"

	"github.com/hpp-embedded/hpp/internal/numeric"
	"github.com/hpp-embedded/hpp/internal/structlayout"
)

// callBuiltin implements the minimum built-in function set. ok is false
// when name is not a recognized built-in, so the caller can fall
// through to hooks and user-defined functions.
func callBuiltin(c *Context, args []string, name string) (string, bool) {
	switch name {
	case "abs":
		if len(args) < 1 {
			c.raise(newError(MissingArgument, "abs requires 1 argument"))
			return "", true
		}
		v := numeric.AtoF(args[0])
		return numeric.FormatFloat(math.Abs(v), c.floatMode), true

	case "int":
		if len(args) < 1 {
			c.raise(newError(MissingArgument, "int requires 1 argument"))
			return "", true
		}
		v := numeric.AtoF(args[0])
		return strconv.FormatInt(int64(v), 10), true

	case "val":
		if len(args) < 1 {
			c.raise(newError(MissingArgument, "val requires 1 argument"))
			return "", true
		}
		return numeric.FormatFloat(numeric.AtoF(args[0]), c.floatMode), true

	case "sin":
		if len(args) < 1 {
			c.raise(newError(MissingArgument, "sin requires 1 argument"))
			return "", true
		}
		return numeric.FormatFloat(math.Sin(numeric.AtoF(args[0])), c.floatMode), true

	case "cos":
		if len(args) < 1 {
			c.raise(newError(MissingArgument, "cos requires 1 argument"))
			return "", true
		}
		return numeric.FormatFloat(math.Cos(numeric.AtoF(args[0])), c.floatMode), true

	case "tan":
		if len(args) < 1 {
			c.raise(newError(MissingArgument, "tan requires 1 argument"))
			return "", true
		}
		return numeric.FormatFloat(math.Tan(numeric.AtoF(args[0])), c.floatMode), true

	case "writeln":
		if len(args) < 1 {
			c.writeln("")
			return "", true
		}
		c.writeln(args[0])
		return "", true

	case "struct":
		if len(args) < 1 {
			c.raise(newError(MissingArgument, "struct requires a type definition"))
			return "", true
		}
		raw, _, err := structlayout.BuildHeader(args[0])
		if err != nil {
			c.raise(newError(FatalError, "%s", err.Error()))
			return "", true
		}
		return string(raw), true
	}
	return "", false
}
