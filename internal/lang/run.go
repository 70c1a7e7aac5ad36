package lang

// Run parses and executes source against ctx's store. The poll
// callback, if any, brackets the whole call with "begin"/"end" phases.
//
// resultKey == "ReturnWithError" or "ReturnWithDebugInfo" materializes any
// error as the rendered "#Error ..." string under resultKey and returns it
// instead of ok=false. A normal return value is also stored under
// resultKey when resultKey is non-empty.
func Run(ctx *Context, source, resultKey string) (value string, ok bool) {
	ctx.reason = reasonNone
	ctx.err = nil
	ctx.result = ""
	ctx.pollTicks = 0
	ctx.callDepth = 0
	ctx.funcCallDepth = 0

	if ctx.poll != nil {
		ctx.poll("begin")
	}

	p := newParser(ctx, source)
	p.runTopLevel()

	if ctx.poll != nil {
		ctx.poll("end")
	}

	switch ctx.reason {
	case reasonError:
		rendered := ctx.err.Render()
		if resultKey == "ReturnWithError" || resultKey == "ReturnWithDebugInfo" {
			ctx.Store.PutString(resultKey, rendered)
			return rendered, true
		}
		return "", false

	case reasonTimeout:
		return "", false

	case reasonReturn:
		if resultKey != "" {
			ctx.Store.PutString(resultKey, ctx.result)
		}
		return ctx.result, true

	default:
		if resultKey != "" {
			ctx.Store.PutString(resultKey, "")
		}
		return "", true
	}
}
