// Package hpp is the public façade over the embeddable scripting engine:
// a variable store, a recursive-descent interpreter, and a struct-layout
// overlay, bundled behind one Engine type.
//
// Quick start:
//
//	e := hpp.New(
//	    hpp.WithHook(myHooks),
//	    hpp.WithPoll(hpp.TimeoutAfter(50*time.Millisecond)),
//	)
//
//	out, ok := e.Run(`a = 1; b = 2; return a + b;`, "")
//	if !ok {
//	    // e.LastError() carries the typed failure.
//	}
//
// A script can be loaded from an arbitrary byte source with ingested
// encoding normalization:
//
//	out, ok, err := e.RunSource(rawBytes, "UTF-16LE", "ReturnWithDebugInfo")
package hpp
