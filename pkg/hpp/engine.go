package hpp

import (
	"time"

	"github.com/hpp-embedded/hpp/internal/lang"
	"github.com/hpp-embedded/hpp/internal/numeric"
	"github.com/hpp-embedded/hpp/internal/scripttext"
	"github.com/hpp-embedded/hpp/internal/store"
)

// Engine bundles one variable store with the interpreter context that
// runs scripts against it.
type Engine struct {
	store *store.Store
	ctx   *lang.Context
}

// Option configures a new Engine, applied at construction since an
// Engine's collaborators are fixed for its lifetime.
type Option func(*Engine)

// WithWriteln installs the sink that receives the argument of every
// writeln(...) call. The default discards output.
func WithWriteln(fn func(string)) Option {
	return func(e *Engine) { e.ctx = lang.NewContext(e.store, fn) }
}

// WithHook registers an external function library callback. Up to 5
// hooks may be registered; additional ones are ignored.
func WithHook(fn lang.HookFunc) Option {
	return func(e *Engine) { e.ctx.AddExternalFunctionLibrary(fn) }
}

// WithPoll installs the host poll callback.
func WithPoll(fn lang.PollFunc) Option {
	return func(e *Engine) { e.ctx.SetPollFunction(fn) }
}

// WithFloatPrintMode selects how the built-in float formatter and
// arithmetic operators render non-integer results.
func WithFloatPrintMode(mode numeric.FloatPrintMode) Option {
	return func(e *Engine) { e.ctx.SetFloatPrintMode(mode) }
}

// New creates an Engine over a fresh, empty store.
func New(opts ...Option) *Engine {
	s := store.New()
	e := &Engine{store: s, ctx: lang.NewContext(s, nil)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Open wraps an existing store instead of creating a new one, letting a
// host resume against state restored by LoadSnapshot (internal/persist).
func Open(s *store.Store, opts ...Option) *Engine {
	e := &Engine{store: s, ctx: lang.NewContext(s, nil)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Store returns the engine's underlying variable store, for direct
// Get/Put access or for handing to internal/persist.SaveSnapshot.
func (e *Engine) Store() *store.Store { return e.store }

// Run parses and executes source against the engine's store. resultKey
// == "" discards the return value after yielding it;
// "ReturnWithError"/"ReturnWithDebugInfo" materialize an error as the
// rendered "#Error ..." string instead of reporting ok=false.
func (e *Engine) Run(source, resultKey string) (value string, ok bool) {
	return lang.Run(e.ctx, source, resultKey)
}

// RunSource decodes raw bytes with scripttext.Decode before running them,
// for hosts that hand the engine a script straight off a flash-resident
// settings blob, a CoAP payload, or a file of unknown encoding.
// encodingHint is one of "UTF-8", "UTF-16LE", "Windows-1252", or "" for
// UTF-8; a leading BOM overrides the hint.
func (e *Engine) RunSource(raw []byte, encodingHint, resultKey string) (value string, ok bool, err error) {
	text, err := scripttext.Decode(raw, encodingHint)
	if err != nil {
		return "", false, err
	}
	value, ok = e.Run(text, resultKey)
	return value, ok, nil
}

// LastError returns the typed error caught by the most recent Run, or
// nil if that run completed without one.
func (e *Engine) LastError() *lang.Error { return e.ctx.LastError() }

// TimeoutAfter returns a PollFunc suitable for WithPoll/SetPollFunction
// that aborts a running script once d has elapsed since the "begin"
// phase of the current Run; each Run starts a fresh deadline. cmd/hppc
// wires this to its --timeout flag.
func TimeoutAfter(d time.Duration) lang.PollFunc {
	var deadline time.Time
	return func(phase string) bool {
		switch phase {
		case "begin":
			deadline = time.Now().Add(d)
			return false
		case "end":
			return false
		default:
			return !deadline.IsZero() && time.Now().After(deadline)
		}
	}
}
