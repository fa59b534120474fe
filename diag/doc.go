// Package diag defines the diagnostic sink injected into every SUGAR
// stage.
//
// The pipeline is heuristic by design: most irregularities (degenerate
// bandwidths, zero-mass budgets, vanishing diffusion norms) are handled
// in place and only *reported*. This package is the reporting channel.
//
// A Logger is any value with leveled printf-style emission:
//
//	type Logger interface {
//	    Infof(format string, args ...any)
//	    Warnf(format string, args ...any)
//	    Errorf(format string, args ...any)
//	}
//
// Notably, *zap.SugaredLogger satisfies Logger as-is, so production
// callers can pass their zap logger straight through. Development()
// builds one for quick experiments. Passing nil anywhere a Logger is
// accepted silently disables logging; stages normalize via OrNop.
//
// Recorder collects messages in memory — useful in tests and whenever a
// caller wants the stage-by-stage trace as data rather than log lines.
package diag
