package diag

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Logger is the leveled diagnostic sink accepted by every SUGAR stage.
// *zap.SugaredLogger satisfies it directly.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Nop is a Logger that discards everything.
type Nop struct{}

func (Nop) Infof(string, ...any)  {}
func (Nop) Warnf(string, ...any)  {}
func (Nop) Errorf(string, ...any) {}

// OrNop normalizes an optional logger: nil becomes Nop so call sites
// never need a nil check.
func OrNop(l Logger) Logger {
	if l == nil {
		return Nop{}
	}
	return l
}

// Development returns a zap-backed Logger suitable for experiments and
// examples. If zap construction fails (it cannot in practice with the
// development preset), a Nop is returned rather than an error.
func Development() Logger {
	l, err := zap.NewDevelopment()
	if err != nil {
		return Nop{}
	}
	return l.Sugar()
}

// Level tags a recorded message.
type Level int

const (
	Info Level = iota
	Warn
	Error
)

// Message is one recorded diagnostic line.
type Message struct {
	Level Level
	Text  string
}

// Recorder is a Logger that keeps every message in memory, in emission
// order. Safe for concurrent use.
type Recorder struct {
	mu   sync.Mutex
	msgs []Message
}

func (r *Recorder) Infof(format string, args ...any)  { r.append(Info, format, args) }
func (r *Recorder) Warnf(format string, args ...any)  { r.append(Warn, format, args) }
func (r *Recorder) Errorf(format string, args ...any) { r.append(Error, format, args) }

func (r *Recorder) append(lv Level, format string, args []any) {
	r.mu.Lock()
	r.msgs = append(r.msgs, Message{Level: lv, Text: fmt.Sprintf(format, args...)})
	r.mu.Unlock()
}

// Messages returns a copy of everything recorded so far.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.msgs))
	copy(out, r.msgs)
	return out
}

// Warnings returns only the recorded warning texts.
func (r *Recorder) Warnings() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, m := range r.msgs {
		if m.Level == Warn {
			out = append(out, m.Text)
		}
	}
	return out
}
