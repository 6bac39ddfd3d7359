package sat

import (
	"log"

	"github.com/kr/pretty"
)

// Tracer receives diagnostic trace lines when a Solver's Trace field is
// set, matching the teacher's own Trace bool / Tracer interface split.
type Tracer interface {
	Printf(format string, v ...interface{})
}

// NopTracer discards every trace line; it is the tracer a zero-value
// Solver effectively uses.
type NopTracer struct{}

func (NopTracer) Printf(string, ...interface{}) {}

// logTracer adapts a standard library *log.Logger to Tracer, for the
// CLI's --trace flag. Every argument is wrapped in github.com/kr/pretty's
// Formatter, which lays maps and slices out over several lines when the
// format uses the "%# v" verb; under any other verb, including plain %v,
// the argument prints exactly as fmt would print it.
type logTracer struct {
	l *log.Logger
}

// NewLogTracer returns a Tracer that writes through l.
func NewLogTracer(l *log.Logger) Tracer {
	return logTracer{l: l}
}

func (t logTracer) Printf(format string, v ...interface{}) {
	t.l.Printf(format, prettify(v)...)
}

func prettify(v []interface{}) []interface{} {
	out := make([]interface{}, len(v))
	for i, x := range v {
		out[i] = pretty.Formatter(x)
	}
	return out
}
