// Package dump renders the values a ContentReader decodes as an
// indented, human-readable listing - the CLI's primary output. It wraps
// pterm's styled writer the way teranos-QNTX's ats/ix.CLIEmitter wraps
// pterm for terminal progress output, but nests by indentation depth
// instead of emitting flat status lines, mirroring the recursive
// object/field structure an XNB file actually has.
package dump

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
)

// Logger writes field/value pairs at increasing indentation as
// ContentReader descends into nested objects, and caps how many raw
// bytes of a blob it renders before collapsing the remainder.
type Logger struct {
	w            io.Writer
	depth        int
	maxDumpBytes int
}

// DefaultMaxDumpBytes is used when a Config doesn't set MaxDumpBytes.
const DefaultMaxDumpBytes = 64

// NewLogger returns a Logger writing to w. maxDumpBytes caps how many
// bytes of a blob field are rendered before being collapsed to a
// "<N bytes>" placeholder; zero means DefaultMaxDumpBytes.
func NewLogger(w io.Writer, maxDumpBytes int) *Logger {
	if maxDumpBytes <= 0 {
		maxDumpBytes = DefaultMaxDumpBytes
	}
	return &Logger{w: w, maxDumpBytes: maxDumpBytes}
}

// Section announces entry into a named object - a reader's target type -
// and returns a done func that must be called once that object's fields
// have all been logged, to restore the previous indentation.
func (l *Logger) Section(name string) (done func()) {
	l.line(name + ":")
	l.depth++
	return func() {
		l.depth--
	}
}

// Field logs a single name/value pair at the current indentation.
func (l *Logger) Field(name string, value any) {
	l.line(fmt.Sprintf("%s: %v", name, value))
}

// Bytes logs a blob field, collapsing it to a byte count once it exceeds
// maxDumpBytes.
func (l *Logger) Bytes(name string, data []byte) {
	if len(data) <= l.maxDumpBytes {
		l.line(fmt.Sprintf("%s: % x", name, data))
		return
	}
	l.line(fmt.Sprintf("%s: <%d bytes>", name, len(data)))
}

// Null logs a nil object/shared-resource slot.
func (l *Logger) Null(name string) {
	l.line(name + ": null")
}

func (l *Logger) line(s string) {
	indent := strings.Repeat("  ", l.depth)
	fmt.Fprintln(l.w, pterm.Sprint(indent+s))
}
