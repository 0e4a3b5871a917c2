package typereader

import "strings"

// SpecializeName builds the manifest-form name a Factory's specialized
// Reader answers to, per the generic-specialization grammar in §4.3:
//
//	openName + "`" + N + "[[" + args[0] + "],[" + args[1] + "]...]"
func SpecializeName(openName string, args []string) string {
	var b strings.Builder
	b.WriteString(openName)
	b.WriteByte('`')
	b.WriteString(itoa(len(args)))
	b.WriteByte('[')
	for i, a := range args {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('[')
		b.WriteString(a)
		b.WriteByte(']')
	}
	b.WriteByte(']')
	return b.String()
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := [20]byte{}
	i := len(digits)
	for n > 0 {
		i--
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	return string(digits[i:])
}

// GenericBase is embedded by specialized generic Readers to carry the
// argument list a Factory built them with, and to answer GenericArgument
// queries the way the format's "generic_argument(i)" accessor does.
// Mirrors how the teacher's RecursiveSource carries extra depth/source
// state alongside the base Encodable it wraps (encodable/recursive.go).
type GenericBase struct {
	Args []string
}

// GenericArgument returns the i'th generic type argument's qualified
// name, as parsed from the manifest entry that specialized this reader.
func (g GenericBase) GenericArgument(i int) string {
	if i < 0 || i >= len(g.Args) {
		return ""
	}
	return g.Args[i]
}
