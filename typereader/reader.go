// Package typereader provides the polymorphic decoding capability at the
// heart of xnb: a Reader knows how to decode one value shape off a
// Stream, a Registry resolves the manifest entries of a particular file
// to concrete Readers, and a Factory specializes an open generic Reader
// (ListReader`1, DictionaryReader`2, ...) for the type arguments a
// manifest entry names.
package typereader

import "github.com/relicdump/xnb/dump"

// Engine is the surface ContentReader exposes to a Reader's Read method.
// It is deliberately small: a Reader only needs to read nested
// objects/values and hand its decoded value to the dump sink, never the
// whole decoding engine.
type Engine interface {
	// ReadObject reads a type ID followed by the object it identifies, or
	// nil if the ID is zero. id is the 1-based index into the manifest's
	// reader table.
	ReadObject() (any, error)

	// ReadValueOrObject reads an object when reader is not a value type,
	// or decodes in place when it is - value-typed entries such as
	// Vector3 never carry a leading type ID of their own.
	ReadValueOrObject(reader Reader) (any, error)

	// ValidateTypeID reads a type ID exactly as ReadObject does, requires
	// a non-null reader whose target type equals expectedTargetType, and
	// returns its decoded value. Used for pre-tagged fields such as an
	// embedded string or Int32 inside a reader's own payload.
	ValidateTypeID(expectedTargetType string) (any, error)

	// ReadSharedResource reads a varuint shared-resource reference and
	// returns it as is. Zero means "no reference"; any other value N
	// refers to shared resource N-1 in the tail. The resource itself is
	// not resolved.
	ReadSharedResource() (int, error)

	// Stream exposes the primitive decoders for readers that decode their
	// own fields directly (primitives, math, graphics headers).
	Stream() StreamReader

	// Sink is where a Read implementation renders the fields it decodes.
	Sink() *dump.Logger
}

// StreamReader is satisfied by *xnb.Stream. It is declared locally to
// avoid an import cycle between the root package and typereader - the
// root package implements Engine and passes itself to readers.
type StreamReader interface {
	ReadU8() (uint8, error)
	ReadU16() (uint16, error)
	ReadU32() (uint32, error)
	ReadU64() (uint64, error)
	ReadI8() (int8, error)
	ReadI16() (int16, error)
	ReadI32() (int32, error)
	ReadI64() (int64, error)
	ReadF32() (float32, error)
	ReadF64() (float64, error)
	ReadBool() (bool, error)
	ReadChar() (rune, error)
	ReadVaruint() (uint32, error)
	ReadString() (string, error)
	ReadBytes(n int) ([]byte, error)
	Position() int64
}

// Reader is the per-type capability a manifest entry resolves to: it
// knows the qualified names it answers to, whether its values are
// embedded inline (value types never carry their own leading type ID),
// and how to decode one instance of itself from an Engine.
type Reader interface {
	// TargetType is the qualified .NET type name this reader produces.
	TargetType() string

	// ReaderName is the qualified .NET type name of the reader itself, as
	// it appears in a type manifest entry.
	ReaderName() string

	// IsValueType reports whether instances of this reader are embedded
	// inline, without their own leading type ID.
	IsValueType() bool

	// Initialize is called once per file, after every manifest entry has
	// been resolved to a Reader, so that readers whose shape depends on
	// another manifest entry (nested collection element readers) can
	// resolve that dependency before any Read call happens. reg is the
	// Registry Read will dispatch through.
	Initialize(reg *Registry) error

	// Read decodes one instance of the target type from eng.
	Read(eng Engine) (any, error)
}

// Factory creates specialized Readers for an open generic reader name
// seen in a manifest, given the generic type arguments pulled out of the
// manifest entry's qualified name.
type Factory interface {
	// OpenReaderName is the generic reader name without its argument
	// list, e.g. "Microsoft.Xna.Framework.Content.ListReader".
	OpenReaderName() string

	// Create builds a Reader specialized for args - the qualified type
	// names pulled from between the backtick-arity marker's brackets.
	Create(args []string) (Reader, error)
}
