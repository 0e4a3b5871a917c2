package builtin

import (
	"fmt"
	"strings"

	"github.com/relicdump/xnb/typereader"
	"github.com/relicdump/xnb/xnberr"
)

// shortName trims a qualified .NET type name down to its last namespace
// segment, for compact sink labels - e.g.
// "Microsoft.Xna.Framework.Graphics.SurfaceFormat" becomes
// "SurfaceFormat".
func shortName(qualified string) string {
	if i := strings.IndexAny(qualified, "`["); i >= 0 {
		qualified = qualified[:i]
	}
	if i := strings.LastIndexByte(qualified, '.'); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}

// enumReader reads a 32-bit signed integer and renders it under the
// enum's own target type name; it carries no symbolic name table of its
// own. The surface-format, vertex-element and compare-function fields in
// graphics.go are rendered by name through enumName inside the readers
// that hold them, not through this reader.
type enumReader struct {
	typereader.GenericBase
}

func (r enumReader) TargetType() string { return r.GenericArgument(0) }
func (r enumReader) ReaderName() string {
	return typereader.SpecializeName(namespace+"EnumReader", r.Args)
}
func (r enumReader) IsValueType() bool                     { return true }
func (r enumReader) Initialize(*typereader.Registry) error { return nil }
func (r enumReader) Read(eng typereader.Engine) (any, error) {
	return eng.Stream().ReadI32()
}

type enumFactory struct{}

func (enumFactory) OpenReaderName() string { return namespace + "EnumReader" }
func (enumFactory) Create(args []string) (typereader.Reader, error) {
	if len(args) != 1 {
		return nil, xnberr.NewError(xnberr.ErrUnknownReader, "EnumReader takes exactly one generic argument", "builtin.enumFactory.Create")
	}
	return enumReader{typereader.GenericBase{Args: args}}, nil
}

// nullableReader reads a boolean "has value" flag, then the payload via
// the resolved element reader, when the flag is set.
type nullableReader struct {
	typereader.GenericBase
	elem typereader.Reader
}

func (r nullableReader) TargetType() string {
	return "System.Nullable" + "`1[[" + r.GenericArgument(0) + "]]"
}
func (r nullableReader) ReaderName() string {
	return typereader.SpecializeName(namespace+"NullableReader", r.Args)
}
func (r nullableReader) IsValueType() bool { return true }

func (r *nullableReader) Initialize(reg *typereader.Registry) error {
	elem, err := reg.GetByTargetType(r.GenericArgument(0))
	if err != nil {
		return err
	}
	r.elem = elem
	return nil
}

func (r nullableReader) Read(eng typereader.Engine) (any, error) {
	hasValue, err := eng.Stream().ReadBool()
	if err != nil {
		return nil, err
	}
	if !hasValue {
		eng.Sink().Null(shortName(r.GenericArgument(0)))
		return nil, nil
	}
	return eng.ReadValueOrObject(r.elem)
}

type nullableFactory struct{}

func (nullableFactory) OpenReaderName() string { return namespace + "NullableReader" }
func (nullableFactory) Create(args []string) (typereader.Reader, error) {
	if len(args) != 1 {
		return nil, xnberr.NewError(xnberr.ErrUnknownReader, "NullableReader takes exactly one generic argument", "builtin.nullableFactory.Create")
	}
	return &nullableReader{GenericBase: typereader.GenericBase{Args: args}}, nil
}

// arrayReader and listReader both read a 32-bit count followed by that
// many elements via ReadValueOrObject; they differ only in their reader
// and target type names ("T[]" versus "List`1[[T]]").
type arrayReader struct {
	typereader.GenericBase
	elem typereader.Reader
}

func (r arrayReader) TargetType() string { return r.GenericArgument(0) + "[]" }
func (r arrayReader) ReaderName() string {
	return typereader.SpecializeName(namespace+"ArrayReader", r.Args)
}
func (r arrayReader) IsValueType() bool { return false }

func (r *arrayReader) Initialize(reg *typereader.Registry) error {
	elem, err := reg.GetByTargetType(r.GenericArgument(0))
	if err != nil {
		return err
	}
	r.elem = elem
	return nil
}

func (r arrayReader) Read(eng typereader.Engine) (any, error) {
	count, err := eng.Stream().ReadU32()
	if err != nil {
		return nil, err
	}
	out := make([]any, count)
	for i := range out {
		v, err := eng.ReadValueOrObject(r.elem)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

type arrayFactory struct{}

func (arrayFactory) OpenReaderName() string { return namespace + "ArrayReader" }
func (arrayFactory) Create(args []string) (typereader.Reader, error) {
	if len(args) != 1 {
		return nil, xnberr.NewError(xnberr.ErrUnknownReader, "ArrayReader takes exactly one generic argument", "builtin.arrayFactory.Create")
	}
	return &arrayReader{GenericBase: typereader.GenericBase{Args: args}}, nil
}

type listReader struct {
	typereader.GenericBase
	elem typereader.Reader
}

func (r listReader) TargetType() string {
	return "System.Collections.Generic.List`1[[" + r.GenericArgument(0) + "]]"
}
func (r listReader) ReaderName() string {
	return typereader.SpecializeName(namespace+"ListReader", r.Args)
}
func (r listReader) IsValueType() bool { return false }

func (r *listReader) Initialize(reg *typereader.Registry) error {
	elem, err := reg.GetByTargetType(r.GenericArgument(0))
	if err != nil {
		return err
	}
	r.elem = elem
	return nil
}

func (r listReader) Read(eng typereader.Engine) (any, error) {
	count, err := eng.Stream().ReadU32()
	if err != nil {
		return nil, err
	}
	out := make([]any, count)
	for i := range out {
		v, err := eng.ReadValueOrObject(r.elem)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

type listFactory struct{}

func (listFactory) OpenReaderName() string { return namespace + "ListReader" }
func (listFactory) Create(args []string) (typereader.Reader, error) {
	if len(args) != 1 {
		return nil, xnberr.NewError(xnberr.ErrUnknownReader, "ListReader takes exactly one generic argument", "builtin.listFactory.Create")
	}
	return &listReader{GenericBase: typereader.GenericBase{Args: args}}, nil
}

// dictionaryEntry is one key/value pair read from a Dictionary<K,V>.
type dictionaryEntry struct {
	Key   any
	Value any
}

type dictionaryReader struct {
	typereader.GenericBase
	keyReader, valueReader typereader.Reader
}

func (r dictionaryReader) TargetType() string {
	return "System.Collections.Generic.Dictionary`2[[" + r.GenericArgument(0) + "],[" + r.GenericArgument(1) + "]]"
}
func (r dictionaryReader) ReaderName() string {
	return typereader.SpecializeName(namespace+"DictionaryReader", r.Args)
}
func (r dictionaryReader) IsValueType() bool { return false }

func (r *dictionaryReader) Initialize(reg *typereader.Registry) error {
	key, err := reg.GetByTargetType(r.GenericArgument(0))
	if err != nil {
		return err
	}
	value, err := reg.GetByTargetType(r.GenericArgument(1))
	if err != nil {
		return err
	}
	r.keyReader = key
	r.valueReader = value
	return nil
}

func (r dictionaryReader) Read(eng typereader.Engine) (any, error) {
	count, err := eng.Stream().ReadU32()
	if err != nil {
		return nil, err
	}
	out := make([]dictionaryEntry, count)
	for i := range out {
		done := eng.Sink().Section(fmt.Sprintf("Entry[%d]", i))
		key, err := eng.ReadValueOrObject(r.keyReader)
		if err != nil {
			return nil, err
		}
		value, err := eng.ReadValueOrObject(r.valueReader)
		if err != nil {
			return nil, err
		}
		done()
		out[i] = dictionaryEntry{Key: key, Value: value}
	}
	return out, nil
}

type dictionaryFactory struct{}

func (dictionaryFactory) OpenReaderName() string { return namespace + "DictionaryReader" }
func (dictionaryFactory) Create(args []string) (typereader.Reader, error) {
	if len(args) != 2 {
		return nil, xnberr.NewError(xnberr.ErrUnknownReader, "DictionaryReader takes exactly two generic arguments", "builtin.dictionaryFactory.Create")
	}
	return &dictionaryReader{GenericBase: typereader.GenericBase{Args: args}}, nil
}

// reflectiveReader always fails: the reflective serialization format
// relies on source-ecosystem-specific metadata this parser does not and
// cannot reconstruct.
type reflectiveReader struct {
	typereader.GenericBase
}

func (r reflectiveReader) TargetType() string { return r.GenericArgument(0) }
func (r reflectiveReader) ReaderName() string {
	return typereader.SpecializeName(namespace+"ReflectiveReader", r.Args)
}
func (r reflectiveReader) IsValueType() bool                     { return false }
func (r reflectiveReader) Initialize(*typereader.Registry) error { return nil }
func (r reflectiveReader) Read(typereader.Engine) (any, error) {
	return nil, xnberr.NewError(xnberr.ErrReflectiveUnsupported, r.GenericArgument(0), "builtin.reflectiveReader.Read")
}

type reflectiveFactory struct{}

func (reflectiveFactory) OpenReaderName() string { return namespace + "ReflectiveReader" }
func (reflectiveFactory) Create(args []string) (typereader.Reader, error) {
	return reflectiveReader{typereader.GenericBase{Args: args}}, nil
}

// timeSpanReader reads a signed 64-bit tick count, one tick being 100ns.
type timeSpanReader struct{}

func (timeSpanReader) TargetType() string                    { return "System.TimeSpan" }
func (timeSpanReader) ReaderName() string                    { return namespace + "TimeSpanReader" }
func (timeSpanReader) IsValueType() bool                     { return true }
func (timeSpanReader) Initialize(*typereader.Registry) error { return nil }
func (timeSpanReader) Read(eng typereader.Engine) (any, error) {
	return eng.Stream().ReadI64()
}

// dateTimeReader reads a 64-bit value whose top two bits encode a "kind"
// and whose remaining 62 bits are ticks.
type dateTimeValue struct {
	Kind  uint8
	Ticks int64
}

type dateTimeReader struct{}

func (dateTimeReader) TargetType() string                    { return "System.DateTime" }
func (dateTimeReader) ReaderName() string                    { return namespace + "DateTimeReader" }
func (dateTimeReader) IsValueType() bool                     { return true }
func (dateTimeReader) Initialize(*typereader.Registry) error { return nil }
func (dateTimeReader) Read(eng typereader.Engine) (any, error) {
	raw, err := eng.Stream().ReadU64()
	if err != nil {
		return nil, err
	}
	return dateTimeValue{
		Kind:  uint8(raw >> 62),
		Ticks: int64(raw & ((1 << 62) - 1)),
	}, nil
}

// decimalValue mirrors .NET's four-word Decimal layout.
type decimalValue struct {
	Lo, Mid, Hi, Flags uint32
}

type decimalReader struct{}

func (decimalReader) TargetType() string                    { return "System.Decimal" }
func (decimalReader) ReaderName() string                    { return namespace + "DecimalReader" }
func (decimalReader) IsValueType() bool                     { return true }
func (decimalReader) Initialize(*typereader.Registry) error { return nil }
func (decimalReader) Read(eng typereader.Engine) (any, error) {
	lo, err := eng.Stream().ReadU32()
	if err != nil {
		return nil, err
	}
	mid, err := eng.Stream().ReadU32()
	if err != nil {
		return nil, err
	}
	hi, err := eng.Stream().ReadU32()
	if err != nil {
		return nil, err
	}
	flags, err := eng.Stream().ReadU32()
	if err != nil {
		return nil, err
	}
	return decimalValue{Lo: lo, Mid: mid, Hi: hi, Flags: flags}, nil
}

// externalReferenceReader reads a string naming another asset file.
type externalReferenceReader struct{}

func (externalReferenceReader) TargetType() string { return "Microsoft.Xna.Framework.Content.ExternalReference`1" }
func (externalReferenceReader) ReaderName() string { return namespace + "ExternalReferenceReader" }
func (externalReferenceReader) IsValueType() bool   { return true }
func (externalReferenceReader) Initialize(*typereader.Registry) error { return nil }
func (externalReferenceReader) Read(eng typereader.Engine) (any, error) {
	return eng.Stream().ReadString()
}

func registerSystem(reg *typereader.Registry) {
	reg.RegisterGeneric(enumFactory{})
	reg.RegisterGeneric(nullableFactory{})
	reg.RegisterGeneric(arrayFactory{})
	reg.RegisterGeneric(listFactory{})
	reg.RegisterGeneric(dictionaryFactory{})
	reg.RegisterGeneric(reflectiveFactory{})

	reg.RegisterConcrete(timeSpanReader{})
	reg.RegisterConcrete(dateTimeReader{})
	reg.RegisterConcrete(decimalReader{})
	reg.RegisterConcrete(externalReferenceReader{})
}
