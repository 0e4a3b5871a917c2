// Package builtin registers the reader set that ships with the XNB
// format itself: primitives, the generic System collection/wrapper
// readers, math value types, graphics resources, and media assets. Each
// reader is grounded on the field order described in the original
// ContentReader/TypeReaderManager/GraphicsTypeReaders sources this
// format was recovered from.
package builtin

import (
	"github.com/relicdump/xnb/typereader"
	"github.com/relicdump/xnb/xnberr"
)

const namespace = "Microsoft.Xna.Framework.Content."

// primitive implements typereader.Reader for the scalar types, Char and
// String included, that read directly off the stream with no nested
// dispatch.
type primitive struct {
	readerName string
	targetType string
	read       func(typereader.Engine) (any, error)
}

func (p primitive) TargetType() string { return p.targetType }
func (p primitive) ReaderName() string { return namespace + p.readerName }
func (p primitive) IsValueType() bool  { return true }

func (p primitive) Initialize(*typereader.Registry) error { return nil }

func (p primitive) Read(eng typereader.Engine) (any, error) {
	return p.read(eng)
}

// objectReader is the dispatch-only placeholder for "Object" manifest
// entries. Its Read is never meant to be invoked directly - Object never
// appears as the nominal type of a value slot - so it fails loudly if it
// ever is.
type objectReader struct{}

func (objectReader) TargetType() string                    { return "System.Object" }
func (objectReader) ReaderName() string                    { return namespace + "ObjectReader" }
func (objectReader) IsValueType() bool                     { return false }
func (objectReader) Initialize(*typereader.Registry) error { return nil }
func (objectReader) Read(typereader.Engine) (any, error) {
	return nil, xnberr.NewError(xnberr.ErrUnknownTargetType, "ObjectReader is a dispatch placeholder and cannot be read directly", "builtin.objectReader.Read")
}

func registerPrimitives(reg *typereader.Registry) {
	reg.RegisterConcrete(primitive{"ByteReader", "System.Byte", func(e typereader.Engine) (any, error) {
		return e.Stream().ReadU8()
	}})
	reg.RegisterConcrete(primitive{"SByteReader", "System.SByte", func(e typereader.Engine) (any, error) {
		return e.Stream().ReadI8()
	}})
	reg.RegisterConcrete(primitive{"Int16Reader", "System.Int16", func(e typereader.Engine) (any, error) {
		return e.Stream().ReadI16()
	}})
	reg.RegisterConcrete(primitive{"UInt16Reader", "System.UInt16", func(e typereader.Engine) (any, error) {
		return e.Stream().ReadU16()
	}})
	reg.RegisterConcrete(primitive{"Int32Reader", "System.Int32", func(e typereader.Engine) (any, error) {
		return e.Stream().ReadI32()
	}})
	reg.RegisterConcrete(primitive{"UInt32Reader", "System.UInt32", func(e typereader.Engine) (any, error) {
		return e.Stream().ReadU32()
	}})
	reg.RegisterConcrete(primitive{"Int64Reader", "System.Int64", func(e typereader.Engine) (any, error) {
		return e.Stream().ReadI64()
	}})
	reg.RegisterConcrete(primitive{"UInt64Reader", "System.UInt64", func(e typereader.Engine) (any, error) {
		return e.Stream().ReadU64()
	}})
	reg.RegisterConcrete(primitive{"SingleReader", "System.Single", func(e typereader.Engine) (any, error) {
		return e.Stream().ReadF32()
	}})
	reg.RegisterConcrete(primitive{"DoubleReader", "System.Double", func(e typereader.Engine) (any, error) {
		return e.Stream().ReadF64()
	}})
	reg.RegisterConcrete(primitive{"BooleanReader", "System.Boolean", func(e typereader.Engine) (any, error) {
		return e.Stream().ReadBool()
	}})
	reg.RegisterConcrete(primitive{"CharReader", "System.Char", func(e typereader.Engine) (any, error) {
		return e.Stream().ReadChar()
	}})
	reg.RegisterConcrete(primitive{"StringReader", "System.String", func(e typereader.Engine) (any, error) {
		return e.Stream().ReadString()
	}})
	reg.RegisterConcrete(objectReader{})
}
