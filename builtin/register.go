package builtin

import "github.com/relicdump/xnb/typereader"

// RegisterStandardReaders populates reg with every reader this package
// defines: primitives, the generic System wrapper/collection readers,
// math value types, graphics resources and media assets.
func RegisterStandardReaders(reg *typereader.Registry) {
	registerPrimitives(reg)
	registerSystem(reg)
	registerMath(reg)
	registerGraphics(reg)
	registerMedia(reg)
}
