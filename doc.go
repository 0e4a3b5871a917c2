// Package xnb parses XNB files - the compiled binary asset container
// produced by the XNA/MonoGame content pipeline - and drives a
// dump.Logger with a structured, human-readable rendering of everything
// it decodes.
//
// A file is a small header, an embedded type manifest naming the
// readers needed to decode the payload, a primary object, and a tail of
// shared resources the primary object (or another shared resource) may
// reference. ContentReader walks all four in one pass; subpackage
// typereader provides the polymorphic reader/registry machinery the
// manifest resolves against, and builtin registers the reader set that
// ships with the format itself.
//
//	f, _ := os.Open("model.xnb")
//	defer f.Close()
//	cr := xnb.NewContentReader(f, nil, nil)
//	err := cr.Parse(os.Stdout)
package xnb

import (
	"sync"

	"github.com/relicdump/xnb/builtin"
	"github.com/relicdump/xnb/typereader"
)

var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *typereader.Registry
)

// DefaultRegistry returns the package-level Registry pre-populated with
// every built-in reader (primitive, system, math, graphics, media). It is
// built once and shared; callers needing an isolated registry should
// construct their own with typereader.NewRegistry and
// builtin.RegisterStandardReaders.
func DefaultRegistry() *typereader.Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = typereader.NewRegistry()
		builtin.RegisterStandardReaders(defaultRegistry)
	})
	return defaultRegistry
}
