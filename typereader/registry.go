package typereader

import (
	"fmt"
	"sync"

	"github.com/relicdump/xnb/qualname"
	"github.com/relicdump/xnb/xnberr"
)

// Registry holds every concrete Reader and open generic Factory known to
// a ContentReader, and resolves a type manifest's entries to Readers -
// specializing generic factories on demand and interning the result so a
// repeated specialization returns the same instance.
//
// A Registry is safe for concurrent use: specialization mutates the
// reader list, so it is guarded the way the teacher's RegisterResolver
// guards its type maps.
type Registry struct {
	mu       sync.Mutex
	readers  []Reader
	factories []Factory
}

// NewRegistry returns an empty Registry. Use RegisterStandardReaders to
// populate it with the built-in reader set.
func NewRegistry() *Registry {
	return &Registry{}
}

// RegisterConcrete appends reader to the registry. Used at startup to
// seed the primitive, system, math, graphics and media readers.
func (r *Registry) RegisterConcrete(reader Reader) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.readers = append(r.readers, reader)
}

// RegisterGeneric appends factory to the registry's open generic reader
// list.
func (r *Registry) RegisterGeneric(factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories = append(r.factories, factory)
}

// GetByReaderName resolves a manifest entry's reader name - normalizing
// assembly metadata first - to a concrete Reader, specializing a
// registered generic Factory if no concrete match exists yet.
func (r *Registry) GetByReaderName(name string) (Reader, error) {
	wanted := qualname.StripAssemblyVersion(name)

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, reader := range r.readers {
		if reader.ReaderName() == wanted {
			return reader, nil
		}
	}

	open, args, ok := qualname.SplitGenericName(wanted)
	if !ok {
		return nil, xnberr.NewError(xnberr.ErrUnknownReader, fmt.Sprintf("reader %q", wanted), "typereader.Registry.GetByReaderName")
	}

	for _, factory := range r.factories {
		if factory.OpenReaderName() != open {
			continue
		}

		reader, err := factory.Create(args)
		if err != nil {
			return nil, xnberr.NewError(xnberr.ErrUnknownReader, err.Error(), "typereader.Registry.GetByReaderName")
		}

		r.readers = append(r.readers, reader)
		return reader, nil
	}

	return nil, xnberr.NewError(xnberr.ErrUnknownReader, fmt.Sprintf("reader %q", wanted), "typereader.Registry.GetByReaderName")
}

// GetByTargetType resolves a qualified target type name to the Reader
// that produces it. Used by generic readers' Initialize to resolve their
// element/key/value types.
func (r *Registry) GetByTargetType(name string) (Reader, error) {
	wanted := qualname.StripAssemblyVersion(name)

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, reader := range r.readers {
		if reader.TargetType() == wanted {
			return reader, nil
		}
	}

	return nil, xnberr.NewError(xnberr.ErrUnknownTargetType, fmt.Sprintf("target type %q", wanted), "typereader.Registry.GetByTargetType")
}
