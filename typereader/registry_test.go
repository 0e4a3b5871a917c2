package typereader_test

import (
	"errors"
	"testing"

	"github.com/relicdump/xnb/typereader"
	"github.com/relicdump/xnb/xnberr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReader struct {
	target, name string
	isValue      bool
}

func (s stubReader) TargetType() string                    { return s.target }
func (s stubReader) ReaderName() string                    { return s.name }
func (s stubReader) IsValueType() bool                     { return s.isValue }
func (s stubReader) Initialize(*typereader.Registry) error { return nil }
func (s stubReader) Read(typereader.Engine) (any, error)   { return nil, nil }

type stubFactory struct {
	open    string
	created *int
}

func (f stubFactory) OpenReaderName() string { return f.open }
func (f stubFactory) Create(args []string) (typereader.Reader, error) {
	if f.created != nil {
		*f.created++
	}
	return stubReader{
		target:  f.open + "Target",
		name:    typereader.SpecializeName(f.open, args),
		isValue: false,
	}, nil
}

func TestGetByReaderNameConcrete(t *testing.T) {
	reg := typereader.NewRegistry()
	reg.RegisterConcrete(stubReader{target: "System.Int32", name: "Int32Reader", isValue: true})

	got, err := reg.GetByReaderName("Int32Reader, mscorlib, Version=4.0.0.0")
	require.NoError(t, err)
	assert.Equal(t, "Int32Reader", got.ReaderName())
}

func TestGetByReaderNameUnknown(t *testing.T) {
	reg := typereader.NewRegistry()
	_, err := reg.GetByReaderName("NoSuchReader")
	assert.True(t, errors.Is(err, xnberr.ErrUnknownReader))
}

func TestGetByReaderNameSpecializesGeneric(t *testing.T) {
	reg := typereader.NewRegistry()
	reg.RegisterGeneric(stubFactory{open: "ListReader"})

	name := "ListReader`1[[System.Int32]]"
	got, err := reg.GetByReaderName(name)
	require.NoError(t, err)
	assert.Equal(t, name, got.ReaderName())
}

func TestGetByReaderNameInternsSpecialization(t *testing.T) {
	reg := typereader.NewRegistry()
	created := 0
	reg.RegisterGeneric(stubFactory{open: "ListReader", created: &created})

	name := "ListReader`1[[System.Int32]]"
	first, err := reg.GetByReaderName(name)
	require.NoError(t, err)

	second, err := reg.GetByReaderName(name)
	require.NoError(t, err)

	assert.Equal(t, first.ReaderName(), second.ReaderName())
	assert.Equal(t, 1, created)
}

func TestGetByTargetTypeUnknown(t *testing.T) {
	reg := typereader.NewRegistry()
	_, err := reg.GetByTargetType("System.Nonexistent")
	assert.True(t, errors.Is(err, xnberr.ErrUnknownTargetType))
}
