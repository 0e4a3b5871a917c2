package builtin

import (
	"testing"

	"github.com/relicdump/xnb/typereader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func primitiveByName(t *testing.T, readerName string) typereader.Reader {
	t.Helper()
	reg := typereader.NewRegistry()
	registerPrimitives(reg)
	r, err := reg.GetByReaderName(namespace + readerName)
	require.NoError(t, err)
	return r
}

func TestByteReader(t *testing.T) {
	r := primitiveByName(t, "ByteReader")
	v, err := r.Read(newFakeEngine([]byte{0x2A}))
	require.NoError(t, err)
	assert.Equal(t, uint8(0x2A), v)
	assert.True(t, r.IsValueType())
	assert.Equal(t, "System.Byte", r.TargetType())
}

func TestInt32Reader(t *testing.T) {
	r := primitiveByName(t, "Int32Reader")
	v, err := r.Read(newFakeEngine([]byte{0xFF, 0xFF, 0xFF, 0xFF}))
	require.NoError(t, err)
	assert.Equal(t, int32(-1), v)
}

func TestSingleReader(t *testing.T) {
	r := primitiveByName(t, "SingleReader")
	v, err := r.Read(newFakeEngine([]byte{0, 0, 128, 63})) // 1.0f
	require.NoError(t, err)
	assert.Equal(t, float32(1), v)
}

func TestStringReader(t *testing.T) {
	r := primitiveByName(t, "StringReader")
	v, err := r.Read(newFakeEngine([]byte{5, 'h', 'e', 'l', 'l', 'o'}))
	require.NoError(t, err)
	assert.Equal(t, "hello", v)
}

func TestObjectReaderRejectsDirectRead(t *testing.T) {
	r := objectReader{}
	_, err := r.Read(newFakeEngine(nil))
	assert.Error(t, err)
	assert.False(t, r.IsValueType())
}
