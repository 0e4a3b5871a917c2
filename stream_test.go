package xnb_test

import (
	"bytes"
	"testing"

	"github.com/relicdump/xnb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStream(t *testing.T, data []byte) *xnb.Stream {
	t.Helper()
	return xnb.NewStream(bytes.NewReader(data))
}

func TestReadFixedWidth(t *testing.T) {
	s := newStream(t, []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08})

	u8, err := s.ReadU8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x01), u8)

	u16, err := s.ReadU16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0302), u16)

	u32, err := s.ReadU32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x07060504), u32)
}

func TestReadBool(t *testing.T) {
	s := newStream(t, []byte{0x00, 0x01, 0xFF})
	for _, want := range []bool{false, true, true} {
		got, err := s.ReadBool()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestReadVaruintSingleByte(t *testing.T) {
	s := newStream(t, []byte{0x7F})
	v, err := s.ReadVaruint()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x7F), v)
}

func TestReadVaruintMultiByte(t *testing.T) {
	// 300 = 0b1_0010_1100 -> low7=0101100(0x2C)|cont, next=00000010(0x02)
	s := newStream(t, []byte{0xAC, 0x02})
	v, err := s.ReadVaruint()
	require.NoError(t, err)
	assert.Equal(t, uint32(300), v)
}

func TestReadCharASCII(t *testing.T) {
	s := newStream(t, []byte{'A'})
	c, err := s.ReadChar()
	require.NoError(t, err)
	assert.Equal(t, 'A', c)
}

func TestReadCharAstralPlane(t *testing.T) {
	// U+1F600 GRINNING FACE = F0 9F 98 80 in UTF-8.
	s := newStream(t, []byte{0xF0, 0x9F, 0x98, 0x80})
	c, err := s.ReadChar()
	require.NoError(t, err)
	assert.Equal(t, rune(0x1F600), c)
}

func TestReadStringBasic(t *testing.T) {
	// varuint length 5, then "hello"
	s := newStream(t, append([]byte{5}, []byte("hello")...))
	str, err := s.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "hello", str)
}

func TestReadStringMultiByteChars(t *testing.T) {
	payload := "héllo" // é is 2 bytes in UTF-8
	data := append([]byte{byte(len(payload))}, []byte(payload)...)
	s := newStream(t, data)
	str, err := s.ReadString()
	require.NoError(t, err)
	assert.Equal(t, payload, str)
}

func TestReadBytesTruncated(t *testing.T) {
	s := newStream(t, []byte{0x01, 0x02})
	_, err := s.ReadBytes(5)
	assert.Error(t, err)
}

func TestPositionAdvances(t *testing.T) {
	s := newStream(t, []byte{1, 2, 3, 4})
	_, _ = s.ReadU8()
	assert.Equal(t, int64(1), s.Position())
	_, _ = s.ReadU16()
	assert.Equal(t, int64(3), s.Position())
}
