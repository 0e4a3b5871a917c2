package xnb_test

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/relicdump/xnb"
	"github.com/relicdump/xnb/xnberr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// builder accumulates the bytes of a synthetic .xnb payload.
type builder struct{ buf bytes.Buffer }

func (b *builder) bytes(p ...byte) *builder { b.buf.Write(p); return b }
func (b *builder) u8(v uint8) *builder      { b.buf.WriteByte(v); return b }
func (b *builder) u32(v uint32) *builder {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	b.buf.Write(tmp[:])
	return b
}
func (b *builder) i32(v int32) *builder { return b.u32(uint32(v)) }
func (b *builder) f32(v float32) *builder { return b.u32(math.Float32bits(v)) }
func (b *builder) varuint(v uint32) *builder {
	for {
		c := byte(v & 0x7F)
		v >>= 7
		if v != 0 {
			b.buf.WriteByte(c | 0x80)
		} else {
			b.buf.WriteByte(c)
			return b
		}
	}
}
func (b *builder) str(s string) *builder {
	b.varuint(uint32(len(s)))
	b.buf.WriteString(s)
	return b
}

// newFixture writes "XNB" + platform 'w' + version 5 + flags, returning the
// builder so the caller can append manifest/payload bytes, then finish
// with finish() to backfill the declared total size.
func newFixture(flags byte) *builder {
	b := &builder{}
	b.bytes('X', 'N', 'B').u8('w').u8(5).u8(flags)
	b.u32(0) // placeholder for declared size
	return b
}

func (b *builder) finish() []byte {
	data := b.buf.Bytes()
	binary.LittleEndian.PutUint32(data[6:10], uint32(len(data)))
	return data
}

func parse(t *testing.T, data []byte) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cr := xnb.NewContentReader(bytes.NewReader(data), nil, nil)
	err := cr.Parse(&out)
	return out.String(), err
}

func TestParseInt32PrimaryObject(t *testing.T) {
	b := newFixture(0)
	b.varuint(1) // one manifest entry
	b.str("System.Int32")
	b.i32(0) // reader version
	b.varuint(1) // primary object tag -> manifest[0]
	b.i32(42)
	b.varuint(0) // zero shared resources

	out, err := parse(t, b.finish())
	require.NoError(t, err)
	assert.Contains(t, out, "42")
}

func TestParseRejectsBadMagic(t *testing.T) {
	b := newFixture(0)
	data := b.finish()
	data[0] = 'Z'
	_, err := parse(t, data)
	assert.ErrorIs(t, err, xnberr.ErrNotXnb)
}

func TestParseRejectsCompressed(t *testing.T) {
	b := newFixture(1 << 7)
	b.u32(0) // uncompressed size field read before bailing out
	data := b.finish()
	_, err := parse(t, data)
	assert.ErrorIs(t, err, xnberr.ErrCompressedUnsupported)
}

func TestParseRejectsTruncatedDeclaredSize(t *testing.T) {
	b := newFixture(0)
	b.varuint(0)
	b.varuint(1)
	b.i32(1)
	b.varuint(0)
	data := b.finish()
	binary.LittleEndian.PutUint32(data[6:10], uint32(len(data)+100))
	_, err := parse(t, data)
	assert.ErrorIs(t, err, xnberr.ErrTruncated)
}

func TestParseVectorViaNestedValueReader(t *testing.T) {
	b := newFixture(0)
	b.varuint(1)
	b.str("Microsoft.Xna.Framework.Content.Vector3Reader")
	b.i32(0)
	b.varuint(1)
	b.f32(1).f32(2).f32(3)
	b.varuint(0)

	out, err := parse(t, b.finish())
	require.NoError(t, err)
	assert.Contains(t, out, "PrimaryObject")
}

func TestParseSharedResourceTail(t *testing.T) {
	b := newFixture(0)
	b.varuint(1)
	b.str("Microsoft.Xna.Framework.Content.Int32Reader")
	b.i32(0)
	b.varuint(1) // primary object references manifest[0]
	b.i32(7)
	b.varuint(1) // one shared resource
	b.varuint(1)
	b.i32(99)

	out, err := parse(t, b.finish())
	require.NoError(t, err)
	assert.Contains(t, out, "SharedResource")
}

func TestParseUnknownReaderName(t *testing.T) {
	b := newFixture(0)
	b.varuint(1)
	b.str("Not.A.Real.Reader")
	b.i32(0)

	_, err := parse(t, b.finish())
	assert.ErrorIs(t, err, xnberr.ErrUnknownReader)
}
