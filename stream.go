package xnb

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/relicdump/xnb/xnberr"
)

// Stream reads the little-endian primitives, variable-length integers and
// length-prefixed text that make up an XNB file, on top of a seekable
// byte source. It keeps no buffering of its own beyond a small scratch
// array, since ContentReader reads forward through the file exactly once
// per object.
type Stream struct {
	r     io.ReadSeeker
	pos   int64
	fixed [8]byte
}

// NewStream wraps r for primitive decoding. r's current position is taken
// as offset zero for Position().
func NewStream(r io.ReadSeeker) *Stream {
	return &Stream{r: r}
}

// Position returns the number of bytes read so far.
func (s *Stream) Position() int64 { return s.pos }

// Size returns the total length of the underlying source.
func (s *Stream) Size() (int64, error) {
	cur, err := s.r.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, xnberr.NewIOError(err, "Stream.Size")
	}
	end, err := s.r.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, xnberr.NewIOError(err, "Stream.Size")
	}
	if _, err := s.r.Seek(cur, io.SeekStart); err != nil {
		return 0, xnberr.NewIOError(err, "Stream.Size")
	}
	return end, nil
}

func (s *Stream) readFull(buff []byte) error {
	n, err := io.ReadFull(s.r, buff)
	s.pos += int64(n)
	if err != nil {
		return xnberr.NewIOError(err, "Stream.readFull")
	}
	return nil
}

// ReadBytes returns exactly n raw bytes.
func (s *Stream) ReadBytes(n int) ([]byte, error) {
	buff := make([]byte, n)
	if err := s.readFull(buff); err != nil {
		return nil, err
	}
	return buff, nil
}

// ReadU8 reads one unsigned byte.
func (s *Stream) ReadU8() (uint8, error) {
	if err := s.readFull(s.fixed[:1]); err != nil {
		return 0, err
	}
	return s.fixed[0], nil
}

// ReadU16 reads a little-endian uint16.
func (s *Stream) ReadU16() (uint16, error) {
	if err := s.readFull(s.fixed[:2]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(s.fixed[:2]), nil
}

// ReadU32 reads a little-endian uint32.
func (s *Stream) ReadU32() (uint32, error) {
	if err := s.readFull(s.fixed[:4]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(s.fixed[:4]), nil
}

// ReadU64 reads a little-endian uint64.
func (s *Stream) ReadU64() (uint64, error) {
	if err := s.readFull(s.fixed[:8]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(s.fixed[:8]), nil
}

// ReadI8 reads a two's-complement signed byte.
func (s *Stream) ReadI8() (int8, error) {
	v, err := s.ReadU8()
	return int8(v), err
}

// ReadI16 reads a two's-complement little-endian int16.
func (s *Stream) ReadI16() (int16, error) {
	v, err := s.ReadU16()
	return int16(v), err
}

// ReadI32 reads a two's-complement little-endian int32.
func (s *Stream) ReadI32() (int32, error) {
	v, err := s.ReadU32()
	return int32(v), err
}

// ReadI64 reads a two's-complement little-endian int64.
func (s *Stream) ReadI64() (int64, error) {
	v, err := s.ReadU64()
	return int64(v), err
}

// ReadF32 reads an IEEE-754 binary32, little-endian.
func (s *Stream) ReadF32() (float32, error) {
	v, err := s.ReadU32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadF64 reads an IEEE-754 binary64, little-endian.
func (s *Stream) ReadF64() (float64, error) {
	v, err := s.ReadU64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// ReadBool reads one byte: zero is false, any other value is true.
func (s *Stream) ReadBool() (bool, error) {
	v, err := s.ReadU8()
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// ReadChar reads one UTF-8 encoded Unicode scalar value. Unlike the
// format's original source, which accumulates into a 16-bit carrier and
// silently truncates code points above U+FFFF, this widens the carrier
// to a full rune so astral-plane characters round-trip correctly.
func (s *Stream) ReadChar() (rune, error) {
	lead, err := s.ReadU8()
	if err != nil {
		return 0, err
	}

	if lead&0x80 == 0 {
		return rune(lead), nil
	}

	n := 0
	for b := lead; b&0x80 != 0; b <<= 1 {
		n++
	}
	if n < 2 || n > 4 {
		return 0, xnberr.NewError(xnberr.ErrBadUTF8, "", "Stream.ReadChar")
	}

	value := rune(lead & (0x7F >> uint(n)))

	for i := 0; i < n-1; i++ {
		cont, err := s.ReadU8()
		if err != nil {
			return 0, err
		}
		if cont&0xC0 != 0x80 {
			return 0, xnberr.NewError(xnberr.ErrBadUTF8, "", "Stream.ReadChar")
		}
		value = value<<6 | rune(cont&0x3F)
	}

	return value, nil
}

// ReadVaruint reads a 7-bit little-endian variable-length unsigned
// integer: each byte contributes its low 7 bits, and the high bit
// signals that another byte follows. No cap is placed on the number of
// continuation bytes; a padded encoding whose high bytes are all zero
// still round-trips, it just stops contributing once shift reaches the
// width of result.
func (s *Stream) ReadVaruint() (uint32, error) {
	var result uint32
	var shift uint

	for {
		b, err := s.ReadU8()
		if err != nil {
			return 0, err
		}

		result |= uint32(b&0x7F) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}
}

// ReadString reads a ReadVaruint length L, the number of UTF-8 bytes that
// follow, then decodes characters until the stream offset has advanced
// by exactly L bytes.
func (s *Stream) ReadString() (string, error) {
	length, err := s.ReadVaruint()
	if err != nil {
		return "", err
	}

	start := s.pos
	end := start + int64(length)

	var out []rune
	for s.pos < end {
		c, err := s.ReadChar()
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}

	if s.pos != end {
		return "", xnberr.NewError(xnberr.ErrBadUTF8, "string length did not align on a character boundary", "Stream.ReadString")
	}

	return string(out), nil
}
