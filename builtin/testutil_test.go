package builtin

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"

	"github.com/relicdump/xnb/dump"
	"github.com/relicdump/xnb/typereader"
	"github.com/relicdump/xnb/xnberr"
)

// fakeStream is a minimal typereader.StreamReader over an in-memory
// buffer, used so builtin readers can be exercised without pulling in
// the root package (which itself depends on builtin).
type fakeStream struct {
	r *bytes.Reader
}

func newFakeStream(data []byte) *fakeStream {
	return &fakeStream{r: bytes.NewReader(data)}
}

func (s *fakeStream) readFull(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(s.r, buf); err != nil {
		return nil, xnberr.NewIOError(err, "truncated fake stream")
	}
	return buf, nil
}

func (s *fakeStream) ReadU8() (uint8, error) {
	b, err := s.readFull(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}
func (s *fakeStream) ReadU16() (uint16, error) {
	b, err := s.readFull(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}
func (s *fakeStream) ReadU32() (uint32, error) {
	b, err := s.readFull(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}
func (s *fakeStream) ReadU64() (uint64, error) {
	b, err := s.readFull(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}
func (s *fakeStream) ReadI8() (int8, error) {
	v, err := s.ReadU8()
	return int8(v), err
}
func (s *fakeStream) ReadI16() (int16, error) {
	v, err := s.ReadU16()
	return int16(v), err
}
func (s *fakeStream) ReadI32() (int32, error) {
	v, err := s.ReadU32()
	return int32(v), err
}
func (s *fakeStream) ReadI64() (int64, error) {
	v, err := s.ReadU64()
	return int64(v), err
}
func (s *fakeStream) ReadF32() (float32, error) {
	v, err := s.ReadU32()
	return math.Float32frombits(v), err
}
func (s *fakeStream) ReadF64() (float64, error) {
	v, err := s.ReadU64()
	return math.Float64frombits(v), err
}
func (s *fakeStream) ReadBool() (bool, error) {
	v, err := s.ReadU8()
	return v != 0, err
}
func (s *fakeStream) ReadChar() (rune, error) {
	v, err := s.ReadU8()
	return rune(v), err
}
func (s *fakeStream) ReadVaruint() (uint32, error) {
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
func (s *fakeStream) ReadString() (string, error) {
	n, err := s.ReadVaruint()
	if err != nil {
		return "", err
	}
	b, err := s.readFull(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
func (s *fakeStream) ReadBytes(n int) ([]byte, error) {
	return s.readFull(n)
}
func (s *fakeStream) Position() int64 { return s.r.Size() - int64(s.r.Len()) }

// fakeEngine implements typereader.Engine with queued canned results for
// ReadObject, ValidateTypeID and non-value-type ReadValueOrObject calls
// (ReadSharedResource reads a varuint off the stream), so tests can
// exercise a single Reader's field order in isolation.
type fakeEngine struct {
	stream  *fakeStream
	objects []any
	sink    *dump.Logger
}

func newFakeEngine(data []byte, objects ...any) *fakeEngine {
	return &fakeEngine{stream: newFakeStream(data), objects: objects, sink: dump.NewLogger(io.Discard, 0)}
}

func (e *fakeEngine) ReadObject() (any, error) {
	if len(e.objects) == 0 {
		return nil, nil
	}
	v := e.objects[0]
	e.objects = e.objects[1:]
	return v, nil
}

func (e *fakeEngine) ReadValueOrObject(reader typereader.Reader) (any, error) {
	if reader.IsValueType() {
		return reader.Read(e)
	}
	return e.ReadObject()
}

func (e *fakeEngine) ValidateTypeID(string) (any, error) {
	return e.ReadObject()
}

func (e *fakeEngine) ReadSharedResource() (int, error) {
	return int(mustVaruint(e.stream)), nil
}

func mustVaruint(s *fakeStream) uint32 {
	v, err := s.ReadVaruint()
	if err != nil {
		return 0
	}
	return v
}

func (e *fakeEngine) Stream() typereader.StreamReader { return e.stream }
func (e *fakeEngine) Sink() *dump.Logger              { return e.sink }
