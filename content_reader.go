package xnb

import (
	"fmt"
	"io"
	"strings"

	"github.com/relicdump/xnb/dump"
	"github.com/relicdump/xnb/typereader"
	"github.com/relicdump/xnb/xnberr"
	"go.uber.org/zap"
)

const (
	flagGraphicsProfileHiDef = 1 << 0
	flagCompressed           = 1 << 7
)

// Header is the fixed-layout preamble read in Phase H. Platform and
// Version are informational: unrecognized values are logged as warnings
// rather than treated as fatal, per the format's own tolerance for
// content built by a newer or differently-configured pipeline.
type Header struct {
	Platform             byte
	Version              uint8
	GraphicsProfileHiDef bool
	Compressed           bool
	DeclaredSize         uint32
}

var knownPlatforms = map[byte]bool{'w': true, 'm': true, 'x': true}

// ContentReader decodes one XNB file: header, type manifest, primary
// object, and shared-resource tail, writing what it finds to a
// dump.Logger as it goes. It implements typereader.Engine so built-in
// and generic readers can dispatch back into it for nested
// objects/values.
type ContentReader struct {
	cfg    *Config
	stream *Stream
	log    *zap.Logger
	sink   *dump.Logger
	table  []typereader.Reader
}

// NewContentReader returns a ContentReader for r, configured by cfg (nil
// uses defaults) and logging diagnostics to log (nil discards them).
func NewContentReader(r io.ReadSeeker, cfg *Config, log *zap.Logger) *ContentReader {
	if log == nil {
		log = zap.NewNop()
	}
	return &ContentReader{
		cfg:    cfg.copyAndFill(),
		stream: NewStream(r),
		log:    log,
	}
}

// Parse runs all four phases - header, manifest, primary object, and
// shared-resource tail - writing the decoded structure to w as it goes.
// The listing is produced as a side effect of decoding: each object a
// reader dispatches into announces itself to the sink before Parse
// returns, so no intermediate value tree has to be built just to be
// printed afterward.
func (c *ContentReader) Parse(w io.Writer) error {
	c.sink = dump.NewLogger(w, c.cfg.MaxDumpBytes)

	header, end, err := c.readHeader()
	if err != nil {
		return err
	}

	if err := c.readManifest(); err != nil {
		return err
	}

	primaryDone := c.sink.Section("PrimaryObject")
	primary, err := c.ReadObject()
	if err != nil {
		return err
	}
	if primary == nil {
		c.sink.Null("PrimaryObject")
	}
	primaryDone()

	sharedCount, err := c.stream.ReadVaruint()
	if err != nil {
		return err
	}

	shared := make([]any, sharedCount)
	for i := range shared {
		sharedDone := c.sink.Section(fmt.Sprintf("SharedResource[%d]", i))
		v, err := c.ReadObject()
		if err != nil {
			return err
		}
		if v == nil {
			c.sink.Null(fmt.Sprintf("SharedResource[%d]", i))
		}
		sharedDone()
		shared[i] = v
	}

	if c.stream.Position() != end {
		return xnberr.NewError(xnberr.ErrSizeMismatch, "", "ContentReader.Parse")
	}

	_ = header
	return nil
}

// shortTypeName trims a qualified .NET type name down to its last
// namespace segment, for compact Section/Field labels - e.g.
// "Microsoft.Xna.Framework.Graphics.Texture2D" becomes "Texture2D".
func shortTypeName(qualified string) string {
	if i := strings.IndexAny(qualified, "`["); i >= 0 {
		qualified = qualified[:i]
	}
	if i := strings.LastIndexByte(qualified, '.'); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}

// readHeader implements Phase H.
func (c *ContentReader) readHeader() (Header, int64, error) {
	magic, err := c.stream.ReadBytes(3)
	if err != nil {
		return Header{}, 0, err
	}
	if magic[0] != 'X' || magic[1] != 'N' || magic[2] != 'B' {
		return Header{}, 0, xnberr.NewError(xnberr.ErrNotXnb, "", "ContentReader.readHeader")
	}

	platform, err := c.stream.ReadU8()
	if err != nil {
		return Header{}, 0, err
	}
	if !knownPlatforms[platform] {
		c.log.Warn("unrecognized target platform", zap.ByteString("platform", []byte{platform}))
	}

	version, err := c.stream.ReadU8()
	if err != nil {
		return Header{}, 0, err
	}
	if version != 5 {
		c.log.Warn("unexpected format version", zap.Uint8("version", version))
	}

	flags, err := c.stream.ReadU8()
	if err != nil {
		return Header{}, 0, err
	}

	header := Header{
		Platform:             platform,
		Version:              version,
		GraphicsProfileHiDef: flags&flagGraphicsProfileHiDef != 0,
		Compressed:           flags&flagCompressed != 0,
	}

	declaredSize, err := c.stream.ReadU32()
	if err != nil {
		return Header{}, 0, err
	}
	header.DeclaredSize = declaredSize

	fileSize, err := c.stream.Size()
	if err != nil {
		return Header{}, 0, err
	}

	end := int64(declaredSize)
	if end > fileSize {
		return Header{}, 0, xnberr.NewError(xnberr.ErrTruncated, "", "ContentReader.readHeader")
	}

	if header.Compressed {
		if _, err := c.stream.ReadU32(); err != nil {
			return Header{}, 0, err
		}
		return header, 0, xnberr.NewError(xnberr.ErrCompressedUnsupported, "", "ContentReader.readHeader")
	}

	return header, end, nil
}

// readManifest implements Phase M: register every entry, then invoke
// Initialize on all of them in a second pass, so a generic reader's
// Initialize can resolve a type introduced later in the same manifest.
func (c *ContentReader) readManifest() error {
	count, err := c.stream.ReadVaruint()
	if err != nil {
		return err
	}

	c.table = make([]typereader.Reader, 0, count)

	for i := uint32(0); i < count; i++ {
		name, err := c.stream.ReadString()
		if err != nil {
			return err
		}
		if _, err := c.stream.ReadI32(); err != nil { // reader version, unused
			return err
		}

		reader, err := c.cfg.Registry.GetByReaderName(name)
		if err != nil {
			return err
		}

		c.table = append(c.table, reader)
	}

	for _, reader := range c.table {
		if err := reader.Initialize(c.cfg.Registry); err != nil {
			return err
		}
	}

	return nil
}

// ReadObject implements typereader.Engine. A resolved, non-null object
// announces itself to the sink before its fields are decoded: a
// composite reader's own fields nest under a Section named after its
// target type, and a value-type reader reached polymorphically (an
// Object-typed slot that happens to hold a plain Int32 or String) logs
// a single Field. A null reference is left to the caller, which knows
// the field name the slot belongs to and can call Null itself.
func (c *ContentReader) ReadObject() (any, error) {
	tag, err := c.stream.ReadVaruint()
	if err != nil {
		return nil, err
	}
	if tag == 0 {
		return nil, nil
	}

	idx := int(tag) - 1
	if idx < 0 || idx >= len(c.table) {
		return nil, xnberr.NewError(xnberr.ErrBadTypeId, "", "ContentReader.ReadObject")
	}

	return c.dispatch(c.table[idx])
}

// ReadValueOrObject implements typereader.Engine.
func (c *ContentReader) ReadValueOrObject(reader typereader.Reader) (any, error) {
	if reader.IsValueType() {
		v, err := reader.Read(c)
		if err != nil {
			return nil, err
		}
		// A value-type reader can still yield nil - a NullableReader with
		// its "has value" flag unset - in which case it has already logged
		// its own Null and a generic Field here would just be noise.
		if v != nil {
			c.sink.Field(shortTypeName(reader.TargetType()), v)
		}
		return v, nil
	}
	return c.ReadObject()
}

// dispatch reads one resolved reader's value and announces it to the
// sink by the reader's own target type.
func (c *ContentReader) dispatch(reader typereader.Reader) (any, error) {
	if reader.IsValueType() {
		v, err := reader.Read(c)
		if err != nil {
			return nil, err
		}
		c.sink.Field(shortTypeName(reader.TargetType()), v)
		return v, nil
	}

	done := c.sink.Section(shortTypeName(reader.TargetType()))
	defer done()
	return reader.Read(c)
}

// ValidateTypeID implements typereader.Engine.
func (c *ContentReader) ValidateTypeID(expectedTargetType string) (any, error) {
	tag, err := c.stream.ReadVaruint()
	if err != nil {
		return nil, err
	}
	if tag == 0 {
		return nil, xnberr.NewError(xnberr.ErrBadTypeId, "expected "+expectedTargetType+", got null", "ContentReader.ValidateTypeID")
	}

	idx := int(tag) - 1
	if idx < 0 || idx >= len(c.table) {
		return nil, xnberr.NewError(xnberr.ErrBadTypeId, "", "ContentReader.ValidateTypeID")
	}

	reader := c.table[idx]
	if reader.TargetType() != expectedTargetType {
		return nil, xnberr.NewError(xnberr.ErrBadTypeId, "expected "+expectedTargetType+", got "+reader.TargetType(), "ContentReader.ValidateTypeID")
	}

	return c.dispatch(reader)
}

// ReadSharedResource implements typereader.Engine.
func (c *ContentReader) ReadSharedResource() (int, error) {
	idx, err := c.stream.ReadVaruint()
	if err != nil {
		return 0, err
	}
	return int(idx), nil
}

// Stream implements typereader.Engine.
func (c *ContentReader) Stream() typereader.StreamReader { return c.stream }

// Sink implements typereader.Engine.
func (c *ContentReader) Sink() *dump.Logger { return c.sink }
