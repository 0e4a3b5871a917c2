package dump_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/relicdump/xnb/dump"
	"github.com/stretchr/testify/assert"
)

func TestFieldIndentsUnderSection(t *testing.T) {
	var buf bytes.Buffer
	l := dump.NewLogger(&buf, 0)

	done := l.Section("Texture2DReader")
	l.Field("Width", 128)
	done()
	l.Field("Next", "sibling")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, "Texture2DReader:", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "  Width"))
	assert.False(t, strings.HasPrefix(lines[2], " "))
}

func TestBytesCollapsesOverLimit(t *testing.T) {
	var buf bytes.Buffer
	l := dump.NewLogger(&buf, 4)

	l.Bytes("MipData", []byte{1, 2, 3, 4, 5})
	assert.Contains(t, buf.String(), "<5 bytes>")
}

func TestBytesInlineUnderLimit(t *testing.T) {
	var buf bytes.Buffer
	l := dump.NewLogger(&buf, 4)

	l.Bytes("MipData", []byte{1, 2})
	assert.NotContains(t, buf.String(), "bytes>")
}

func TestNullField(t *testing.T) {
	var buf bytes.Buffer
	l := dump.NewLogger(&buf, 0)

	l.Null("Tag")
	assert.Contains(t, buf.String(), "Tag: null")
}
