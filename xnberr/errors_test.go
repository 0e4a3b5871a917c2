package xnberr_test

import (
	"errors"
	"testing"

	"github.com/relicdump/xnb/xnberr"
	"github.com/stretchr/testify/assert"
)

func TestIOErrorUnwrap(t *testing.T) {
	wrapped := xnberr.NewIOError(xnberr.ErrIO, "reading header")
	assert.True(t, errors.Is(wrapped, xnberr.ErrIO))
	assert.Contains(t, wrapped.Error(), "reading header")
}

func TestErrorUnwrap(t *testing.T) {
	wrapped := xnberr.NewError(xnberr.ErrUnknownReader, "Reader=\"Foo\"", "content_reader.readManifest")
	assert.True(t, errors.Is(wrapped, xnberr.ErrUnknownReader))
	assert.Contains(t, wrapped.Error(), "content_reader.readManifest")
	assert.Contains(t, wrapped.Error(), "Foo")
}

func TestErrorDistinctSentinels(t *testing.T) {
	wrapped := xnberr.NewError(xnberr.ErrBadTypeId, "", "")
	assert.False(t, errors.Is(wrapped, xnberr.ErrSizeMismatch))
}
