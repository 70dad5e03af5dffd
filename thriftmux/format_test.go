package thriftmux_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flashcatcloud/thriftmux/thriftmux"
)

func newFormats(t *testing.T) *thriftmux.FormatSet {
	t.Helper()
	fs, err := thriftmux.DefaultFormats()
	require.NoError(t, err)
	return fs
}

func TestFormatSetPickDefaultsOnEmptyContentType(t *testing.T) {
	fs := newFormats(t)
	f, ok := fs.Pick("")
	require.True(t, ok)
	assert.Equal(t, fs.Default().Name, f.Name)
}

func TestFormatSetPickExactMediaType(t *testing.T) {
	fs := newFormats(t)
	f, ok := fs.Pick("application/vnd.apache.thrift.compact")
	require.True(t, ok)
	assert.Equal(t, "compact", f.Name)
}

func TestFormatSetPickWithParameters(t *testing.T) {
	fs := newFormats(t)
	f, ok := fs.Pick("application/x-thrift; charset=utf-8")
	require.True(t, ok)
	assert.Equal(t, "binary", f.Name)
}

func TestFormatSetPickPermissiveFallback(t *testing.T) {
	fs := newFormats(t)

	f, ok := fs.Pick("text/plain")
	require.True(t, ok)
	assert.Equal(t, fs.Default().Name, f.Name)

	f, ok = fs.Pick("application/octet-stream")
	require.True(t, ok)
	assert.Equal(t, fs.Default().Name, f.Name)
}

func TestFormatSetPickRejectsUnknownMediaType(t *testing.T) {
	fs := newFormats(t)
	_, ok := fs.Pick("application/xml")
	assert.False(t, ok)
}

func TestAcceptsHeaderNoHeaderAcceptsAnything(t *testing.T) {
	assert.True(t, thriftmux.AcceptsHeader(thriftmux.BinaryFormat, nil))
}

func TestAcceptsHeaderWildcard(t *testing.T) {
	assert.True(t, thriftmux.AcceptsHeader(thriftmux.BinaryFormat, []string{"*/*"}))
}

func TestAcceptsHeaderMismatch(t *testing.T) {
	assert.False(t, thriftmux.AcceptsHeader(thriftmux.BinaryFormat, []string{"application/vnd.apache.thrift.json"}))
}

func TestAcceptsHeaderMultiValueCommaSeparated(t *testing.T) {
	accept := []string{"text/html, application/x-thrift;q=0.9"}
	assert.True(t, thriftmux.AcceptsHeader(thriftmux.BinaryFormat, accept))
}

func TestNewFormatSetRejectsUnnamedDefault(t *testing.T) {
	_, err := thriftmux.NewFormatSet(thriftmux.Format{})
	assert.Error(t, err)
}

func TestNewFormatSetDropsDuplicateNames(t *testing.T) {
	fs, err := thriftmux.NewFormatSet(thriftmux.BinaryFormat, thriftmux.BinaryFormat, thriftmux.CompactFormat)
	require.NoError(t, err)
	assert.Len(t, fs.Allowed(), 2)
}

func TestConfiguredFormatsHonorsDefaultAndEnabledNames(t *testing.T) {
	fs, err := thriftmux.ConfiguredFormats("compact", []string{"binary", "compact"})
	require.NoError(t, err)
	assert.Equal(t, "compact", fs.Default().Name)
	assert.Len(t, fs.Allowed(), 2)

	_, ok := fs.Pick("application/vnd.apache.thrift.json")
	assert.False(t, ok, "json was not in EnabledFormats, so it must not negotiate")
}

func TestConfiguredFormatsRejectsUnknownDefault(t *testing.T) {
	_, err := thriftmux.ConfiguredFormats("yaml", []string{"binary"})
	assert.Error(t, err)
}

func TestConfiguredFormatsRejectsUnknownEnabledName(t *testing.T) {
	_, err := thriftmux.ConfiguredFormats("binary", []string{"binary", "yaml"})
	assert.Error(t, err)
}
