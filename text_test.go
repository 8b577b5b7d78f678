package xfile

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

func TestText_Lines(t *testing.T) {
	t.Parallel()

	for setName, s := range signatureSets() {
		s := s
		t.Run(setName, func(t *testing.T) {
			t.Parallel()

			c, _ := memContainer(t, s)
			require.NoError(t, c.WriteLines("l.x", []string{"a", "b", "c"}, nil))

			got, err := c.ReadLines("l.x", nil)
			require.NoError(t, err)
			assert.Equal(t, []string{"a", "b", "c"}, got)

			text, err := c.ReadText("l.x", nil)
			require.NoError(t, err)
			assert.Equal(t, "a\nb\nc", text)
		})
	}
}

func TestText_NoLineEndingNormalization(t *testing.T) {
	t.Parallel()

	c, _ := memContainer(t, DefaultSignatureSet())
	require.NoError(t, c.WriteLines("crlf.x", []string{"a\r", "", "b"}, nil))

	got, err := c.ReadLines("crlf.x", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a\r", "", "b"}, got)

	require.NoError(t, c.WriteLines("none.x", nil, nil))
	got, err = c.ReadLines("none.x", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{""}, got)
}

func TestText_Encodings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		encoding string
		text     string
		wantRaw  []byte
	}{
		{name: "utf-8", encoding: "utf-8", text: "héllo ✓", wantRaw: []byte("héllo ✓")},
		{name: "default", encoding: "", text: "plain", wantRaw: []byte("plain")},
		{name: "windows-1252", encoding: "windows-1252", text: "café", wantRaw: []byte{'c', 'a', 'f', 0xE9}},
		{name: "utf-16le", encoding: "utf-16le", text: "hi", wantRaw: []byte{'h', 0, 'i', 0}},
		{name: "literal replacement char", encoding: "utf-8", text: "a\uFFFDb", wantRaw: []byte("a\uFFFDb")},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			enc, err := LookupEncoding(tt.encoding)
			require.NoError(t, err)

			c, _ := memContainer(t, DefaultSignatureSet())
			require.NoError(t, c.WriteText("t.x", tt.text, enc))

			raw, err := c.ReadAll("t.x")
			require.NoError(t, err)
			assert.Equal(t, tt.wantRaw, raw)

			got, err := c.ReadText("t.x", enc)
			require.NoError(t, err)
			assert.Equal(t, tt.text, got)
		})
	}
}

func TestText_DecodeError(t *testing.T) {
	t.Parallel()

	c, _ := memContainer(t, DefaultSignatureSet())
	require.NoError(t, c.WriteAll("bad.x", []byte{0xff, 0xfe, 'A'}))

	_, err := c.ReadText("bad.x", unicode.UTF8)
	require.ErrorIs(t, err, ErrDecode)

	_, err = c.ReadLines("bad.x", nil)
	require.ErrorIs(t, err, ErrDecode)
}

func TestText_EncodeError(t *testing.T) {
	t.Parallel()

	enc, err := LookupEncoding("windows-1252")
	require.NoError(t, err)

	c, fsys := memContainer(t, DefaultSignatureSet())
	err = c.WriteText("e.x", "check ✓", enc)
	require.ErrorIs(t, err, ErrEncode)

	exists, err := afero.Exists(fsys, "e.x")
	require.NoError(t, err)
	assert.False(t, exists, "nothing is written when encoding fails")
}

func TestText_AppendText(t *testing.T) {
	t.Parallel()

	c, _ := memContainer(t, DefaultSignatureSet())
	require.NoError(t, c.WriteText("a.x", "one", nil))
	require.NoError(t, c.AppendText("a.x", "\ntwo", nil))

	got, err := c.ReadLines("a.x", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, got)
}

func TestText_Errors(t *testing.T) {
	t.Parallel()

	_, err := LookupEncoding("no-such-encoding")
	require.Error(t, err)

	c, _ := memContainer(t, DefaultSignatureSet())
	_, err = c.ReadText("missing.x", nil)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, c.AppendText("missing.x", "x", nil), ErrNotFound)
}

func TestText_FreeFunctions(t *testing.T) {
	t.Parallel()

	s := HeaderOnlySignatureSet()
	path := t.TempDir() + "/free.x"

	require.NoError(t, WriteLines(s, path, []string{"x", "y"}, nil))
	lines, err := ReadLines(s, path, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, lines)

	require.NoError(t, WriteText(s, path, "z", nil))
	text, err := ReadText(s, path, nil)
	require.NoError(t, err)
	assert.Equal(t, "z", text)
}
