package xfile

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReaderAt struct{}

func (failingReaderAt) ReadAt([]byte, int64) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestWriter_Stream(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewWriter(&buf, DefaultSignatureSet())
	require.NoError(t, w.WriteHeader())
	_, err := w.Write([]byte("abc"))
	require.NoError(t, err)
	require.NoError(t, w.WriteFrom(strings.NewReader("defgh"), 3))
	require.NoError(t, w.WriteFooter())

	want := append(append(append([]byte{}, DefaultHeader[:]...), "abcdef"...), DefaultFooter[:]...)
	assert.Equal(t, want, buf.Bytes())

	err = w.WriteFrom(strings.NewReader("x"), 2)
	require.ErrorIs(t, err, io.ErrShortWrite)

	n := buf.Len()
	require.Error(t, w.WriteFrom(strings.NewReader("x"), -1))
	assert.Equal(t, n, buf.Len())
}

func TestWriter_HeaderOnlyFooterIsNoop(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf, HeaderOnlySignatureSet()).WriteAll([]byte("p")))
	assert.Equal(t, append(DefaultHeader[:], 'p'), buf.Bytes())
}

func TestReader_Payload(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := DefaultSignatureSet()
	require.NoError(t, NewWriter(&buf, s).WriteAll([]byte("streamed payload")))

	in := bytes.NewReader(buf.Bytes())
	require.True(t, IsContainerStream(s, in, in.Size()))

	r, err := NewReader(in, in.Size(), s)
	require.NoError(t, err)
	assert.EqualValues(t, len("streamed payload"), r.PayloadSize())

	got, err := io.ReadAll(r.Payload())
	require.NoError(t, err)
	assert.Equal(t, "streamed payload", string(got))

	got, err = r.ReadPayload()
	require.NoError(t, err)
	assert.Equal(t, "streamed payload", string(got))
}

func TestValidate(t *testing.T) {
	t.Parallel()

	s := DefaultSignatureSet()
	valid := append(append([]byte{}, DefaultHeader[:]...), DefaultFooter[:]...)

	tests := []struct {
		name    string
		in      io.ReaderAt
		size    int64
		wantErr error
	}{
		{name: "minimal", in: bytes.NewReader(valid), size: 16},
		{name: "empty", in: bytes.NewReader(nil), size: 0, wantErr: errTooShort},
		{name: "short", in: bytes.NewReader(valid[:15]), size: 15, wantErr: errTooShort},
		{name: "swapped", in: bytes.NewReader(append(DefaultFooter[:], DefaultHeader[:]...)), size: 16, wantErr: errHeaderMismatch},
		{name: "no footer", in: bytes.NewReader(append(DefaultHeader[:], DefaultHeader[:]...)), size: 16, wantErr: errFooterMismatch},
		{name: "size lies", in: bytes.NewReader(valid[:10]), size: 16, wantErr: ErrIO},
		{name: "read failure", in: failingReaderAt{}, size: 32, wantErr: ErrIO},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Validate(s, tt.in, tt.size)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
			assert.False(t, IsContainerStream(s, tt.in, tt.size))
		})
	}
}
