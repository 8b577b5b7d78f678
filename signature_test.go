package xfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSignatureSet(t *testing.T) {
	t.Parallel()

	custom := []byte("ABCDEFGH")

	tests := []struct {
		name       string
		header     []byte
		footer     []byte
		wantHeader Signature
		wantFooter Signature
		wantMode   Mode
		wantErr    error
	}{
		{
			name:       "defaults to header only",
			wantHeader: DefaultHeader,
			wantMode:   ModeHeaderOnly,
		},
		{
			name:       "explicit footer",
			footer:     DefaultFooter[:],
			wantHeader: DefaultHeader,
			wantFooter: DefaultFooter,
			wantMode:   ModeFooter,
		},
		{
			name:       "custom header",
			header:     custom,
			wantHeader: Signature(custom),
			wantMode:   ModeHeaderOnly,
		},
		{
			name:    "short header",
			header:  []byte{1, 2, 3},
			wantErr: ErrInvalidSignatureLength,
		},
		{
			name:    "long footer",
			footer:  make([]byte, 9),
			wantErr: ErrInvalidSignatureLength,
		},
		{
			name:    "empty but present footer",
			footer:  []byte{},
			wantErr: ErrInvalidSignatureLength,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, err := NewSignatureSet(tt.header, tt.footer)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHeader, s.Header())
			assert.Equal(t, tt.wantMode, s.Mode())
			f, ok := s.Footer()
			assert.Equal(t, tt.wantMode == ModeFooter, ok)
			assert.Equal(t, tt.wantFooter, f)
		})
	}
}

func TestDefaultSignatureSet(t *testing.T) {
	t.Parallel()

	s := DefaultSignatureSet()
	assert.True(t, s.HasFooter())
	assert.Equal(t, DefaultHeader, s.Header())
	f, ok := s.Footer()
	require.True(t, ok)
	assert.Equal(t, DefaultHeader.Reverse(), f)
	assert.EqualValues(t, 16, s.Overhead())

	h := HeaderOnlySignatureSet()
	assert.False(t, h.HasFooter())
	assert.EqualValues(t, 8, h.Overhead())
}

func TestParseHexSignature(t *testing.T) {
	t.Parallel()

	for _, in := range []string{
		"2a070b0f5a010008",
		"0x2A070B0F5A010008",
		"2a:07:0b:0f:5a:01:00:08",
		"2A 07 0B 0F 5A 01 00 08",
	} {
		s, err := ParseHexSignature(in)
		require.NoError(t, err, in)
		assert.Equal(t, DefaultHeader, s, in)
	}

	_, err := ParseHexSignature("2a07")
	require.ErrorIs(t, err, ErrInvalidSignatureLength)

	_, err = ParseHexSignature("zz")
	require.Error(t, err)
}

func TestSignatureString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2a070b0f5a010008", DefaultHeader.String())
	assert.Equal(t, "footer", ModeFooter.String())
	assert.False(t, Mode(7).IsValid())
}
