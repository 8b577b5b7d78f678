package xfile

import (
	"encoding/hex"
	"fmt"
	"strings"
)

type Mode byte

const (
	ModeHeaderOnly Mode = iota
	ModeFooter

	modeCount
)

func (m Mode) IsValid() bool {
	return m < modeCount
}

func (m Mode) String() string {
	switch m {
	case ModeHeaderOnly:
		return "header-only"
	case ModeFooter:
		return "footer"
	}
	return fmt.Sprintf("Mode(%d)", byte(m))
}

const SignatureSize = 8

type Signature [SignatureSize]byte

var (
	DefaultHeader = Signature{0x2A, 0x07, 0x0B, 0x0F, 0x5A, 0x01, 0x00, 0x08}
	DefaultFooter = Signature{0x08, 0x00, 0x01, 0x5A, 0x0F, 0x0B, 0x07, 0x2A}
)

// ParseSignature copies b into a Signature. b must be exactly SignatureSize
// bytes long.
func ParseSignature(b []byte) (s Signature, err error) {
	if len(b) != len(s) {
		return s, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidSignatureLength, len(b), len(s))
	}
	copy(s[:], b)
	return s, nil
}

// ParseHexSignature accepts hex digits optionally separated by spaces,
// colons or dashes, e.g. "2a:07:0b:0f:5a:01:00:08".
func ParseHexSignature(str string) (Signature, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', ':', '-', '\t':
			return -1
		}
		return r
	}, strings.TrimPrefix(strings.TrimSpace(str), "0x"))
	b, err := hex.DecodeString(clean)
	if err != nil {
		return Signature{}, fmt.Errorf("parse signature %q: %w", str, err)
	}
	return ParseSignature(b)
}

func (s Signature) Reverse() (r Signature) {
	for i, b := range s {
		r[len(r)-1-i] = b
	}
	return
}

func (s Signature) String() string {
	return hex.EncodeToString(s[:])
}

// SignatureSet holds the header signature and, in footer mode, the footer
// signature a container is framed with. The zero value is not usable; build
// one with NewSignatureSet or a preset.
type SignatureSet struct {
	header Signature
	footer Signature
	mode   Mode
}

// NewSignatureSet builds a SignatureSet. A nil header selects DefaultHeader.
// A nil footer selects ModeHeaderOnly; otherwise the set is in ModeFooter.
func NewSignatureSet(header, footer []byte) (SignatureSet, error) {
	s := SignatureSet{header: DefaultHeader}
	if header != nil {
		h, err := ParseSignature(header)
		if err != nil {
			return SignatureSet{}, fmt.Errorf("header: %w", err)
		}
		s.header = h
	}
	if footer != nil {
		f, err := ParseSignature(footer)
		if err != nil {
			return SignatureSet{}, fmt.Errorf("footer: %w", err)
		}
		s.footer = f
		s.mode = ModeFooter
	}
	return s, nil
}

func MustSignatureSet(header, footer []byte) SignatureSet {
	s, err := NewSignatureSet(header, footer)
	if err != nil {
		panic(err)
	}
	return s
}

// DefaultSignatureSet is footer mode with DefaultHeader and DefaultFooter.
func DefaultSignatureSet() SignatureSet {
	return SignatureSet{header: DefaultHeader, footer: DefaultFooter, mode: ModeFooter}
}

func HeaderOnlySignatureSet() SignatureSet {
	return SignatureSet{header: DefaultHeader, mode: ModeHeaderOnly}
}

func (s SignatureSet) Header() Signature {
	return s.header
}

func (s SignatureSet) Footer() (Signature, bool) {
	if s.mode != ModeFooter {
		return Signature{}, false
	}
	return s.footer, true
}

func (s SignatureSet) Mode() Mode {
	return s.mode
}

func (s SignatureSet) HasFooter() bool {
	return s.mode == ModeFooter
}

// Overhead is the number of framing bytes, which is also the minimum
// size of a valid container.
func (s SignatureSet) Overhead() int64 {
	if s.HasFooter() {
		return 2 * SignatureSize
	}
	return SignatureSize
}

func (s SignatureSet) String() string {
	if f, ok := s.Footer(); ok {
		return fmt.Sprintf("%s header=%s footer=%s", s.mode, s.header, f)
	}
	return fmt.Sprintf("%s header=%s", s.mode, s.header)
}
