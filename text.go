package xfile

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

const lineSeparator = "\n"

// LookupEncoding resolves a WHATWG encoding label such as "utf-8",
// "utf-16le" or "windows-1252". An empty name means UTF-8.
func LookupEncoding(name string) (encoding.Encoding, error) {
	if name == "" {
		return unicode.UTF8, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("encoding %q: %w", name, err)
	}
	return enc, nil
}

func encodingOrDefault(enc encoding.Encoding) encoding.Encoding {
	if enc == nil {
		return unicode.UTF8
	}
	return enc
}

func encodeText(text string, enc encoding.Encoding) ([]byte, error) {
	b, err := encodingOrDefault(enc).NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return b, nil
}

// decodeText is strict: x/text decoders substitute U+FFFD for bytes they
// cannot map, so any replacement character in the output must survive a
// round trip back to the input bytes.
func decodeText(b []byte, enc encoding.Encoding) (string, error) {
	enc = encodingOrDefault(enc)
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if bytes.ContainsRune(out, utf8.RuneError) {
		back, err := enc.NewEncoder().Bytes(out)
		if err != nil || !bytes.Equal(back, b) {
			return "", fmt.Errorf("%w: payload is not valid in the requested encoding", ErrDecode)
		}
	}
	return string(out), nil
}

// WriteText encodes text with enc (UTF-8 when nil) and writes it as the
// container payload.
func (c Container) WriteText(path, text string, enc encoding.Encoding) error {
	b, err := encodeText(text, enc)
	if err != nil {
		return pathError("write", path, err)
	}
	return c.WriteAll(path, b)
}

func (c Container) AppendText(path, text string, enc encoding.Encoding) error {
	b, err := encodeText(text, enc)
	if err != nil {
		return pathError("append", path, err)
	}
	return c.Append(path, b)
}

func (c Container) ReadText(path string, enc encoding.Encoding) (string, error) {
	b, err := c.ReadAll(path)
	if err != nil {
		return "", err
	}
	text, err := decodeText(b, enc)
	if err != nil {
		return "", pathError("read", path, err)
	}
	return text, nil
}

// WriteLines joins lines with a single "\n"; no trailing separator is
// written.
func (c Container) WriteLines(path string, lines []string, enc encoding.Encoding) error {
	return c.WriteText(path, strings.Join(lines, lineSeparator), enc)
}

// ReadLines splits the payload on "\n". An empty payload yields one empty
// line, mirroring WriteLines([]string{""}).
func (c Container) ReadLines(path string, enc encoding.Encoding) ([]string, error) {
	text, err := c.ReadText(path, enc)
	if err != nil {
		return nil, err
	}
	return strings.Split(text, lineSeparator), nil
}

func WriteText(s SignatureSet, path, text string, enc encoding.Encoding) error {
	return New(s).WriteText(path, text, enc)
}

func ReadText(s SignatureSet, path string, enc encoding.Encoding) (string, error) {
	return New(s).ReadText(path, enc)
}

func WriteLines(s SignatureSet, path string, lines []string, enc encoding.Encoding) error {
	return New(s).WriteLines(path, lines, enc)
}

func ReadLines(s SignatureSet, path string, enc encoding.Encoding) ([]string, error) {
	return New(s).ReadLines(path, enc)
}
