package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math/bits"
	"runtime"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

type zstdInfo struct {
	memory        *uint64
	level         zstd.EncoderLevel
	threads       int
	memoryPercent bool
	forceAuto     bool
}

// parseZstd reads the --zstd option: "auto" or a comma separated list of
// l=low|mid|high, t=<threads>, m=<bytes>[K|M|G][B] or m=<percent>%.
// An empty string or "off" disables compression and yields nil.
func parseZstd(s string) (*zstdInfo, error) {
	switch s {
	case "", "off":
		return nil, nil
	case "auto":
		return &zstdInfo{forceAuto: true}, nil
	}
	i := &zstdInfo{
		level:   zstd.SpeedDefault,
		threads: 1,
	}
	for _, opt := range strings.Split(s, ",") {
		if opt == "auto" {
			return &zstdInfo{forceAuto: true}, nil
		}
		key, value, ok := strings.Cut(opt, "=")
		if !ok {
			return nil, fmt.Errorf("expected '=' after '%s'", key)
		}
		switch key {
		case "l":
			switch value {
			case "low":
				i.level = zstd.SpeedFastest
			case "mid":
				i.level = zstd.SpeedDefault
			case "high":
				i.level = zstd.SpeedBetterCompression
			default:
				return nil, fmt.Errorf("expected 'low', 'mid' or 'high' after 'l=', got %q", value)
			}
		case "t":
			n, err := strconv.ParseUint(value, 10, 8)
			if err != nil {
				return nil, fmt.Errorf("expected number after 't=', got %q", value)
			}
			i.threads = int(n)
		case "m":
			if err := i.parseMemory(value); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("expected 'l', 't', 'm' or 'auto', got %q", key)
		}
	}
	return i, nil
}

func (i *zstdInfo) parseMemory(value string) error {
	digits := strings.TrimRight(value, "%KMGB")
	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return fmt.Errorf("expected number after 'm=', got %q", value)
	}
	switch suffix := strings.TrimSuffix(value[len(digits):], "B"); suffix {
	case "%":
		i.memoryPercent = true
	case "G":
		n <<= 30
	case "M":
		n <<= 20
	case "K":
		n <<= 10
	case "":
	default:
		return fmt.Errorf("unknown memory suffix %q", suffix)
	}
	i.memory = &n
	return nil
}

// validateParameters resolves auto and percentage settings against the
// host. size is the expected input size, or negative when unknown.
func (i *zstdInfo) validateParameters(size int64, isWrite bool) error {
	freeMem, err := mem.VirtualMemory()
	if err != nil {
		return fmt.Errorf("query memory: %w", err)
	}
	cpus, err := cpu.Counts(true)
	if err != nil || cpus < 1 {
		cpus = runtime.NumCPU()
	}

	if i.forceAuto {
		maxThreadsByMem := max(1, int(freeMem.Available/(10<<20))) // 10MB per thread
		i.threads = min(cpus, maxThreadsByMem, 255)

		if isWrite {
			switch {
			case size < 0:
				i.level = zstd.SpeedDefault
			case size < 1<<20:
				i.level = zstd.SpeedFastest
			case size < 10<<20:
				i.level = zstd.SpeedDefault
			default:
				i.level = zstd.SpeedBetterCompression
			}
		}
		m := uint64(float64(freeMem.Available) * 0.7)
		if isWrite && size < 0 {
			m = 8 << 20
		}
		i.memory = &m
	} else {
		if i.threads == 0 {
			i.threads = cpus
		} else {
			i.threads = min(cpus, i.threads)
		}
		if i.memoryPercent {
			i.memoryPercent = false
			*i.memory = uint64(float64(freeMem.Available) / 100 * min(float64(*i.memory), 100))
		}
	}
	if i.memory == nil {
		m := uint64(4 << 30) // 4GB
		i.memory = &m
	}
	if isWrite {
		// window size must be a power of two
		n := *i.memory
		if size >= 0 && uint64(size) < n {
			// no point in a window larger than the input
			n = uint64(size) << 1
		}
		if n != 0 {
			n = 1 << (bits.Len64(n) - 1)
		}
		*i.memory = min(zstd.MaxWindowSize, max(zstd.MinWindowSize, n))
	} else {
		i.threads = min(i.threads, 4)
		*i.memory = max(1<<10, *i.memory)
	}
	return nil
}

func (i *zstdInfo) encoderOptions(size int64) ([]zstd.EOption, error) {
	if err := i.validateParameters(size, true); err != nil {
		return nil, err
	}
	return []zstd.EOption{
		zstd.WithWindowSize(int(*i.memory)),
		zstd.WithEncoderLevel(i.level),
		zstd.WithEncoderConcurrency(i.threads),
	}, nil
}

// wrapWriter returns w unchanged when i is nil.
func (i *zstdInfo) wrapWriter(w io.Writer, size int64) (io.WriteCloser, error) {
	if i == nil {
		return nopWriteCloser{w}, nil
	}
	opts, err := i.encoderOptions(size)
	if err != nil {
		return nil, err
	}
	return zstd.NewWriter(w, opts...)
}

// compress encodes b as a single zstd frame, or returns it unchanged when i
// is nil.
func (i *zstdInfo) compress(b []byte) ([]byte, error) {
	if i == nil {
		return b, nil
	}
	opts, err := i.encoderOptions(int64(len(b)))
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(nil, opts...)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(b, nil), nil
}

// zstdMagic starts every zstd frame.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// wrapReader decodes r as zstd. When i is nil the first bytes of r are
// sniffed instead, and r is decoded with auto settings only if it starts with
// a zstd frame. The bool reports whether the result is a decoder.
// Concatenated frames, as produced by repeated appends, decode as one stream.
func (i *zstdInfo) wrapReader(r io.Reader) (io.ReadCloser, bool, error) {
	if i == nil {
		br := bufio.NewReader(r)
		if magic, _ := br.Peek(len(zstdMagic)); !bytes.Equal(magic, zstdMagic) {
			return io.NopCloser(br), false, nil
		}
		r = br
		i = &zstdInfo{forceAuto: true}
	}
	if err := i.validateParameters(-1, false); err != nil {
		return nil, false, err
	}
	zr, err := zstd.NewReader(
		r,
		zstd.WithDecoderConcurrency(i.threads),
		zstd.WithDecoderMaxMemory(*i.memory),
	)
	if err != nil {
		return nil, false, err
	}
	return zr.IOReadCloser(), true, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}
