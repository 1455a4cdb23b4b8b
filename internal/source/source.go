// Package source opens the text stream bio-read transforms: a file or
// standard input, transparently decompressing gzip and zstd streams.
package source

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Stdin is the name that selects standard input.
const Stdin = "-"

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Compression identifies the detected stream encoding.
type Compression string

const (
	None Compression = "none"
	Gzip Compression = "gzip"
	Zstd Compression = "zstd"
)

// Stream is an opened input.
type Stream struct {
	io.Reader
	Name        string
	Compression Compression
	closers     []func() error
}

// Close releases the decoder and the underlying file, if any.
func (s *Stream) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Open opens name, or stdin when name is empty or Stdin. Compressed input is
// detected from its leading magic bytes.
func Open(name string, stdin io.Reader) (*Stream, error) {
	s := &Stream{Name: name}
	var raw io.Reader = stdin
	if name == "" || name == Stdin {
		s.Name = "stdin"
	} else {
		f, err := os.Open(name)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		raw = f
		s.closers = append(s.closers, f.Close)
	}

	if err := s.wrap(raw, name == "" || name == Stdin); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Stream) wrap(raw io.Reader, interactive bool) error {
	br := bufio.NewReader(raw)
	head, err := sniff(br, interactive)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read %s: %w", s.Name, err)
	}

	switch {
	case bytes.HasPrefix(head, gzipMagic):
		zr, err := gzip.NewReader(br)
		if err != nil {
			return fmt.Errorf("failed to open gzip stream %s: %w", s.Name, err)
		}
		s.Reader, s.Compression = zr, Gzip
		s.closers = append(s.closers, zr.Close)
	case bytes.HasPrefix(head, zstdMagic):
		zr, err := zstd.NewReader(br, zstd.WithDecoderConcurrency(1), zstd.WithDecoderLowmem(true))
		if err != nil {
			return fmt.Errorf("failed to open zstd stream %s: %w", s.Name, err)
		}
		rc := zr.IOReadCloser()
		s.Reader, s.Compression = rc, Zstd
		s.closers = append(s.closers, rc.Close)
	default:
		s.Reader, s.Compression = br, None
	}
	return nil
}

// sniff returns the leading bytes used to detect compression. On an
// interactive stream it never waits for more than the first read delivers,
// so a short first line is not held back.
func sniff(br *bufio.Reader, interactive bool) ([]byte, error) {
	if !interactive {
		return br.Peek(len(zstdMagic))
	}
	if _, err := br.Peek(1); err != nil {
		return nil, err
	}
	return br.Peek(min(len(zstdMagic), br.Buffered()))
}
