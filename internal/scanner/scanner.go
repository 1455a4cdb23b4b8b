// Package scanner splits a character stream into alternating word and
// separator runs without holding more than the current run in memory.
package scanner

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// ErrInput marks a failure reading the underlying stream.
var ErrInput = errors.New("input error")

// readBufferSize is the bufio buffer wrapped around the input.
const readBufferSize = 32 * 1024

// Scanner is a single-pass pull scanner. It peeks at most one encoded rune
// past the end of the current run.
type Scanner struct {
	r        *bufio.Reader
	delim    Classifier
	buf      []byte
	err      error
	maxToken int
}

// New returns a Scanner reading from r. A nil classifier selects IsDelimiter.
func New(r io.Reader, delim Classifier) *Scanner {
	if delim == nil {
		delim = IsDelimiter
	}
	return &Scanner{
		r:     bufio.NewReaderSize(r, readBufferSize),
		delim: delim,
	}
}

// Next returns the next token, or io.EOF when the stream is exhausted. After
// an error every further call returns the same error.
func (s *Scanner) Next() (Token, error) {
	if s.err != nil {
		return Token{}, s.err
	}

	s.buf = s.buf[:0]
	var kind Kind
	for {
		r, enc, err := s.peekRune()
		if err != nil {
			if err == io.EOF {
				break
			}
			s.err = fmt.Errorf("%w: %w", ErrInput, err)
			return Token{}, s.err
		}

		k := Word
		if s.delim(r) && !(r == utf8.RuneError && len(enc) == 1) {
			k = Separator
		}
		if len(s.buf) == 0 {
			kind = k
		} else if k != kind {
			break
		}

		s.buf = append(s.buf, enc...)
		if _, err := s.r.Discard(len(enc)); err != nil {
			s.err = fmt.Errorf("%w: %w", ErrInput, err)
			return Token{}, s.err
		}
	}

	if len(s.buf) == 0 {
		s.err = io.EOF
		return Token{}, io.EOF
	}
	if len(s.buf) > s.maxToken {
		s.maxToken = len(s.buf)
	}
	return Token{Kind: kind, Text: string(s.buf)}, nil
}

// peekRune decodes the next rune without consuming it. It only asks the
// reader for as many bytes as the leading byte announces, so a run ending at
// the last byte available on an interactive stream is not held back.
func (s *Scanner) peekRune() (rune, []byte, error) {
	p, err := s.r.Peek(1)
	if len(p) == 0 {
		return 0, nil, err
	}
	if p[0] < utf8.RuneSelf {
		return rune(p[0]), p, nil
	}

	n := encodedLen(p[0])
	if n > 1 {
		p, err = s.r.Peek(n)
		if len(p) < n && err != nil && err != io.EOF {
			return 0, nil, err
		}
	}
	r, size := utf8.DecodeRune(p)
	return r, p[:size], nil
}

// encodedLen returns the sequence length announced by a UTF-8 leading byte,
// or 1 for bytes that cannot start a sequence.
func encodedLen(b byte) int {
	switch {
	case b&0xE0 == 0xC0:
		return 2
	case b&0xF0 == 0xE0:
		return 3
	case b&0xF8 == 0xF0:
		return 4
	default:
		return 1
	}
}

// MaxTokenBytes reports the longest run returned so far, in bytes.
func (s *Scanner) MaxTokenBytes() int {
	return s.maxToken
}
