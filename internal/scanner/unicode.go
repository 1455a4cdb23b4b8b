package scanner

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/blevesearch/segment"
)

var errSegmentMismatch = errors.New("segmenter output does not match the input read")

// UnicodeScanner segments input on UAX #29 word boundaries and merges the
// resulting segments into word and separator runs. Letter, number, kana and
// ideographic segments are words; every other segment is a separator.
//
// The segmenter stops without an error at malformed UTF-8. From that point the
// rest of the stream, including the bytes the segmenter had read but not
// emitted, goes through the default rune classifier, so no input is lost.
type UnicodeScanner struct {
	seg         *segment.Segmenter
	rec         *recordingReader
	fallback    *Scanner
	buf         []byte
	pending     []byte
	pendingKind Kind
	hasPending  bool
	err         error
}

// NewUnicode returns a UnicodeScanner reading from r.
func NewUnicode(r io.Reader) *UnicodeScanner {
	rec := &recordingReader{r: r}
	return &UnicodeScanner{seg: segment.NewWordSegmenter(rec), rec: rec}
}

// Next returns the next merged run, or io.EOF at end of stream. The
// segmenter rejects single segments longer than segment.MaxScanTokenSize.
func (u *UnicodeScanner) Next() (Token, error) {
	if u.err != nil {
		return Token{}, u.err
	}

	u.buf = u.buf[:0]
	var kind Kind
	if u.hasPending {
		u.buf = append(u.buf, u.pending...)
		kind = u.pendingKind
		u.hasPending = false
	}

	if u.fallback == nil {
		for u.seg.Segment() {
			if !u.rec.consume(u.seg.Bytes()) {
				u.err = fmt.Errorf("%w: %w", ErrInput, errSegmentMismatch)
				return Token{}, u.err
			}
			k := segmentKind(u.seg.Type())
			if len(u.buf) == 0 {
				kind = k
			} else if k != kind {
				// Bytes is only valid until the next call to Segment.
				u.pending = append(u.pending[:0], u.seg.Bytes()...)
				u.pendingKind = k
				u.hasPending = true
				return Token{Kind: kind, Text: string(u.buf)}, nil
			}
			u.buf = append(u.buf, u.seg.Bytes()...)
		}
		if err := u.seg.Err(); err != nil {
			u.err = fmt.Errorf("%w: %w", ErrInput, err)
			return Token{}, u.err
		}
		u.fallback = New(io.MultiReader(bytes.NewReader(u.rec.unconsumed()), u.rec.r), nil)
		u.rec = nil
	}
	return u.nextFallback(kind)
}

// nextFallback completes the run in u.buf from the rune classifier.
func (u *UnicodeScanner) nextFallback(kind Kind) (Token, error) {
	for {
		tok, err := u.fallback.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			u.err = err
			return Token{}, err
		}
		if len(u.buf) == 0 {
			kind = tok.Kind
		} else if tok.Kind != kind {
			u.pending = append(u.pending[:0], tok.Text...)
			u.pendingKind = tok.Kind
			u.hasPending = true
			return Token{Kind: kind, Text: string(u.buf)}, nil
		}
		u.buf = append(u.buf, tok.Text...)
	}

	if len(u.buf) == 0 {
		u.err = io.EOF
		return Token{}, io.EOF
	}
	return Token{Kind: kind, Text: string(u.buf)}, nil
}

func segmentKind(t int) Kind {
	switch t {
	case segment.Letter, segment.Number, segment.Kana, segment.Ideo:
		return Word
	default:
		return Separator
	}
}

// recordingReader keeps the bytes read from r that the segmenter has not
// emitted yet. It holds at most the segmenter's own buffer.
type recordingReader struct {
	r    io.Reader
	data []byte
	off  int
}

func (rr *recordingReader) Read(p []byte) (int, error) {
	n, err := rr.r.Read(p)
	if n > 0 {
		if rr.off > 0 && rr.off >= len(rr.data)/2 {
			rr.data = append(rr.data[:0], rr.data[rr.off:]...)
			rr.off = 0
		}
		rr.data = append(rr.data, p[:n]...)
	}
	return n, err
}

// consume drops seg from the front of the recorded bytes and reports whether
// it matched them.
func (rr *recordingReader) consume(seg []byte) bool {
	if !bytes.HasPrefix(rr.data[rr.off:], seg) {
		return false
	}
	rr.off += len(seg)
	return true
}

func (rr *recordingReader) unconsumed() []byte {
	return bytes.Clone(rr.data[rr.off:])
}
