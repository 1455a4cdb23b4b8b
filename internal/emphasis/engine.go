// Package emphasis applies bionic-reading emphasis to a token stream: the
// leading part of each word goes through the emphasis template, the rest
// through the de-emphasis template, separators are copied verbatim.
package emphasis

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bioread/bio-read/internal/fixation"
	"github.com/bioread/bio-read/internal/scanner"
	"github.com/rivo/uniseg"
)

// Options is the configuration bundle consumed by New.
type Options struct {
	FixationPoint int
	Emphasis      string
	DeEmphasis    string
	// CommonWords, when non-nil, limits the head of listed words to their
	// first character.
	CommonWords WordSet
}

// Stats summarizes a completed or aborted run.
type Stats struct {
	Words      int
	Separators int
	BytesIn    int64
	BytesOut   int64
}

// Engine is immutable after New and safe for concurrent use by separate runs.
type Engine struct {
	table      *fixation.Table
	emphasis   Template
	deEmphasis Template
	common     WordSet
}

// New validates opts and builds an Engine.
func New(opts Options) (*Engine, error) {
	table, err := fixation.For(opts.FixationPoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	emph, err := ParseTemplate(opts.Emphasis)
	if err != nil {
		return nil, fmt.Errorf("emphasis: %w", err)
	}
	deEmph, err := ParseTemplate(opts.DeEmphasis)
	if err != nil {
		return nil, fmt.Errorf("de-emphasis: %w", err)
	}
	return &Engine{
		table:      table,
		emphasis:   emph,
		deEmphasis: deEmph,
		common:     opts.CommonWords,
	}, nil
}

// Split divides word into the emphasized head and the de-emphasized tail.
// Lengths are counted in grapheme clusters so a split never separates a base
// character from its combining marks.
func (e *Engine) Split(word string) (head, tail string) {
	n := uniseg.GraphemeClusterCount(word)
	if n == 0 {
		return "", ""
	}
	h := e.table.HeadLength(n)
	if e.common != nil && n > 1 && e.common.Contains(word) {
		h = 1
	}
	if h >= n {
		return word, ""
	}

	rest, state := word, -1
	for i := 0; i < h; i++ {
		_, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
	}
	cut := len(word) - len(rest)
	return word[:cut], word[cut:]
}

// writeWord writes one word. An empty tail is not wrapped at all.
func (e *Engine) writeWord(w io.StringWriter, word string) error {
	head, tail := e.Split(word)
	if head == "" {
		return nil
	}
	if err := e.emphasis.writeTo(w, head); err != nil {
		return err
	}
	if tail == "" {
		return nil
	}
	return e.deEmphasis.writeTo(w, tail)
}

// Run pulls tokens from src until io.EOF and writes the transformed text to
// w. Output is flushed after every separator containing a newline and at the
// end of the stream. On failure the error wraps ErrInput or ErrOutput;
// output flushed before the failure stays written.
func (e *Engine) Run(src scanner.Source, w io.Writer) (stats Stats, err error) {
	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)
	defer func() { stats.BytesOut = cw.n }()

	for {
		tok, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			if !errors.Is(err, ErrInput) {
				err = fmt.Errorf("%w: %w", ErrInput, err)
			}
			if ferr := bw.Flush(); ferr != nil {
				err = errors.Join(err, fmt.Errorf("%w: %w", ErrOutput, ferr))
			}
			return stats, err
		}
		stats.BytesIn += int64(len(tok.Text))

		switch tok.Kind {
		case scanner.Separator:
			stats.Separators++
			if _, err := bw.WriteString(tok.Text); err != nil {
				return stats, fmt.Errorf("%w: %w", ErrOutput, err)
			}
			if strings.IndexByte(tok.Text, '\n') >= 0 {
				if err := bw.Flush(); err != nil {
					return stats, fmt.Errorf("%w: %w", ErrOutput, err)
				}
			}
		default:
			stats.Words++
			if err := e.writeWord(bw, tok.Text); err != nil {
				return stats, fmt.Errorf("%w: %w", ErrOutput, err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return stats, fmt.Errorf("%w: %w", ErrOutput, err)
	}
	return stats, nil
}

// Transform applies the engine to an in-memory string using the default
// classifier.
func (e *Engine) Transform(text string) string {
	var sb strings.Builder
	// Reading from a strings.Reader and writing to a strings.Builder cannot fail.
	_, _ = e.Run(scanner.New(strings.NewReader(text), nil), &sb)
	return sb.String()
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
