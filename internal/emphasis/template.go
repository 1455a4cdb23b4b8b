package emphasis

import (
	"fmt"
	"io"
	"strings"
)

// Placeholder is the marker replaced by the wrapped text.
const Placeholder = "{}"

// Template wraps text in a fixed prefix and suffix taken from a string
// containing exactly one Placeholder.
type Template struct {
	prefix string
	suffix string
}

// ParseTemplate splits s around its single placeholder.
func ParseTemplate(s string) (Template, error) {
	if n := strings.Count(s, Placeholder); n != 1 {
		return Template{}, fmt.Errorf("%w: template %q must contain exactly one %s placeholder, found %d", ErrConfiguration, s, Placeholder, n)
	}
	prefix, suffix, _ := strings.Cut(s, Placeholder)
	return Template{prefix: prefix, suffix: suffix}, nil
}

// MustParseTemplate is like ParseTemplate but panics on error.
func MustParseTemplate(s string) Template {
	t, err := ParseTemplate(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Wrap returns text with the template applied.
func (t Template) Wrap(text string) string {
	return t.prefix + text + t.suffix
}

// String returns the template in its placeholder form.
func (t Template) String() string {
	return t.prefix + Placeholder + t.suffix
}

func (t Template) writeTo(w io.StringWriter, text string) error {
	if _, err := w.WriteString(t.prefix); err != nil {
		return err
	}
	if _, err := w.WriteString(text); err != nil {
		return err
	}
	_, err := w.WriteString(t.suffix)
	return err
}
