// Package config assembles the bio-read configuration from built-in
// defaults, a JSON profile, environment variables and flags, in that order of
// precedence, and turns it into a scanner and an emphasis engine.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/bioread/bio-read/internal/emphasis"
	"github.com/bioread/bio-read/internal/fixation"
	"github.com/bioread/bio-read/internal/scanner"
)

// Segmenter names.
const (
	SegmenterClassify = "classify"
	SegmenterUnicode  = "unicode"
)

// Environment variables read by ApplyEnv.
const (
	EnvFixationPoint = "BIOREAD_FIXATION_POINT"
	EnvEmphasize     = "BIOREAD_EMPHASIZE"
	EnvDeEmphasize   = "BIOREAD_DE_EMPHASIZE"
	EnvProfile       = "BIOREAD_PROFILE"
)

// Config is the merged configuration. It is a plain value; build the
// pipeline from it with Engine and Scanner.
type Config struct {
	FixationPoint int    `json:"fixation_point"`
	Emphasize     string `json:"emphasize"`
	DeEmphasize   string `json:"de_emphasize"`
	Delimiters    string `json:"delimiters,omitempty"`
	Segmenter     string `json:"segmenter,omitempty"`
	CommonWords   string `json:"common_words,omitempty"`
}

// Profile is a partial configuration loaded from JSON. Nil fields leave the
// current value untouched.
type Profile struct {
	FixationPoint *int    `json:"fixation_point,omitempty"`
	Emphasize     *string `json:"emphasize,omitempty"`
	DeEmphasize   *string `json:"de_emphasize,omitempty"`
	Delimiters    *string `json:"delimiters,omitempty"`
	Segmenter     *string `json:"segmenter,omitempty"`
	CommonWords   *string `json:"common_words,omitempty"`
}

// Default returns the built-in configuration around the given templates.
func Default(emphasize, deEmphasize string) Config {
	return Config{
		FixationPoint: fixation.DefaultPoint,
		Emphasize:     emphasize,
		DeEmphasize:   deEmphasize,
		Segmenter:     SegmenterClassify,
		CommonWords:   emphasis.CommonWordsNone,
	}
}

// Apply overlays the non-nil fields of p.
func (c *Config) Apply(p *Profile) {
	if p == nil {
		return
	}
	if p.FixationPoint != nil {
		c.FixationPoint = *p.FixationPoint
	}
	if p.Emphasize != nil {
		c.Emphasize = *p.Emphasize
	}
	if p.DeEmphasize != nil {
		c.DeEmphasize = *p.DeEmphasize
	}
	if p.Delimiters != nil {
		c.Delimiters = *p.Delimiters
	}
	if p.Segmenter != nil {
		c.Segmenter = *p.Segmenter
	}
	if p.CommonWords != nil {
		c.CommonWords = *p.CommonWords
	}
}

// ApplyEnv overlays the BIOREAD_* variables found through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvFixationPoint); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", emphasis.ErrConfiguration, EnvFixationPoint, v)
		}
		c.FixationPoint = n
	}
	if v := getenv(EnvEmphasize); v != "" {
		c.Emphasize = v
	}
	if v := getenv(EnvDeEmphasize); v != "" {
		c.DeEmphasize = v
	}
	return nil
}

// Validate checks the whole configuration without building anything.
func (c Config) Validate() error {
	_, err := c.Engine()
	if err != nil {
		return err
	}
	switch c.Segmenter {
	case "", SegmenterClassify, SegmenterUnicode:
		return nil
	default:
		return fmt.Errorf("%w: unknown segmenter %q (want %s or %s)", emphasis.ErrConfiguration, c.Segmenter, SegmenterClassify, SegmenterUnicode)
	}
}

// Engine builds the emphasis engine described by c.
func (c Config) Engine() (*emphasis.Engine, error) {
	words, err := emphasis.CommonWords(c.CommonWords)
	if err != nil {
		return nil, err
	}
	return emphasis.New(emphasis.Options{
		FixationPoint: c.FixationPoint,
		Emphasis:      c.Emphasize,
		DeEmphasis:    c.DeEmphasize,
		CommonWords:   words,
	})
}

// Scanner returns the token source selected by c over r. Delimiters only
// apply to the classify segmenter.
func (c Config) Scanner(r io.Reader) scanner.Source {
	if c.Segmenter == SegmenterUnicode {
		return scanner.NewUnicode(r)
	}
	return scanner.New(r, scanner.WithExtra(scanner.IsDelimiter, c.Delimiters))
}

// Loader resolves profile references to validated profiles.
type Loader struct {
	provider  DataProvider
	validator *SchemaValidator
	readFile  func(string) ([]byte, error)
}

// NewLoader returns a Loader using provider for built-in profiles and the
// schema, and the local filesystem for profile paths.
func NewLoader(provider DataProvider) (*Loader, error) {
	v, err := NewSchemaValidator(provider)
	if err != nil {
		return nil, err
	}
	return &Loader{provider: provider, validator: v, readFile: os.ReadFile}, nil
}

// Validator exposes the compiled profile schema.
func (l *Loader) Validator() *SchemaValidator {
	return l.validator
}

// BuiltinProfiles lists the names of the embedded profiles.
func (l *Loader) BuiltinProfiles() ([]string, error) {
	entries, err := l.provider.ReadDir(profilesDir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".json" {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

// Load reads the profile named ref: a built-in profile name, or a path to a
// JSON file.
func (l *Loader) Load(ref string) (*Profile, error) {
	var (
		content []byte
		err     error
	)
	if isFilePath(ref) {
		content, err = l.readFile(ref)
	} else {
		content, err = l.provider.ReadFile(path.Join(profilesDir, ref+".json"))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read profile %q: %w", emphasis.ErrConfiguration, ref, err)
	}
	return l.Parse(content)
}

// Parse validates data against the profile schema and decodes it.
func (l *Loader) Parse(data []byte) (*Profile, error) {
	if errs := l.validator.Validate(data); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Path + ": " + e.Message
		}
		return nil, fmt.Errorf("%w: invalid profile: %s", emphasis.ErrConfiguration, strings.Join(msgs, "; "))
	}

	var p Profile
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: invalid profile: %w", emphasis.ErrConfiguration, err)
	}
	return &p, nil
}

// isFilePath reports whether ref names a file rather than a built-in profile.
func isFilePath(ref string) bool {
	return strings.ContainsAny(ref, `/\`) || strings.HasSuffix(ref, ".json")
}
