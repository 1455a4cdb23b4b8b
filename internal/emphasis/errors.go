package emphasis

import (
	"errors"

	"github.com/bioread/bio-read/internal/scanner"
)

// Error kinds. Every error returned by this package wraps exactly one of
// them together with its cause.
var (
	// ErrConfiguration is returned by New for an invalid fixation point or a
	// malformed template. It is never returned once a run has started.
	ErrConfiguration = errors.New("configuration error")
	// ErrInput marks a failure reading the token source.
	ErrInput = scanner.ErrInput
	// ErrOutput marks a failure writing the transformed text.
	ErrOutput = errors.New("output error")
)
