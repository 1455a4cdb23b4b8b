package scanner

// Kind distinguishes word runs from separator runs.
type Kind uint8

const (
	// Word is a run of non-delimiter characters.
	Word Kind = iota
	// Separator is a run of delimiter characters (whitespace, punctuation).
	Separator
)

func (k Kind) String() string {
	switch k {
	case Word:
		return "word"
	case Separator:
		return "separator"
	default:
		return "unknown"
	}
}

// Token is a single run produced by a scanner. Text holds the exact input
// bytes of the run.
type Token struct {
	Kind Kind
	Text string
}

// Source produces tokens one at a time. Next returns io.EOF once the input is
// exhausted; any other error wraps ErrInput.
type Source interface {
	Next() (Token, error)
}
