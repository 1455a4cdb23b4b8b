package emphasis

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
)

// Common-word set names accepted by CommonWords.
const (
	CommonWordsNone    = "none"
	CommonWordsBuiltin = "builtin"
	CommonWordsEnglish = "english"
)

// builtinCommonWords are function words that read fine from their first
// letter alone.
var builtinCommonWords = []string{
	"the", "and", "in", "on", "at", "by", "with", "about", "against", "between", "into",
	"through", "during", "before", "after", "above", "below", "to", "from", "up",
	"down", "over", "under", "again", "further", "then", "once", "here", "there",
	"when", "where", "why", "how", "all", "any", "both", "each", "few", "more", "most",
	"other", "some",
}

// WordSet is a case-insensitive word lookup.
type WordSet interface {
	Contains(word string) bool
}

// tokenSet adapts a bleve token map, which stores lowercase entries.
type tokenSet analysis.TokenMap

func (s tokenSet) Contains(word string) bool {
	return s[strings.ToLower(word)]
}

// CommonWords returns the named common-word set. The none set (and the empty
// name) yields a nil WordSet, which disables common-word handling.
func CommonWords(name string) (WordSet, error) {
	switch name {
	case "", CommonWordsNone:
		return nil, nil
	case CommonWordsBuiltin:
		tm := analysis.NewTokenMap()
		for _, w := range builtinCommonWords {
			tm.AddToken(w)
		}
		return tokenSet(tm), nil
	case CommonWordsEnglish:
		tm := analysis.NewTokenMap()
		if err := tm.LoadBytes(en.EnglishStopWords); err != nil {
			return nil, fmt.Errorf("loading english stop words: %w", err)
		}
		return tokenSet(tm), nil
	default:
		return nil, fmt.Errorf("%w: unknown common-word set %q (want %s, %s or %s)", ErrConfiguration, name, CommonWordsNone, CommonWordsBuiltin, CommonWordsEnglish)
	}
}
