package completer

import (
	"iter"
	"slices"
	"strings"
)

// Completion is one candidate to splice in at the cursor. DeleteBack is the
// number of characters immediately before the cursor the caller must replace
// with Text; it equals the length of the matched fragment.
type Completion struct {
	Text       string
	DeleteBack int
}

// fragmentSeparators end a token during backward scanning, along with
// whitespace. Dots, quotes, backticks, underscores and '$' deliberately stay
// inside the token so dotted and quoted multi-part identifiers are matched
// whole.
const fragmentSeparators = "():,;"

// WordBeforeCursor returns the last whitespace-delimited word of text, the
// raw input the matcher derives its fragment from.
func WordBeforeCursor(text string) string {
	for i := len(text) - 1; i >= 0; i-- {
		if isSpace(text[i]) {
			return text[i+1:]
		}
	}
	return text
}

// LastWord returns the word-like token at the end of text, scanning backward
// until whitespace or a separator from fragmentSeparators.
func LastWord(text string) string {
	for i := len(text) - 1; i >= 0; i-- {
		c := text[i]
		if isSpace(c) || strings.IndexByte(fragmentSeparators, c) >= 0 {
			return text[i+1:]
		}
	}
	return text
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// FindMatches yields a Completion for every candidate matching the fragment
// derived from text. Candidates are visited in ascending ordinal order of
// their original spelling, which fixes the final output order; no relevance
// ranking happens afterwards. Matching is case-insensitive: anchored
// restricts the fragment to the start of the candidate, otherwise it may
// appear anywhere. The sequence is finite and meant to be consumed once.
func FindMatches(text string, candidates []string, anchored bool) iter.Seq[Completion] {
	fragment := strings.ToLower(LastWord(text))
	sorted := slices.Clone(candidates)
	slices.Sort(sorted)

	return func(yield func(Completion) bool) {
		for _, candidate := range sorted {
			lower := strings.ToLower(candidate)
			if anchored {
				if !strings.HasPrefix(lower, fragment) {
					continue
				}
			} else if !strings.Contains(lower, fragment) {
				continue
			}
			if !yield(Completion{Text: candidate, DeleteBack: len(fragment)}) {
				return
			}
		}
	}
}
