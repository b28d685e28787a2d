package commands

import (
	"strings"
	"unicode/utf8"

	"github.com/chzyer/readline"

	"github.com/leapstack-labs/sqlsh/internal/completer"
)

// shellCompleter bridges the completion engine to readline's AutoCompleter.
//
// readline can only append runes at the cursor, never rewrite what was
// typed, so candidates that don't extend the typed fragment (pure substring
// hits) are filtered out here. The pending function supplies any buffered
// multi-line statement text so scope detection sees the whole statement.
type shellCompleter struct {
	completer *completer.Completer
	pending   func() string
}

var _ readline.AutoCompleter = (*shellCompleter)(nil)

func (s *shellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	before := string(line[:pos])
	full := before
	if s.pending != nil {
		full = s.pending() + before
	}

	frag := strings.ToLower(completer.LastWord(before))
	var out [][]rune
	for _, comp := range s.completer.GetCompletions(full, before) {
		if comp.DeleteBack > len(comp.Text) {
			continue
		}
		if !strings.HasPrefix(strings.ToLower(comp.Text), frag) {
			continue
		}
		out = append(out, []rune(comp.Text[comp.DeleteBack:]))
	}
	return out, utf8.RuneCountInString(frag)
}
