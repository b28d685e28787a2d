package completer

import "regexp"

// bareNamePattern matches identifiers that are safe to emit unquoted: a
// leading underscore or lowercase letter followed by underscores, lowercase
// letters, digits, or '$'. Anything else (uppercase letters, leading digits,
// punctuation, the empty string) gets quoted.
var bareNamePattern = regexp.MustCompile(`^[_a-z][_a-z0-9$]*$`)

// EscapeName returns name wrapped in double quotes unless it is already a
// bare identifier. It is a pure, total function: every input produces a
// usable output, and escaping an already-escaped name quotes it again.
func EscapeName(name string) string {
	if bareNamePattern.MatchString(name) {
		return name
	}
	return `"` + name + `"`
}

// UnescapeName strips exactly one pair of surrounding double quotes, if
// present. It is not a general SQL string parser: embedded escaped quotes
// are left untouched.
func UnescapeName(name string) string {
	if len(name) >= 2 && name[0] == '"' && name[len(name)-1] == '"' {
		return name[1 : len(name)-1]
	}
	return name
}

// EscapeNames maps EscapeName over names.
func EscapeNames(names []string) []string {
	escaped := make([]string, len(names))
	for i, name := range names {
		escaped[i] = EscapeName(name)
	}
	return escaped
}
