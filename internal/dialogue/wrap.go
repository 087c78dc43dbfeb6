package dialogue

import (
	"iter"
	"regexp"
	"strings"
)

var parentheticalPattern = regexp.MustCompile(`(?s)\(.*?\)`)

type token struct {
	text  string
	paren bool
}

// tokenize splits text into parenthetical groups and the words between them,
// preserving source order.
func tokenize(text string) []token {
	text = Normalize(text)
	var tokens []token
	last := 0
	for _, loc := range parentheticalPattern.FindAllStringIndex(text, -1) {
		for _, word := range strings.Fields(text[last:loc[0]]) {
			tokens = append(tokens, token{text: word})
		}
		tokens = append(tokens, token{text: text[loc[0]:loc[1]], paren: true})
		last = loc[1]
	}
	for _, word := range strings.Fields(text[last:]) {
		tokens = append(tokens, token{text: word})
	}
	return tokens
}

// addition is the width tok adds to a line whose previous token is prev.
func addition(tok token, prev *token) int {
	switch {
	case prev == nil && tok.paren:
		return 1
	case prev == nil:
		return runeLen(tok.text)
	case tok.paren && prev.paren:
		return 0
	case tok.paren:
		return 1
	case prev.paren:
		return runeLen(tok.text)
	default:
		return 1 + runeLen(tok.text)
	}
}

// Wrap yields the display lines of text for a maximum of maxChars per line.
// A token longer than maxChars occupies its own line and is never split.
// Empty text yields one empty line.
func Wrap(text string, maxChars int) iter.Seq[string] {
	return func(yield func(string) bool) {
		tokens := tokenize(text)
		if len(tokens) == 0 {
			yield("")
			return
		}
		var (
			line  []string
			width int
			prev  *token
		)
		for i := range tokens {
			tok := &tokens[i]
			add := addition(*tok, prev)
			if len(line) > 0 && width+add > maxChars {
				if !yield(strings.Join(line, " ")) {
					return
				}
				line = line[:0]
				prev = nil
				add = addition(*tok, nil)
				width = 0
			}
			line = append(line, tok.text)
			width += add
			prev = tok
		}
		yield(strings.Join(line, " "))
	}
}

// Lines collects Wrap into a slice.
func Lines(text string, maxChars int) []string {
	var lines []string
	for line := range Wrap(text, maxChars) {
		lines = append(lines, line)
	}
	return lines
}

// LineCount returns how many lines Wrap yields for text.
func LineCount(text string, maxChars int) int {
	n := 0
	for range Wrap(text, maxChars) {
		n++
	}
	return n
}

// Width measures a wrapped line the way Wrap charges it.
func Width(line string) int {
	width := 0
	var prev *token
	tokens := tokenize(line)
	for i := range tokens {
		width += addition(tokens[i], prev)
		prev = &tokens[i]
	}
	return width
}
