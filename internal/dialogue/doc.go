// Package dialogue wraps dialogue text into display lines and computes the
// cheapest way to merge a character's consecutive texts before wrapping.
//
// Wrapping is greedy over two kinds of tokens: whitespace-delimited words and
// parenthetical annotations such as "(risas)". Annotations are atomic and weigh
// at most one character, so stage directions never push real dialogue onto a
// new line by themselves. Lengths are counted in runes after NFC normalization.
//
// An empty or whitespace-only text wraps to a single empty line, so every
// intervention occupies at least one line in a take.
package dialogue
