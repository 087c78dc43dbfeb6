package script

import (
	"errors"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Column names of the input contract.
const (
	ColumnScene     = "SCENE"
	ColumnIn        = "IN"
	ColumnOut       = "OUT"
	ColumnCharacter = "PERSONAJE"
)

var (
	// ErrMissingColumn reports a script without one of the required columns.
	ErrMissingColumn = errors.New("missing column")
	// ErrUnsupportedFormat reports a file extension no reader handles.
	ErrUnsupportedFormat = errors.New("unsupported script format")
)

// Intervention is one character's line of dialogue with its literal timecodes.
type Intervention struct {
	// Row is the 1-based data row in the source file.
	Row       int
	Scene     string
	Character string
	Text      string
	InCode    string
	OutCode   string
}

// Script is a loaded script.
type Script struct {
	Path          string
	Column        string
	Columns       []string
	Interventions []Intervention
}

// Options control how a script is read.
type Options struct {
	DialogueColumn string
	// Delimiter is the CSV field separator.
	Delimiter rune
}

var upper = cases.Upper(language.Und)

// CharacterKey canonicalizes a character name so "Ana", " ana " and "ANA"
// count as the same speaker.
func CharacterKey(name string) string {
	return upper.String(strings.Join(strings.Fields(name), " "))
}

// Characters returns the distinct character names of s in order of first appearance.
func (s *Script) Characters() []string {
	seen := make(map[string]struct{})
	var names []string
	for _, iv := range s.Interventions {
		if _, ok := seen[iv.Character]; ok {
			continue
		}
		seen[iv.Character] = struct{}{}
		names = append(names, iv.Character)
	}
	return names
}
