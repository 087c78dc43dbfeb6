package takes

import (
	"fmt"

	"takeplan/internal/config"
	"takeplan/internal/dialogue"
	"takeplan/internal/script"
)

// Verdict is the outcome of a feasibility check.
type Verdict struct {
	OK     bool
	Reason Reason
	Detail string
}

var feasible = Verdict{OK: true}

// Checker decides whether a contiguous run of blocks can be one take.
type Checker struct {
	constraints   config.Constraints
	merger        dialogue.Merger
	interventions []script.Intervention
}

// NewChecker returns a Checker reading raw texts from interventions, the slice
// the blocks were grouped from.
func NewChecker(interventions []script.Intervention, c config.Constraints) *Checker {
	return &Checker{
		constraints:   c,
		merger:        dialogue.Merger{MaxChars: c.MaxCharsPerLine},
		interventions: interventions,
	}
}

// Check runs, in order, the duration, silence, total lines and per-character
// lines checks and returns the first failure.
func (c *Checker) Check(blocks []Block) Verdict {
	if len(blocks) == 0 {
		return feasible
	}
	first, last := blocks[0], blocks[len(blocks)-1]
	if d := last.Out - first.In; d > c.constraints.MaxDuration {
		return Verdict{Reason: ReasonDuration, Detail: fmt.Sprintf("spans %.2fs, max %.2fs", d, c.constraints.MaxDuration)}
	}

	for i := 1; i < len(blocks); i++ {
		if gap := blocks[i].In - blocks[i-1].Out; gap > c.constraints.MaxSilenceBetweenInterventions {
			return Verdict{Reason: ReasonSilence, Detail: fmt.Sprintf("%.2fs silence before %s, max %.2fs",
				gap, blocks[i].InCode, c.constraints.MaxSilenceBetweenInterventions)}
		}
	}

	total := 0
	for _, b := range blocks {
		total += b.TotalLines
	}
	if total > c.constraints.MaxLinesPerTake {
		return Verdict{Reason: ReasonLines, Detail: fmt.Sprintf("%d lines, max %d", total, c.constraints.MaxLinesPerTake)}
	}

	totals := make(map[string]int)
	for _, run := range characterRuns(blocks) {
		totals[run.character] += c.mergedLines(run.indices)
		if totals[run.character] > c.constraints.MaxConsecutiveLinesPerCharacter {
			return Verdict{Reason: ReasonCharacterLines, Detail: fmt.Sprintf("%s needs %d lines, max %d",
				run.character, totals[run.character], c.constraints.MaxConsecutiveLinesPerCharacter)}
		}
	}
	return feasible
}

func (c *Checker) mergedLines(indices []int) int {
	return c.merger.OptimalMerge(c.texts(indices)).Lines
}

func (c *Checker) texts(indices []int) []string {
	texts := make([]string, len(indices))
	for i, idx := range indices {
		texts[i] = c.interventions[idx].Text
	}
	return texts
}

// run is a maximal sequence of consecutive dialogues by one character.
type run struct {
	character string
	indices   []int
}

// characterRuns flattens blocks in chronological order and splits the
// dialogues into maximal same-character runs.
func characterRuns(blocks []Block) []run {
	var runs []run
	for _, b := range blocks {
		for _, d := range b.Dialogues {
			if n := len(runs); n > 0 && runs[n-1].character == d.Character {
				runs[n-1].indices = append(runs[n-1].indices, d.Index)
				continue
			}
			runs = append(runs, run{character: d.Character, indices: []int{d.Index}})
		}
	}
	return runs
}
