package takes

import (
	"fmt"
	"sort"

	"takeplan/internal/config"
	"takeplan/internal/dialogue"
	"takeplan/internal/script"
	"takeplan/internal/timecode"
)

type blockKey struct {
	scene, in, out string
}

// GroupBlocks groups interventions by their literal (scene, in, out) and sorts
// the blocks by scene, then start time. Groups whose timecodes do not parse
// are dropped and reported, one Problem per intervention.
func GroupBlocks(interventions []script.Intervention, c config.Constraints) ([]Block, []Problem) {
	order := make([]blockKey, 0)
	members := make(map[blockKey][]int)
	for i, iv := range interventions {
		key := blockKey{scene: iv.Scene, in: iv.InCode, out: iv.OutCode}
		if _, ok := members[key]; !ok {
			order = append(order, key)
		}
		members[key] = append(members[key], i)
	}

	blocks := make([]Block, 0, len(order))
	firstIndex := make([]int, 0, len(order))
	var problems []Problem
	for _, key := range order {
		idx := members[key]
		in, inErr := timecode.Parse(key.in, c.FrameRate)
		out, outErr := timecode.Parse(key.out, c.FrameRate)
		if inErr != nil || outErr != nil {
			detail := inErr
			if detail == nil {
				detail = outErr
			}
			for _, i := range idx {
				problems = append(problems, newProblem(interventions[i], ProblemTimecode, detail.Error()))
			}
			continue
		}

		b := Block{Scene: key.scene, InCode: key.in, OutCode: key.out, In: in, Out: out}
		for _, i := range idx {
			lines := dialogue.Lines(interventions[i].Text, c.MaxCharsPerLine)
			b.Dialogues = append(b.Dialogues, Dialogue{Index: i, Character: interventions[i].Character, Lines: lines})
			b.TotalLines += len(lines)
		}
		blocks = append(blocks, b)
		firstIndex = append(firstIndex, idx[0])
	}

	perm := make([]int, len(blocks))
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(a, b int) bool {
		x, y := blocks[perm[a]], blocks[perm[b]]
		switch {
		case x.Scene != y.Scene:
			return x.Scene < y.Scene
		case x.In != y.In:
			return x.In < y.In
		case x.Out != y.Out:
			return x.Out < y.Out
		default:
			return firstIndex[perm[a]] < firstIndex[perm[b]]
		}
	})
	sorted := make([]Block, len(blocks))
	for i, p := range perm {
		sorted[i] = blocks[p]
	}
	return sorted, problems
}

// CheckInterventions reports interventions that break a constraint on their
// own: longer than a take, more wrapped lines than a take or a character's
// turn holds, or ending before they start. Unparseable timecodes are left to GroupBlocks.
func CheckInterventions(interventions []script.Intervention, c config.Constraints) []Problem {
	var problems []Problem
	for _, iv := range interventions {
		in, inErr := timecode.Parse(iv.InCode, c.FrameRate)
		out, outErr := timecode.Parse(iv.OutCode, c.FrameRate)
		if inErr != nil || outErr != nil {
			continue
		}
		if out < in {
			problems = append(problems, newProblem(iv, ProblemInverted,
				fmt.Sprintf("out %s is before in %s", iv.OutCode, iv.InCode)))
			continue
		}
		if d := out - in; d > c.MaxDuration {
			problems = append(problems, newProblem(iv, ProblemDuration,
				fmt.Sprintf("lasts %.2fs, max %.2fs", d, c.MaxDuration)))
		}
		n := dialogue.LineCount(iv.Text, c.MaxCharsPerLine)
		switch {
		case n > c.MaxLinesPerTake:
			problems = append(problems, newProblem(iv, ProblemLines,
				fmt.Sprintf("wraps to %d lines, max %d per take", n, c.MaxLinesPerTake)))
		case n > c.MaxConsecutiveLinesPerCharacter:
			problems = append(problems, newProblem(iv, ProblemLines,
				fmt.Sprintf("wraps to %d lines, max %d per character", n, c.MaxConsecutiveLinesPerCharacter)))
		}
	}
	return problems
}

// SortProblems orders problems by source row, then kind.
func SortProblems(problems []Problem) {
	sort.SliceStable(problems, func(i, j int) bool {
		if problems[i].Row != problems[j].Row {
			return problems[i].Row < problems[j].Row
		}
		return problems[i].Kind < problems[j].Kind
	})
}

func newProblem(iv script.Intervention, kind ProblemKind, detail string) Problem {
	return Problem{
		Row:       iv.Row,
		Scene:     iv.Scene,
		Character: iv.Character,
		InCode:    iv.InCode,
		OutCode:   iv.OutCode,
		Kind:      kind,
		Detail:    detail,
	}
}
