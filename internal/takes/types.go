package takes

import (
	"errors"
	"fmt"
)

// ErrSegmentation marks a scene that cannot be partitioned under the constraints.
var ErrSegmentation = errors.New("scene cannot be segmented")

// Dialogue is one intervention inside a Block.
type Dialogue struct {
	// Index points into the intervention slice the block was built from.
	Index     int
	Character string
	Lines     []string
}

// Block is the dialogue spoken at one (scene, in, out) timestamp.
type Block struct {
	Scene      string
	InCode     string
	OutCode    string
	In         float64
	Out        float64
	Dialogues  []Dialogue
	TotalLines int
}

// Characters returns the distinct characters of the block in speaking order.
func (b Block) Characters() []string {
	var names []string
	for _, d := range b.Dialogues {
		dup := false
		for _, n := range names {
			if n == d.Character {
				dup = true
				break
			}
		}
		if !dup {
			names = append(names, d.Character)
		}
	}
	return names
}

// ProblemKind classifies a Problem.
type ProblemKind string

const (
	ProblemTimecode ProblemKind = "timecode"
	ProblemDuration ProblemKind = "duration"
	ProblemLines    ProblemKind = "lines"
	ProblemInverted ProblemKind = "inverted"
)

// Problem is an intervention that cannot be planned as written.
type Problem struct {
	Row       int         `json:"row"`
	Scene     string      `json:"scene"`
	Character string      `json:"character"`
	InCode    string      `json:"in"`
	OutCode   string      `json:"out"`
	Kind      ProblemKind `json:"kind"`
	Detail    string      `json:"detail"`
}

// Reason names the constraint a segment violates.
type Reason string

const (
	ReasonDuration       Reason = "max_duration"
	ReasonSilence        Reason = "max_silence_between_interventions"
	ReasonLines          Reason = "max_lines_per_take"
	ReasonCharacterLines Reason = "max_consecutive_lines_per_character"
)

// SegmentationFailure reports the first block of a scene that no feasible
// segment can cover.
type SegmentationFailure struct {
	Scene string `json:"scene"`
	// Block is the index of the uncoverable block within the scene.
	Block   int    `json:"block"`
	Blocks  int    `json:"blocks"`
	InCode  string `json:"in"`
	OutCode string `json:"out"`
	Reason  Reason `json:"reason"`
	Detail  string `json:"detail"`
}

func (f *SegmentationFailure) Error() string {
	return fmt.Sprintf("%s: scene %s block %d/%d (%s-%s): %s", ErrSegmentation, f.Scene, f.Block+1, f.Blocks, f.InCode, f.OutCode, f.Detail)
}

func (f *SegmentationFailure) Is(target error) bool {
	return target == ErrSegmentation
}
