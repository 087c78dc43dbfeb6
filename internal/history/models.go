package history

import (
	"errors"
	"time"

	"takeplan/internal/config"
	"takeplan/internal/takes"
)

// ErrNotFound is returned when no run matches an id.
var ErrNotFound = errors.New("run not found")

// ErrAmbiguousID is returned when an id prefix matches more than one run.
var ErrAmbiguousID = errors.New("run id prefix is ambiguous")

// Run is one recorded planner run.
type Run struct {
	ID             string             `json:"id"`
	CreatedAt      time.Time          `json:"created_at"`
	InputPath      string             `json:"input_path"`
	DialogueColumn string             `json:"dialogue_column"`
	Language       string             `json:"language,omitempty"`
	Constraints    config.Constraints `json:"constraints"`
	Stats          takes.Stats        `json:"stats"`
	Problems       int                `json:"problems"`
	Duration       time.Duration      `json:"duration"`
}

// RunTake is one take of a recorded run.
type RunTake struct {
	Take       int      `json:"take"`
	Scene      string   `json:"scene"`
	In         string   `json:"in"`
	Out        string   `json:"out"`
	Duration   float64  `json:"duration_seconds"`
	Lines      int      `json:"lines"`
	Characters []string `json:"characters"`
}

// TakesFromReport converts report take summaries to history rows.
func TakesFromReport(summaries []takes.TakeSummary) []RunTake {
	out := make([]RunTake, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, RunTake{
			Take:       s.Take,
			Scene:      s.Scene,
			In:         s.In,
			Out:        s.Out,
			Duration:   s.Duration,
			Lines:      s.Lines,
			Characters: s.Characters,
		})
	}
	return out
}
