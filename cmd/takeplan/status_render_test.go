package main

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"takeplan/internal/planner"
	"takeplan/internal/script"
	"takeplan/internal/takes"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("Takes", statusError, "none", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "Takes:", "[ERROR] none")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("Takes", statusOK, "3", true)
	if !strings.HasPrefix(got, ansiGreen) {
		t.Fatalf("expected green prefix, got %q", got)
	}
	if !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected reset suffix, got %q", got)
	}
}

func TestPlanStatusLines(t *testing.T) {
	result := &planner.Result{
		RunID:            "0123456789abcdef",
		Script:           "ep01.csv",
		Column:           "DIALOGO",
		Language:         script.Detection{Code: "es", Share: 0.9, Samples: 10},
		LanguageMismatch: true,
		Problems:         []takes.Problem{{Row: 3, Kind: takes.ProblemDuration}},
		Report:           takes.Report{Stats: takes.Stats{Takes: 4, Scenes: 3, FailedScenes: 1, DetailLines: 12}},
		Files:            []string{"/tmp/ep01.detail.csv"},
	}
	lines := planStatusLines(result, false)
	joined := strings.Join(lines, "\n")
	for _, want := range []string{
		"== Plan 01234567 ==",
		"[WARN] Spanish (90% of 10 lines), differs from expected",
		"[OK] 4 across 2 scene(s), 12 lines",
		"[WARN] 1 intervention(s) need attention",
		"[ERROR] 1 could not be segmented",
		"[INFO] /tmp/ep01.detail.csv",
		"History:",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected %q in:\n%s", want, joined)
		}
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatalf("expected non-file writer to disable color")
	}
}
