package planner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"takeplan/internal/config"
	"takeplan/internal/logging"
	"takeplan/internal/planner"
	"takeplan/internal/takes"
	"takeplan/internal/testsupport"
)

func anaScript(t *testing.T, dir string) string {
	t.Helper()
	return testsupport.WriteScript(t, dir, "DIALOGO", []testsupport.Row{
		{Scene: "1", In: "00:00:01:00", Out: "00:00:05:00", Character: "ANA", Text: "Hola que tal"},
		{Scene: "1", In: "00:00:05:00", Out: "00:00:08:00", Character: "ANA", Text: "como estas"},
		{Scene: "1", In: "00:00:08:00", Out: "00:00:10:00", Character: "LUIS", Text: "Bien, gracias"},
		{Scene: "2", In: "00:01:00:00", Out: "00:01:02:00", Character: "EVA", Text: "Llegas tarde"},
		{Scene: "2", In: "00:0x:00:00", Out: "00:01:04:00", Character: "EVA", Text: "Otra vez"},
	})
}

func TestPlanBuildsReportAndRecordsRun(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	path := anaScript(t, testsupport.BaseDir(cfg))

	p := planner.New(cfg, logging.NewNop(), store)
	result, err := p.Plan(context.Background(), planner.Request{ScriptPath: path})
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	if result.RunID == "" || !result.Recorded {
		t.Fatalf("expected recorded run, got %+v", result)
	}
	if result.Report.Stats.Takes != 2 {
		t.Fatalf("expected 2 takes, got %+v", result.Report.Stats)
	}
	first := result.Report.Detail[0]
	if first.Take != 1 || first.Character != "ANA" || first.Text != "Hola que tal como estas" || first.Out != "00:00:08:00" {
		t.Fatalf("unexpected first detail row: %+v", first)
	}
	if len(result.Problems) != 1 || result.Problems[0].Kind != takes.ProblemTimecode || result.Problems[0].Row != 5 {
		t.Fatalf("expected one timecode problem, got %+v", result.Problems)
	}

	runs, err := store.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != result.RunID || runs[0].Problems != 1 {
		t.Fatalf("unexpected history: %+v", runs)
	}
	_, runTakes, err := store.Get(context.Background(), result.RunID)
	if err != nil || len(runTakes) != 2 {
		t.Fatalf("expected 2 recorded takes, got %v %v", runTakes, err)
	}
}

func TestPlanWritesReportFiles(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithOutputDir("reports"), testsupport.WithHistoryDisabled())
	path := anaScript(t, testsupport.BaseDir(cfg))

	p := planner.New(cfg, logging.NewNop(), nil)
	result, err := p.Plan(context.Background(), planner.Request{ScriptPath: path, Format: "csv"})
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	if result.Recorded {
		t.Fatal("expected history disabled")
	}
	want := []string{"script.detail.csv", "script.summary.csv", "script.takes.csv", "script.problems.csv"}
	if len(result.Files) != len(want) {
		t.Fatalf("expected %d files, got %v", len(want), result.Files)
	}
	for i, name := range want {
		if filepath.Base(result.Files[i]) != name {
			t.Fatalf("file %d = %s, want %s", i, result.Files[i], name)
		}
	}
	detail, err := os.ReadFile(result.Files[0])
	if err != nil {
		t.Fatalf("read detail: %v", err)
	}
	if !strings.HasPrefix(string(detail), "SCENE,TAKE,PERSONAJE,DIALOGO,IN,OUT") {
		t.Fatalf("unexpected csv header: %q", detail)
	}
}

func TestPlanReportsSegmentationFailure(t *testing.T) {
	c := config.Default().Constraints
	c.MaxCharsPerLine = 10
	cfg := testsupport.NewConfig(t, testsupport.WithConstraints(c), testsupport.WithHistoryDisabled())
	path := testsupport.WriteScript(t, testsupport.BaseDir(cfg), "DIALOGO", []testsupport.Row{
		{Scene: "1", In: "00:00:01:00", Out: "00:00:03:00", Character: "ANA", Text: strings.TrimSpace(strings.Repeat("abcdefgh ", 11))},
		{Scene: "2", In: "00:00:01:00", Out: "00:00:03:00", Character: "LUIS", Text: "Corto"},
	})

	result, err := planner.New(cfg, logging.NewNop(), nil).Plan(context.Background(), planner.Request{ScriptPath: path})
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	if len(result.Failures) != 1 || result.Failures[0].Scene != "1" {
		t.Fatalf("expected scene 1 to fail, got %+v", result.Failures)
	}
	if result.Report.Stats.Takes != 1 || result.Report.Detail[0].Character != "LUIS" {
		t.Fatalf("expected scene 2 planned, got %+v", result.Report)
	}
	if len(result.Problems) != 1 || result.Problems[0].Kind != takes.ProblemLines {
		t.Fatalf("expected a lines problem for the long row, got %+v", result.Problems)
	}
}

func TestPlanFailsWhenLockHeld(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	path := anaScript(t, testsupport.BaseDir(cfg))

	held := flock.New(cfg.LockPath())
	if ok, err := held.TryLock(); err != nil || !ok {
		t.Fatalf("TryLock: %v %v", ok, err)
	}
	defer held.Unlock()

	p := planner.New(cfg, logging.NewNop(), store)
	p.LockTimeout = 50 * time.Millisecond
	if _, err := p.Plan(context.Background(), planner.Request{ScriptPath: path}); !errors.Is(err, planner.ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
}

func TestCheckReportsProblemsAndLanguage(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Input.ExpectedLanguage = "en"
	path := testsupport.WriteScript(t, testsupport.BaseDir(cfg), "CASTELLANO", []testsupport.Row{
		{Scene: "1", In: "00:00:01:00", Out: "00:00:40:00", Character: "Ana", Text: "¿Dónde está la biblioteca de la ciudad? Necesito encontrar un libro."},
		{Scene: "1", In: "00:00:41:00", Out: "00:00:45:00", Character: "luis", Text: "No lo sé, pero creo que está cerca de la plaza mayor."},
	})

	result, err := planner.New(cfg, logging.NewNop(), nil).Check(context.Background(), planner.Request{ScriptPath: path, Column: "castellano"})
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if result.Interventions != 2 || result.Blocks != 2 || result.Scenes != 1 {
		t.Fatalf("unexpected counts: %+v", result)
	}
	if len(result.Characters) != 2 || result.Characters[0] != "ANA" {
		t.Fatalf("unexpected characters: %v", result.Characters)
	}
	if len(result.Problems) != 1 || result.Problems[0].Kind != takes.ProblemDuration {
		t.Fatalf("expected duration problem, got %+v", result.Problems)
	}
	if result.Language.Code != "es" || !result.LanguageMismatch {
		t.Fatalf("expected spanish detected against english, got %+v mismatch=%v", result.Language, result.LanguageMismatch)
	}
}

func TestPlanMissingScript(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithHistoryDisabled())
	_, err := planner.New(cfg, logging.NewNop(), nil).Plan(context.Background(), planner.Request{
		ScriptPath: filepath.Join(testsupport.BaseDir(cfg), "missing.csv"),
	})
	if err == nil {
		t.Fatal("expected error for missing script")
	}
}
