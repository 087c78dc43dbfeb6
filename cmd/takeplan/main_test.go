package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"takeplan/internal/planner"
	"takeplan/internal/testsupport"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	stateDir   string
	scriptPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Chdir(base)

	stateDir := filepath.Join(base, "state")
	configPath := filepath.Join(base, "takeplan.toml")
	content := fmt.Sprintf("[paths]\nstate_dir = %q\n\n[logging]\nlevel = \"warn\"\n", stateDir)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	scriptPath := testsupport.WriteScript(t, filepath.Join(base, "scripts"), "DIALOGO", []testsupport.Row{
		{Scene: "1", In: "00:00:01:00", Out: "00:00:05:00", Character: "ANA", Text: "Hola que tal"},
		{Scene: "1", In: "00:00:05:00", Out: "00:00:08:00", Character: "ANA", Text: "como estas"},
		{Scene: "2", In: "00:01:00:00", Out: "00:01:02:00", Character: "LUIS", Text: "Llegas tarde"},
	})

	return &cliTestEnv{baseDir: base, configPath: configPath, stateDir: stateDir, scriptPath: scriptPath}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func TestPlanPrintsTakeSheet(t *testing.T) {
	env := setupCLITestEnv(t)

	out, errOut, err := runCLI(t, []string{"plan", env.scriptPath}, env.configPath)
	if err != nil {
		t.Fatalf("plan: %v\n%s", err, errOut)
	}
	requireContains(t, out, "Hola que tal como estas")
	requireContains(t, out, "PERSONAJE")
	requireContains(t, out, "TOTAL")
	requireContains(t, errOut, "Takes:")
	requireContains(t, errOut, "2 across 2 scene(s)")
	if _, err := os.Stat(filepath.Join(env.stateDir, "history.db")); err != nil {
		t.Fatalf("expected history database: %v", err)
	}
}

func TestPlanJSONOutput(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"plan", env.scriptPath, "--format", "json", "--no-history"}, env.configPath)
	if err != nil {
		t.Fatalf("plan json: %v", err)
	}
	var result planner.Result
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out)
	}
	if result.RunID == "" || result.Recorded {
		t.Fatalf("unexpected run metadata: %+v", result)
	}
	if result.Report.Stats.Takes != 2 || len(result.Report.Detail) != 2 {
		t.Fatalf("unexpected report: %+v", result.Report)
	}
}

func TestPlanWritesReportFiles(t *testing.T) {
	env := setupCLITestEnv(t)
	outDir := filepath.Join(env.baseDir, "out")

	_, errOut, err := runCLI(t, []string{"plan", env.scriptPath, "-f", "md", "--out", outDir, "--no-history"}, env.configPath)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	requireContains(t, errOut, "Wrote:")
	data, err := os.ReadFile(filepath.Join(outDir, "script.summary.md"))
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	requireContains(t, string(data), "| ANA |")
}

func TestPlanRejectsUnknownFormat(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"plan", env.scriptPath, "--format", "xlsx"}, env.configPath); err == nil {
		t.Fatal("expected unsupported format error")
	}
}

func TestCheckStrict(t *testing.T) {
	env := setupCLITestEnv(t)
	bad := testsupport.WriteScript(t, filepath.Join(env.baseDir, "bad"), "DIALOGO", []testsupport.Row{
		{Scene: "1", In: "00:00:01:00", Out: "00:00:45:00", Character: "ANA", Text: "Demasiado largo"},
	})

	out, _, err := runCLI(t, []string{"check", bad}, env.configPath)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	requireContains(t, out, "Problems:")
	requireContains(t, out, "duration")

	_, _, err = runCLI(t, []string{"check", bad, "--strict"}, env.configPath)
	if !errors.Is(err, errProblemsFound) {
		t.Fatalf("expected errProblemsFound, got %v", err)
	}

	out, _, err = runCLI(t, []string{"check", env.scriptPath, "--strict", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("check clean script: %v", err)
	}
	var result planner.CheckResult
	if err := json.Unmarshal([]byte(out), &result); err != nil || result.Blocks != 3 {
		t.Fatalf("unexpected check json: %v %s", err, out)
	}
}

func TestWrapCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"wrap", "--width", "10", "uno", "dos", "tres", "cuatro"}, env.configPath)
	if err != nil {
		t.Fatalf("wrap: %v", err)
	}
	requireContains(t, out, "3 line(s) at 10 characters")
	requireContains(t, out, "uno dos")
}

func TestConfigInitShowAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, env.stateDir)

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected init to refuse overwriting")
	}

	out, _, err = runCLI(t, []string{"config", "show"}, target)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "max_lines_per_take = 10")
}

func TestHistoryCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	for i := 0; i < 2; i++ {
		if _, _, err := runCLI(t, []string{"plan", env.scriptPath, "-f", "csv"}, env.configPath); err != nil {
			t.Fatalf("plan %d: %v", i, err)
		}
	}

	out, _, err := runCLI(t, []string{"history", "list", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	var runs []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal([]byte(out), &runs); err != nil || len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %v %s", err, out)
	}

	out, _, err = runCLI(t, []string{"history", "show", runs[0].ID[:8]}, env.configPath)
	if err != nil {
		t.Fatalf("history show: %v", err)
	}
	requireContains(t, out, runs[0].ID)
	requireContains(t, out, "CHARACTERS")

	out, _, err = runCLI(t, []string{"history", "purge", "--older-than", "0"}, env.configPath)
	if err != nil {
		t.Fatalf("history purge: %v", err)
	}
	requireContains(t, out, "Removed 2 run(s)")

	out, _, err = runCLI(t, []string{"history", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	requireContains(t, out, "No runs recorded")
}

func TestEnvFileSelectsDialogueColumn(t *testing.T) {
	env := setupCLITestEnv(t)
	t.Setenv("TAKEPLAN_DIALOGUE_COLUMN", "")
	os.Unsetenv("TAKEPLAN_DIALOGUE_COLUMN")

	envFile := filepath.Join(env.baseDir, "custom.env")
	if err := os.WriteFile(envFile, []byte("TAKEPLAN_DIALOGUE_COLUMN=EUSKERA\n"), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	script := testsupport.WriteScript(t, filepath.Join(env.baseDir, "eu"), "EUSKERA", []testsupport.Row{
		{Scene: "1", In: "00:00:01:00", Out: "00:00:03:00", Character: "JON", Text: "Kaixo"},
	})

	out, _, err := runCLI(t, []string{"--env-file", envFile, "plan", script, "--no-history"}, env.configPath)
	if err != nil {
		t.Fatalf("plan with env file: %v", err)
	}
	requireContains(t, out, "EUSKERA")
	requireContains(t, out, "Kaixo")
}

func TestParseAge(t *testing.T) {
	cases := map[string]string{"0": "0s", "12h": "12h0m0s", "2d": "48h0m0s"}
	for input, want := range cases {
		got, err := parseAge(input)
		if err != nil || got.String() != want {
			t.Fatalf("parseAge(%q) = %v, %v; want %s", input, got, err, want)
		}
	}
	for _, bad := range []string{"", "-1d", "soon"} {
		if _, err := parseAge(bad); err == nil {
			t.Fatalf("expected parseAge(%q) to fail", bad)
		}
	}
}
