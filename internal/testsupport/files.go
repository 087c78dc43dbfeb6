package testsupport

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
)

// Row is one scripted intervention used by test fixtures.
type Row struct {
	Scene, In, Out, Character, Text string
}

// WriteScript writes rows as a CSV script with the given dialogue column and
// returns its path.
func WriteScript(t testing.TB, dir, column string, rows []Row) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	path := filepath.Join(dir, "script.csv")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	records := [][]string{{"SCENE", "IN", "OUT", "PERSONAJE", column}}
	for _, r := range rows {
		records = append(records, []string{r.Scene, r.In, r.Out, r.Character, r.Text})
	}
	if err := w.WriteAll(records); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

// WriteFile writes content to dir/name and returns the path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
