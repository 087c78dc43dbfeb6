package script_test

import (
	"errors"
	"reflect"
	"testing"

	"takeplan/internal/script"
	"takeplan/internal/testsupport"
)

func TestLoadCSV(t *testing.T) {
	dir := t.TempDir()
	path := testsupport.WriteScript(t, dir, "Dialogo", []testsupport.Row{
		{Scene: "1", In: "00:00:01:00", Out: "00:00:05:00", Character: " ana ", Text: "Hola que tal"},
		{},
		{Scene: "1", In: "00:00:05:00", Out: "00:00:08:00", Character: "Ana", Text: " como estas "},
	})

	s, err := script.Load(path, script.Options{DialogueColumn: "dialogo", Delimiter: ','})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(s.Interventions) != 2 {
		t.Fatalf("expected blank row skipped, got %d interventions", len(s.Interventions))
	}
	first, second := s.Interventions[0], s.Interventions[1]
	if first.Character != "ANA" || second.Character != "ANA" {
		t.Fatalf("expected canonical character names, got %q and %q", first.Character, second.Character)
	}
	if second.Text != "como estas" || second.Row != 3 {
		t.Fatalf("unexpected second intervention: %+v", second)
	}
	if first.InCode != "00:00:01:00" || first.OutCode != "00:00:05:00" {
		t.Fatalf("expected literal timecodes, got %+v", first)
	}
	if got := s.Characters(); len(got) != 1 || got[0] != "ANA" {
		t.Fatalf("unexpected characters: %v", got)
	}
}

func TestLoadCSVWithSemicolonAndBOM(t *testing.T) {
	dir := t.TempDir()
	path := testsupport.WriteFile(t, dir, "script.csv",
		"\ufeffscene;in;out;personaje;euskera\n2;00:00:10;00:00:12;JON;Kaixo zer moduz\n")

	s, err := script.Load(path, script.Options{DialogueColumn: "EUSKERA", Delimiter: ';'})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(s.Interventions) != 1 || s.Interventions[0].Scene != "2" || s.Interventions[0].Text != "Kaixo zer moduz" {
		t.Fatalf("unexpected interventions: %+v", s.Interventions)
	}
}

func TestLoadJSONShapes(t *testing.T) {
	dir := t.TempDir()
	arrayPath := testsupport.WriteFile(t, dir, "array.json",
		`[{"SCENE": 3, "IN": "00:00:01", "OUT": "00:00:02", "PERSONAJE": "luis", "DIALOGO": "Vamos"}]`)
	wrappedPath := testsupport.WriteFile(t, dir, "wrapped.json",
		`{"rows": [{"scene": "4", "in": "00:00:01", "out": "00:00:02", "personaje": "Eva", "dialogo": null}]}`)

	s, err := script.Load(arrayPath, script.Options{DialogueColumn: "DIALOGO"})
	if err != nil {
		t.Fatalf("Load array returned error: %v", err)
	}
	if s.Interventions[0].Scene != "3" || s.Interventions[0].Character != "LUIS" {
		t.Fatalf("unexpected array intervention: %+v", s.Interventions[0])
	}

	s, err = script.Load(wrappedPath, script.Options{DialogueColumn: "DIALOGO"})
	if err != nil {
		t.Fatalf("Load wrapped returned error: %v", err)
	}
	if len(s.Interventions) != 1 || s.Interventions[0].Text != "" || s.Interventions[0].Scene != "4" {
		t.Fatalf("unexpected wrapped interventions: %+v", s.Interventions)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := testsupport.WriteFile(t, dir, "script.yaml", `
- SCENE: 1
  IN: "00:00:01:00"
  OUT: "00:00:02:00"
  PERSONAJE: Ana
  DIALOGO: (risas) Claro
- SCENE: 1
  IN: "00:00:03:00"
  OUT: "00:00:04:00"
  PERSONAJE: Luis
  DIALOGO: Ya
`)
	s, err := script.Load(path, script.Options{DialogueColumn: "DIALOGO"})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(s.Interventions) != 2 {
		t.Fatalf("expected 2 interventions, got %d", len(s.Interventions))
	}
	if s.Interventions[0].Text != "(risas) Claro" || s.Interventions[1].Character != "LUIS" {
		t.Fatalf("unexpected interventions: %+v", s.Interventions)
	}
}

func TestLoadReportsColumnsInStableOrder(t *testing.T) {
	dir := t.TempDir()
	csvPath := testsupport.WriteScript(t, dir, "Dialogo", []testsupport.Row{
		{Scene: "1", In: "00:00:01", Out: "00:00:02", Character: "ANA", Text: "Hola"},
	})
	s, err := script.Load(csvPath, script.Options{DialogueColumn: "DIALOGO", Delimiter: ','})
	if err != nil {
		t.Fatalf("Load csv returned error: %v", err)
	}
	if want := []string{"SCENE", "IN", "OUT", "PERSONAJE", "DIALOGO"}; !reflect.DeepEqual(s.Columns, want) {
		t.Fatalf("csv Columns = %v, want header order %v", s.Columns, want)
	}

	jsonPath := testsupport.WriteFile(t, dir, "script.json",
		`[{"SCENE": 1, "IN": "00:00:01", "OUT": "00:00:02", "PERSONAJE": "Ana", "DIALOGO": "Hola", "NOTA": "x"},
		  {"SCENE": 1, "IN": "00:00:03", "OUT": "00:00:04", "PERSONAJE": "Luis", "DIALOGO": "Ya", "EXTRA": "y"}]`)
	want := []string{"DIALOGO", "EXTRA", "IN", "NOTA", "OUT", "PERSONAJE", "SCENE"}
	for i := 0; i < 20; i++ {
		s, err := script.Load(jsonPath, script.Options{DialogueColumn: "DIALOGO"})
		if err != nil {
			t.Fatalf("Load json returned error: %v", err)
		}
		if !reflect.DeepEqual(s.Columns, want) {
			t.Fatalf("json Columns = %v, want %v", s.Columns, want)
		}
	}
}

func TestLoadRejectsMissingColumn(t *testing.T) {
	dir := t.TempDir()
	path := testsupport.WriteScript(t, dir, "CASTELLANO", []testsupport.Row{
		{Scene: "1", In: "00:00:01", Out: "00:00:02", Character: "ANA", Text: "Hola"},
	})
	_, err := script.Load(path, script.Options{DialogueColumn: "EUSKERA"})
	if !errors.Is(err, script.ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	path := testsupport.WriteFile(t, t.TempDir(), "script.xlsx", "binary")
	_, err := script.Load(path, script.Options{DialogueColumn: "DIALOGO"})
	if !errors.Is(err, script.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestDetectLanguage(t *testing.T) {
	spanish := []script.Intervention{
		{Text: "¿Dónde está la biblioteca de la ciudad? Necesito encontrar un libro muy importante para mañana."},
		{Text: "No lo sé, pero creo que está cerca de la plaza mayor, al lado del ayuntamiento."},
		{Text: "Sí."},
	}
	got := script.DetectLanguage(spanish)
	if got.Code != "es" {
		t.Fatalf("expected es, got %+v", got)
	}
	if got.Samples != 2 || got.Share != 1 {
		t.Fatalf("expected short interjection skipped, got %+v", got)
	}

	if empty := script.DetectLanguage([]script.Intervention{{Text: "Ya"}}); empty.Code != "" {
		t.Fatalf("expected no detection for short texts, got %+v", empty)
	}
}

func TestCharacterKey(t *testing.T) {
	if got := script.CharacterKey("  maría   josé "); got != "MARÍA JOSÉ" {
		t.Fatalf("CharacterKey = %q", got)
	}
}
