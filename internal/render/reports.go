package render

import (
	"fmt"
	"strconv"
	"strings"

	"takeplan/internal/takes"
)

// Report table names, also used as output file stems.
const (
	NameDetail   = "detail"
	NameSummary  = "summary"
	NameTakes    = "takes"
	NameProblems = "problems"
	NameFailures = "failures"
)

// DetailTable lists one wrapped line per row. column labels the text column
// with the script's dialogue column name.
func DetailTable(rows []takes.DetailRow, column string) Table {
	label := strings.ToUpper(strings.TrimSpace(column))
	if label == "" {
		label = "DIALOGO"
	}
	t := Table{
		Name:    NameDetail,
		Title:   "Takes",
		Headers: []string{"SCENE", "TAKE", "PERSONAJE", label, "IN", "OUT"},
		Aligns:  []Alignment{AlignLeft, AlignRight, AlignLeft, AlignLeft, AlignLeft, AlignLeft},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.Scene, strconv.Itoa(r.Take), r.Character, r.Text, r.In, r.Out})
	}
	return t
}

// SummaryTable lists takes per character, ending with the total row.
func SummaryTable(rows []takes.SummaryRow) Table {
	t := Table{
		Name:    NameSummary,
		Title:   "Summary",
		Headers: []string{"PERSONAJE", "TAKES"},
		Aligns:  []Alignment{AlignLeft, AlignRight},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.Character, strconv.Itoa(r.Takes)})
	}
	return t
}

// TakesTable lists the span and cast of every take.
func TakesTable(rows []takes.TakeSummary) Table {
	t := Table{
		Name:    NameTakes,
		Title:   "Take list",
		Headers: []string{"TAKE", "SCENE", "IN", "OUT", "SECONDS", "LINES", "CHARACTERS"},
		Aligns:  []Alignment{AlignRight, AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignRight, AlignLeft},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(r.Take),
			r.Scene,
			r.In,
			r.Out,
			strconv.FormatFloat(r.Duration, 'f', 2, 64),
			strconv.Itoa(r.Lines),
			strings.Join(r.Characters, ", "),
		})
	}
	return t
}

// ProblemTable lists interventions that could not be planned as written.
func ProblemTable(problems []takes.Problem) Table {
	t := Table{
		Name:    NameProblems,
		Title:   "Problems",
		Headers: []string{"ROW", "SCENE", "PERSONAJE", "IN", "OUT", "KIND", "DETAIL"},
		Aligns:  []Alignment{AlignRight},
	}
	for _, p := range problems {
		t.Rows = append(t.Rows, []string{strconv.Itoa(p.Row), p.Scene, p.Character, p.InCode, p.OutCode, string(p.Kind), p.Detail})
	}
	return t
}

// FailureTable lists scenes left out of the plan.
func FailureTable(failures []*takes.SegmentationFailure) Table {
	t := Table{
		Name:    NameFailures,
		Title:   "Unsegmentable scenes",
		Headers: []string{"SCENE", "BLOCK", "IN", "OUT", "REASON", "DETAIL"},
		Aligns:  []Alignment{AlignLeft, AlignRight},
	}
	for _, f := range failures {
		t.Rows = append(t.Rows, []string{
			f.Scene,
			fmt.Sprintf("%d/%d", f.Block+1, f.Blocks),
			f.InCode,
			f.OutCode,
			string(f.Reason),
			f.Detail,
		})
	}
	return t
}
