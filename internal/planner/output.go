package planner

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"takeplan/internal/fileutil"
	"takeplan/internal/render"
	"takeplan/internal/textutil"
)

// writeReports writes one file per report into dir, named after the script:
// <stem>.detail.csv, <stem>.summary.csv and so on. Empty problem and failure
// reports are skipped.
func writeReports(dir, format string, result *Result) ([]string, error) {
	base := filepath.Base(result.Script)
	stem := textutil.SanitizeToken(strings.TrimSuffix(base, filepath.Ext(base)))

	type report struct {
		name  string
		table render.Table
		data  any
		skip  bool
	}
	reports := []report{
		{render.NameDetail, render.DetailTable(result.Report.Detail, result.Column), result.Report.Detail, false},
		{render.NameSummary, render.SummaryTable(result.Report.Summary), result.Report.Summary, false},
		{render.NameTakes, render.TakesTable(result.Report.Takes), result.Report.Takes, false},
		{render.NameProblems, render.ProblemTable(result.Problems), result.Problems, len(result.Problems) == 0},
		{render.NameFailures, render.FailureTable(result.Failures), result.Failures, len(result.Failures) == 0},
	}

	var files []string
	for _, r := range reports {
		if r.skip {
			continue
		}
		var buf bytes.Buffer
		if format == render.FormatJSON {
			if err := render.WriteJSON(&buf, r.data); err != nil {
				return nil, fmt.Errorf("encode %s report: %w", r.name, err)
			}
		} else {
			body, err := r.table.Render(format)
			if err != nil {
				return nil, err
			}
			buf.WriteString(body)
			buf.WriteString("\n")
		}
		path := filepath.Join(dir, stem+"."+r.name+render.Extension(format))
		if err := fileutil.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
			return nil, fmt.Errorf("write %s report: %w", r.name, err)
		}
		files = append(files, path)
	}
	return files, nil
}
