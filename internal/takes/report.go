package takes

import (
	"sort"

	"takeplan/internal/config"
	"takeplan/internal/dialogue"
	"takeplan/internal/script"
)

// TotalLabel names the trailing summary row.
const TotalLabel = "TOTAL"

// DetailRow is one wrapped line of the take sheet.
type DetailRow struct {
	Scene     string `json:"scene"`
	Take      int    `json:"take"`
	Character string `json:"character"`
	Text      string `json:"text"`
	In        string `json:"in"`
	Out       string `json:"out"`
}

// SummaryRow counts the takes a character appears in.
type SummaryRow struct {
	Character string `json:"character"`
	Takes     int    `json:"takes"`
}

// TakeSummary describes one take of the plan.
type TakeSummary struct {
	Take       int      `json:"take"`
	Scene      string   `json:"scene"`
	In         string   `json:"in"`
	Out        string   `json:"out"`
	Duration   float64  `json:"duration_seconds"`
	Blocks     int      `json:"blocks"`
	Lines      int      `json:"lines"`
	Characters []string `json:"characters"`
}

// Stats aggregates a plan.
type Stats struct {
	Interventions int `json:"interventions"`
	Blocks        int `json:"blocks"`
	Scenes        int `json:"scenes"`
	FailedScenes  int `json:"failed_scenes"`
	Takes         int `json:"takes"`
	Characters    int `json:"characters"`
	DetailLines   int `json:"detail_lines"`
}

// Report is the rendered take plan.
type Report struct {
	Detail  []DetailRow   `json:"detail"`
	Summary []SummaryRow  `json:"summary"`
	Takes   []TakeSummary `json:"takes"`
	Stats   Stats         `json:"stats"`
}

// BuildReport renders plan as detail and summary tables. Takes are renumbered
// 1..N by start time, ties keeping plan order. Within a take each maximal run of
// one character's interventions is merged and wrapped; every resulting line
// carries the in of the run's first intervention and the out of its last.
func BuildReport(interventions []script.Intervention, blocks []Block, plan Plan, c config.Constraints) Report {
	merger := dialogue.Merger{MaxChars: c.MaxCharsPerLine}

	ordered := make([]Take, len(plan.Takes))
	copy(ordered, plan.Takes)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := blocks[ordered[i].Start].In, blocks[ordered[j].Start].In
		if a != b {
			return a < b
		}
		return ordered[i].ID < ordered[j].ID
	})

	report := Report{Detail: []DetailRow{}, Summary: []SummaryRow{}, Takes: []TakeSummary{}}
	appearances := make(map[string]int)
	scenes := make(map[string]struct{})
	for _, b := range blocks {
		scenes[b.Scene] = struct{}{}
	}

	for rank, take := range ordered {
		number := rank + 1
		segment := blocks[take.Start:take.End]
		first, last := segment[0], segment[len(segment)-1]
		summary := TakeSummary{
			Take:     number,
			Scene:    take.Scene,
			In:       first.InCode,
			Out:      last.OutCode,
			Duration: last.Out - first.In,
			Blocks:   len(segment),
		}

		seen := make(map[string]struct{})
		for _, r := range characterRuns(segment) {
			texts := make([]string, len(r.indices))
			for i, idx := range r.indices {
				texts[i] = interventions[idx].Text
			}
			in := interventions[r.indices[0]].InCode
			out := interventions[r.indices[len(r.indices)-1]].OutCode
			for _, group := range merger.Render(texts, merger.OptimalMerge(texts)) {
				for _, line := range group.Lines {
					report.Detail = append(report.Detail, DetailRow{
						Scene:     take.Scene,
						Take:      number,
						Character: r.character,
						Text:      line,
						In:        in,
						Out:       out,
					})
					summary.Lines++
				}
			}
			if _, ok := seen[r.character]; !ok {
				seen[r.character] = struct{}{}
				summary.Characters = append(summary.Characters, r.character)
				appearances[r.character]++
			}
		}
		report.Takes = append(report.Takes, summary)
	}

	names := make([]string, 0, len(appearances))
	for name := range appearances {
		names = append(names, name)
	}
	sort.Strings(names)
	total := 0
	for _, name := range names {
		report.Summary = append(report.Summary, SummaryRow{Character: name, Takes: appearances[name]})
		total += appearances[name]
	}
	report.Summary = append(report.Summary, SummaryRow{Character: TotalLabel, Takes: total})

	report.Stats = Stats{
		Interventions: len(interventions),
		Blocks:        len(blocks),
		Scenes:        len(scenes),
		FailedScenes:  len(plan.Failures),
		Takes:         len(plan.Takes),
		Characters:    len(names),
		DetailLines:   len(report.Detail),
	}
	return report
}
