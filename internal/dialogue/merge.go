package dialogue

import (
	"math"
	"strings"
)

// Group is a half-open range [Start, End) of texts merged into one wrap.
type Group struct {
	Start int
	End   int
}

// Merge is the outcome of OptimalMerge.
type Merge struct {
	Lines  int
	Groups []Group
}

// MergedGroup is a rendered Group.
type MergedGroup struct {
	Group
	Text  string
	Lines []string
}

// Merger merges runs of texts spoken by the same character.
type Merger struct {
	MaxChars int
}

// OptimalMerge chooses merge boundaries over texts minimizing the total number
// of wrapped lines. Among equal choices the earliest boundary wins, so results
// are stable across runs.
func (m Merger) OptimalMerge(texts []string) Merge {
	n := len(texts)
	if n == 0 {
		return Merge{}
	}
	dp := make([]int, n+1)
	back := make([]int, n+1)
	for i := 1; i <= n; i++ {
		dp[i] = math.MaxInt
		for j := 0; j < i; j++ {
			cost := dp[j] + LineCount(strings.Join(texts[j:i], " "), m.MaxChars)
			if cost < dp[i] {
				dp[i] = cost
				back[i] = j
			}
		}
	}

	groups := make([]Group, 0, n)
	for i := n; i > 0; i = back[i] {
		groups = append(groups, Group{Start: back[i], End: i})
	}
	for l, r := 0, len(groups)-1; l < r; l, r = l+1, r-1 {
		groups[l], groups[r] = groups[r], groups[l]
	}
	return Merge{Lines: dp[n], Groups: groups}
}

// Render joins and wraps each group of texts.
func (m Merger) Render(texts []string, merge Merge) []MergedGroup {
	out := make([]MergedGroup, 0, len(merge.Groups))
	for _, g := range merge.Groups {
		text := strings.Join(texts[g.Start:g.End], " ")
		out = append(out, MergedGroup{
			Group: g,
			Text:  text,
			Lines: Lines(text, m.MaxChars),
		})
	}
	return out
}
