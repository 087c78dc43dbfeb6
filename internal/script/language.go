package script

import (
	"sort"
	"unicode/utf8"

	"github.com/abadojack/whatlanggo"
)

// minDetectRunes skips interjections too short to classify.
const minDetectRunes = 12

// Detection is the dominant language of a dialogue column.
type Detection struct {
	// Code is an ISO 639-1 code, empty when nothing could be classified.
	Code    string  `json:"code"`
	Share   float64 `json:"share"`
	Samples int     `json:"samples"`
}

// DetectLanguage votes over every sufficiently long intervention text.
func DetectLanguage(interventions []Intervention) Detection {
	votes := map[string]int{}
	samples := 0
	for _, iv := range interventions {
		if utf8.RuneCountInString(iv.Text) < minDetectRunes {
			continue
		}
		code := whatlanggo.DetectLang(iv.Text).Iso6391()
		if code == "" {
			continue
		}
		votes[code]++
		samples++
	}
	if samples == 0 {
		return Detection{}
	}
	codes := make([]string, 0, len(votes))
	for code := range votes {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool {
		if votes[codes[i]] != votes[codes[j]] {
			return votes[codes[i]] > votes[codes[j]]
		}
		return codes[i] < codes[j]
	})
	top := codes[0]
	return Detection{
		Code:    top,
		Share:   float64(votes[top]) / float64(samples),
		Samples: samples,
	}
}
