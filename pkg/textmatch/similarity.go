package textmatch

import (
	"math"
	"strings"

	"github.com/agext/levenshtein"
)

// KeywordTolerance is the largest edit distance at which a transcript word
// still counts as the keyword.
const KeywordTolerance = 2

var distanceParams = levenshtein.NewParams()

// Distance returns the unit-cost Levenshtein distance between a and b.
func Distance(a, b string) int {
	return levenshtein.Distance(a, b, distanceParams)
}

// Similarity scores how close spoken is to target on a 0..100 scale.
func Similarity(target, spoken string) int {
	nt := Normalize(target)
	ns := Normalize(spoken)

	if nt == ns {
		return 100
	}
	if ns == "" {
		return 0
	}

	maxLen := len(nt)
	if len(ns) > maxLen {
		maxLen = len(ns)
	}
	score := Round((1 - float64(Distance(nt, ns))/float64(maxLen)) * 100)
	return Clamp(score, 0, 100)
}

// KeywordCoverage returns the share of keywords, in percent, that appear in
// spoken either as a substring or as a word within KeywordTolerance edits.
// An empty keyword list is fully covered.
func KeywordCoverage(keywords []string, spoken string) int {
	if len(keywords) == 0 {
		return 100
	}

	ns := Normalize(spoken)
	words := Words(ns)
	matched := 0
	for _, keyword := range keywords {
		kw := strings.ToLower(keyword)
		if strings.Contains(ns, kw) {
			matched++
			continue
		}
		for _, word := range words {
			if Distance(kw, word) <= KeywordTolerance {
				matched++
				break
			}
		}
	}
	return Round(float64(matched) / float64(len(keywords)) * 100)
}

// Round rounds half up, the way the scoring tables were calibrated.
func Round(v float64) int {
	return int(math.Floor(v + 0.5))
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
