package monitoring

import (
	"regexp"
	"strconv"
	"strings"
)

const scoreLabel = "Brand Health Index"

// An integer immediately preceding the literal "/100". The label and the
// suffix must appear in this order; anything else leaves the score unset.
var scorePattern = regexp.MustCompile(`(\d+)/100`)

// ExtractHealthScore parses the Brand Health Index out of the summarizer's
// free-text output: the first occurrence of the label, then the first
// integer immediately preceding "/100" anywhere later in the text. Returns
// ok=false when the pattern is absent, unparsable or out of the 0-100
// range; callers then skip the ledger append entirely.
func ExtractHealthScore(text string) (int, bool) {
	idx := strings.Index(text, scoreLabel)
	if idx < 0 {
		return 0, false
	}

	match := scorePattern.FindStringSubmatch(text[idx+len(scoreLabel):])
	if match == nil {
		return 0, false
	}

	score, err := strconv.Atoi(match[1])
	if err != nil || score < 0 || score > 100 {
		return 0, false
	}
	return score, true
}
