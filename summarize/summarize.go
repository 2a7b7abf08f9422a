package summarize

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	DefaultLimit = 5
	Bullet       = "• "
)

var sentenceBreak = regexp.MustCompile(`[.!?]+`)

type Result struct {
	Summary        string
	OriginalLength int
	SummaryLength  int
}

// Summarize keeps the first limit sentences of text as bullet lines.
// Sentences end at any run of '.', '!' or '?'; blank fragments are dropped.
// A negative limit is treated as zero. Lengths count code points.
func Summarize(text string, limit int) Result {
	if limit < 0 {
		limit = 0
	}

	var lines []string
	for _, fragment := range sentenceBreak.Split(text, -1) {
		if len(lines) == limit {
			break
		}
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}
		lines = append(lines, Bullet+fragment)
	}

	summary := strings.Join(lines, "\n")
	return Result{
		Summary:        summary,
		OriginalLength: utf8.RuneCountInString(text),
		SummaryLength:  utf8.RuneCountInString(summary),
	}
}
