package scoredomain

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// scorePattern matches the canonical share line, e.g. "Wordle 1042 4/6" or
// "wordle 1042 X/6". Surrounding decoration (emoji grids, extra newlines)
// is irrelevant to the match; a missing keyword or "/6" suffix is not.
var scorePattern = regexp.MustCompile(`(?i)Wordle\s+(\d+)\s+(X|[1-6])/6`)

// summaryLinePattern matches one result line of a daily digest, e.g.
// "3/6: @alice @bob".
var summaryLinePattern = regexp.MustCompile(`(?i)(X|[1-6])/6:\s+(.*)`)

// CrownLinePrefix marks the digest line naming the previous day's winners.
const CrownLinePrefix = "👑"

// puzzleEpoch is the date of Wordle #0; puzzle numbers count days from it.
var puzzleEpoch = time.Date(2021, time.June, 19, 0, 0, 0, 0, time.UTC)

// Extraction is a parsed score: the puzzle it belongs to and the attempt
// count, nil meaning the X/6 failure marker.
type Extraction struct {
	PuzzleNumber int
	Attempts     *int
}

// ExtractScore pulls the puzzle number and attempts out of free text.
// The second return value is false when the text does not contain a score.
func ExtractScore(text string) (Extraction, bool) {
	m := scorePattern.FindStringSubmatch(text)
	if m == nil {
		return Extraction{}, false
	}

	number, err := strconv.Atoi(m[1])
	if err != nil {
		return Extraction{}, false
	}

	ext := Extraction{PuzzleNumber: number}
	if !strings.EqualFold(m[2], "X") {
		attempts, _ := strconv.Atoi(m[2])
		ext.Attempts = &attempts
	}
	return ext, true
}

// SummaryLine is one parsed result line of a daily digest: the attempts
// token and the raw user section that still needs mention resolution.
type SummaryLine struct {
	Attempts    *int
	UserSection string
}

// ParseSummaryLines extracts every result line from a digest body.
func ParseSummaryLines(content string) []SummaryLine {
	var lines []SummaryLine
	for _, raw := range strings.Split(content, "\n") {
		m := summaryLinePattern.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		line := SummaryLine{UserSection: m[2]}
		if !strings.EqualFold(m[1], "X") {
			attempts, _ := strconv.Atoi(m[1])
			line.Attempts = &attempts
		}
		lines = append(lines, line)
	}
	return lines
}

// CrownLines returns the digest lines that name crown winners.
func CrownLines(content string) []string {
	var lines []string
	for _, raw := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(raw), CrownLinePrefix) {
			lines = append(lines, raw)
		}
	}
	return lines
}

// PuzzleNumberForDate derives the puzzle number for a calendar date. A
// digest posted on day N reports day N-1, so callers pass the shifted date.
func PuzzleNumberForDate(d time.Time) int {
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return int(day.Sub(puzzleEpoch).Hours() / 24)
}

// DateForPuzzle is the inverse of PuzzleNumberForDate.
func DateForPuzzle(n int) time.Time {
	return puzzleEpoch.AddDate(0, 0, n)
}
