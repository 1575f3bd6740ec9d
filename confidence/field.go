package confidence

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// FieldKind selects the scoring rules for one extracted value.
type FieldKind int

const (
	FieldName FieldKind = iota + 1
	FieldDate
	FieldTime
	FieldServiceCode
	FieldSignature
)

func (k FieldKind) String() string {
	switch k {
	case FieldName:
		return "name"
	case FieldDate:
		return "date"
	case FieldTime:
		return "time"
	case FieldServiceCode:
		return "service_code"
	case FieldSignature:
		return "signature"
	default:
		return fmt.Sprintf("field(%d)", int(k))
	}
}

const baseScore = 0.5

var (
	namePattern  = regexp.MustCompile(`^[\p{L} .'\-]+$`)
	digitPattern = regexp.MustCompile(`\d`)

	isoDatePattern   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	slashDatePattern = regexp.MustCompile(`^\d{1,2}[/-]\d{1,2}(?:[/-]\d{2,4})?$`)
	dayNamePattern   = regexp.MustCompile(`(?i)^(?:sun|mon|tue|wed|thu|fri|sat)[a-z]*\.?$`)

	canonicalTimePattern = regexp.MustCompile(`^(?:1[0-2]|[1-9]):[0-5]\d (?:AM|PM)$`)
	colonTimePattern     = regexp.MustCompile(`(?i)^\d{1,2}:\d{2}\s*(?:am|pm|a|p)?$`)
	meridiemRunPattern   = regexp.MustCompile(`(?i)^\d{1,4}\s*(?:am|pm|a|p)$`)
	digitRunPattern      = regexp.MustCompile(`^\d{1,4}$`)

	procedureCodePattern = regexp.MustCompile(`^[A-Z]\d{4}$`)
	modifiedCodePattern  = regexp.MustCompile(`^[A-Z]\d{4}[- ]?[A-Z0-9]{2}$`)
	alphanumericPattern  = regexp.MustCompile(`^[A-Z0-9\-]{3,10}$`)
	letterPattern        = regexp.MustCompile(`\p{L}`)
)

var affirmativeSignatures = map[string]bool{
	"signed":  true,
	"yes":     true,
	"y":       true,
	"present": true,
	"true":    true,
	"x":       true,
	"✓":       true,
	"✔":       true,
}

// ScoreField rates how plausible value is for kind, in [0, 1]. Blank values
// score 0.
func ScoreField(value string, kind FieldKind) float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}

	var score float64
	switch kind {
	case FieldName:
		score = scoreName(value)
	case FieldDate:
		score = scoreDate(value)
	case FieldTime:
		score = scoreTime(value)
	case FieldServiceCode:
		score = scoreServiceCode(value)
	case FieldSignature:
		score = scoreSignature(value)
	default:
		return 0
	}
	return clamp(score)
}

func scoreName(value string) float64 {
	score := baseScore
	if len(strings.Fields(value)) >= 2 {
		score += 0.2
	}
	if length := utf8.RuneCountInString(value); length >= 3 && length <= 50 {
		score += 0.1
	}
	if namePattern.MatchString(value) {
		score += 0.2
	}
	if digitPattern.MatchString(value) {
		score -= 0.3
	}
	return score
}

func scoreDate(value string) float64 {
	score := baseScore
	switch {
	case isoDatePattern.MatchString(value):
		score += 0.4
	case slashDatePattern.MatchString(value):
		score += 0.3
	case dayNamePattern.MatchString(value):
		score += 0.25
	}
	if digitPattern.MatchString(value) {
		score += 0.1
	}
	return score
}

func scoreTime(value string) float64 {
	score := baseScore
	switch {
	case canonicalTimePattern.MatchString(value):
		score += 0.4
	case colonTimePattern.MatchString(value):
		score += 0.3
	case meridiemRunPattern.MatchString(value):
		score += 0.2
	case digitRunPattern.MatchString(value):
		score += 0.1
	case !digitPattern.MatchString(value):
		score -= 0.3
	}
	return score
}

func scoreServiceCode(value string) float64 {
	code := strings.ToUpper(value)
	score := baseScore
	switch {
	case procedureCodePattern.MatchString(code):
		score += 0.4
	case modifiedCodePattern.MatchString(code):
		score += 0.35
	case alphanumericPattern.MatchString(code):
		score += 0.15
	}
	return score
}

func scoreSignature(value string) float64 {
	score := baseScore
	if affirmativeSignatures[strings.ToLower(value)] {
		return score + 0.4
	}
	if utf8.RuneCountInString(value) >= 2 {
		score += 0.2
	}
	if letterPattern.MatchString(value) {
		score += 0.2
	}
	return score
}

func clamp(score float64) float64 {
	switch {
	case score < 0:
		return 0
	case score > 1:
		return 1
	default:
		return score
	}
}
