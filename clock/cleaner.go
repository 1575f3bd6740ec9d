package clock

import "strings"

// MaxCleanLength is the longest raw value the cleaner will attempt to repair.
const MaxCleanLength = 20

// DefaultArtifacts are substrings that mark a time cell as scanner noise
// rather than handwriting.
var DefaultArtifacts = []string{"BBAL", "|", "~", "___", "###", "@@", "\\"}

var letterDigitReplacer = strings.NewReplacer(
	"l", "1",
	"I", "1",
	"S", "5",
	"B", "8",
	"Z", "2",
	"G", "6",
	"O", "0",
	"o", "0",
)

// Cleaner is an optional pass placed in front of Normalize for noisy scan
// sources. It repairs letter-for-digit misreads and rejects cells that are
// clearly not times.
type Cleaner struct {
	maxLength int
	artifacts []string
}

// NewCleaner builds a cleaner; with no artifacts the DefaultArtifacts apply.
func NewCleaner(artifacts ...string) *Cleaner {
	list := make([]string, 0, len(artifacts))
	for _, artifact := range artifacts {
		if trimmed := strings.TrimSpace(artifact); trimmed != "" {
			list = append(list, strings.ToUpper(trimmed))
		}
	}
	if len(list) == 0 {
		for _, artifact := range DefaultArtifacts {
			list = append(list, strings.ToUpper(artifact))
		}
	}
	return &Cleaner{maxLength: MaxCleanLength, artifacts: list}
}

// Clean returns the canonical time for raw, or false when the value cannot
// be recovered. Callers store a rejected value as null.
func (c *Cleaner) Clean(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || len(trimmed) > c.maxLength {
		return "", false
	}

	upper := strings.ToUpper(trimmed)
	for _, artifact := range c.artifacts {
		if strings.Contains(upper, artifact) {
			return "", false
		}
	}

	parsed, ok := Parse(letterDigitReplacer.Replace(trimmed))
	if !ok {
		return "", false
	}
	return parsed.String(), true
}
