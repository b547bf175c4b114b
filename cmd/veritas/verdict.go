// cmd/veritas/verdict.go
package main

import "strings"

// Verdict is the normalized classification of a fact-check rating
type Verdict int

const (
	VerdictTrue Verdict = iota
	VerdictFalse
	VerdictMisleading
	VerdictOther
)

// Keyword groups tested in fixed priority order; first match wins
var (
	trueTerms       = []string{"true", "correct", "accurate"}
	falseTerms      = []string{"false", "untrue", "incorrect", "inaccurate", "pants on fire", "hoax"}
	misleadingTerms = []string{"partly", "misleading", "half"}
)

// String returns the display label for the verdict
func (v Verdict) String() string {
	switch v {
	case VerdictTrue:
		return "True"
	case VerdictFalse:
		return "False"
	case VerdictMisleading:
		return "Misleading"
	default:
		return "Unverified"
	}
}

// Color returns the embed color associated with the verdict
func (v Verdict) Color() int {
	switch v {
	case VerdictTrue:
		return ColorTrue
	case VerdictFalse:
		return ColorFalse
	case VerdictMisleading:
		return ColorMisleading
	default:
		return ColorOther
	}
}

// Emoji returns the status emoji shown next to the verdict label
func (v Verdict) Emoji() string {
	switch v {
	case VerdictTrue:
		return "✅"
	case VerdictFalse:
		return "❌"
	case VerdictMisleading:
		return "⚠️"
	default:
		return "❔"
	}
}

// NormalizeRating maps a free-text publisher rating to a Verdict.
// Matching is case-insensitive; an empty rating yields VerdictOther.
func NormalizeRating(rating string) Verdict {
	r := strings.ToLower(strings.TrimSpace(rating))
	if r == "" {
		return VerdictOther
	}

	for _, term := range trueTerms {
		if containsTerm(r, term) {
			return VerdictTrue
		}
	}
	for _, term := range falseTerms {
		if containsTerm(r, term) {
			return VerdictFalse
		}
	}
	for _, term := range misleadingTerms {
		if containsTerm(r, term) {
			return VerdictMisleading
		}
	}
	return VerdictOther
}

// containsTerm reports whether term occurs in r starting at a word
// boundary, so "correct" does not fire inside "incorrect" and "true"
// does not fire inside "untrue".
func containsTerm(r, term string) bool {
	for at := 0; at <= len(r)-len(term); {
		i := strings.Index(r[at:], term)
		if i < 0 {
			return false
		}
		i += at
		if i == 0 || !isASCIILetter(r[i-1]) {
			return true
		}
		at = i + 1
	}
	return false
}

func isASCIILetter(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

// ParseVerdict maps a verdict label back to a Verdict, used when parsing
// the AI classifier's templated output
func ParseVerdict(label string) Verdict {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "true":
		return VerdictTrue
	case "false":
		return VerdictFalse
	case "misleading":
		return VerdictMisleading
	default:
		return VerdictOther
	}
}
