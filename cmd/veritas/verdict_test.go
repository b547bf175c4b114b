package main

import "testing"

func TestNormalizeRating(t *testing.T) {
	cases := []struct {
		rating string
		want   Verdict
	}{
		{"True", VerdictTrue},
		{"Mostly correct", VerdictTrue},
		{"Accurate.", VerdictTrue},
		{"False", VerdictFalse},
		{"FALSE", VerdictFalse},
		{"Incorrect", VerdictFalse},
		{"Inaccurate", VerdictFalse},
		{"Untrue", VerdictFalse},
		{"Pants on Fire!", VerdictFalse},
		{"This is a hoax", VerdictFalse},
		{"Partly right", VerdictMisleading},
		{"Misleading", VerdictMisleading},
		{"Half-baked claim", VerdictMisleading},
		{"", VerdictOther},
		{"   ", VerdictOther},
		{"Unproven", VerdictOther},
		{"Needs context", VerdictOther},
	}

	for _, tc := range cases {
		if got := NormalizeRating(tc.rating); got != tc.want {
			t.Errorf("NormalizeRating(%q) = %v, want %v", tc.rating, got, tc.want)
		}
	}
}

func TestNormalizeRatingPriorityOrder(t *testing.T) {
	// True-ish terms are tested before false-ish and misleading terms
	if got := NormalizeRating("half true"); got != VerdictTrue {
		t.Errorf("NormalizeRating(\"half true\") = %v, want VerdictTrue", got)
	}
}

func TestContainsTermWordBoundary(t *testing.T) {
	cases := []struct {
		s, term string
		want    bool
	}{
		{"incorrect", "correct", false},
		{"mostly correct", "correct", true},
		{"correct", "correct", true},
		{"untrue", "true", false},
		{"half true", "true", true},
		{"inaccurate", "accurate", false},
		{"not incorrect, but correct", "correct", true},
		{"co", "correct", false},
	}
	for _, tc := range cases {
		if got := containsTerm(tc.s, tc.term); got != tc.want {
			t.Errorf("containsTerm(%q, %q) = %v, want %v", tc.s, tc.term, got, tc.want)
		}
	}
}

func TestVerdictColors(t *testing.T) {
	cases := []struct {
		verdict Verdict
		want    int
	}{
		{VerdictTrue, ColorTrue},
		{VerdictFalse, ColorFalse},
		{VerdictMisleading, ColorMisleading},
		{VerdictOther, ColorOther},
	}
	for _, tc := range cases {
		if got := tc.verdict.Color(); got != tc.want {
			t.Errorf("%v.Color() = %#x, want %#x", tc.verdict, got, tc.want)
		}
	}
}

func TestParseVerdict(t *testing.T) {
	cases := []struct {
		label string
		want  Verdict
	}{
		{"True", VerdictTrue},
		{" false ", VerdictFalse},
		{"Misleading", VerdictMisleading},
		{"Other", VerdictOther},
		{"gibberish", VerdictOther},
		{"", VerdictOther},
	}
	for _, tc := range cases {
		if got := ParseVerdict(tc.label); got != tc.want {
			t.Errorf("ParseVerdict(%q) = %v, want %v", tc.label, got, tc.want)
		}
	}
}
