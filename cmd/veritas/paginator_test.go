package main

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestPaginateShortClaims(t *testing.T) {
	var results []ClaimResult
	for i := 0; i < 4; i++ {
		results = append(results, ClaimResult{
			ClaimText: fmt.Sprintf("claim number %d", i),
			Rating:    "False",
		})
	}

	pages := Paginate(results)
	if len(pages) != 4 {
		t.Fatalf("expected 4 pages, got %d", len(pages))
	}
	for i, page := range pages {
		if want := fmt.Sprintf("claim number %d", i); page.Content != want {
			t.Errorf("page %d content = %q, want %q (input order must be preserved)", i, page.Content, want)
		}
		if page.Index != i {
			t.Errorf("page %d has Index %d", i, page.Index)
		}
		if page.Total != 4 {
			t.Errorf("page %d has Total %d, want 4", i, page.Total)
		}
		if page.Verdict != VerdictFalse {
			t.Errorf("page %d verdict = %v, want VerdictFalse", i, page.Verdict)
		}
	}
}

func TestPaginateLongClaimSplits(t *testing.T) {
	results := []ClaimResult{{
		ClaimText: strings.Repeat("a", 2500),
		Rating:    "Misleading",
		Publisher: "Example Checker",
	}}

	pages := Paginate(results)
	if len(pages) != 3 {
		t.Fatalf("expected 3 pages for a 2500-char claim, got %d", len(pages))
	}

	wantLengths := []int{1000, 1000, 500}
	for i, page := range pages {
		if len(page.Content) != wantLengths[i] {
			t.Errorf("page %d length = %d, want %d", i, len(page.Content), wantLengths[i])
		}
		if page.Verdict != VerdictMisleading {
			t.Errorf("page %d verdict = %v, want VerdictMisleading", i, page.Verdict)
		}
		if page.Publisher != "Example Checker" {
			t.Errorf("page %d lost its publisher metadata", i)
		}
	}
}

func TestPaginateEmptyInput(t *testing.T) {
	if pages := Paginate(nil); len(pages) != 0 {
		t.Errorf("Paginate(nil) returned %d pages", len(pages))
	}
}

func TestChunkString(t *testing.T) {
	cases := []struct {
		input string
		size  int
		want  []string
	}{
		{"", 10, nil},
		{"short", 10, []string{"short"}},
		{"abcdefghij", 10, []string{"abcdefghij"}},
		{"abcdefghijk", 10, []string{"abcdefghij", "k"}},
		// "é" is 2 bytes; a cut at byte 5 would split it
		{"abcdéfghij", 5, []string{"abcd", "éfgh", "ij"}},
	}

	for _, tc := range cases {
		got := chunkString(tc.input, tc.size)
		if len(got) != len(tc.want) {
			t.Errorf("chunkString(%q, %d) = %v, want %v", tc.input, tc.size, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("chunkString(%q, %d)[%d] = %q, want %q", tc.input, tc.size, i, got[i], tc.want[i])
			}
			if !utf8.ValidString(got[i]) {
				t.Errorf("chunkString(%q, %d)[%d] = %q is not valid UTF-8", tc.input, tc.size, i, got[i])
			}
		}
	}
}

func TestClampIndex(t *testing.T) {
	cases := []struct {
		index, total, want int
	}{
		{-1, 3, 0},
		{0, 3, 0},
		{2, 3, 2},
		{3, 3, 2},
		{100, 3, 2},
	}
	for _, tc := range cases {
		if got := clampIndex(tc.index, tc.total); got != tc.want {
			t.Errorf("clampIndex(%d, %d) = %d, want %d", tc.index, tc.total, got, tc.want)
		}
	}
}

func TestPaginateSummaries(t *testing.T) {
	summaries := []WikiSummary{
		{Title: "First", Extract: "one", URL: "https://example.org/1"},
		{Title: "Second", Extract: strings.Repeat("b", 1500), URL: "https://example.org/2"},
	}

	pages := PaginateSummaries(summaries)
	if len(pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(pages))
	}
	if pages[0].Publisher != "First" || pages[1].Publisher != "Second" || pages[2].Publisher != "Second" {
		t.Errorf("summary titles not carried onto pages: %+v", pages)
	}
	if pages[1].Total != 3 {
		t.Errorf("Total = %d, want 3", pages[1].Total)
	}
}
