package main

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func TestIsBareURL(t *testing.T) {
	cases := []struct {
		statement string
		want      bool
	}{
		{"https://example.org/article", true},
		{"http://example.org", true},
		{" https://example.org ", true},
		{"the earth is flat", false},
		{"check https://example.org please", false},
		{"ftp://example.org", false},
		{"example.org/article", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := IsBareURL(tc.statement); got != tc.want {
			t.Errorf("IsBareURL(%q) = %v, want %v", tc.statement, got, tc.want)
		}
	}
}

func mustParseHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse HTML: %v", err)
	}
	return doc
}

func TestExtractStatementPrefersOpenGraph(t *testing.T) {
	doc := mustParseHTML(t, `<html><head>
		<title>Raw Title | Site Name</title>
		<meta property="og:title" content="Scientists Confirm Finding">
		<meta property="og:description" content="A detailed look at the evidence.">
	</head></html>`)

	got := ExtractStatementFromDocument(doc)
	want := "Scientists Confirm Finding. A detailed look at the evidence."
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestExtractStatementFallsBackToTitleTag(t *testing.T) {
	doc := mustParseHTML(t, `<html><head>
		<title>Plain Title</title>
		<meta name="description" content="Meta description here.">
	</head></html>`)

	got := ExtractStatementFromDocument(doc)
	if got != "Plain Title. Meta description here." {
		t.Errorf("got %q", got)
	}
}

func TestExtractStatementTitleOnly(t *testing.T) {
	doc := mustParseHTML(t, `<html><head><title>Just a Title</title></head></html>`)
	if got := ExtractStatementFromDocument(doc); got != "Just a Title" {
		t.Errorf("got %q", got)
	}
}

func TestExtractStatementEmptyPage(t *testing.T) {
	doc := mustParseHTML(t, `<html><head></head><body></body></html>`)
	if got := ExtractStatementFromDocument(doc); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}
