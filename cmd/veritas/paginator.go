// cmd/veritas/paginator.go
package main

import "unicode/utf8"

// Page is one paginated unit of display content
type Page struct {
	Content    string
	RawRating  string
	Publisher  string
	SourceURL  string
	ReviewDate string
	Verdict    Verdict
	Index      int
	Total      int
}

// Paginate flattens claim results into pages. A claim whose text exceeds
// PageContentLimit is split into consecutive pages sharing the same
// metadata; input order is preserved.
func Paginate(results []ClaimResult) []Page {
	var pages []Page
	for _, result := range results {
		verdict := result.Verdict()
		for _, chunk := range chunkString(result.ClaimText, PageContentLimit) {
			pages = append(pages, Page{
				Content:    chunk,
				RawRating:  result.Rating,
				Publisher:  result.Publisher,
				SourceURL:  result.SourceURL,
				ReviewDate: result.ReviewDate,
				Verdict:    verdict,
			})
		}
	}

	for i := range pages {
		pages[i].Index = i
		pages[i].Total = len(pages)
	}
	return pages
}

// PaginateSummaries renders encyclopedia summaries as pages so they share
// the same navigation controls as structured results
func PaginateSummaries(summaries []WikiSummary) []Page {
	var pages []Page
	for _, summary := range summaries {
		for _, chunk := range chunkString(summary.Extract, PageContentLimit) {
			pages = append(pages, Page{
				Content:   chunk,
				Publisher: summary.Title,
				SourceURL: summary.URL,
				Verdict:   VerdictOther,
			})
		}
	}

	for i := range pages {
		pages[i].Index = i
		pages[i].Total = len(pages)
	}
	return pages
}

// chunkString slices s into pieces of at most size bytes. The split is
// not word-boundary-aware, but it never cuts through a multi-byte rune:
// the cut point backs up to the nearest rune start.
func chunkString(s string, size int) []string {
	if s == "" {
		return nil
	}
	var chunks []string
	for len(s) > size {
		cut := runeBoundary(s, size)
		chunks = append(chunks, s[:cut])
		s = s[cut:]
	}
	return append(chunks, s)
}

// runeBoundary returns the largest index <= max that falls on a rune
// start in s, so slicing at it yields valid UTF-8. A run of continuation
// bytes longer than a rune means invalid input; max is returned as-is.
func runeBoundary(s string, max int) int {
	if max >= len(s) {
		return len(s)
	}
	for i := max; i > max-utf8.UTFMax && i > 0; i-- {
		if utf8.RuneStart(s[i]) {
			return i
		}
	}
	return max
}

// clampIndex bounds an index to [0, total-1]
func clampIndex(index, total int) int {
	if index < 0 {
		return 0
	}
	if index >= total {
		return total - 1
	}
	return index
}
