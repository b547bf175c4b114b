// cmd/veritas/wikipedia.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"unicode"
)

// WikiSummary is one encyclopedia match for a statement
type WikiSummary struct {
	Title   string
	Extract string
	URL     string
}

const (
	defaultWikiSearchBaseURL  = "https://en.wikipedia.org/w/api.php"
	defaultWikiSummaryBaseURL = "https://en.wikipedia.org/api/rest_v1/page/summary"
	wikiSearchCandidates      = 5
)

// WikiClient looks up encyclopedia context for a statement
type WikiClient struct {
	searchBaseURL  string
	summaryBaseURL string
	client         *http.Client
}

// NewWikiClient creates an encyclopedia summary client
func NewWikiClient() *WikiClient {
	return &WikiClient{
		searchBaseURL:  defaultWikiSearchBaseURL,
		summaryBaseURL: defaultWikiSummaryBaseURL,
		client:         &http.Client{Timeout: DefaultHTTPTimeout},
	}
}

// Summaries searches the encyclopedia for the statement, scores the top
// candidates by keyword overlap, and fetches a short summary for the best
// matches. No match returns an empty slice, not an error; per-title summary
// failures are skipped.
func (w *WikiClient) Summaries(ctx context.Context, statement string) ([]WikiSummary, error) {
	titles, err := w.searchTitles(ctx, statement)
	if err != nil {
		return nil, err
	}
	if len(titles) == 0 {
		return nil, nil
	}

	picked := rankTitles(titles, ExtractKeyTerms(statement), MaxWikiSummaries)

	var summaries []WikiSummary
	for _, title := range picked {
		summary, err := w.fetchSummary(ctx, title)
		if err != nil {
			Logger().Warning("Wikipedia summary fetch failed for %q: %v", title, err)
			continue
		}
		if summary.Extract != "" {
			summaries = append(summaries, *summary)
		}
	}

	return summaries, nil
}

// searchTitles runs a full-text search and returns the ranked title list
func (w *WikiClient) searchTitles(ctx context.Context, statement string) ([]string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", statement)
	params.Set("srlimit", fmt.Sprintf("%d", wikiSearchCandidates))
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.searchBaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, NewQueryError(ErrCodeWikipedia, "failed to build search request", err)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, NewQueryError(ErrCodeWikipedia, "encyclopedia search failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, NewQueryError(ErrCodeWikipedia,
			fmt.Sprintf("encyclopedia search returned status %s", resp.Status), nil)
	}

	var parsed struct {
		Query struct {
			Search []struct {
				Title string `json:"title"`
			} `json:"search"`
		} `json:"query"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, NewQueryError(ErrCodeWikipedia, "failed to parse search response", err)
	}

	var titles []string
	for _, hit := range parsed.Query.Search {
		if hit.Title != "" {
			titles = append(titles, hit.Title)
		}
	}
	return titles, nil
}

// fetchSummary retrieves the short summary and canonical link for a title
func (w *WikiClient) fetchSummary(ctx context.Context, title string) (*WikiSummary, error) {
	endpoint := fmt.Sprintf("%s/%s", w.summaryBaseURL, url.PathEscape(title))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, NewQueryError(ErrCodeWikipedia, "failed to build summary request", err)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, NewQueryError(ErrCodeWikipedia, "summary fetch failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, NewQueryError(ErrCodeWikipedia,
			fmt.Sprintf("summary fetch returned status %s", resp.Status), nil)
	}

	var parsed struct {
		Title       string `json:"title"`
		Extract     string `json:"extract"`
		ContentURLs struct {
			Desktop struct {
				Page string `json:"page"`
			} `json:"desktop"`
		} `json:"content_urls"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, NewQueryError(ErrCodeWikipedia, "failed to parse summary response", err)
	}

	return &WikiSummary{
		Title:   parsed.Title,
		Extract: parsed.Extract,
		URL:     parsed.ContentURLs.Desktop.Page,
	}, nil
}

// ExtractKeyTerms pulls likely topic words from a statement: capitalized
// words plus any word of six letters or more, lowercased and deduplicated.
func ExtractKeyTerms(statement string) []string {
	seen := make(map[string]bool)
	var terms []string

	for _, word := range strings.Fields(statement) {
		cleaned := strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if cleaned == "" {
			continue
		}

		runes := []rune(cleaned)
		capitalized := unicode.IsUpper(runes[0])
		if !capitalized && len(runes) < 6 {
			continue
		}

		lower := strings.ToLower(cleaned)
		if seen[lower] {
			continue
		}
		seen[lower] = true
		terms = append(terms, lower)
	}

	return terms
}

// rankTitles orders candidate titles by keyword overlap with the statement
// terms and returns the best max titles. With no usable terms the original
// search ranking stands.
func rankTitles(titles []string, terms []string, max int) []string {
	if len(titles) <= 1 || len(terms) == 0 {
		if len(titles) > max {
			return titles[:max]
		}
		return titles
	}

	type scored struct {
		title string
		score int
		pos   int
	}

	ranked := make([]scored, 0, len(titles))
	for i, title := range titles {
		lower := strings.ToLower(title)
		score := 0
		for _, term := range terms {
			if strings.Contains(lower, term) {
				score++
			}
		}
		ranked = append(ranked, scored{title: title, score: score, pos: i})
	}

	// Stable on the upstream relevance order for equal scores
	sort.SliceStable(ranked, func(a, b int) bool {
		if ranked[a].score != ranked[b].score {
			return ranked[a].score > ranked[b].score
		}
		return ranked[a].pos < ranked[b].pos
	})

	if len(ranked) > max {
		ranked = ranked[:max]
	}

	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.title
	}
	return out
}
