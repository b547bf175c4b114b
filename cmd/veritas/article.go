// cmd/veritas/article.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ArticleResolver turns a bare link into a checkable statement by fetching
// the page and extracting its title and description
type ArticleResolver struct {
	client    *http.Client
	userAgent string
}

// NewArticleResolver creates an article resolver
func NewArticleResolver() *ArticleResolver {
	return &ArticleResolver{
		client:    &http.Client{Timeout: DefaultHTTPTimeout},
		userAgent: "VeritasBot/" + VERSION,
	}
}

// IsBareURL reports whether the statement is a single http(s) link
func IsBareURL(statement string) bool {
	s := strings.TrimSpace(statement)
	if strings.ContainsAny(s, " \t\n") {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Resolve fetches the linked page and returns "title. description" as the
// statement text. The description is dropped when the page has none.
func (ar *ArticleResolver) Resolve(ctx context.Context, link string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimSpace(link), nil)
	if err != nil {
		return "", NewQueryError(ErrCodeArticleFetch, "failed to build request", err)
	}
	req.Header.Set("User-Agent", ar.userAgent)

	resp, err := ar.client.Do(req)
	if err != nil {
		return "", NewQueryError(ErrCodeArticleFetch, "article fetch failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", NewQueryError(ErrCodeArticleFetch,
			fmt.Sprintf("article fetch returned status %s", resp.Status), nil)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", NewQueryError(ErrCodeArticleFetch, "failed to parse article HTML", err)
	}

	return ExtractStatementFromDocument(doc), nil
}

// ExtractStatementFromDocument builds a statement from a parsed page,
// preferring OpenGraph metadata over the bare <title>
func ExtractStatementFromDocument(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find(`meta[property="og:title"]`).AttrOr("content", ""))
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	desc := strings.TrimSpace(doc.Find(`meta[property="og:description"]`).AttrOr("content", ""))
	if desc == "" {
		desc = strings.TrimSpace(doc.Find(`meta[name="description"]`).AttrOr("content", ""))
	}

	switch {
	case title == "":
		return desc
	case desc == "":
		return title
	default:
		return title + ". " + desc
	}
}
