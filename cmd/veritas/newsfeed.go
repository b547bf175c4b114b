// cmd/veritas/newsfeed.go
package main

import (
	"context"
	"net/url"
	"strings"

	"github.com/mmcdole/gofeed"
)

// NewsLink is one related-coverage headline
type NewsLink struct {
	Title string
	URL   string
}

const defaultNewsSearchBaseURL = "https://news.google.com/rss/search"

// NewsClient finds recent coverage related to a statement via an RSS
// search feed. Purely decorative context; callers treat failures as
// "no related coverage".
type NewsClient struct {
	baseURL string
	parser  *gofeed.Parser
}

// NewNewsClient creates a related-coverage client
func NewNewsClient() *NewsClient {
	parser := gofeed.NewParser()
	parser.UserAgent = "VeritasBot/" + VERSION
	return &NewsClient{
		baseURL: defaultNewsSearchBaseURL,
		parser:  parser,
	}
}

// Related returns up to MaxRelatedLinks headlines covering the statement's
// key terms
func (nc *NewsClient) Related(ctx context.Context, statement string) ([]NewsLink, error) {
	terms := ExtractKeyTerms(statement)
	query := statement
	if len(terms) > 0 {
		query = strings.Join(terms, " ")
	}

	feedURL := nc.baseURL + "?q=" + url.QueryEscape(query) + "&hl=en-US&gl=US&ceid=US:en"

	feed, err := nc.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, NewQueryError(ErrCodeNewsFeed, "related coverage lookup failed", err)
	}

	var links []NewsLink
	for _, item := range feed.Items {
		if item == nil || item.Title == "" || item.Link == "" {
			continue
		}
		links = append(links, NewsLink{Title: item.Title, URL: item.Link})
		if len(links) >= MaxRelatedLinks {
			break
		}
	}
	return links, nil
}
