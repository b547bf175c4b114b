// cmd/veritas/factcheck.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"
)

// ClaimResult is one normalized fact-check finding
type ClaimResult struct {
	ClaimText  string
	Rating     string
	Publisher  string
	SourceURL  string
	ReviewDate string
}

// Verdict derives the normalized verdict from the raw rating
func (c ClaimResult) Verdict() Verdict {
	return NormalizeRating(c.Rating)
}

// googleClaimsResponse mirrors the Fact Check Tools claims:search payload
type googleClaimsResponse struct {
	Claims []struct {
		Text        string `json:"text"`
		ClaimReview []struct {
			Publisher struct {
				Name string `json:"name"`
				Site string `json:"site"`
			} `json:"publisher"`
			URL           string `json:"url"`
			ReviewDate    string `json:"reviewDate"`
			TextualRating string `json:"textualRating"`
		} `json:"claimReview"`
	} `json:"claims"`
}

const defaultFactCheckBaseURL = "https://factchecktools.googleapis.com/v1alpha1/claims:search"

// FactCheckClient queries the Google Fact Check Tools API
type FactCheckClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// NewFactCheckClient creates a fact-check client with a bounded request
// rate against the upstream API
func NewFactCheckClient(apiKey string, qps float64) *FactCheckClient {
	if qps <= 0 {
		qps = 1.0
	}
	return &FactCheckClient{
		apiKey:  apiKey,
		baseURL: defaultFactCheckBaseURL,
		client:  &http.Client{Timeout: DefaultHTTPTimeout},
		limiter: rate.NewLimiter(rate.Limit(qps), 1),
	}
}

// Search looks up published fact checks for a statement. An empty result
// slice with a nil error means no fact check exists for the statement;
// transport and HTTP failures return a query error.
func (fc *FactCheckClient) Search(ctx context.Context, statement string) ([]ClaimResult, error) {
	if fc.apiKey == "" {
		return nil, NewQueryError(ErrCodeFactCheckAPI, "fact check API key not configured", nil)
	}

	if err := fc.limiter.Wait(ctx); err != nil {
		return nil, NewQueryError(ErrCodeFactCheckAPI, "rate limiter wait aborted", err)
	}

	apiURL := fmt.Sprintf("%s?query=%s&key=%s", fc.baseURL, url.QueryEscape(statement), fc.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, NewQueryError(ErrCodeFactCheckAPI, "failed to build request", err)
	}

	resp, err := fc.client.Do(req)
	if err != nil {
		return nil, NewQueryError(ErrCodeFactCheckAPI, "fact check request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, NewQueryError(ErrCodeFactCheckAPI,
			fmt.Sprintf("fact check API returned status %s", resp.Status), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewQueryError(ErrCodeFactCheckAPI, "failed to read response", err)
	}

	var parsed googleClaimsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, NewQueryError(ErrCodeFactCheckAPI, "failed to parse response", err)
	}

	// Every (claim, review) pair becomes one result; reviews pointing at a
	// URL already seen are dropped.
	var results []ClaimResult
	seen := make(map[string]bool)
	for _, claim := range parsed.Claims {
		text := strings.TrimSpace(claim.Text)
		if text == "" {
			continue
		}
		for _, review := range claim.ClaimReview {
			if review.URL != "" && seen[review.URL] {
				continue
			}
			if review.URL != "" {
				seen[review.URL] = true
			}

			reviewDate := review.ReviewDate
			if reviewDate == "" {
				reviewDate = "Unknown"
			}

			results = append(results, ClaimResult{
				ClaimText:  text,
				Rating:     review.TextualRating,
				Publisher:  review.Publisher.Name,
				SourceURL:  review.URL,
				ReviewDate: reviewDate,
			})
		}
	}

	return results, nil
}
