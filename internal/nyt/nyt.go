// Package nyt is a minimal client for the article search API that backs
// the cache-aside supplement in listings.
package nyt

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"newsroom/pkg/models"
)

// Client talks to the article search endpoint.
type Client struct {
	baseURL string
	apiKey  string
	hc      *http.Client
}

// NewClient creates a new client. If httpClient is nil, a default with a
// bounded timeout is used so a slow upstream cannot stall request
// handling indefinitely.
func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		hc:      httpClient,
	}
}

// doc is the wire shape of a search result. The upstream _id is a
// non-ObjectID string, so results are decoded into this staging struct
// rather than straight into models.Article.
type doc struct {
	Headline    models.Headline `json:"headline"`
	Abstract    string          `json:"abstract"`
	WebURL      string          `json:"web_url"`
	SectionName string          `json:"section_name"`
	Byline      models.Byline   `json:"byline"`
	Multimedia  any             `json:"multimedia"`
}

type searchResponse struct {
	Response struct {
		Docs []doc `json:"docs"`
	} `json:"response"`
}

// Search queries the article search API for a section. The section
// "local" has no upstream equivalent and is special-cased to a fixed
// Sacramento query; any other section is passed as a filter term.
func (c *Client) Search(ctx context.Context, section string) ([]models.Article, error) {
	q := url.Values{}
	if strings.EqualFold(section, "local") {
		q.Set("q", "Sacramento")
	} else if section != "" {
		q.Set("fq", section)
	}
	q.Set("api-key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("nyt new request: %w", err)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nyt request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("nyt request failed: status=%d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("nyt decode response: %w", err)
	}

	articles := make([]models.Article, 0, len(parsed.Response.Docs))
	for _, d := range parsed.Response.Docs {
		articles = append(articles, models.Article{
			Headline:    d.Headline,
			Abstract:    d.Abstract,
			WebURL:      d.WebURL,
			SectionName: d.SectionName,
			Byline:      d.Byline,
			Multimedia:  d.Multimedia,
		})
	}
	return articles, nil
}
