// Package covers finds cover images for books on OpenLibrary.
//
// Lookups are best-effort: any failure yields ErrNoCoverFound and the page
// shows a placeholder instead.
package covers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mrlokans/bookjournal/internal/config"
)

const userAgent = "BookJournal/1.0 (https://github.com/mrlokans/bookjournal)"

var ErrNoCoverFound = errors.New("no cover found")

// archiveOrigins serve the image bytes: the cover host answers with a
// redirect to archive.org, which redirects again to an ia*.us.archive.org
// node.
var archiveOrigins = []string{"https://archive.org", "https://*.archive.org"}

// ImageOrigins lists every origin a browser fetches from while loading a
// cover served by imageBaseURL.
func ImageOrigins(imageBaseURL string) []string {
	return append([]string{imageBaseURL}, archiveOrigins...)
}

// Client searches the OpenLibrary catalog.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	imageBaseURL string
}

// NewClient creates a client for the configured OpenLibrary hosts.
// Request deadlines come from the caller's context.
func NewClient(cfg config.Covers) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		imageBaseURL: strings.TrimRight(cfg.ImageBaseURL, "/"),
	}
}

type searchResult struct {
	NumFound int         `json:"numFound"`
	Docs     []searchDoc `json:"docs"`
}

type searchDoc struct {
	Title string   `json:"title"`
	ISBN  []string `json:"isbn"`
}

// FindCoverURL searches by title and author and returns the medium cover
// image URL for the first ISBN of the first match.
func (c *Client) FindCoverURL(ctx context.Context, title, author string) (string, error) {
	query := url.Values{}
	query.Set("title", title)
	query.Set("author", author)
	query.Set("limit", "1")
	searchURL := c.baseURL + "/search.json?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: create request: %v", ErrNoCoverFound, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: search %q: %w", ErrNoCoverFound, title, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: unexpected status %d", ErrNoCoverFound, resp.StatusCode)
	}

	var result searchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: decode search response: %w", ErrNoCoverFound, err)
	}

	if len(result.Docs) == 0 || len(result.Docs[0].ISBN) == 0 || result.Docs[0].ISBN[0] == "" {
		return "", ErrNoCoverFound
	}

	return c.coverURL(result.Docs[0].ISBN[0]), nil
}

func (c *Client) coverURL(isbn string) string {
	return fmt.Sprintf("%s/b/isbn/%s-M.jpg", c.imageBaseURL, url.PathEscape(isbn))
}
