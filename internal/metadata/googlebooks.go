package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// GoogleBooksClient resolves cover thumbnails from the Google Books volumes API.
type GoogleBooksClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
}

// NewGoogleBooksClient creates a client for the volumes endpoint at baseURL.
// apiKey is optional.
func NewGoogleBooksClient(baseURL, apiKey string, timeout time.Duration, rps float64) *GoogleBooksClient {
	return &GoogleBooksClient{
		httpClient: newHTTPClient(timeout),
		baseURL:    baseURL,
		apiKey:     apiKey,
		limiter:    newLimiter(rps),
	}
}

// LookupCover returns the thumbnail URL of the first volume matching isbn.
func (c *GoogleBooksClient) LookupCover(ctx context.Context, isbn string) (string, error) {
	isbn = normalizeISBN(isbn)
	if isbn == "" {
		return "", ErrInvalidISBN
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	query := url.Values{}
	query.Set("q", "isbn:"+isbn)
	if c.apiKey != "" {
		query.Set("key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch volumes: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{Provider: "google books", StatusCode: resp.StatusCode}
	}

	var volumes googleVolumes
	if err := json.NewDecoder(resp.Body).Decode(&volumes); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(volumes.Items) == 0 {
		return "", fmt.Errorf("isbn %s: %w", isbn, ErrNoResults)
	}

	links := volumes.Items[0].VolumeInfo.ImageLinks
	cover := links.Thumbnail
	if cover == "" {
		cover = links.SmallThumbnail
	}
	if cover == "" {
		return "", fmt.Errorf("isbn %s: %w", isbn, ErrNoCover)
	}

	return secureURL(cover), nil
}

// Google Books API response types (internal)

type googleVolumes struct {
	TotalItems int            `json:"totalItems"`
	Items      []googleVolume `json:"items"`
}

type googleVolume struct {
	ID         string `json:"id"`
	VolumeInfo struct {
		Title      string `json:"title"`
		ImageLinks struct {
			SmallThumbnail string `json:"smallThumbnail"`
			Thumbnail      string `json:"thumbnail"`
		} `json:"imageLinks"`
	} `json:"volumeInfo"`
}
