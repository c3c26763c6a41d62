package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const openLibraryCoversURL = "https://covers.openlibrary.org"

// OpenLibraryClient resolves covers from the OpenLibrary edition API.
type OpenLibraryClient struct {
	httpClient *http.Client
	baseURL    string
	coversURL  string
	limiter    *rate.Limiter
}

// NewOpenLibraryClient creates a new OpenLibrary API client with rate limiting.
func NewOpenLibraryClient(baseURL string, timeout time.Duration, rps float64) *OpenLibraryClient {
	return &OpenLibraryClient{
		httpClient: newHTTPClient(timeout),
		baseURL:    baseURL,
		coversURL:  openLibraryCoversURL,
		limiter:    newLimiter(rps),
	}
}

// LookupCover fetches the edition for isbn and returns the URL of its first
// cover image.
func (c *OpenLibraryClient) LookupCover(ctx context.Context, isbn string) (string, error) {
	isbn = normalizeISBN(isbn)
	if isbn == "" {
		return "", ErrInvalidISBN
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	url := fmt.Sprintf("%s/isbn/%s.json", c.baseURL, isbn)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch ISBN data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("isbn %s: %w", isbn, ErrNoResults)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{Provider: "openlibrary", StatusCode: resp.StatusCode}
	}

	var edition openLibraryEdition
	if err := json.NewDecoder(resp.Body).Decode(&edition); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	// Negative ids mark removed covers.
	for _, id := range edition.Covers {
		if id > 0 {
			return fmt.Sprintf("%s/b/id/%d-M.jpg", c.coversURL, id), nil
		}
	}

	return "", fmt.Errorf("isbn %s: %w", isbn, ErrNoCover)
}

// OpenLibrary API response types (internal)

type openLibraryEdition struct {
	Key    string `json:"key"`
	Title  string `json:"title"`
	Covers []int  `json:"covers"`
}
