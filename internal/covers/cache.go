// Package covers keeps a disk copy of each book's cover image so the
// catalog page does not hotlink the metadata provider.
package covers

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mrlokans/library/internal/entities"
)

// maxCoverBytes caps a downloaded image.
const maxCoverBytes = 5 << 20

// ErrNoCover is returned for books stored without a cover URL.
var ErrNoCover = errors.New("book has no cover")

// Cache stores downloaded cover images under a directory, one file per
// book and URL.
type Cache struct {
	cacheDir   string
	httpClient *http.Client
}

// NewCache creates a new cover cache at the specified directory.
func NewCache(cacheDir string, timeout time.Duration) (*Cache, error) {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Cache{
		cacheDir:   cacheDir,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Path returns the local file holding the book's cover, downloading it on
// first use.
func (c *Cache) Path(ctx context.Context, book *entities.Book) (string, error) {
	if book == nil || !book.HasCover() {
		return "", ErrNoCover
	}

	cachePath := filepath.Join(c.cacheDir, c.coverFilename(book.ID, book.BookCover))
	if _, err := os.Stat(cachePath); err == nil {
		return cachePath, nil
	}

	if err := c.download(ctx, book.BookCover, cachePath); err != nil {
		return "", fmt.Errorf("cache cover for book %d: %w", book.ID, err)
	}
	return cachePath, nil
}

// InvalidateCover removes every cached image of a book.
func (c *Cache) InvalidateCover(bookID uint) error {
	matches, err := filepath.Glob(filepath.Join(c.cacheDir, fmt.Sprintf("cover_%d_*", bookID)))
	if err != nil {
		return err
	}

	for _, match := range matches {
		if err := os.Remove(match); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

func (c *Cache) coverFilename(bookID uint, coverURL string) string {
	hash := sha256.Sum256([]byte(coverURL))
	return fmt.Sprintf("cover_%d_%x.img", bookID, hash[:8])
}

func (c *Cache) download(ctx context.Context, url, cachePath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Library/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return fmt.Errorf("unexpected content type %q", ct)
	}

	tmpFile, err := os.CreateTemp(c.cacheDir, "cover_tmp_")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()
	defer func() {
		tmpFile.Close()
		os.Remove(tmpPath)
	}()

	n, err := io.Copy(tmpFile, io.LimitReader(resp.Body, maxCoverBytes+1))
	if err != nil {
		return err
	}
	if n > maxCoverBytes {
		return fmt.Errorf("cover exceeds %d bytes", maxCoverBytes)
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}

	// Rename is atomic so concurrent readers never see a partial file.
	return os.Rename(tmpPath, cachePath)
}

// CacheDir returns the cache directory path.
func (c *Cache) CacheDir() string {
	return c.cacheDir
}
