package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/catalog"
)

// CoversController handles book cover requests.
type CoversController struct {
	cache CoverStore
	books BookGetter
}

// NewCoversController creates a new CoversController.
func NewCoversController(cache CoverStore, books BookGetter) *CoversController {
	return &CoversController{
		cache: cache,
		books: books,
	}
}

// GetCover serves a cached book cover image.
// GET /book/:id/cover
func (cc *CoversController) GetCover(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	book, err := cc.books.GetBook(c.Request.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		c.Status(http.StatusNotFound)
		return
	}
	if err != nil {
		respondStorageError(c, err, "Couldn't receive data from database")
		return
	}

	if !book.HasCover() {
		c.Status(http.StatusNotFound)
		return
	}

	cachePath, err := cc.cache.Path(c.Request.Context(), book)
	if err != nil {
		slog.Warn("Serving remote cover", "book_id", id, "error", err)
		c.Redirect(http.StatusTemporaryRedirect, book.BookCover)
		return
	}

	c.File(cachePath)
}
