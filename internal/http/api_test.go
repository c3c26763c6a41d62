package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/library/internal/catalog"
)

func TestAPIController(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t, nil, nil)
	herbert, err := env.service.AddAuthor(ctx, "Herbert", "1920-10-08", "1986-02-11")
	require.NoError(t, err)
	austen, err := env.service.AddAuthor(ctx, "Austen", "", "")
	require.NoError(t, err)
	_, err = env.service.AddBook(ctx, "Dune", "", &herbert.ID, 1965)
	require.NoError(t, err)
	_, err = env.service.AddBook(ctx, "Emma", "", &austen.ID, 1815)
	require.NoError(t, err)
	_, err = env.service.AddBook(ctx, "Beowulf", "", nil, 1000)
	require.NoError(t, err)

	t.Run("books sorted by author", func(t *testing.T) {
		w := env.get("/api/books?sort_by=author")
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Books []BookResponse `json:"books"`
			Count int            `json:"count"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		require.Equal(t, 3, resp.Count)
		assert.Equal(t, "Emma", resp.Books[0].Title)
		assert.Equal(t, "Dune", resp.Books[1].Title)
		assert.Equal(t, "Beowulf", resp.Books[2].Title)
		assert.Equal(t, "", resp.Books[2].Author)
		assert.Nil(t, resp.Books[2].AuthorID)
		assert.Equal(t, "no cover", resp.Books[0].BookCover)
	})

	t.Run("books filtered by search", func(t *testing.T) {
		w := env.get("/api/books?search=DUN")
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Books []BookResponse `json:"books"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Books, 1)
		assert.Equal(t, "Herbert", resp.Books[0].Author)
	})

	t.Run("authors", func(t *testing.T) {
		w := env.get("/api/authors")
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Authors []AuthorResponse `json:"authors"`
			Count   int              `json:"count"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.Count)
		assert.Equal(t, "1986-02-11", resp.Authors[0].DateOfDeath)
	})
}

func TestAPIController_StorageError(t *testing.T) {
	router := routerWithCatalog(t, &mockCatalog{err: &catalog.StorageError{Op: "list catalog", Err: errors.New("gone")}})

	for _, path := range []string{"/api/books", "/api/authors"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code, path)
	}
}
