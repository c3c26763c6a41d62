package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/library/internal/catalog"
	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/entities"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubCovers struct {
	url string
	err error
}

func (s stubCovers) LookupCover(ctx context.Context, isbn string) (string, error) {
	return s.url, s.err
}

// mockCatalog fails every operation with err.
type mockCatalog struct {
	err error
}

func (m *mockCatalog) ListCatalog(ctx context.Context, searchTerm string, sortKey catalog.SortKey) ([]entities.Book, []entities.Author, error) {
	return nil, nil, m.err
}

func (m *mockCatalog) AddAuthor(ctx context.Context, name, birthdate, dateOfDeath string) (*entities.Author, error) {
	return nil, m.err
}

func (m *mockCatalog) AddBook(ctx context.Context, title, isbn string, authorID *uint, publicationYear int) (*entities.Book, error) {
	return nil, m.err
}

func (m *mockCatalog) DeleteBook(ctx context.Context, bookID uint) (catalog.DeleteResult, error) {
	return catalog.DeleteResult{}, m.err
}

type testEnv struct {
	db      *database.Database
	service *catalog.Service
	router  *gin.Engine
}

func setupTestDB(t *testing.T) *database.Database {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "library.sqlite"), database.WithLogLevel("silent"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// setupTestEnv builds a router over a real service and database. mutate
// may adjust the router config before the router is built.
func setupTestEnv(t *testing.T, covers catalog.CoverLookup, mutate func(*RouterConfig)) *testEnv {
	t.Helper()
	db := setupTestDB(t)
	service := catalog.NewService(db, covers)

	cfg := RouterConfig{
		Catalog:      service,
		Books:        service,
		HealthChecks: map[string]Pinger{"database": db},
		Version:      "test",
	}
	if mutate != nil {
		mutate(&cfg)
	}

	router, err := NewRouter(cfg)
	require.NoError(t, err)
	return &testEnv{db: db, service: service, router: router}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) get(path string) *httptest.ResponseRecorder {
	return e.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (e *testEnv) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(req)
}

func routerWithCatalog(t *testing.T, svc CatalogService) *gin.Engine {
	t.Helper()
	router, err := NewRouter(RouterConfig{Catalog: svc})
	require.NoError(t, err)
	return router
}
