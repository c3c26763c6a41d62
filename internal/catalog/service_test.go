package catalog_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/library/internal/catalog"
	"github.com/mrlokans/library/internal/database"
	"github.com/mrlokans/library/internal/entities"
	"github.com/mrlokans/library/internal/metrics"
)

type fakeLookup struct {
	mu    sync.Mutex
	url   string
	err   error
	block bool
	isbns []string
}

func (f *fakeLookup) LookupCover(ctx context.Context, isbn string) (string, error) {
	f.mu.Lock()
	f.isbns = append(f.isbns, isbn)
	f.mu.Unlock()

	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.url, f.err
}

type fakeInvalidator struct {
	mu      sync.Mutex
	bookIDs []uint
}

func (f *fakeInvalidator) InvalidateCover(bookID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookIDs = append(f.bookIDs, bookID)
	return nil
}

func setupService(t *testing.T, lookup catalog.CoverLookup) (*catalog.Service, *database.Database) {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "library.sqlite"), database.WithLogLevel("silent"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return catalog.NewService(db, lookup), db
}

func countAuthors(t *testing.T, db *database.Database) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.DB.Model(&entities.Author{}).Count(&n).Error)
	return n
}

func countBooks(t *testing.T, db *database.Database) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.DB.Model(&entities.Book{}).Count(&n).Error)
	return n
}

func TestService_AddAuthor(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t, nil)

	first, err := svc.AddAuthor(ctx, "Jane Austen", "1775-12-16", "1817-07-18")
	require.NoError(t, err)
	assert.NotZero(t, first.ID)
	assert.Equal(t, "1775-12-16", first.Birthdate)

	// Names are not unique.
	second, err := svc.AddAuthor(ctx, "Jane Austen", "", "")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestService_AddBook(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the looked up cover", func(t *testing.T) {
		lookup := &fakeLookup{url: "https://covers.example/dune.jpg"}
		svc, _ := setupService(t, lookup)

		author, err := svc.AddAuthor(ctx, "Frank Herbert", "", "")
		require.NoError(t, err)

		book, err := svc.AddBook(ctx, "Dune", "9780441013593", &author.ID, 1965)
		require.NoError(t, err)

		assert.Equal(t, "https://covers.example/dune.jpg", book.BookCover)
		assert.Equal(t, []string{"9780441013593"}, lookup.isbns)
		require.NotNil(t, book.AuthorID)
		assert.Equal(t, author.ID, *book.AuthorID)
	})

	t.Run("failed lookup stores no cover", func(t *testing.T) {
		svc, _ := setupService(t, &fakeLookup{err: errors.New("service unavailable")})

		book, err := svc.AddBook(ctx, "Emma", "0000000000", nil, 1815)
		require.NoError(t, err)

		assert.Equal(t, entities.NoCover, book.BookCover)
		assert.False(t, book.HasCover())
	})

	t.Run("nil lookup stores no cover", func(t *testing.T) {
		svc, _ := setupService(t, nil)

		book, err := svc.AddBook(ctx, "Emma", "", nil, 1815)
		require.NoError(t, err)
		assert.Equal(t, entities.NoCover, book.BookCover)
	})

	t.Run("slow lookup is bounded by the timeout", func(t *testing.T) {
		svc, _ := setupService(t, &fakeLookup{block: true})
		svc.SetLookupTimeout(50 * time.Millisecond)

		start := time.Now()
		book, err := svc.AddBook(ctx, "Slow", "123", nil, 2000)
		require.NoError(t, err)

		assert.Equal(t, entities.NoCover, book.BookCover)
		assert.Less(t, time.Since(start), 5*time.Second)
	})

	t.Run("unknown author is a storage error", func(t *testing.T) {
		svc, db := setupService(t, nil)
		missing := uint(999)

		_, err := svc.AddBook(ctx, "Orphan", "", &missing, 2000)

		require.Error(t, err)
		assert.True(t, catalog.IsStorageError(err))
		assert.Zero(t, countBooks(t, db))
	})

	t.Run("lookup metrics are recorded", func(t *testing.T) {
		m := metrics.New()
		svc, _ := setupService(t, &fakeLookup{err: errors.New("nope")})
		svc.SetMetrics(m)

		_, err := svc.AddBook(ctx, "Counted", "", nil, 2000)
		require.NoError(t, err)

		n, err := testutil.GatherAndCount(m.Registry(), "library_cover_lookups_total")
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}

func TestService_DeleteBook(t *testing.T) {
	ctx := context.Background()

	t.Run("author survives until the last book is deleted", func(t *testing.T) {
		svc, db := setupService(t, nil)
		a, err := svc.AddAuthor(ctx, "A", "", "")
		require.NoError(t, err)
		b1, err := svc.AddBook(ctx, "B1", "", &a.ID, 2001)
		require.NoError(t, err)
		b2, err := svc.AddBook(ctx, "B2", "", &a.ID, 2002)
		require.NoError(t, err)

		result, err := svc.DeleteBook(ctx, b1.ID)
		require.NoError(t, err)
		assert.Equal(t, catalog.DeleteResult{BookDeleted: true}, result)
		assert.Equal(t, int64(1), countAuthors(t, db))

		result, err = svc.DeleteBook(ctx, b2.ID)
		require.NoError(t, err)
		assert.Equal(t, catalog.DeleteResult{BookDeleted: true, AuthorDeleted: true}, result)
		assert.Zero(t, countAuthors(t, db))
		assert.Zero(t, countBooks(t, db))
	})

	t.Run("other authors are untouched", func(t *testing.T) {
		svc, db := setupService(t, nil)
		a, err := svc.AddAuthor(ctx, "A", "", "")
		require.NoError(t, err)
		other, err := svc.AddAuthor(ctx, "Other", "", "")
		require.NoError(t, err)
		book, err := svc.AddBook(ctx, "Only", "", &a.ID, 2001)
		require.NoError(t, err)
		_, err = svc.AddBook(ctx, "Kept", "", &other.ID, 2001)
		require.NoError(t, err)

		_, err = svc.DeleteBook(ctx, book.ID)
		require.NoError(t, err)

		_, authors, err := svc.ListCatalog(ctx, "", catalog.SortByTitle)
		require.NoError(t, err)
		require.Len(t, authors, 1)
		assert.Equal(t, other.ID, authors[0].ID)
		assert.Equal(t, int64(1), countBooks(t, db))
	})

	t.Run("book without an author is deleted alone", func(t *testing.T) {
		svc, db := setupService(t, nil)
		a, err := svc.AddAuthor(ctx, "A", "", "")
		require.NoError(t, err)
		book, err := svc.AddBook(ctx, "Anonymous", "", nil, 1000)
		require.NoError(t, err)

		result, err := svc.DeleteBook(ctx, book.ID)
		require.NoError(t, err)

		assert.Equal(t, catalog.DeleteResult{BookDeleted: true}, result)
		assert.Zero(t, countBooks(t, db))
		// An author with no books is left alone unless a delete cascades to it.
		_, err = svc.AddBook(ctx, "Later", "", &a.ID, 2000)
		assert.NoError(t, err)
	})

	t.Run("missing book is a no-op", func(t *testing.T) {
		svc, db := setupService(t, nil)
		a, err := svc.AddAuthor(ctx, "A", "", "")
		require.NoError(t, err)
		_, err = svc.AddBook(ctx, "B", "", &a.ID, 2000)
		require.NoError(t, err)

		result, err := svc.DeleteBook(ctx, 4242)
		require.NoError(t, err)

		assert.Equal(t, catalog.DeleteResult{}, result)
		assert.Equal(t, int64(1), countBooks(t, db))
		assert.Equal(t, int64(1), countAuthors(t, db))
	})

	t.Run("invalidates the cached cover", func(t *testing.T) {
		svc, _ := setupService(t, nil)
		inv := &fakeInvalidator{}
		svc.SetCoverInvalidator(inv)
		book, err := svc.AddBook(ctx, "B", "", nil, 2000)
		require.NoError(t, err)

		_, err = svc.DeleteBook(ctx, book.ID)
		require.NoError(t, err)
		_, err = svc.DeleteBook(ctx, book.ID)
		require.NoError(t, err)

		assert.Equal(t, []uint{book.ID}, inv.bookIDs)
	})

	t.Run("concurrent sibling deletes remove the author once", func(t *testing.T) {
		svc, db := setupService(t, nil)
		a, err := svc.AddAuthor(ctx, "A", "", "")
		require.NoError(t, err)
		b1, err := svc.AddBook(ctx, "B1", "", &a.ID, 2001)
		require.NoError(t, err)
		b2, err := svc.AddBook(ctx, "B2", "", &a.ID, 2002)
		require.NoError(t, err)

		var wg sync.WaitGroup
		results := make([]catalog.DeleteResult, 2)
		errs := make([]error, 2)
		for i, id := range []uint{b1.ID, b2.ID} {
			wg.Add(1)
			go func(i int, id uint) {
				defer wg.Done()
				results[i], errs[i] = svc.DeleteBook(ctx, id)
			}(i, id)
		}
		wg.Wait()

		require.NoError(t, errs[0])
		require.NoError(t, errs[1])
		assert.True(t, results[0].AuthorDeleted != results[1].AuthorDeleted)
		assert.Zero(t, countAuthors(t, db))
		assert.Zero(t, countBooks(t, db))
	})
}

func TestService_ListCatalog(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t, nil)

	herbert, err := svc.AddAuthor(ctx, "Herbert", "", "")
	require.NoError(t, err)
	austen, err := svc.AddAuthor(ctx, "Austen", "", "")
	require.NoError(t, err)
	_, err = svc.AddBook(ctx, "Dune", "", &herbert.ID, 1965)
	require.NoError(t, err)
	_, err = svc.AddBook(ctx, "Emma", "", &austen.ID, 1815)
	require.NoError(t, err)

	books, authors, err := svc.ListCatalog(ctx, "austen", catalog.SortByTitle)
	require.NoError(t, err)

	require.Len(t, books, 1)
	assert.Equal(t, "Emma", books[0].Title)
	require.NotNil(t, books[0].Author)
	assert.Equal(t, "Austen", books[0].Author.Name)
	assert.Len(t, authors, 2)

	books, _, err = svc.ListCatalog(ctx, "", catalog.SortByAuthor)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "Emma", books[0].Title)
	assert.Equal(t, "Dune", books[1].Title)
}

func TestService_GetBook(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t, nil)

	book, err := svc.AddBook(ctx, "Dune", "", nil, 1965)
	require.NoError(t, err)

	got, err := svc.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)

	_, err = svc.GetBook(ctx, book.ID+1)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	assert.False(t, catalog.IsStorageError(err))
}

func TestService_StorageFailures(t *testing.T) {
	ctx := context.Background()
	svc, db := setupService(t, nil)
	require.NoError(t, db.Close())

	_, _, err := svc.ListCatalog(ctx, "", catalog.SortByTitle)
	assert.True(t, catalog.IsStorageError(err))

	_, err = svc.AddAuthor(ctx, "A", "", "")
	assert.True(t, catalog.IsStorageError(err))

	_, err = svc.AddBook(ctx, "B", "", nil, 2000)
	assert.True(t, catalog.IsStorageError(err))

	_, err = svc.DeleteBook(ctx, 1)
	assert.True(t, catalog.IsStorageError(err))

	var storageErr *catalog.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "delete book", storageErr.Op)
}
