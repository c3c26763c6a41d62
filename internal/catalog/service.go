package catalog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mrlokans/library/internal/entities"
	"github.com/mrlokans/library/internal/metrics"
)

// DefaultLookupTimeout bounds a single cover lookup.
const DefaultLookupTimeout = 10 * time.Second

// DeleteResult reports what a DeleteBook call removed.
type DeleteResult struct {
	BookDeleted   bool
	AuthorDeleted bool
}

// Service orchestrates catalog operations over a UnitOfWork.
type Service struct {
	uow           UnitOfWork
	covers        CoverLookup
	lookupTimeout time.Duration
	invalidator   CoverInvalidator
	metrics       *metrics.Metrics
	logger        *slog.Logger
}

// NewService creates a catalog service. covers may be nil, in which case
// every book is stored without a cover.
func NewService(uow UnitOfWork, covers CoverLookup) *Service {
	return &Service{
		uow:           uow,
		covers:        covers,
		lookupTimeout: DefaultLookupTimeout,
		logger:        slog.Default(),
	}
}

// SetLookupTimeout overrides the per-lookup timeout. Non-positive values are ignored.
func (s *Service) SetLookupTimeout(d time.Duration) {
	if d > 0 {
		s.lookupTimeout = d
	}
}

// SetCoverInvalidator sets the cache notified when a book is deleted.
func (s *Service) SetCoverInvalidator(inv CoverInvalidator) {
	s.invalidator = inv
}

// SetMetrics enables operation metrics.
func (s *Service) SetMetrics(m *metrics.Metrics) {
	s.metrics = m
}

// SetLogger replaces the default slog logger.
func (s *Service) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// ListCatalog loads all books and authors in one read and applies Query to
// the books. Authors are returned unfiltered.
func (s *Service) ListCatalog(ctx context.Context, searchTerm string, sortKey SortKey) ([]entities.Book, []entities.Author, error) {
	var books []entities.Book
	var authors []entities.Author

	err := s.uow.Do(ctx, func(ctx context.Context, store Store) error {
		var err error
		if books, err = store.ListBooks(ctx); err != nil {
			return err
		}
		authors, err = store.ListAuthors(ctx)
		return err
	})
	s.metrics.ObserveOperation("list_catalog", err)
	if err != nil {
		return nil, nil, &StorageError{Op: "list catalog", Err: err}
	}

	return Query(books, searchTerm, sortKey), authors, nil
}

// AddAuthor persists a new author. Names are not required to be unique.
func (s *Service) AddAuthor(ctx context.Context, name, birthdate, dateOfDeath string) (*entities.Author, error) {
	author := &entities.Author{
		Name:        name,
		Birthdate:   birthdate,
		DateOfDeath: dateOfDeath,
	}

	err := s.uow.Do(ctx, func(ctx context.Context, store Store) error {
		return store.CreateAuthor(ctx, author)
	})
	s.metrics.ObserveOperation("add_author", err)
	if err != nil {
		return nil, &StorageError{Op: "add author", Err: err}
	}

	s.logger.Info("Author added", "author_id", author.ID, "name", author.Name)
	return author, nil
}

// AddBook resolves the book's cover and persists it. A failed cover lookup
// stores entities.NoCover and does not fail the operation. authorID may be nil.
func (s *Service) AddBook(ctx context.Context, title, isbn string, authorID *uint, publicationYear int) (*entities.Book, error) {
	// Resolved before the unit of work so no transaction waits on the network.
	cover := s.resolveCover(ctx, isbn)

	book := &entities.Book{
		Title:           title,
		ISBN:            isbn,
		PublicationYear: publicationYear,
		BookCover:       cover,
		AuthorID:        authorID,
	}

	err := s.uow.Do(ctx, func(ctx context.Context, store Store) error {
		return store.CreateBook(ctx, book)
	})
	s.metrics.ObserveOperation("add_book", err)
	if err != nil {
		return nil, &StorageError{Op: "add book", Err: err}
	}

	s.logger.Info("Book added", "book_id", book.ID, "title", book.Title, "has_cover", book.HasCover())
	return book, nil
}

func (s *Service) resolveCover(ctx context.Context, isbn string) string {
	if s.covers == nil {
		return entities.NoCover
	}

	lookupCtx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()

	url, err := s.covers.LookupCover(lookupCtx, isbn)
	if err != nil || url == "" {
		s.logger.Warn("Cover lookup failed, storing without cover", "isbn", isbn, "error", err)
		s.metrics.ObserveCoverLookup(metrics.LookupMissed)
		return entities.NoCover
	}

	s.metrics.ObserveCoverLookup(metrics.LookupFound)
	return url
}

// DeleteBook removes a book and, when it was the author's last book, the
// author too, in a single unit of work. Deleting a missing book succeeds
// without changes.
func (s *Service) DeleteBook(ctx context.Context, bookID uint) (DeleteResult, error) {
	var result DeleteResult

	err := s.uow.Do(ctx, func(ctx context.Context, store Store) error {
		book, err := store.GetBook(ctx, bookID)
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := store.DeleteBook(ctx, book.ID); err != nil {
			return err
		}
		result.BookDeleted = true

		// A book without an author has nothing to cascade to.
		if book.AuthorID == nil {
			return nil
		}

		remaining, err := store.ListBooksByAuthor(ctx, *book.AuthorID)
		if err != nil {
			return err
		}
		if len(remaining) > 0 {
			return nil
		}

		if err := store.DeleteAuthor(ctx, *book.AuthorID); err != nil {
			return err
		}
		result.AuthorDeleted = true
		return nil
	})
	s.metrics.ObserveOperation("delete_book", err)
	if err != nil {
		return DeleteResult{}, &StorageError{Op: "delete book", Err: err}
	}

	if result.AuthorDeleted {
		s.metrics.ObserveCascade()
	}
	if result.BookDeleted {
		s.logger.Info("Book deleted", "book_id", bookID, "author_deleted", result.AuthorDeleted)
		if s.invalidator != nil {
			if err := s.invalidator.InvalidateCover(bookID); err != nil {
				s.logger.Warn("Failed to invalidate cached cover", "book_id", bookID, "error", err)
			}
		}
	}

	return result, nil
}

// GetBook returns a single book. A missing book yields an error wrapping ErrNotFound.
func (s *Service) GetBook(ctx context.Context, bookID uint) (*entities.Book, error) {
	var book *entities.Book

	err := s.uow.Do(ctx, func(ctx context.Context, store Store) error {
		var err error
		book, err = store.GetBook(ctx, bookID)
		return err
	})
	if errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, &StorageError{Op: "get book", Err: err}
	}
	return book, nil
}
