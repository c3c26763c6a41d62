package catalog

import (
	"context"

	"github.com/mrlokans/library/internal/entities"
)

// Store is the persistence contract for authors and books. Implementations
// return errors wrapping ErrNotFound for missing records.
type Store interface {
	// CreateAuthor persists a new author and assigns its ID.
	CreateAuthor(ctx context.Context, author *entities.Author) error
	// GetAuthor returns the author with the given ID.
	GetAuthor(ctx context.Context, id uint) (*entities.Author, error)
	// ListAuthors returns all authors ordered by ID.
	ListAuthors(ctx context.Context) ([]entities.Author, error)
	// DeleteAuthor removes an author. Deleting a missing author is not an error.
	// Callers must ensure the author owns no books.
	DeleteAuthor(ctx context.Context, id uint) error

	// CreateBook persists a new book and assigns its ID.
	CreateBook(ctx context.Context, book *entities.Book) error
	// GetBook returns the book with the given ID, without its author.
	GetBook(ctx context.Context, id uint) (*entities.Book, error)
	// ListBooks returns all books ordered by ID with their author loaded.
	ListBooks(ctx context.Context) ([]entities.Book, error)
	// ListBooksByAuthor returns the books currently referencing the author.
	ListBooksByAuthor(ctx context.Context, authorID uint) ([]entities.Book, error)
	// DeleteBook removes a book. Deleting a missing book is not an error.
	DeleteBook(ctx context.Context, id uint) error
}

// UnitOfWork runs fn against a Store bound to one transaction. The
// transaction commits if fn returns nil and rolls back otherwise, including
// on panic.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, store Store) error) error
}

// CoverLookup resolves an ISBN to a cover image URL.
type CoverLookup interface {
	LookupCover(ctx context.Context, isbn string) (string, error)
}

// CoverInvalidator drops cached cover images of a deleted book.
type CoverInvalidator interface {
	InvalidateCover(bookID uint) error
}
