package http

import (
	"context"

	"github.com/mrlokans/library/internal/catalog"
	"github.com/mrlokans/library/internal/entities"
)

// CatalogService is the catalog behaviour the controllers depend on.
type CatalogService interface {
	ListCatalog(ctx context.Context, searchTerm string, sortKey catalog.SortKey) ([]entities.Book, []entities.Author, error)
	AddAuthor(ctx context.Context, name, birthdate, dateOfDeath string) (*entities.Author, error)
	AddBook(ctx context.Context, title, isbn string, authorID *uint, publicationYear int) (*entities.Book, error)
	DeleteBook(ctx context.Context, bookID uint) (catalog.DeleteResult, error)
}

// BookGetter provides read access to a single book.
type BookGetter interface {
	GetBook(ctx context.Context, bookID uint) (*entities.Book, error)
}

// CoverStore resolves a book to a local cover image file.
type CoverStore interface {
	Path(ctx context.Context, book *entities.Book) (string, error)
}

// Pinger reports connectivity of a backing service.
type Pinger interface {
	Ping(ctx context.Context) error
}
