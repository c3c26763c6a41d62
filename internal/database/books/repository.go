// Package books provides database operations for books and their authors.
//
// This package implements the catalog.Store interface defined in
// internal/catalog/store.go.
//
// # Interface Implementation
//
//	var _ catalog.Store = (*Repository)(nil)
//
// # Usage
//
// A Repository is normally bound to a transaction by database.Database.Do:
//
//	err := db.Do(ctx, func(ctx context.Context, store catalog.Store) error {
//		book, err := store.GetBook(ctx, 123)
//		...
//	})
package books

import (
	"context"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/library/internal/catalog"
	"github.com/mrlokans/library/internal/entities"
)

// Repository handles all author and book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository over db, which may be a transaction.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateAuthor inserts a new author.
func (r *Repository) CreateAuthor(ctx context.Context, author *entities.Author) error {
	if err := r.db.WithContext(ctx).Create(author).Error; err != nil {
		return fmt.Errorf("create author: %w", err)
	}
	return nil
}

// GetAuthor retrieves an author by ID.
func (r *Repository) GetAuthor(ctx context.Context, id uint) (*entities.Author, error) {
	var author entities.Author
	err := r.db.WithContext(ctx).First(&author, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("author %d: %w", id, catalog.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get author %d: %w", id, err)
	}
	return &author, nil
}

// ListAuthors retrieves all authors.
func (r *Repository) ListAuthors(ctx context.Context) ([]entities.Author, error) {
	var authors []entities.Author
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&authors).Error; err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	return authors, nil
}

// DeleteAuthor hard deletes an author. Zero affected rows is not an error.
func (r *Repository) DeleteAuthor(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&entities.Author{}, id).Error; err != nil {
		return fmt.Errorf("delete author %d: %w", id, err)
	}
	return nil
}

// CreateBook inserts a new book without touching its author association.
func (r *Repository) CreateBook(ctx context.Context, book *entities.Book) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(book).Error; err != nil {
		if isForeignKeyViolation(err) && book.AuthorID != nil {
			return fmt.Errorf("create book: author %d does not exist: %w", *book.AuthorID, err)
		}
		return fmt.Errorf("create book: %w", err)
	}
	return nil
}

func isForeignKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
}

// GetBook retrieves a book by ID.
func (r *Repository) GetBook(ctx context.Context, id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.WithContext(ctx).First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("book %d: %w", id, catalog.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get book %d: %w", id, err)
	}
	return &book, nil
}

// ListBooks retrieves all books with their author.
func (r *Repository) ListBooks(ctx context.Context) ([]entities.Book, error) {
	var books []entities.Book
	if err := r.db.WithContext(ctx).Preload("Author").Order("id ASC").Find(&books).Error; err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// ListBooksByAuthor retrieves the books referencing an author.
func (r *Repository) ListBooksByAuthor(ctx context.Context, authorID uint) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.WithContext(ctx).Where("author_id = ?", authorID).Order("id ASC").Find(&books).Error
	if err != nil {
		return nil, fmt.Errorf("list books of author %d: %w", authorID, err)
	}
	return books, nil
}

// DeleteBook hard deletes a book. Zero affected rows is not an error.
func (r *Repository) DeleteBook(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&entities.Book{}, id).Error; err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}
	return nil
}
