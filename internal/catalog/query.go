package catalog

import (
	"slices"
	"strings"

	"github.com/mrlokans/library/internal/entities"
)

// SortKey selects the field the book list is ordered by.
type SortKey string

const (
	SortByTitle  SortKey = "title"
	SortByAuthor SortKey = "author"
)

// ParseSortKey maps a sort_by value to a SortKey. Anything other than
// "author" sorts by title.
func ParseSortKey(raw string) SortKey {
	if strings.EqualFold(strings.TrimSpace(raw), string(SortByAuthor)) {
		return SortByAuthor
	}
	return SortByTitle
}

// Query filters books by searchTerm and returns them stably sorted by sortKey.
// A book matches when the term is a case-insensitive substring of its title
// or of its author's name; books without an author only match on title.
// The input slice is left untouched.
func Query(books []entities.Book, searchTerm string, sortKey SortKey) []entities.Book {
	term := strings.ToLower(searchTerm)

	result := make([]entities.Book, 0, len(books))
	for _, book := range books {
		if term == "" || matches(book, term) {
			result = append(result, book)
		}
	}

	key := sortValue(sortKey)
	slices.SortStableFunc(result, func(a, b entities.Book) int {
		return strings.Compare(key(a), key(b))
	})
	return result
}

func matches(book entities.Book, term string) bool {
	if strings.Contains(strings.ToLower(book.Title), term) {
		return true
	}
	return book.Author != nil && strings.Contains(strings.ToLower(book.Author.Name), term)
}

func sortValue(sortKey SortKey) func(entities.Book) string {
	if sortKey == SortByAuthor {
		return func(b entities.Book) string { return b.DisplayAuthor() }
	}
	return func(b entities.Book) string { return b.Title }
}
