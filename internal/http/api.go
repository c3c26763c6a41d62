package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/catalog"
	"github.com/mrlokans/library/internal/entities"
)

// BookResponse is the JSON view of a book.
type BookResponse struct {
	ID              uint   `json:"id"`
	ISBN            string `json:"isbn"`
	Title           string `json:"title"`
	PublicationYear int    `json:"publication_year"`
	BookCover       string `json:"book_cover"`
	AuthorID        *uint  `json:"author_id"`
	Author          string `json:"author"`
}

// AuthorResponse is the JSON view of an author.
type AuthorResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Birthdate   string `json:"birthdate"`
	DateOfDeath string `json:"date_of_death"`
}

type APIController struct {
	catalog CatalogService
}

func NewAPIController(svc CatalogService) *APIController {
	return &APIController{catalog: svc}
}

// ListBooks returns the filtered, sorted catalog.
// GET /api/books?search=&sort_by=
func (ac *APIController) ListBooks(c *gin.Context) {
	books, _, err := ac.catalog.ListCatalog(c.Request.Context(), c.Query("search"), catalog.ParseSortKey(c.Query("sort_by")))
	if err != nil {
		respondStorageError(c, err, "Couldn't receive data from database")
		return
	}

	out := make([]BookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, toBookResponse(b))
	}
	c.IndentedJSON(http.StatusOK, gin.H{"books": out, "count": len(out)})
}

// ListAuthors returns every author.
// GET /api/authors
func (ac *APIController) ListAuthors(c *gin.Context) {
	_, authors, err := ac.catalog.ListCatalog(c.Request.Context(), "", catalog.SortByTitle)
	if err != nil {
		respondStorageError(c, err, "Couldn't receive data from database")
		return
	}

	out := make([]AuthorResponse, 0, len(authors))
	for _, a := range authors {
		out = append(out, AuthorResponse{
			ID:          a.ID,
			Name:        a.Name,
			Birthdate:   a.Birthdate,
			DateOfDeath: a.DateOfDeath,
		})
	}
	c.IndentedJSON(http.StatusOK, gin.H{"authors": out, "count": len(out)})
}

func toBookResponse(b entities.Book) BookResponse {
	return BookResponse{
		ID:              b.ID,
		ISBN:            b.ISBN,
		Title:           b.Title,
		PublicationYear: b.PublicationYear,
		BookCover:       b.BookCover,
		AuthorID:        b.AuthorID,
		Author:          b.AuthorName(),
	}
}
