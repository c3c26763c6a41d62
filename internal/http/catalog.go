package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/library/internal/catalog"
)

// CatalogController serves the HTML catalog pages and form handlers.
type CatalogController struct {
	catalog    CatalogService
	sessions   *SessionManager
	coverProxy bool
}

// NewCatalogController creates a CatalogController. sessions may be nil;
// coverProxy makes pages load covers through /book/:id/cover.
func NewCatalogController(svc CatalogService, sessions *SessionManager, coverProxy bool) *CatalogController {
	return &CatalogController{
		catalog:    svc,
		sessions:   sessions,
		coverProxy: coverProxy,
	}
}

// Home renders the searchable, sortable book listing.
// GET /?search=&sort_by=title|author
func (cc *CatalogController) Home(c *gin.Context) {
	search := c.Query("search")
	sortKey := catalog.ParseSortKey(c.Query("sort_by"))

	books, authors, err := cc.catalog.ListCatalog(c.Request.Context(), search, sortKey)
	if err != nil {
		respondStorageError(c, err, "Couldn't receive data from database")
		return
	}

	c.HTML(http.StatusOK, "home", gin.H{
		"Books":      books,
		"Authors":    authors,
		"Search":     search,
		"SortBy":     string(sortKey),
		"CoverProxy": cc.coverProxy,
		"Flash":      cc.sessions.PopFlash(c.Request),
		"CSRFField":  csrfField(c),
	})
}

// AddAuthorForm renders the author creation form.
// GET /add_author
func (cc *CatalogController) AddAuthorForm(c *gin.Context) {
	c.HTML(http.StatusOK, "add_author", gin.H{
		"CSRFField": csrfField(c),
	})
}

// AddAuthor creates an author from the submitted form.
// POST /add_author
func (cc *CatalogController) AddAuthor(c *gin.Context) {
	author, err := cc.catalog.AddAuthor(c.Request.Context(),
		c.PostForm("author"),
		c.PostForm("birthdate"),
		c.PostForm("date_of_death"),
	)
	if err != nil {
		respondStorageError(c, err, "Couldn't store to database")
		return
	}

	cc.sessions.PutFlash(c.Request, fmt.Sprintf("Author %q added.", author.Name))
	c.Redirect(http.StatusFound, "/")
}

// AddBookForm renders the book creation form with the current catalog.
// GET /add_book
func (cc *CatalogController) AddBookForm(c *gin.Context) {
	books, authors, err := cc.catalog.ListCatalog(c.Request.Context(), "", catalog.SortByTitle)
	if err != nil {
		respondStorageError(c, err, "Couldn't receive data from database")
		return
	}

	c.HTML(http.StatusOK, "add_book", gin.H{
		"Books":     books,
		"Authors":   authors,
		"CSRFField": csrfField(c),
	})
}

// AddBook creates a book from the submitted form, looking up its cover.
// POST /add_book
func (cc *CatalogController) AddBook(c *gin.Context) {
	authorID, err := parseOptionalID(c.PostForm("author"))
	if err != nil {
		respondBadRequest(c, "invalid author")
		return
	}
	year, err := parseOptionalInt(c.PostForm("publication_year"))
	if err != nil {
		respondBadRequest(c, "invalid publication_year")
		return
	}

	book, err := cc.catalog.AddBook(c.Request.Context(),
		c.PostForm("title"),
		c.PostForm("isbn"),
		authorID,
		year,
	)
	if err != nil {
		respondStorageError(c, err, "Couldn't store to database")
		return
	}

	cc.sessions.PutFlash(c.Request, fmt.Sprintf("Book %q added.", book.Title))
	c.Redirect(http.StatusFound, "/")
}

// DeleteBook removes a book and, with its last book, the author.
// Malformed and unknown ids redirect without changes.
// GET|POST /book/:id/delete
func (cc *CatalogController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		c.Redirect(http.StatusFound, "/")
		return
	}

	result, err := cc.catalog.DeleteBook(c.Request.Context(), id)
	if err != nil {
		respondStorageError(c, err, "Couldn't delete from database")
		return
	}

	switch {
	case result.AuthorDeleted:
		cc.sessions.PutFlash(c.Request, "Book deleted. Its author had no other books and was removed too.")
	case result.BookDeleted:
		cc.sessions.PutFlash(c.Request, "Book deleted.")
	}
	c.Redirect(http.StatusFound, "/")
}
