package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookjournal/internal/database/books"
	"github.com/mrlokans/bookjournal/internal/entities"
)

// BookView pairs a book with the cover shown next to it.
type BookView struct {
	entities.Book
	CoverURL string
}

// UIController renders the read-only journal pages.
type UIController struct {
	books  BookStore
	covers CoverResolver
}

func NewUIController(books BookStore, covers CoverResolver) *UIController {
	return &UIController{
		books:  books,
		covers: covers,
	}
}

// HomePage renders the landing page.
func (controller *UIController) HomePage(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", pageData(c, gin.H{
		"Title": "Book Journal",
	}))
}

// BooksPage lists every book, most viewed first, with its cover.
func (controller *UIController) BooksPage(c *gin.Context) {
	list, err := controller.books.ListBooksByViewsDesc()
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}

	var coverURLs []string
	if controller.covers != nil {
		coverURLs = controller.covers.Resolve(c.Request.Context(), list)
	}

	views := make([]BookView, len(list))
	for i, book := range list {
		views[i] = BookView{Book: book}
		if i < len(coverURLs) {
			views[i].CoverURL = coverURLs[i]
		}
	}

	c.HTML(http.StatusOK, "books.html", pageData(c, gin.H{
		"Title": "Books",
		"Books": views,
	}))
}

// CreatePage renders the empty creation form.
func (controller *UIController) CreatePage(c *gin.Context) {
	c.HTML(http.StatusOK, "create.html", pageData(c, gin.H{
		"Title": "Add a book",
	}))
}

// NotesPage counts a view of the book named by the "notes" field and shows
// its notes.
func (controller *UIController) NotesPage(c *gin.Context) {
	book, err := controller.books.RecordView(c.PostForm("notes"))
	if errors.Is(err, books.ErrBookNotFound) {
		respondNotFound(c, "Book")
		return
	}
	if err != nil {
		respondInternalError(c, err, "record view")
		return
	}

	c.HTML(http.StatusOK, "notes.html", pageData(c, gin.H{
		"Title": book.Title,
		"Book":  book,
	}))
}

// EditPage renders the edit form for the book named by the "edit" field.
func (controller *UIController) EditPage(c *gin.Context) {
	book, err := controller.books.FindBookByTitle(c.PostForm("edit"))
	if errors.Is(err, books.ErrBookNotFound) {
		respondNotFound(c, "Book")
		return
	}
	if err != nil {
		respondInternalError(c, err, "find book")
		return
	}

	c.HTML(http.StatusOK, "edit.html", pageData(c, gin.H{
		"Title": "Edit " + book.Title,
		"Book":  book,
	}))
}
