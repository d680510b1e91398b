package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookjournal/internal/database/books"
	"github.com/mrlokans/bookjournal/internal/logging"
)

// BooksController handles the forms that change the catalog and the JSON listing.
type BooksController struct {
	books BookStore
}

func NewBooksController(books BookStore) *BooksController {
	return &BooksController{
		books: books,
	}
}

// Create adds a book from the creation form.
// POST /create
func (controller *BooksController) Create(c *gin.Context) {
	title := c.PostForm("title")
	author := c.PostForm("author")
	description, notes := contentFields(c)

	book, err := controller.books.CreateBook(title, author, description, notes)
	if err != nil {
		status := http.StatusBadRequest
		switch {
		case errors.Is(err, books.ErrDuplicateTitle):
			status = http.StatusConflict
		case errors.Is(err, books.ErrTitleRequired), errors.Is(err, books.ErrAuthorRequired):
		default:
			respondInternalError(c, err, "create book")
			return
		}

		c.HTML(status, "create.html", pageData(c, gin.H{
			"Title":       "Add a book",
			"Error":       createErrorMessage(err),
			"BookTitle":   title,
			"Author":      author,
			"Description": description,
			"Notes":       notes,
		}))
		return
	}

	logging.FromContext(c).WithField("book_id", book.ID).Info("Book created")
	c.Redirect(http.StatusFound, "/")
}

// Submit saves the edit form.
// POST /submit
func (controller *BooksController) Submit(c *gin.Context) {
	description, notes := contentFields(c)

	err := controller.books.UpdateBook(c.PostForm("title"), description, notes)
	if errors.Is(err, books.ErrBookNotFound) {
		respondNotFound(c, "Book")
		return
	}
	if err != nil {
		respondInternalError(c, err, "update book")
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// Delete removes the book named by the "delete" field.
// POST /delete
func (controller *BooksController) Delete(c *gin.Context) {
	title := c.PostForm("delete")
	if err := controller.books.DeleteBook(title); err != nil {
		respondInternalError(c, err, "delete book")
		return
	}

	logging.FromContext(c).WithField("title", title).Info("Book deleted")
	c.Redirect(http.StatusFound, "/")
}

// GetAllBooks returns the catalog as JSON, most viewed first.
// GET /api/books
func (controller *BooksController) GetAllBooks(c *gin.Context) {
	list, err := controller.books.ListBooksByViewsDesc()
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"books": list, "count": len(list)})
}

func createErrorMessage(err error) string {
	switch {
	case errors.Is(err, books.ErrDuplicateTitle):
		return "A book with this title is already in your journal."
	case errors.Is(err, books.ErrTitleRequired):
		return "Title is required."
	case errors.Is(err, books.ErrAuthorRequired):
		return "Author is required."
	}
	return "The book could not be saved."
}
