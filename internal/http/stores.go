package http

import (
	"context"

	"github.com/mrlokans/bookjournal/internal/entities"
)

// BookStore is the catalog access the journal controllers need.
// Implemented by books.Repository.
type BookStore interface {
	ListBooksByViewsDesc() ([]entities.Book, error)
	FindBookByTitle(title string) (*entities.Book, error)
	CreateBook(title, author, description, notes string) (*entities.Book, error)
	RecordView(title string) (*entities.Book, error)
	UpdateBook(title, description, notes string) error
	DeleteBook(title string) error
	CountBooks() (int64, error)
}

// CoverResolver maps a listing to cover image URLs, one per book, in order.
// Implemented by covers.Resolver.
type CoverResolver interface {
	Resolve(ctx context.Context, books []entities.Book) []string
}
