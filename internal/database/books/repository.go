// Package books provides database operations for the book catalog.
//
// Books are identified by their unique title. Authors are created lazily the
// first time a book by a new author is added and are never modified afterwards.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.RecordView("Dune")
package books

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/bookjournal/internal/entities"
)

var (
	ErrBookNotFound   = errors.New("book not found")
	ErrDuplicateTitle = errors.New("a book with this title already exists")
	ErrTitleRequired  = errors.New("title is required")
	ErrAuthorRequired = errors.New("author is required")
)

// Repository handles all book and author database operations.
type Repository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

// ListBooksByViewsDesc returns every book with its author, most viewed first.
// Books with equal views keep insertion order.
func (r *Repository) ListBooksByViewsDesc() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Preload("Author").Order("views DESC, id ASC").Find(&books).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

// FindBookByTitle retrieves a book and its author by exact title.
func (r *Repository) FindBookByTitle(title string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("Author").Where("title = ?", title).First(&book).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find book %q: %w", title, err)
	}
	return &book, nil
}

// CreateBook inserts a new book with one view, creating its author if needed.
func (r *Repository) CreateBook(title, author, description, notes string) (*entities.Book, error) {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if author == "" {
		return nil, ErrAuthorRequired
	}

	var count int64
	if err := r.db.Model(&entities.Book{}).Where("title = ?", title).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check title: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateTitle
	}

	book := &entities.Book{
		Title:       title,
		Description: description,
		Notes:       notes,
		Views:       1,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "author"}},
			DoNothing: true,
		}).Create(&entities.Author{Name: author}).Error
		if err != nil {
			return fmt.Errorf("failed to insert author: %w", err)
		}

		var stored entities.Author
		if err := tx.Where("author = ?", author).First(&stored).Error; err != nil {
			return fmt.Errorf("failed to load author: %w", err)
		}

		book.AuthorID = stored.ID
		book.Author = stored
		return tx.Omit("Author").Create(book).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrDuplicateTitle
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create book %q: %w", title, err)
	}

	return book, nil
}

// RecordView increments the view counter, stamps today's date and returns
// the updated book.
func (r *Repository) RecordView(title string) (*entities.Book, error) {
	now := r.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	result := r.db.Model(&entities.Book{}).
		Where("title = ?", title).
		Updates(map[string]any{
			"views": gorm.Expr("views + ?", 1),
			"date":  today,
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to record view for %q: %w", title, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrBookNotFound
	}

	return r.FindBookByTitle(title)
}

// UpdateBook overwrites the description and notes of a book.
func (r *Repository) UpdateBook(title, description, notes string) error {
	result := r.db.Model(&entities.Book{}).
		Where("title = ?", title).
		Updates(map[string]any{
			"description": description,
			"notes":       notes,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update book %q: %w", title, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBookNotFound
	}
	return nil
}

// DeleteBook removes a book by title. Deleting a missing book is not an error.
// The author row is kept.
func (r *Repository) DeleteBook(title string) error {
	if err := r.db.Where("title = ?", title).Delete(&entities.Book{}).Error; err != nil {
		return fmt.Errorf("failed to delete book %q: %w", title, err)
	}
	return nil
}

// CountBooks returns the number of books in the catalog.
func (r *Repository) CountBooks() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Count(&count).Error
	return count, err
}
