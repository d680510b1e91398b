package books

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookjournal/internal/config"
	"github.com/mrlokans/bookjournal/internal/database"
	"github.com/mrlokans/bookjournal/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *database.Database) {
	t.Helper()
	db, err := database.NewDatabase(config.Database{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "books.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db.DB), db
}

func TestRepository_CreateBook(t *testing.T) {
	repo, _ := setupTestDB(t)

	book, err := repo.CreateBook("Dune", "Frank Herbert", "Desert planet", "Spice must flow")

	require.NoError(t, err)
	assert.NotZero(t, book.ID)
	assert.Equal(t, 1, book.Views)
	assert.Nil(t, book.LastViewed)
	assert.Equal(t, "Frank Herbert", book.Author.Name)

	stored, err := repo.FindBookByTitle("Dune")
	require.NoError(t, err)
	assert.Equal(t, "Desert planet", stored.Description)
	assert.Equal(t, "Spice must flow", stored.Notes)
	assert.Equal(t, "Frank Herbert", stored.Author.Name)
}

func TestRepository_CreateBook_Validation(t *testing.T) {
	repo, _ := setupTestDB(t)

	_, err := repo.CreateBook("  ", "Someone", "", "")
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = repo.CreateBook("Title", "", "", "")
	assert.ErrorIs(t, err, ErrAuthorRequired)

	count, err := repo.CountBooks()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRepository_CreateBook_DuplicateTitle(t *testing.T) {
	repo, db := setupTestDB(t)

	_, err := repo.CreateBook("Dune", "Frank Herbert", "original", "original notes")
	require.NoError(t, err)

	_, err = repo.CreateBook("Dune", "Someone Else", "changed", "changed notes")
	assert.ErrorIs(t, err, ErrDuplicateTitle)

	stored, err := repo.FindBookByTitle("Dune")
	require.NoError(t, err)
	assert.Equal(t, "original", stored.Description)
	assert.Equal(t, "original notes", stored.Notes)
	assert.Equal(t, 1, stored.Views)

	var authors int64
	require.NoError(t, db.DB.Model(&entities.Author{}).Count(&authors).Error)
	assert.Equal(t, int64(1), authors, "rejected create must not add an author")
}

func TestRepository_CreateBook_ReusesAuthor(t *testing.T) {
	repo, db := setupTestDB(t)

	first, err := repo.CreateBook("Dune", "Frank Herbert", "", "")
	require.NoError(t, err)
	second, err := repo.CreateBook("Dune Messiah", "Frank Herbert", "", "")
	require.NoError(t, err)

	assert.Equal(t, first.AuthorID, second.AuthorID)

	var authors int64
	require.NoError(t, db.DB.Model(&entities.Author{}).Count(&authors).Error)
	assert.Equal(t, int64(1), authors)
}

func TestRepository_CreateBook_ConcurrentSameAuthor(t *testing.T) {
	repo, db := setupTestDB(t)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.CreateBook(fmt.Sprintf("Book %d", i), "Ursula K. Le Guin", "", "")
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	var authors []entities.Author
	require.NoError(t, db.DB.Find(&authors).Error)
	require.Len(t, authors, 1)

	var books int64
	require.NoError(t, db.DB.Model(&entities.Book{}).Where("author_id = ?", authors[0].ID).Count(&books).Error)
	assert.Equal(t, int64(workers), books)
}

func TestRepository_FindBookByTitle_NotFound(t *testing.T) {
	repo, _ := setupTestDB(t)

	_, err := repo.FindBookByTitle("Missing")

	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestRepository_ListBooksByViewsDesc(t *testing.T) {
	repo, _ := setupTestDB(t)

	for _, title := range []string{"A", "B", "C"} {
		_, err := repo.CreateBook(title, "Author", "", "")
		require.NoError(t, err)
	}
	_, err := repo.RecordView("C")
	require.NoError(t, err)
	_, err = repo.RecordView("C")
	require.NoError(t, err)
	_, err = repo.RecordView("B")
	require.NoError(t, err)

	books, err := repo.ListBooksByViewsDesc()

	require.NoError(t, err)
	require.Len(t, books, 3)
	assert.Equal(t, "C", books[0].Title)
	assert.Equal(t, 3, books[0].Views)
	assert.Equal(t, "B", books[1].Title)
	assert.Equal(t, "A", books[2].Title)
	assert.Equal(t, "Author", books[2].Author.Name)
}

func TestRepository_ListBooksByViewsDesc_TiesKeepInsertionOrder(t *testing.T) {
	repo, _ := setupTestDB(t)

	for _, title := range []string{"Zeta", "Alpha", "Mid"} {
		_, err := repo.CreateBook(title, "Author", "", "")
		require.NoError(t, err)
	}

	books, err := repo.ListBooksByViewsDesc()

	require.NoError(t, err)
	require.Len(t, books, 3)
	assert.Equal(t, []string{"Zeta", "Alpha", "Mid"}, []string{books[0].Title, books[1].Title, books[2].Title})
}

func TestRepository_ListBooksByViewsDesc_Empty(t *testing.T) {
	repo, _ := setupTestDB(t)

	books, err := repo.ListBooksByViewsDesc()

	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestRepository_RecordView(t *testing.T) {
	repo, _ := setupTestDB(t)
	fixed := time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	_, err := repo.CreateBook("Dune", "Frank Herbert", "", "")
	require.NoError(t, err)

	book, err := repo.RecordView("Dune")

	require.NoError(t, err)
	assert.Equal(t, 2, book.Views)
	require.NotNil(t, book.LastViewed)
	assert.Equal(t, "2024-03-15", book.LastViewedDate())
	assert.Equal(t, "Frank Herbert", book.Author.Name)
}

func TestRepository_RecordView_NotFound(t *testing.T) {
	repo, _ := setupTestDB(t)

	_, err := repo.RecordView("Missing")

	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestRepository_RecordView_Concurrent(t *testing.T) {
	repo, _ := setupTestDB(t)
	_, err := repo.CreateBook("Dune", "Frank Herbert", "", "")
	require.NoError(t, err)

	const views = 10
	var wg sync.WaitGroup
	for i := 0; i < views; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.RecordView("Dune")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	book, err := repo.FindBookByTitle("Dune")
	require.NoError(t, err)
	assert.Equal(t, 1+views, book.Views)
}

func TestRepository_UpdateBook(t *testing.T) {
	repo, _ := setupTestDB(t)
	_, err := repo.CreateBook("Dune", "Frank Herbert", "old", "old notes")
	require.NoError(t, err)

	err = repo.UpdateBook("Dune", "new", "new notes")

	require.NoError(t, err)
	book, err := repo.FindBookByTitle("Dune")
	require.NoError(t, err)
	assert.Equal(t, "new", book.Description)
	assert.Equal(t, "new notes", book.Notes)
	assert.Equal(t, 1, book.Views, "editing must not count as a view")
}

func TestRepository_UpdateBook_NotFound(t *testing.T) {
	repo, _ := setupTestDB(t)

	err := repo.UpdateBook("Missing", "d", "n")

	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestRepository_DeleteBook(t *testing.T) {
	repo, db := setupTestDB(t)
	_, err := repo.CreateBook("Dune", "Frank Herbert", "", "")
	require.NoError(t, err)

	require.NoError(t, repo.DeleteBook("Dune"))

	_, err = repo.FindBookByTitle("Dune")
	assert.ErrorIs(t, err, ErrBookNotFound)

	var authors int64
	require.NoError(t, db.DB.Model(&entities.Author{}).Count(&authors).Error)
	assert.Equal(t, int64(1), authors, "authors outlive their books")
}

func TestRepository_DeleteBook_Missing(t *testing.T) {
	repo, _ := setupTestDB(t)

	assert.NoError(t, repo.DeleteBook("Missing"))
}

func TestRepository_DuneLifecycle(t *testing.T) {
	repo, _ := setupTestDB(t)

	_, err := repo.CreateBook("Dune", "Frank Herbert", "Desert planet", "Spice")
	require.NoError(t, err)

	book, err := repo.RecordView("Dune")
	require.NoError(t, err)
	assert.Equal(t, 2, book.Views)

	require.NoError(t, repo.UpdateBook("Dune", "Arrakis", "Fear is the mind-killer"))
	book, err = repo.RecordView("Dune")
	require.NoError(t, err)
	assert.Equal(t, 3, book.Views)
	assert.Equal(t, "Fear is the mind-killer", book.Notes)

	require.NoError(t, repo.DeleteBook("Dune"))
	books, err := repo.ListBooksByViewsDesc()
	require.NoError(t, err)
	assert.Empty(t, books)

	_, err = repo.CreateBook("Dune", "Frank Herbert", "", "")
	assert.NoError(t, err, "title is free again after deletion")
}
