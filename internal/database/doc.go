// Package database provides the data access layer for the application.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup (SQLite or PostgreSQL) and migrations
//	├── books/           # Authors, books, notes and view counts
//	└── users/           # Credential store
//
// # Using Sub-packages
//
//	db, err := database.NewDatabase(cfg.Database)
//
//	booksRepo := books.NewRepository(db.DB)
//	usersRepo := users.NewRepository(db.DB)
//
//	book, err := booksRepo.RecordView("Dune")
//
// Every query goes through gorm with bound parameters; no SQL is built by
// string concatenation.
//
// SQLite connections are opened with foreign keys on, a busy timeout and
// immediate transactions, so concurrent writers wait for each other instead
// of failing with "database is locked".
package database
