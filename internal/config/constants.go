package config

const (
	// DefaultDatabasePath is the default path for the SQLite database
	DefaultDatabasePath = "./bookjournal.db"

	// DefaultOpenLibraryURL is the root of the OpenLibrary search API
	DefaultOpenLibraryURL = "https://openlibrary.org"

	// DefaultCoversURL is the root of the OpenLibrary cover image host
	DefaultCoversURL = "https://covers.openlibrary.org"

	// DefaultPlaceholderCover is served in place of covers that could not be resolved
	DefaultPlaceholderCover = "/static/images/no-cover.svg"

	// MinBcryptCost is the lowest cost factor accepted for password hashing
	MinBcryptCost = 10
)
