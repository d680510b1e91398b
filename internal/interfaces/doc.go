// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - BookStore: Book catalog used by the journal pages (internal/http/stores.go)
//   - UserRepository: Credential store behind the auth service (internal/auth/service.go)
//
// ## External Service Interfaces
//
//   - Finder: Single cover lookup, OpenLibrary in production (internal/covers/resolver.go)
//   - CoverResolver: Covers for a whole listing (internal/http/stores.go)
//
// # Adding a New Cover Source
//
// To look covers up somewhere other than OpenLibrary (e.g., Google Books):
//
//  1. Implement Finder in internal/covers/
//
//	type GoogleBooksClient struct {
//		apiKey     string
//		httpClient *http.Client
//	}
//
//	func (c *GoogleBooksClient) FindCoverURL(ctx context.Context, title, author string) (string, error)
//
//	var _ Finder = (*GoogleBooksClient)(nil)
//
//  2. Pass it to covers.NewResolver in entrypoint.go
//
// # Adding a New Database Domain
//
// To add a new data domain (e.g., reading lists):
//
//  1. Create sub-package: internal/database/lists/
//
//  2. Define repository:
//
//	type Repository struct{ db *gorm.DB }
//
//	func NewRepository(db *gorm.DB) *Repository
//
//  3. Register the entities in Database.Migrate
//
//  4. Add compile-time check:
//
//	var _ ListStore = (*Repository)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the current list.
package interfaces
