package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/bookjournal/internal/auth"
	"github.com/mrlokans/bookjournal/internal/covers"
	"github.com/mrlokans/bookjournal/internal/database/books"
	"github.com/mrlokans/bookjournal/internal/database/users"
	"github.com/mrlokans/bookjournal/internal/http"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// BookStore implementations
var _ http.BookStore = (*books.Repository)(nil)

// UserRepository implementations
var _ auth.UserRepository = (*users.Repository)(nil)

// =============================================================================
// External Services
// =============================================================================

// Finder implementations
var _ covers.Finder = (*covers.Client)(nil)

// CoverResolver implementations
var _ http.CoverResolver = (*covers.Resolver)(nil)
