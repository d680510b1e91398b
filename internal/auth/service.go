package auth

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/mrlokans/bookjournal/internal/config"
	"github.com/mrlokans/bookjournal/internal/database/users"
	"github.com/mrlokans/bookjournal/internal/entities"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrAuthRequired       = errors.New("authentication required")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailRequired      = errors.New("email is required")
	ErrEmailInvalid       = errors.New("invalid email format")
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	CreateUser(email, passwordHash string) (*entities.User, error)
	GetUserByEmail(email string) (*entities.User, error)
	GetUserByID(id uint) (*entities.User, error)
	CountUsers() (int64, error)
}

// Service handles registration, login and session user lookup.
type Service struct {
	users  UserRepository
	config config.Auth

	checkPassword func(password, hash string) error

	// Compared against for unknown emails so both login failures run bcrypt.
	dummyHashOnce sync.Once
	dummyHash     string
}

// NewService creates a new authentication service.
func NewService(repo UserRepository, cfg config.Auth) *Service {
	return &Service{
		users:         repo,
		config:        cfg,
		checkPassword: CheckPassword,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user with password authentication.
func (s *Service) Register(email, password string) (*entities.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	// RFC 5321 limit is 254
	if len(email) > 254 || !emailPattern.MatchString(email) {
		return nil, ErrEmailInvalid
	}
	if len(password) > MaxPasswordLength {
		return nil, ErrPasswordTooLong
	}

	_, err := s.users.GetUserByEmail(email)
	if err == nil {
		return nil, ErrUserExists
	}
	if !errors.Is(err, users.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	passwordHash, err := HashPassword(password, s.config.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.CreateUser(email, passwordHash)
	if errors.Is(err, users.ErrDuplicateUser) {
		// Lost a race with a concurrent registration
		return nil, ErrUserExists
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate validates credentials and returns the user.
// Returns ErrUserNotFound or ErrInvalidCredentials; callers must not tell
// the two apart in user-facing messages.
func (s *Service) Authenticate(email, password string) (*entities.User, error) {
	user, err := s.users.GetUserByEmail(normalizeEmail(email))
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			s.compareDummyHash(password)
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.checkPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}

	return user, nil
}

// CurrentUser re-reads the user behind a session's user id.
func (s *Service) CurrentUser(userID uint) (*entities.User, error) {
	if userID == 0 {
		return nil, ErrAuthRequired
	}
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, ErrAuthRequired
		}
		return nil, err
	}
	return user, nil
}

// HasUsers returns true if any users exist in the database.
func (s *Service) HasUsers() (bool, error) {
	count, err := s.users.CountUsers()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// compareDummyHash spends the same bcrypt work as a real password check.
// The hash is generated once, at the configured cost.
func (s *Service) compareDummyHash(password string) {
	s.dummyHashOnce.Do(func() {
		hash, err := HashPassword("bookjournal-unknown-user", s.config.BcryptCost)
		if err == nil {
			s.dummyHash = hash
		}
	})
	if s.dummyHash != "" {
		_ = s.checkPassword(password, s.dummyHash)
	}
}
