package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"health_tracker/internal/records"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// Users sheet layout.
const (
	columnUsername = 0
	columnHash     = 1
	columnChurchID = 2
)

var ErrUserExists = errors.New("username already registered")

// AuthError is returned for any credential or identifier mismatch. Reason is
// for logs only; callers show a single generic message.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return "invalid credentials"
}

type Credentials struct {
	ChurchID string
	Username string
	Password string
}

type User struct {
	Username string
	ChurchID string
}

// UserStore is the subset of the record store the authenticator needs.
type UserStore interface {
	ListAll(ctx context.Context, sheet string) ([]records.Row, error)
	AppendRecord(ctx context.Context, sheet string, fields []string) error
}

type Authenticator struct {
	users UserStore
	sheet string
	cost  int
}

func NewAuthenticator(users UserStore, sheet string, cost int) *Authenticator {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Authenticator{users: users, sheet: sheet, cost: cost}
}

// Login checks creds against the users sheet. The username is matched
// ignoring case and surrounding whitespace; the church ID must match exactly.
func (a *Authenticator) Login(ctx context.Context, creds Credentials) (*User, error) {
	if strings.TrimSpace(creds.Username) == "" {
		return nil, &records.ValidationError{Field: "username"}
	}
	if creds.Password == "" {
		return nil, &records.ValidationError{Field: "password"}
	}

	rows, err := a.users.ListAll(ctx, a.sheet)
	if err != nil {
		return nil, err
	}

	row, ok := findUser(rows, creds.Username)
	if !ok {
		log.Info().Str("username", creds.Username).Msg("Login failed: unknown username")
		return nil, &AuthError{Reason: "unknown username"}
	}

	if !Verify(creds.Password, row.Cell(columnHash)) {
		log.Info().Str("username", creds.Username).Msg("Login failed: password mismatch")
		return nil, &AuthError{Reason: "password mismatch"}
	}

	if creds.ChurchID != row.Cell(columnChurchID) {
		log.Info().Str("username", creds.Username).Msg("Login failed: church ID mismatch")
		return nil, &AuthError{Reason: "church ID mismatch"}
	}

	log.Info().Str("username", row.Cell(columnUsername)).Msg("Login successful")
	return &User{Username: row.Cell(columnUsername), ChurchID: row.Cell(columnChurchID)}, nil
}

// Register hashes the password and appends a new user row.
func (a *Authenticator) Register(ctx context.Context, creds Credentials) error {
	if strings.TrimSpace(creds.Username) == "" {
		return &records.ValidationError{Field: "username"}
	}
	if creds.Password == "" {
		return &records.ValidationError{Field: "password"}
	}
	if creds.ChurchID == "" {
		return &records.ValidationError{Field: "churchID"}
	}

	rows, err := a.users.ListAll(ctx, a.sheet)
	if err != nil {
		return err
	}
	if _, ok := findUser(rows, creds.Username); ok {
		return ErrUserExists
	}

	hash, err := HashPassword(creds.Password, a.cost)
	if err != nil {
		return err
	}

	if err := a.users.AppendRecord(ctx, a.sheet, []string{strings.TrimSpace(creds.Username), hash, creds.ChurchID}); err != nil {
		return err
	}
	log.Info().Str("username", creds.Username).Msg("Registered user")
	return nil
}

// HashPassword returns a salted bcrypt hash of password.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches the stored bcrypt hash.
func Verify(plaintext, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plaintext)) == nil
}

func findUser(rows []records.Row, username string) (records.Row, bool) {
	want := normalizeUsername(username)
	for _, row := range rows {
		if normalizeUsername(row.Cell(columnUsername)) == want {
			return row, true
		}
	}
	return nil, false
}

func normalizeUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
