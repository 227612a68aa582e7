package admin

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cicconee/ztl-maps/internal/app"
	"golang.org/x/crypto/bcrypt"
)

const passwordHashCost = 14

// Account is the public view of an admin, what handlers and middleware
// get to see after a token validates.
type Account struct {
	ID       int
	Approved bool
}

func (a *Account) IsApproved() bool {
	return a.Approved
}

// AdminEntity is a row in the admins table.
type AdminEntity struct {
	ID           int
	Username     string
	PasswordHash string
	Approved     bool
	CreatedAt    time.Time
}

// ValidateUsername rejects usernames the signup flow cannot accept.
func (a *AdminEntity) ValidateUsername() error {
	if a.Username == "" {
		return &app.ServerResponseError{
			Err:        errors.New("empty username"),
			Msg:        "Must provide a username",
			StatusCode: http.StatusUnprocessableEntity,
		}
	}

	return nil
}

// SetPasswordHash validates the plain password and stores its bcrypt
// hash on the entity. The plain password is never persisted.
func (a *AdminEntity) SetPasswordHash(password string) error {
	if password == "" {
		return &app.ServerResponseError{
			Err:        errors.New("empty password"),
			Msg:        "Must provide a password",
			StatusCode: http.StatusUnprocessableEntity,
		}
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return err
	}

	a.PasswordHash = string(passwordHash)

	return nil
}

// CheckPasswordHash reports whether p matches the stored hash.
func (a *AdminEntity) CheckPasswordHash(p string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(p))
	return err == nil
}

func (a *AdminEntity) IsApproved() bool {
	return a.Approved
}

func (a *AdminEntity) Account() Account {
	return Account{
		ID:       a.ID,
		Approved: a.Approved,
	}
}

func (a *AdminEntity) scan(scanFunc func(...any) error) error {
	return scanFunc(
		&a.ID,
		&a.Username,
		&a.PasswordHash,
		&a.Approved,
		&a.CreatedAt,
	)
}

func (a *AdminEntity) Select(ctx context.Context, db QueryRower) error {
	query := `SELECT id, username, password_hash, approved, created_at
			  FROM admins WHERE id = $1`

	return a.scan(db.QueryRowContext(ctx, query, a.ID).Scan)
}

func (a *AdminEntity) SelectWhereUsername(ctx context.Context, db QueryRower) error {
	query := `SELECT id, username, password_hash, approved, created_at
			  FROM admins WHERE username = $1`

	return a.scan(db.QueryRowContext(ctx, query, a.Username).Scan)
}

// Insert writes the admin and sets ID and CreatedAt on the entity.
func (a *AdminEntity) Insert(ctx context.Context, db QueryRower) error {
	query := `INSERT INTO admins(username, password_hash, approved, created_at)
			  VALUES($1, $2, $3, $4)
			  RETURNING id`

	a.CreatedAt = time.Now().UTC()

	return db.QueryRowContext(ctx, query,
		a.Username,
		a.PasswordHash,
		a.Approved,
		a.CreatedAt).Scan(&a.ID)
}
