package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/cicconee/ztl-maps/internal/app"
	"github.com/golang-jwt/jwt/v4"
)

// tokenTTL is how long a login token stays valid.
const tokenTTL = time.Hour

type Service struct {
	Secret []byte
	DB     *sql.DB
}

func New(secret []byte, db *sql.DB) *Service {
	return &Service{
		Secret: secret,
		DB:     db,
	}
}

// Signup creates an admin account. New accounts start unapproved and
// cannot act until someone flips the approved flag in the database.
func (s *Service) Signup(ctx context.Context, username string, password string) error {
	admin := AdminEntity{Username: username}

	if err := admin.ValidateUsername(); err != nil {
		return fmt.Errorf("validating username: %w", err)
	}

	if err := admin.SetPasswordHash(password); err != nil {
		return fmt.Errorf("setting password hash: %w", err)
	}

	err := admin.SelectWhereUsername(ctx, s.DB)
	if err == nil {
		return &app.ServerResponseError{
			Err:        fmt.Errorf("username %q in use", admin.Username),
			Msg:        "Username is taken",
			StatusCode: http.StatusConflict,
		}
	} else if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("selecting admin (username=%s): %w", admin.Username, err)
	}

	admin.Approved = false

	if err := admin.Insert(ctx, s.DB); err != nil {
		return fmt.Errorf("inserting admin (username=%s): %w", admin.Username, err)
	}

	return nil
}

// Login checks the credentials and returns a signed access token. Only
// approved admins with a correct password ever get a token, so holding
// a token that parses is proof of an approved login.
func (s *Service) Login(ctx context.Context, username string, password string) (string, error) {
	admin := AdminEntity{Username: username}
	if err := admin.SelectWhereUsername(ctx, s.DB); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", &app.ServerResponseError{
				Err:        fmt.Errorf("admin not found (username=%s)", admin.Username),
				Msg:        "Invalid credentials",
				StatusCode: http.StatusUnauthorized,
			}
		}
		return "", fmt.Errorf("selecting admin (username=%s): %w", admin.Username, err)
	}

	if !admin.CheckPasswordHash(password) {
		return "", &app.ServerResponseError{
			Err:        fmt.Errorf("invalid password (username=%s)", admin.Username),
			Msg:        "Invalid credentials",
			StatusCode: http.StatusUnauthorized,
		}
	}

	if !admin.IsApproved() {
		return "", &app.ServerResponseError{
			Err:        fmt.Errorf("admin not approved (id=%d)", admin.ID),
			Msg:        "Your admin access has not been approved yet",
			StatusCode: http.StatusUnauthorized,
		}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": strconv.Itoa(admin.ID),
		"exp": time.Now().Add(tokenTTL).Unix(),
	})

	tokenStr, err := token.SignedString(s.Secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return tokenStr, nil
}

// Validate parses the token and returns the account it names. The admin
// row is re-read so an account deleted after login stops validating the
// moment its row is gone. Checking approval is the callers responsibility.
func (s *Service) Validate(ctx context.Context, tokenStr string) (Account, error) {
	token, err := jwt.Parse(
		tokenStr,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
			}
			return s.Secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil {
		return Account{}, &app.ServerResponseError{
			Err:        fmt.Errorf("parsing token: %w", err),
			Msg:        "Please login",
			StatusCode: http.StatusUnauthorized,
		}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		// Login only ever issues MapClaims tokens.
		return Account{}, errors.New("token claims are not a claims map")
	}

	if !claims.VerifyExpiresAt(time.Now().Unix(), true) {
		return Account{}, &app.ServerResponseError{
			Err:        errors.New("token is expired"),
			Msg:        "Please login",
			StatusCode: http.StatusUnauthorized,
		}
	}

	subStr, ok := claims["sub"].(string)
	if !ok {
		// Login always sets sub as a string built from the row id.
		return Account{}, errors.New("missing or malformed sub claim")
	}

	sub, err := strconv.Atoi(subStr)
	if err != nil {
		return Account{}, fmt.Errorf("parsing sub to int: %w", err)
	}

	admin := AdminEntity{ID: sub}
	if err := admin.Select(ctx, s.DB); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Account{}, &app.ServerResponseError{
				Err:        fmt.Errorf("admin not found (id=%d)", admin.ID),
				Msg:        "Account not found",
				StatusCode: http.StatusUnauthorized,
			}
		}

		return Account{}, fmt.Errorf("selecting admin (id=%d): %w", admin.ID, err)
	}

	return admin.Account(), nil
}
