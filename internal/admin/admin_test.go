package admin

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/cicconee/ztl-maps/internal/app"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetPasswordHash(t *testing.T) {
	a := AdminEntity{}

	err := a.SetPasswordHash("tollbooth")
	require.NoError(t, err)
	require.NotEmpty(t, a.PasswordHash)
	assert.NotEqual(t, "tollbooth", a.PasswordHash)

	assert.True(t, a.CheckPasswordHash("tollbooth"))
	assert.False(t, a.CheckPasswordHash("drawbridge"))
}

func TestSetPasswordHashEmpty(t *testing.T) {
	a := AdminEntity{}

	err := a.SetPasswordHash("")
	require.Error(t, err)

	var respErr *app.ServerResponseError
	require.ErrorAs(t, err, &respErr)

	status, msg := respErr.ServerErrorResponse()
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "Must provide a password", msg)
}

func TestValidateUsername(t *testing.T) {
	a := AdminEntity{Username: "ispettore"}
	assert.NoError(t, a.ValidateUsername())

	a.Username = ""
	err := a.ValidateUsername()
	require.Error(t, err)

	var respErr *app.ServerResponseError
	require.ErrorAs(t, err, &respErr)

	status, _ := respErr.ServerErrorResponse()
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func signedToken(t *testing.T, method jwt.SigningMethod, secret []byte, exp time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(method, jwt.MapClaims{
		"sub": "1",
		"exp": exp.Unix(),
	})
	tokenStr, err := token.SignedString(secret)
	require.NoError(t, err)

	return tokenStr
}

func TestValidateRejectsBadTokens(t *testing.T) {
	secret := []byte("test-secret")
	s := &Service{Secret: secret}

	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "garbage",
			token: "not.a.token",
		},
		{
			name:  "expired",
			token: signedToken(t, jwt.SigningMethodHS256, secret, time.Now().Add(-time.Hour)),
		},
		{
			name:  "wrong secret",
			token: signedToken(t, jwt.SigningMethodHS256, []byte("other-secret"), time.Now().Add(time.Hour)),
		},
		{
			name:  "wrong method",
			token: signedToken(t, jwt.SigningMethodHS384, secret, time.Now().Add(time.Hour)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Validate(context.Background(), tt.token)
			require.Error(t, err)

			var respErr *app.ServerResponseError
			require.ErrorAs(t, err, &respErr)

			status, msg := respErr.ServerErrorResponse()
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Equal(t, "Please login", msg)
		})
	}
}
