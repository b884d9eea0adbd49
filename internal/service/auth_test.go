package service

import (
	"context"
	"testing"

	"emoticon-rest-api/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(t *testing.T) (*AuthService, *fakeUserRepo, *TokenService) {
	t.Helper()
	repo := newFakeUserRepo()
	tokens := newTestTokenService(t, "HS256")
	return NewAuthService(repo, NewBcryptHasher(bcrypt.MinCost), tokens, logging.Nop()), repo, tokens
}

func TestSignUp_Success(t *testing.T) {
	svc, repo, tokens := newTestAuthService(t)

	tok, err := svc.SignUp(context.Background(), "user", "ag12")
	require.NoError(t, err)
	assert.Equal(t, "bearer", tok.TokenType)

	require.Len(t, repo.users, 1)
	stored := repo.users["user"]
	assert.NotEqual(t, "ag12", stored.PasswordHash)

	identity, err := tokens.Validate(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, identity.ID)
	assert.Equal(t, "user", identity.Username)
}

func TestSignUp_MultibyteUsername(t *testing.T) {
	svc, repo, tokens := newTestAuthService(t)

	for _, name := range []string{"пользователь", "пользовательпользова"} {
		tok, err := svc.SignUp(context.Background(), name, "пароль")
		require.NoError(t, err, name)

		identity, err := tokens.Validate(tok.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, name, identity.Username)
	}
	assert.Len(t, repo.users, 2)

	_, err := svc.SignIn(context.Background(), "пользователь", "пароль")
	assert.NoError(t, err)
}

func TestSignUp_Duplicate(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "user", "ag12")
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, "user", "ag12")
	assert.ErrorIs(t, err, ErrDuplicateCredential)
	assert.Len(t, repo.users, 1)
}

func TestSignUp_Rejected(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"short password", "user", "abc"},
		{"empty username", "", "ag12"},
		{"long username", "abcdefghijklmnopqrstu", "ag12"},
		{"21 cyrillic letters", "пользовательпользоват", "ag12"},
		{"three letter cyrillic password", "user", "пар"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SignUp(context.Background(), tt.username, tt.password)
			assert.ErrorIs(t, err, ErrRejectedCredential)
		})
	}
	assert.Empty(t, repo.users)
}

func TestSignUp_RepositoryError(t *testing.T) {
	svc, repo, _ := newTestAuthService(t)
	repo.err = errBoom{}

	_, err := svc.SignUp(context.Background(), "user", "ag12")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicateCredential)
	assert.ErrorIs(t, err, errBoom{})
}

func TestSignIn_Success(t *testing.T) {
	svc, _, tokens := newTestAuthService(t)
	ctx := context.Background()
	_, err := svc.SignUp(ctx, "user", "ag12")
	require.NoError(t, err)

	tok, err := svc.SignIn(ctx, "user", "ag12")
	require.NoError(t, err)

	identity, err := tokens.Validate(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user", identity.Username)
}

func TestSignIn_AnySingleCharMutationFails(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()
	_, err := svc.SignUp(ctx, "user", "ag12")
	require.NoError(t, err)

	mutate := func(s string) []string {
		var out []string
		for i := range s {
			b := []byte(s)
			b[i]++
			out = append(out, string(b))
		}
		return append(out, s+"_", s[:len(s)-1])
	}

	for _, name := range mutate("user") {
		_, err := svc.SignIn(ctx, name, "ag12")
		assert.ErrorIs(t, err, ErrInvalidCredentials, name)
	}
	for _, pass := range mutate("ag12") {
		_, err := svc.SignIn(ctx, "user", pass)
		assert.ErrorIs(t, err, ErrInvalidCredentials, pass)
	}
}

func TestAuthenticate(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	tok, err := svc.SignUp(context.Background(), "user", "ag12")
	require.NoError(t, err)

	identity, err := svc.Authenticate(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user", identity.Username)

	_, err = svc.Authenticate("fake_token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
