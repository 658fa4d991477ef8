package services

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperrors "mrp/internal/errors"
	"mrp/internal/shared/testutil"
)

func newTestAuth(t *testing.T) (*AuthService, *Authenticator, *testutil.BufferedSlogHandler) {
	t.Helper()
	logger, logs := testutil.NewTestLogger(t)
	users := NewUserStore()
	tokens := NewTokenStore()
	return NewAuthService(users, tokens, logger, WithBcryptCost(bcrypt.MinCost)),
		NewAuthenticator(users, tokens),
		logs
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, authn, logs := newTestAuth(t)

	user, err := svc.Register(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.NotEqual(t, []byte("secret"), user.PasswordHash)
	testutil.AssertLogContains(t, logs, "user registered")

	token, err := svc.Login(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	got, err := authn.UserFromAuthorization("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestAuth(t)

	_, err := svc.Register(ctx, "alice", "secret")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "other")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAuthService_RegisterRejectsLongPassword(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestAuth(t)

	_, err := svc.Register(ctx, "alice", strings.Repeat("p", 73))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInvalidInput, apperrors.KindOf(err))
	assert.EqualError(t, err, "password must be at most 72 bytes")

	// 37 runes, 74 bytes
	_, err = svc.Register(ctx, "bob", strings.Repeat("é", 37))
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	_, err = svc.Register(ctx, "carol", strings.Repeat("p", 72))
	assert.NoError(t, err)
}

func TestAuthService_LoginFailures(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestAuth(t)
	_, err := svc.Register(ctx, "alice", "secret")
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"unknown user", "bob", "secret"},
		{"wrong password", "alice", "nope"},
		{"empty password", "alice", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := svc.Login(ctx, tt.username, tt.password)
			assert.Empty(t, token)
			assert.Equal(t, apperrors.KindUnauthenticated, apperrors.KindOf(err))
			assert.EqualError(t, err, "Invalid credentials")
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	svc, authn, _ := newTestAuth(t)
	_, err := svc.Register(ctx, "alice", "secret")
	require.NoError(t, err)
	token, err := svc.Login(ctx, "alice", "secret")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, "Bearer "+token))

	_, err = authn.UserFromAuthorization("Bearer " + token)
	assert.ErrorIs(t, err, apperrors.ErrMissingToken)

	// second logout with the same token fails
	assert.ErrorIs(t, svc.Logout(ctx, "Bearer "+token), apperrors.ErrMissingToken)
}

func TestAuthenticator_RejectsMalformedHeaders(t *testing.T) {
	_, authn, _ := newTestAuth(t)

	for _, header := range []string{"", "Bearer", "Bearer ", "Bearer    ", "Basic abc", "bearer abc", "Bearer unknown"} {
		t.Run(header, func(t *testing.T) {
			_, err := authn.UserFromAuthorization(header)
			require.Error(t, err)
			assert.Equal(t, apperrors.KindUnauthenticated, apperrors.KindOf(err))
			assert.EqualError(t, err, "Missing or invalid Authorization header")
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"Bearer  abc ", "abc", true},
		{"Bearer ", "", false},
		{"Token abc", "", false},
	}
	for _, tt := range tests {
		got, ok := BearerToken(tt.header)
		assert.Equal(t, tt.want, got, tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
	}
}

func TestTokenStore_ConcurrentIssue(t *testing.T) {
	store := NewTokenStore()

	var wg sync.WaitGroup
	tokens := make([]string, 50)
	for i := range tokens {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tokens[i] = store.Issue(i)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, len(tokens), store.Len())
	for i, tok := range tokens {
		id, ok := store.Lookup(tok)
		require.True(t, ok)
		assert.Equal(t, i, id)
	}

	assert.True(t, store.Revoke(tokens[0]))
	assert.False(t, store.Revoke(tokens[0]))
	_, ok := store.Lookup("  ")
	assert.False(t, ok)
}
