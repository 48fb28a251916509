package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_RegisterAndAuthenticate(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	userID, err := s.auth.Register(ctx, "alice", "pw123")
	require.NoError(t, err)
	assert.NotEmpty(t, userID)

	got, err := s.auth.Authenticate(ctx, "alice", "pw123")
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	s.register(t, "alice")

	_, err := s.auth.Register(ctx, "alice", "other")
	assert.ErrorIs(t, err, ErrDuplicateUser)

	// The original password still works.
	_, err = s.auth.Authenticate(ctx, "alice", "pw123")
	assert.NoError(t, err)
}

func TestAuthService_RegisterInvalidInput(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"empty username", "", "pw123"},
		{"empty password", "alice", ""},
		{"padded username", " alice", "pw123"},
		{"password too long", "alice", string(make([]byte, 73))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.auth.Register(ctx, tt.username, tt.password)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestAuthService_AuthenticateFailuresAreIndistinguishable(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	s.register(t, "alice")

	_, wrongPassword := s.auth.Authenticate(ctx, "alice", "wrong")
	_, unknownUser := s.auth.Authenticate(ctx, "mallory", "pw123")

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestAuthService_UsernamesAreCaseSensitive(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	s.register(t, "alice")

	_, err := s.auth.Authenticate(ctx, "Alice", "pw123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.auth.Register(ctx, "Alice", "pw123")
	assert.NoError(t, err)
}

func TestAuthService_AuthenticateOverlongPassword(t *testing.T) {
	s := newTestServices(t)

	s.register(t, "alice")

	_, err := s.auth.Authenticate(context.Background(), "alice", string(make([]byte, 100)))
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_AuthenticateComparesOncePerAttempt(t *testing.T) {
	s := newTestServices(t)
	s.register(t, "alice")

	var comparisons int
	s.auth.hasher.compare = func(digest, plaintext []byte) error {
		comparisons++
		return bcrypt.CompareHashAndPassword(digest, plaintext)
	}

	overlong := strings.Repeat("a", 100)
	tests := []struct {
		name     string
		username string
		password string
	}{
		{"known user, wrong password", "alice", "wrong"},
		{"unknown user", "mallory", "pw123"},
		{"known user, overlong password", "alice", overlong},
		{"unknown user, overlong password", "mallory", overlong},
		{"known user, empty password", "alice", ""},
		{"unknown user, empty password", "mallory", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comparisons = 0

			_, err := s.auth.Authenticate(context.Background(), tt.username, tt.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
			assert.Equal(t, 1, comparisons)
		})
	}
}
