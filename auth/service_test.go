package auth_test

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizapi/auth"
	"quizapi/domain"
)

type mockUserRepo struct {
	users  []domain.User
	nextId int
}

func (m *mockUserRepo) CreateUser(_ context.Context, username, passwordHash string) (string, error) {
	for _, u := range m.users {
		if u.Username == username {
			return "", domain.ErrDuplicateUsername
		}
	}

	m.nextId++
	id := "user-" + strconv.Itoa(m.nextId)

	m.users = append(m.users, domain.User{Id: id, Username: username, PasswordHash: passwordHash})
	return id, nil
}

func (m *mockUserRepo) GetUserByUsername(_ context.Context, username string) (domain.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound
}

func (m *mockUserRepo) GetUserById(_ context.Context, id string) (domain.User, error) {
	for _, u := range m.users {
		if u.Id == id {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound
}

type mockHasher struct{}

func (mockHasher) Hash(password string) (string, error) {
	arr := []rune(password)
	for i := range arr {
		arr[i] = arr[i] ^ 7 + 5
	}
	return string(arr), nil
}

func (m mockHasher) Compare(hash, password string) (bool, error) {
	hashed, _ := m.Hash(password)
	return hashed == hash, nil
}

type mockTokens struct{}

func (mockTokens) Generate(id string, _ time.Time) (string, error) {
	return "token." + id, nil
}

func (mockTokens) Verify(token string) (string, error) {
	id, ok := strings.CutPrefix(token, "token.")
	if !ok {
		return "", domain.ErrCorruptedToken
	}
	return id, nil
}

func newTestService() auth.AuthService {
	return auth.NewService(&mockUserRepo{}, mockHasher{}, mockTokens{})
}

func TestSignup(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		desc     string
		username string
		password string
		wantErr  error
	}{
		{"normal", "oussama145", "12345678", nil},
		{"with underscore", "oussama_two", "12345678ermtrmt", nil},
		{"short password", "oussama", "1234567", auth.ErrWeakPassword},
		{"password too long", "oussama", strings.Repeat("a", 129), auth.ErrPasswordTooLong},
		{"username too short", "ou", "12345678", auth.ErrInvalidUsernameFormat},
		{"username too long", "oussamaermtermtermtermtrt", "12345678", auth.ErrInvalidUsernameFormat},
		{"username with space", "oussama is here", "12345678", auth.ErrInvalidUsernameFormat},
		{"username with capitals", "Oussama", "12345678", auth.ErrInvalidUsernameFormat},
		{"absent username", "", "12345678", auth.ErrInvalidUsernameFormat},
		{"absent password", "oussama", "", auth.ErrWeakPassword},
	}

	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			service := newTestService()

			token, err := service.Signup(ctx, tC.username, tC.password)

			if tC.wantErr == nil {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
			} else {
				assert.ErrorIs(t, err, tC.wantErr)
			}
		})
	}

	t.Run("duplicate username", func(t *testing.T) {
		service := newTestService()

		_, err := service.Signup(ctx, "oussama145", "12345678")
		require.NoError(t, err)

		_, err = service.Signup(ctx, "oussama145", "another-password")
		assert.ErrorIs(t, err, domain.ErrDuplicateUsername)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("correct credentials", func(t *testing.T) {
		service := newTestService()

		_, err := service.Signup(ctx, "oussama145", "12345678")
		require.NoError(t, err)

		token, err := service.Login(ctx, "oussama145", "12345678")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password", func(t *testing.T) {
		service := newTestService()

		_, err := service.Signup(ctx, "oussama145", "12345678")
		require.NoError(t, err)

		_, err = service.Login(ctx, "oussama145", "87654321")
		assert.ErrorIs(t, err, auth.ErrIncorrectPassword)
	})

	t.Run("unknown user", func(t *testing.T) {
		service := newTestService()

		_, err := service.Login(ctx, "ghost", "12345678")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("repo failure is wrapped", func(t *testing.T) {
		service := auth.NewService(failingRepo{}, mockHasher{}, mockTokens{})

		_, err := service.Login(ctx, "oussama145", "12345678")
		assert.ErrorIs(t, err, domain.UnexpectedDatabaseError)
	})
}

func TestTokenRoundTrip(t *testing.T) {
	service := newTestService()

	token, err := service.GenerateToken("some-user-id")
	require.NoError(t, err)

	id, err := service.VerifyToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "some-user-id", id)

	_, err = service.VerifyToken("garbage")
	assert.Error(t, err)
}

type failingRepo struct{}

func (failingRepo) CreateUser(context.Context, string, string) (string, error) {
	return "", errors.New("connection refused")
}

func (failingRepo) GetUserByUsername(context.Context, string) (domain.User, error) {
	return domain.User{}, errors.New("connection refused")
}

func (failingRepo) GetUserById(context.Context, string) (domain.User, error) {
	return domain.User{}, errors.New("connection refused")
}
