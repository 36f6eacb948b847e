package services

import (
	"context"
	"testing"
	"time"

	"github.com/sambathreasmey/library-management-system/internal/model"
	"github.com/sambathreasmey/library-management-system/internal/repository"
	"github.com/sambathreasmey/library-management-system/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepo) Create(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func hashOf(t *testing.T, password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func testTokenManager() *token.Manager {
	return token.NewManager("test-secret", 15*time.Minute, time.Hour)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials issue a token pair", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := NewAuthService(repo, testTokenManager())

		repo.On("GetByUsername", mock.Anything, "alice").Return(&model.User{
			ID:           7,
			Username:     "alice",
			PasswordHash: hashOf(t, "s3cret"),
			IsAdmin:      true,
		}, nil)

		user, pair, err := svc.Login(ctx, "alice", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, int64(7), user.ID)
		assert.NotEmpty(t, pair.Access)
		assert.NotEmpty(t, pair.Refresh)
		assert.NotEqual(t, pair.Access, pair.Refresh)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := NewAuthService(repo, testTokenManager())

		repo.On("GetByUsername", mock.Anything, "alice").Return(&model.User{
			Username:     "alice",
			PasswordHash: hashOf(t, "s3cret"),
		}, nil)

		_, _, err := svc.Login(ctx, "alice", "wrong")
		assert.ErrorIs(t, err, ErrBadCredentials)
	})

	t.Run("unknown user gets the same error", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := NewAuthService(repo, testTokenManager())

		repo.On("GetByUsername", mock.Anything, "ghost").Return(nil, repository.ErrNotFound)

		_, _, err := svc.Login(ctx, "ghost", "whatever")
		assert.ErrorIs(t, err, ErrBadCredentials)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("re-reads the identity from storage", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := NewAuthService(repo, testTokenManager())

		repo.On("GetByID", mock.Anything, int64(7)).Return(&model.User{ID: 7, Username: "alice"}, nil)

		user, pair, err := svc.Refresh(ctx, "7")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.NotEmpty(t, pair.Access)
	})

	t.Run("deleted account ends the session", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := NewAuthService(repo, testTokenManager())

		repo.On("GetByID", mock.Anything, int64(9)).Return(nil, repository.ErrNotFound)

		_, _, err := svc.Refresh(ctx, "9")
		assert.ErrorIs(t, err, ErrBadCredentials)
	})

	t.Run("non-numeric subject", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := NewAuthService(repo, testTokenManager())

		_, _, err := svc.Refresh(ctx, "abc")
		assert.ErrorIs(t, err, ErrBadCredentials)
	})
}

func TestAuthService_SeedAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds on empty table", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := NewAuthService(repo, testTokenManager())

		repo.On("Count", mock.Anything).Return(int64(0), nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			if u.Username != "admin" || !u.IsAdmin {
				return false
			}
			return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("admin123")) == nil
		})).Return(&model.User{ID: 1, Username: "admin", IsAdmin: true}, nil)

		require.NoError(t, svc.SeedAdmin(ctx))
		repo.AssertExpectations(t)
	})

	t.Run("no-op when users exist", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := NewAuthService(repo, testTokenManager())

		repo.On("Count", mock.Anything).Return(int64(3), nil)

		require.NoError(t, svc.SeedAdmin(ctx))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
