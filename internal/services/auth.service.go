package services

import (
	"context"
	"errors"
	"strconv"

	"github.com/sambathreasmey/library-management-system/internal/model"
	"github.com/sambathreasmey/library-management-system/internal/repository"
	"github.com/sambathreasmey/library-management-system/pkg/logger"
	"github.com/sambathreasmey/library-management-system/pkg/token"
	"golang.org/x/crypto/bcrypt"
)

// seed credentials for an empty install, change-password is the first
// thing the operator should do.
const (
	seedAdminUsername = "admin"
	seedAdminPassword = "admin123"
)

type AuthUserRepository interface {
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, user *model.User) (*model.User, error)
}

// TokenPair is what a successful login or refresh hands back.
type TokenPair struct {
	Access  string
	Refresh string
}

type AuthService struct {
	users  AuthUserRepository
	tokens *token.Manager
}

func NewAuthService(users AuthUserRepository, tokens *token.Manager) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
	}
}

// Login checks the credentials and mints a fresh token pair. The error
// is deliberately the same for an unknown user and a wrong password.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.User, *TokenPair, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrBadCredentials
		}
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, ErrBadCredentials
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh mints a new pair for the subject of a verified refresh token.
// The identity is re-read from storage so a revoked admin bit or a
// deleted account ends the session at the next refresh.
func (s *AuthService) Refresh(ctx context.Context, subject string) (*model.User, *TokenPair, error) {
	id, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return nil, nil, ErrBadCredentials
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrBadCredentials
		}
		return nil, nil, err
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (s *AuthService) issuePair(user *model.User) (*TokenPair, error) {
	id := strconv.FormatInt(user.ID, 10)

	access, err := s.tokens.IssueAccess(id, user.Username, user.IsAdmin)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefresh(id, user.Username, user.IsAdmin)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

// SeedAdmin creates the bootstrap administrator when the user table is
// empty, so a fresh deployment is reachable.
func (s *AuthService) SeedAdmin(ctx context.Context) error {
	count, err := s.users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = s.users.Create(ctx, &model.User{
		FullName:     "Administrator",
		Username:     seedAdminUsername,
		PasswordHash: string(hash),
		IsAdmin:      true,
	})
	if err != nil {
		return err
	}

	logger.Warn("[auth] seeded default admin account, change its password",
		"username", seedAdminUsername)
	return nil
}
