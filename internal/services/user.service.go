package services

import (
	"context"
	"errors"
	"strconv"

	"github.com/sambathreasmey/library-management-system/internal/model"
	"github.com/sambathreasmey/library-management-system/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	SetAdmin(ctx context.Context, id int64, isAdmin bool) error
	Delete(ctx context.Context, id int64) error
	Table(ctx context.Context, q model.TableQuery) (*model.TableResult, error)
}

type UserService struct {
	users UserRepository
}

func NewUserService(users UserRepository) *UserService {
	return &UserService{
		users: users,
	}
}

func (s *UserService) Create(ctx context.Context, p model.UserCreateRequest) (*model.User, error) {
	if err := p.Validate(); err != nil {
		return nil, validationErr(err)
	}

	_, err := s.users.GetByUsername(ctx, p.Username)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return s.users.Create(ctx, &model.User{
		FullName:     p.FullName,
		Username:     p.Username,
		PasswordHash: string(hash),
		IsAdmin:      p.IsAdmin,
	})
}

// ChangePassword rehashes and stores a new credential. Existing
// sessions stay valid until their tokens expire.
func (s *UserService) ChangePassword(ctx context.Context, id int64, password string) error {
	if password == "" {
		return validationErr(errors.New("password is required"))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return mapRepoErr(s.users.UpdatePassword(ctx, id, string(hash)))
}

// SetAdmin flips the admin bit. An admin cannot demote themselves so
// the system always keeps at least the acting administrator.
func (s *UserService) SetAdmin(ctx context.Context, actor *model.User, id int64, isAdmin bool) error {
	if actor != nil && actor.ID == id && !isAdmin {
		return ErrSelfDemote
	}
	return mapRepoErr(s.users.SetAdmin(ctx, id, isAdmin))
}

// Delete removes an account. Self-deletion is rejected.
func (s *UserService) Delete(ctx context.Context, actor *model.User, id int64) error {
	if actor != nil && actor.ID == id {
		return ErrSelfDelete
	}
	return mapRepoErr(s.users.Delete(ctx, id))
}

func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return user, nil
}

// Resolve turns a token subject back into the stored account.
func (s *UserService) Resolve(ctx context.Context, subject string) (*model.User, error) {
	id, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.Get(ctx, id)
}

func (s *UserService) Table(ctx context.Context, q model.TableQuery) (*model.TableResult, error) {
	return s.users.Table(ctx, q)
}
