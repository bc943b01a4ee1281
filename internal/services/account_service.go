package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/isdelr/meetings/internal/auth"
	"github.com/isdelr/meetings/internal/models"
	"github.com/isdelr/meetings/internal/store"
)

// Login failure messages.
const (
	MsgEmailNotFound     = "Email %s not found"
	MsgIncorrectPassword = "Incorrect Password"
)

// AccountServiceProvider defines the interface for account services.
type AccountServiceProvider interface {
	Signup(ctx context.Context, in auth.SignupInput) (models.User, string, error)
	Login(ctx context.Context, in auth.LoginInput) (models.User, string, error)
	GetUserByID(ctx context.Context, id int64) (models.User, error)
}

// AccountService registers and authenticates users and mints their session tokens.
type AccountService struct {
	users     store.UserStore
	hasher    *auth.PasswordHasher
	codec     *auth.TokenCodec
	validator *auth.CredentialValidator
}

// NewAccountService creates a new AccountService.
func NewAccountService(users store.UserStore, hasher *auth.PasswordHasher, codec *auth.TokenCodec) *AccountService {
	return &AccountService{
		users:     users,
		hasher:    hasher,
		codec:     codec,
		validator: auth.NewCredentialValidator(),
	}
}

// Signup validates the form, creates the user and returns a session token for them.
// All violated rules are reported together in a *ValidationError.
func (s *AccountService) Signup(ctx context.Context, in auth.SignupInput) (models.User, string, error) {
	messages := s.validator.Signup(in)

	n, err := s.users.CountByEmail(ctx, in.Email)
	if err != nil {
		return models.User{}, "", fmt.Errorf("failed to check email: %w", err)
	}
	if n > 0 {
		messages = append(messages, auth.MsgEmailTaken)
	}
	if len(messages) > 0 {
		return models.User{}, "", &ValidationError{Messages: messages}
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return models.User{}, "", err
	}

	user, err := s.users.Create(ctx, models.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        in.Email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return models.User{}, "", &ValidationError{Messages: []string{auth.MsgEmailTaken}}
		}
		return models.User{}, "", fmt.Errorf("failed to create user: %w", err)
	}

	return s.issue(user)
}

// Login verifies the credentials and returns a session token.
func (s *AccountService) Login(ctx context.Context, in auth.LoginInput) (models.User, string, error) {
	if messages := s.validator.Login(in); len(messages) > 0 {
		return models.User{}, "", &ValidationError{Messages: messages}
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.User{}, "", &ValidationError{Messages: []string{fmt.Sprintf(MsgEmailNotFound, in.Email)}}
		}
		return models.User{}, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.hasher.Verify(user.PasswordHash, in.Password) {
		return models.User{}, "", &ValidationError{Messages: []string{MsgIncorrectPassword}}
	}

	return s.issue(user)
}

// GetUserByID retrieves a single user by their ID, without the password hash.
func (s *AccountService) GetUserByID(ctx context.Context, id int64) (models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.User{}, &NotFoundError{Resource: "User", ID: id}
		}
		return models.User{}, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *AccountService) issue(user models.User) (models.User, string, error) {
	token, err := s.codec.Issue(user.Email, user.ID)
	if err != nil {
		return models.User{}, "", err
	}
	// Don't send the password hash to the client
	user.PasswordHash = ""
	return user, token, nil
}

var _ AccountServiceProvider = (*AccountService)(nil)
