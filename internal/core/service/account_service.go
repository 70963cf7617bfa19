package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/userhub/user-service/internal/core/domain"
	"github.com/userhub/user-service/internal/core/ports"
)

// AccountService implements account creation, login and user CRUD.
type AccountService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	log    zerolog.Logger
	now    func() time.Time
}

func NewAccountService(
	repo ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	log zerolog.Logger,
) *AccountService {
	return &AccountService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Create hashes the password and inserts the account. Email uniqueness is
// enforced by the repository.
func (s *AccountService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	now := s.now()
	user := &domain.User{
		Email:        normalizeEmail(in.Email),
		Name:         in.Name,
		LastName:     in.LastName,
		PasswordHash: hash,
		IsActive:     true,
		Roles:        []string{domain.RoleUser},
		Company:      in.Company,
		ProfileImage: in.ProfileImage,
		Position:     in.Position,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Insert(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateAccount) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info().Str("user_id", created.ID).Msg("account created")
	return created, nil
}

// Register creates the account and authenticates it in one step.
func (s *AccountService) Register(ctx context.Context, in ports.CreateUserInput) (*ports.AuthResult, error) {
	user, err := s.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return &ports.AuthResult{User: user, Token: token}, nil
}

// Login never tells the caller whether the email or the password was wrong.
func (s *AccountService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.log.Debug().Str("user_id", user.ID).Msg("login succeeded")
	return &ports.AuthResult{User: user, Token: token}, nil
}

func (s *AccountService) FindByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapUnexpected("find user", err)
	}
	return user, nil
}

// ListAll returns raw records; the hash is dropped when the records are
// serialized.
func (s *AccountService) ListAll(ctx context.Context) ([]*domain.User, error) {
	users, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Update merges the supplied fields into the stored record. A new password is
// hashed before it reaches the repository.
func (s *AccountService) Update(ctx context.Context, id string, in ports.UpdateUserInput) (string, error) {
	patch := domain.UserPatch{
		Name:         in.Name,
		LastName:     in.LastName,
		Company:      in.Company,
		ProfileImage: in.ProfileImage,
		Position:     in.Position,
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		patch.Email = &email
	}
	if in.Password != nil {
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return "", fmt.Errorf("update user: %w", err)
		}
		patch.PasswordHash = &hash
	}

	var (
		user *domain.User
		err  error
	)
	if patch.IsEmpty() {
		user, err = s.repo.FindByID(ctx, id)
	} else {
		user, err = s.repo.UpdateByID(ctx, id, patch)
	}
	if err != nil {
		return "", wrapUnexpected("update user", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("account updated")
	return fmt.Sprintf("User %s updated", user.Name), nil
}

func (s *AccountService) Remove(ctx context.Context, id string) (string, error) {
	user, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return "", wrapUnexpected("remove user", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("account removed")
	return fmt.Sprintf("User %s deleted", user.Name), nil
}

// IssueToken signs a fresh token for an already authenticated user.
func (s *AccountService) IssueToken(userID string) (string, error) {
	return s.tokens.Issue(userID)
}

// wrapUnexpected passes known domain errors through untouched and adds
// context to everything else.
func wrapUnexpected(op string, err error) error {
	if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrDuplicateAccount) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
