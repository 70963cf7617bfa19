package ports

import (
	"context"

	"github.com/userhub/user-service/internal/core/domain"
)

// CreateUserInput carries the data for a new account. Password is plaintext
// and only lives for the duration of the call.
type CreateUserInput struct {
	Email        string
	Name         string
	LastName     string
	Password     string
	Company      string
	ProfileImage string
	Position     string
}

// UpdateUserInput is a partial update; nil fields are left unchanged.
type UpdateUserInput struct {
	Email        *string
	Name         *string
	LastName     *string
	Password     *string
	Company      *string
	ProfileImage *string
	Position     *string
}

// AuthResult is returned by register and login.
type AuthResult struct {
	User  *domain.User
	Token string
}

// AccountService defines the account use cases.
type AccountService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Register(ctx context.Context, input CreateUserInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	ListAll(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (string, error)
	Remove(ctx context.Context, id string) (string, error)
	IssueToken(userID string) (string, error)
}

// Authenticator resolves the identity behind an Authorization header value.
type Authenticator interface {
	Authenticate(ctx context.Context, authorization string) (*domain.User, error)
}
