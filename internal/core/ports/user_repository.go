package ports

import (
	"context"

	"github.com/userhub/user-service/internal/core/domain"
)

// UserRepository is the persistence boundary for accounts.
//
// Insert must reject a duplicate email with domain.ErrDuplicateAccount; the
// service relies on the store's unique index instead of a check-then-insert.
// Lookups that do not resolve return domain.ErrUserNotFound.
type UserRepository interface {
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// UpdateByID applies patch and returns the record as stored afterwards.
	UpdateByID(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)
	// DeleteByID removes the record and returns it as it was before deletion.
	DeleteByID(ctx context.Context, id string) (*domain.User, error)
	ListAll(ctx context.Context) ([]*domain.User, error)
}
