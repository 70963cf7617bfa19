package ports

import "github.com/userhub/user-service/internal/core/domain"

// PasswordHasher hashes and verifies plaintext passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches hash. A malformed hash never matches.
	Verify(plaintext, hash string) bool
}

// TokenIssuer signs and verifies access tokens carrying a user id.
type TokenIssuer interface {
	Issue(userID string) (string, error)
	// Verify returns domain.ErrTokenMalformed, domain.ErrTokenExpired or
	// domain.ErrTokenInvalid when the token cannot be trusted.
	Verify(token string) (*domain.TokenPayload, error)
}
