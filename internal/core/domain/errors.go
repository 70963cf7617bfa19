package domain

import "errors"

// Account errors.
var (
	ErrDuplicateAccount   = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("not valid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrForbidden          = errors.New("you can only modify your own account")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes long")
)

// Authentication gate rejections. All of them surface as 401.
var (
	ErrNoToken         = errors.New("no token provided")
	ErrInvalidToken    = errors.New("invalid or expired token")
	ErrSubjectNotFound = errors.New("user does not exist")
	ErrUserInactive    = errors.New("user is not active")
)

// Token verification failures.
var (
	ErrTokenInvalid   = errors.New("token signature is invalid")
	ErrTokenExpired   = errors.New("token is expired")
	ErrTokenMalformed = errors.New("token is malformed")
)

// IsUnauthenticated reports whether err is one of the authentication gate
// rejections.
func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrNoToken) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrSubjectNotFound) ||
		errors.Is(err, ErrUserInactive)
}
