package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/userhub/user-service/internal/core/domain"
)

// identityKey is where the Auth middleware stores the resolved user.
const identityKey = "identity"

// SetIdentity attaches the authenticated user to the request.
func SetIdentity(c echo.Context, user *domain.User) {
	c.Set(identityKey, user)
}

// Identity returns the user attached by the Auth middleware. A missing value
// means the route was wired without the middleware; reject with 401.
func Identity(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(identityKey).(*domain.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication identity")
	}
	return user, nil
}
