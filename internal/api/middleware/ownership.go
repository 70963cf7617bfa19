package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/userhub/user-service/internal/api/handler"
	"github.com/userhub/user-service/internal/api/metrics"
	"github.com/userhub/user-service/internal/core/service"
)

// OwnUser only lets the authenticated user through when the path parameter
// param names their own account. It must be chained after Auth.
func OwnUser(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := handler.Identity(c)
			if err != nil {
				return err
			}

			if err := service.CheckOwnership(identity, c.Param(param)); err != nil {
				metrics.OwnershipDeniedTotal.Inc()
				return err
			}
			return next(c)
		}
	}
}
