package echoapi

import (
	"github.com/labstack/echo/v4"
)

// roleMiddleware authorizes only the given roles; the caller must already
// have passed the JWT middleware.
func roleMiddleware(resolver *identityResolver, roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			ident, err := resolver.resolve(ctx)
			if err != nil {
				return err
			}
			for _, role := range roles {
				if ident.Role == role {
					return next(ctx)
				}
			}
			return errHTTPForbidden
		}
	}
}
