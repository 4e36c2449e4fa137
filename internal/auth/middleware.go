package auth

import (
	"errors"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "showcase/internal/errors"
)

// IdentityContextKey is the echo context key holding the caller's *Identity.
const IdentityContextKey = "identity"

// Middleware returns the access gate for protected routes. Requests without a
// well-formed "Bearer <token>" header, or with an invalid or expired token, are
// rejected with 401. A missing signing secret rejects every request with 500.
func Middleware(jwtService *JWTService) echo.MiddlewareFunc {
	gate := echojwt.WithConfig(echojwt.Config{
		ContextKey:  IdentityContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.ResolveIdentity(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if errors.Is(err, apperrors.ErrMissingSecret) {
				return apperrors.ErrMissingSecret
			}
			return apperrors.ErrUnauthenticated
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		protected := gate(next)
		return func(c echo.Context) error {
			if !jwtService.Configured() {
				return apperrors.ErrMissingSecret
			}
			return protected(c)
		}
	}
}

// IdentityFrom returns the identity attached by Middleware.
func IdentityFrom(c echo.Context) (*Identity, error) {
	id, ok := c.Get(IdentityContextKey).(*Identity)
	if !ok || id == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	return id, nil
}
