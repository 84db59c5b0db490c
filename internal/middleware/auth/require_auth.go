package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Revasall/TO-DO-List-project/internal/models"
	"github.com/Revasall/TO-DO-List-project/internal/service"
)

const userContextKey = "current_user"

type RequireAuth struct {
	Svc *service.AuthService
}

// Middleware resolves the bearer access token into a principal and
// stores it in the echo context for the handlers behind it.
func (m *RequireAuth) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := BearerToken(c)
		if token == "" {
			return Unauthorized(c, "missing access token")
		}

		user, err := m.Svc.CurrentUser(c.Request().Context(), token)
		if err != nil {
			return Unauthorized(c, "invalid or expired token")
		}

		c.Set(userContextKey, user)
		return next(c)
	}
}

func BearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// CurrentUser returns the principal set by Middleware, nil outside it.
func CurrentUser(c echo.Context) *models.User {
	user, _ := c.Get(userContextKey).(*models.User)
	return user
}

// Unauthorized replies 401 with the bearer challenge the auth
// endpoints advertise.
func Unauthorized(c echo.Context, msg string) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return echo.NewHTTPError(http.StatusUnauthorized, msg)
}
