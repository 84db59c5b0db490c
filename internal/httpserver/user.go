package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Revasall/TO-DO-List-project/internal/logging"
	authmw "github.com/Revasall/TO-DO-List-project/internal/middleware/auth"
	"github.com/Revasall/TO-DO-List-project/internal/repo"
	"github.com/Revasall/TO-DO-List-project/internal/service"
	"github.com/Revasall/TO-DO-List-project/internal/transport"
)

type UserHTTP struct {
	Svc *service.AuthService
}

func (h *UserHTTP) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, authmw.CurrentUser(c))
}

func (h *UserHTTP) UpdateMe(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user_update")

	var req transport.PatchUserRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("user_update_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user := authmw.CurrentUser(c)
	updated, err := h.Svc.UpdateProfile(ctx, user.ID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, repo.ErrUserAlreadyExists):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, repo.ErrUserNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			l.Error("user_update_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot update user")
		}
	}

	return c.JSON(http.StatusOK, updated)
}

func (h *UserHTTP) DeleteMe(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user_delete")

	user := authmw.CurrentUser(c)
	if err := h.Svc.DeleteAccount(ctx, user.ID); err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		l.Error("user_delete_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete user")
	}

	l.Info("user_deleted", "user_id", user.ID)
	return c.NoContent(http.StatusNoContent)
}
