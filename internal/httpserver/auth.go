package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Revasall/TO-DO-List-project/internal/logging"
	authmw "github.com/Revasall/TO-DO-List-project/internal/middleware/auth"
	"github.com/Revasall/TO-DO-List-project/internal/mykafka"
	"github.com/Revasall/TO-DO-List-project/internal/repo"
	"github.com/Revasall/TO-DO-List-project/internal/service"
	"github.com/Revasall/TO-DO-List-project/internal/tokens"
	"github.com/Revasall/TO-DO-List-project/internal/transport"
)

const tokenTypeBearer = "bearer"

type AuthHTTP struct {
	Svc      *service.AuthService
	Producer *mykafka.Producer
}

func tokenPairResponse(pair *service.TokenPair) transport.TokenPairResponse {
	return transport.TokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    tokenTypeBearer,
	}
}

func (h *AuthHTTP) publish(c echo.Context, topic, key string, event map[string]interface{}) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Producer.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "topic", topic, "error", err)
	}
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	pair, err := h.Svc.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrUserAlreadyExists):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrValidation):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		default:
			l.Error("register_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "register failed")
		}
	}

	h.publish(c, "user_events", req.Username, map[string]interface{}{
		"type":     "user_registrated",
		"username": req.Username,
	})

	l.Info("register_successful", "username", req.Username)
	return c.JSON(http.StatusCreated, tokenPairResponse(pair))
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	pair, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return authmw.Unauthorized(c, "invalid username or password")
		}
		l.Error("login_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "login failed")
	}

	h.publish(c, "user_events", req.Username, map[string]interface{}{
		"type":     "user_loged_in",
		"username": req.Username,
	})

	l.Info("login_successful")
	return c.JSON(http.StatusOK, tokenPairResponse(pair))
}

// Refresh expects the refresh token as a bearer Authorization header.
func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_refresh")

	token := authmw.BearerToken(c)
	if token == "" {
		return authmw.Unauthorized(c, "missing refresh token")
	}

	pair, err := h.Svc.Refresh(ctx, token)
	if err != nil {
		switch {
		case errors.Is(err, tokens.ErrTokenExpired):
			return authmw.Unauthorized(c, "token has expired")
		case errors.Is(err, tokens.ErrTokenMalformed),
			errors.Is(err, tokens.ErrWrongTokenType),
			errors.Is(err, repo.ErrUserNotFound):
			return authmw.Unauthorized(c, "invalid authenticate token")
		default:
			l.Error("refresh_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "refresh failed")
		}
	}

	l.Info("refresh_successful")
	return c.JSON(http.StatusOK, tokenPairResponse(pair))
}
