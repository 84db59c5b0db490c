package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Revasall/TO-DO-List-project/internal/hash"
	"github.com/Revasall/TO-DO-List-project/internal/logging"
	"github.com/Revasall/TO-DO-List-project/internal/models"
	"github.com/Revasall/TO-DO-List-project/internal/repo"
	"github.com/Revasall/TO-DO-List-project/internal/tokens"
	"github.com/Revasall/TO-DO-List-project/internal/transport"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrValidation         = errors.New("invalid or incomplete data provided")
)

const maxCredentialLen = 72 // bcrypt input limit

type AuthService struct {
	Repo          *repo.GormRepo
	JWTSecret     []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

func (s *AuthService) issuePair(user *models.User) (*TokenPair, error) {
	accessToken, err := tokens.Issue(user.ID, user.Email, tokens.TypeAccess, s.JWTSecret, s.AccessTTL)
	if err != nil {
		return nil, err
	}

	refreshToken, err := tokens.Issue(user.ID, "", tokens.TypeRefresh, s.RefreshSecret, s.RefreshTTL)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) (*TokenPair, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if username == "" || email == "" || password == "" ||
		len(password) > maxCredentialLen || !strings.Contains(email, "@") {
		return nil, ErrValidation
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user, err := s.Repo.CreateUser(ctx, &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: pwHash,
	})
	if err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExists) {
			l.Warn("register_failed", "status", 409, "reason", "user already exists")
		} else {
			l.Error("register_error", "status", 500, "error", err)
		}
		return nil, err
	}

	return s.issuePair(user)
}

// Authenticate collapses "no such user" and "wrong password" into one
// error so a caller cannot probe which check failed.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.Repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", username)

	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		l.Warn("login_failed", "status", 401, "reason", "invalid username or password")
		return nil, err
	}

	return s.issuePair(user)
}

// Refresh mints a new pair off a valid refresh token. The presented
// token is not rotated out and stays usable until its own expiry.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh")

	claims, err := tokens.Parse(refreshToken, s.RefreshSecret)
	if err != nil {
		l.Warn("refresh_failed", "status", 401, "error", err)
		return nil, err
	}
	if claims.TokenType != tokens.TypeRefresh {
		l.Warn("refresh_failed", "status", 401, "reason", "unexpected token type")
		return nil, tokens.ErrWrongTokenType
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, err
	}

	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		l.Warn("refresh_failed", "status", 401, "reason", "subject no longer exists")
		return nil, err
	}

	return s.issuePair(user)
}

// CurrentUser resolves the principal behind an access token. Every
// failure mode is reported as ErrInvalidCredentials on purpose.
func (s *AuthService) CurrentUser(ctx context.Context, accessToken string) (*models.User, error) {
	claims, err := tokens.Parse(accessToken, s.JWTSecret)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if claims.TokenType != tokens.TypeAccess {
		return nil, ErrInvalidCredentials
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, req transport.PatchUserRequest) (*models.User, error) {
	if req.Empty() {
		return nil, ErrValidation
	}
	if req.Username != nil && *req.Username == "" {
		return nil, ErrValidation
	}
	if req.Email != nil && !strings.Contains(*req.Email, "@") {
		return nil, ErrValidation
	}

	pwHash := ""
	if req.Password != nil {
		if *req.Password == "" || len(*req.Password) > maxCredentialLen {
			return nil, ErrValidation
		}
		h, err := hash.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		pwHash = h
	}

	return s.Repo.PatchUser(ctx, userID, req, pwHash)
}

func (s *AuthService) DeleteAccount(ctx context.Context, userID uint) error {
	return s.Repo.DeleteUser(ctx, userID)
}
