package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"storefront/internal/auth"
	"storefront/internal/logging"
	"storefront/internal/model"
	"storefront/internal/repository"
)

// TokenIssuer signs login tokens.
type TokenIssuer interface {
	Issue(user *model.User) (string, time.Time, error)
}

// RegisterInput is a self-service signup.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	PhoneNumber string
}

// LoginResult is returned on successful login.
type LoginResult struct {
	Token     string     `json:"token"`
	Role      model.Role `json:"role"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// AuthService handles signup, login and the current user's profile.
type AuthService interface {
	// Register creates a USER account. Duplicate username or email yields ErrConflict.
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	// Login checks credentials and issues a token. Any mismatch yields ErrUnauthorized.
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Profile(ctx context.Context, username string) (*model.User, error)
}

type authService struct {
	users  repository.UserRepository
	tokens TokenIssuer
	logger log.FieldLogger
}

// NewAuthService constructs an AuthService.
func NewAuthService(users repository.UserRepository, tokens TokenIssuer, logger log.FieldLogger) AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
		logger: logging.OrDiscard(logger).WithField("component", "auth"),
	}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, invalid("username, email and password are required")
	}
	if err := ensureUnique(ctx, s.users, in.Username, in.Email, 0); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	created, err := s.users.Create(ctx, &model.User{
		Username:    in.Username,
		Email:       in.Email,
		Password:    hash,
		PhoneNumber: in.PhoneNumber,
		Role:        model.RoleUser,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return nil, repoErr("user", err)
	}
	s.logger.WithFields(log.Fields{"event": "user_registered", "user_id": created.ID}).Info("user registered")
	return created, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if err := auth.CheckPassword(user.Password, password); err != nil {
		s.logger.WithFields(log.Fields{"event": "login_failed", "username": user.Username}).Warn("password mismatch")
		return nil, ErrUnauthorized
	}
	token, exp, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, Role: user.Role, ExpiresAt: exp}, nil
}

func (s *authService) Profile(ctx context.Context, username string) (*model.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, repoErr("user", err)
	}
	return user, nil
}

// ensureUnique returns ErrConflict when username or email belongs to a user
// other than selfID.
func ensureUnique(ctx context.Context, users repository.UserRepository, username, email string, selfID int64) error {
	if username != "" {
		u, err := users.FindByUsername(ctx, username)
		if err := taken("username", u, err, selfID); err != nil {
			return err
		}
	}
	if email != "" {
		u, err := users.FindByEmail(ctx, email)
		if err := taken("email", u, err, selfID); err != nil {
			return err
		}
	}
	return nil
}

func taken(field string, u *model.User, err error, selfID int64) error {
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return err
	}
	if u.ID == selfID {
		return nil
	}
	return fmt.Errorf("%s %w", field, ErrConflict)
}
