package service

import (
	"context"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"storefront/internal/auth"
	"storefront/internal/logging"
	"storefront/internal/model"
	"storefront/internal/repository"
)

// UserInput creates a customer account from the admin console.
type UserInput struct {
	Username    string
	Email       string
	Password    string
	PhoneNumber string
	Role        model.Role
}

// UserUpdate changes selected fields; nil fields are left as they are.
type UserUpdate struct {
	Username    *string
	Email       *string
	Password    *string
	PhoneNumber *string
	Role        *model.Role
}

// UserService manages customer accounts.
type UserService interface {
	List(ctx context.Context, limit, offset int) (*ListResult[model.User], error)
	Get(ctx context.Context, id int64) (*model.User, error)
	Create(ctx context.Context, in UserInput) (*model.User, error)
	// Update applies in to user id. The password is re-hashed only when supplied.
	Update(ctx context.Context, id int64, in UserUpdate) (*model.User, error)
	Delete(ctx context.Context, id int64) error
}

type userService struct {
	users  repository.UserRepository
	logger log.FieldLogger
}

// NewUserService constructs a UserService.
func NewUserService(users repository.UserRepository, logger log.FieldLogger) UserService {
	return &userService{users: users, logger: logging.OrDiscard(logger).WithField("component", "users")}
}

func (s *userService) List(ctx context.Context, limit, offset int) (*ListResult[model.User], error) {
	limit, offset = normalizePage(limit, offset)
	res, err := s.users.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ListResult[model.User]{Items: res.Items, Total: res.Total}, nil
}

func (s *userService) Get(ctx context.Context, id int64) (*model.User, error) {
	if id <= 0 {
		return nil, invalid("id must be positive")
	}
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, repoErr("user", err)
	}
	return u, nil
}

func (s *userService) Create(ctx context.Context, in UserInput) (*model.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, invalid("username, email and password are required")
	}
	if in.Role == "" {
		in.Role = model.RoleUser
	}
	if !in.Role.Valid() {
		return nil, invalid("unknown role %q", in.Role)
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
		Role:        in.Role,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return nil, repoErr("user", err)
	}
	s.logger.WithFields(log.Fields{"event": "user_created", "user_id": created.ID, "role": created.Role}).Info("user created")
	return created, nil
}

func (s *userService) Update(ctx context.Context, id int64, in UserUpdate) (*model.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var username, email string
	if in.Username != nil && strings.TrimSpace(*in.Username) != "" {
		username = strings.TrimSpace(*in.Username)
	}
	if in.Email != nil && strings.TrimSpace(*in.Email) != "" {
		email = strings.TrimSpace(*in.Email)
	}
	if err := ensureUnique(ctx, s.users, username, email, u.ID); err != nil {
		return nil, err
	}
	if username != "" {
		u.Username = username
	}
	if email != "" {
		u.Email = email
	}
	if in.PhoneNumber != nil {
		u.PhoneNumber = *in.PhoneNumber
	}
	if in.Role != nil {
		if !in.Role.Valid() {
			return nil, invalid("unknown role %q", *in.Role)
		}
		u.Role = *in.Role
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		u.Password = hash
	}

	updated, err := s.users.Update(ctx, u)
	if err != nil {
		return nil, repoErr("user", err)
	}
	return updated, nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return invalid("id must be positive")
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return repoErr("user", err)
	}
	s.logger.WithFields(log.Fields{"event": "user_deleted", "user_id": id}).Info("user deleted")
	return nil
}
