package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront/internal/auth"
	"storefront/internal/model"
	repoMocks "storefront/internal/repository/mocks"
)

type stubIssuer struct {
	token string
	err   error
}

func (s stubIssuer) Issue(*model.User) (string, time.Time, error) {
	return s.token, time.Unix(1700000000, 0), s.err
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		in         RegisterInput
		setupMocks func(m *repoMocks.MockUserRepository)
		wantErr    error
	}{
		{
			name: "happy path",
			in:   RegisterInput{Username: " ana ", Email: "ana@example.com", Password: "pw"},
			setupMocks: func(m *repoMocks.MockUserRepository) {
				m.On("FindByUsername", ctx, "ana").Return(nil, sql.ErrNoRows)
				m.On("FindByEmail", ctx, "ana@example.com").Return(nil, sql.ErrNoRows)
				m.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
					return u.Username == "ana" && u.Role == model.RoleUser &&
						auth.CheckPassword(u.Password, "pw") == nil
				})).Return(&model.User{ID: 1, Username: "ana", Role: model.RoleUser}, nil)
			},
		},
		{
			name:       "missing password",
			in:         RegisterInput{Username: "ana", Email: "ana@example.com"},
			setupMocks: func(m *repoMocks.MockUserRepository) {},
			wantErr:    ErrInvalidInput,
		},
		{
			name: "duplicate username",
			in:   RegisterInput{Username: "ana", Email: "ana@example.com", Password: "pw"},
			setupMocks: func(m *repoMocks.MockUserRepository) {
				m.On("FindByUsername", ctx, "ana").Return(&model.User{ID: 4}, nil)
			},
			wantErr: ErrConflict,
		},
		{
			name: "duplicate email",
			in:   RegisterInput{Username: "ana", Email: "ana@example.com", Password: "pw"},
			setupMocks: func(m *repoMocks.MockUserRepository) {
				m.On("FindByUsername", ctx, "ana").Return(nil, sql.ErrNoRows)
				m.On("FindByEmail", ctx, "ana@example.com").Return(&model.User{ID: 4}, nil)
			},
			wantErr: ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(repoMocks.MockUserRepository)
			tt.setupMocks(users)
			svc := NewAuthService(users, stubIssuer{token: "t"}, nil)

			u, err := svc.Register(ctx, tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, u)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(1), u.ID)
			}
			users.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := auth.HashPassword("secret")
	require.NoError(t, err)
	stored := &model.User{ID: 2, Username: "admin", Password: hash, Role: model.RoleAdmin}

	tests := []struct {
		name       string
		username   string
		password   string
		issuer     stubIssuer
		setupMocks func(m *repoMocks.MockUserRepository)
		wantErr    error
	}{
		{
			name:     "success",
			username: "admin",
			password: "secret",
			issuer:   stubIssuer{token: "jwt"},
			setupMocks: func(m *repoMocks.MockUserRepository) {
				m.On("FindByUsername", ctx, "admin").Return(stored, nil)
			},
		},
		{
			name:     "wrong password",
			username: "admin",
			password: "nope",
			setupMocks: func(m *repoMocks.MockUserRepository) {
				m.On("FindByUsername", ctx, "admin").Return(stored, nil)
			},
			wantErr: ErrUnauthorized,
		},
		{
			name:     "unknown user",
			username: "ghost",
			password: "secret",
			setupMocks: func(m *repoMocks.MockUserRepository) {
				m.On("FindByUsername", ctx, "ghost").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrUnauthorized,
		},
		{
			name:     "signing failure",
			username: "admin",
			password: "secret",
			issuer:   stubIssuer{err: errors.New("boom")},
			setupMocks: func(m *repoMocks.MockUserRepository) {
				m.On("FindByUsername", ctx, "admin").Return(stored, nil)
			},
			wantErr: errors.New("boom"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(repoMocks.MockUserRepository)
			tt.setupMocks(users)
			svc := NewAuthService(users, tt.issuer, nil)

			res, err := svc.Login(ctx, tt.username, tt.password)
			switch {
			case tt.wantErr == nil:
				require.NoError(t, err)
				assert.Equal(t, "jwt", res.Token)
				assert.Equal(t, model.RoleAdmin, res.Role)
			case errors.Is(tt.wantErr, ErrUnauthorized):
				assert.ErrorIs(t, err, ErrUnauthorized)
			default:
				assert.EqualError(t, err, tt.wantErr.Error())
			}
			users.AssertExpectations(t)
		})
	}
}

func TestAuthService_Profile(t *testing.T) {
	ctx := context.Background()
	users := new(repoMocks.MockUserRepository)
	users.On("FindByUsername", ctx, "ana").Return(&model.User{ID: 1, Username: "ana"}, nil)
	users.On("FindByUsername", ctx, "gone").Return(nil, sql.ErrNoRows)
	svc := NewAuthService(users, stubIssuer{}, nil)

	u, err := svc.Profile(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, "ana", u.Username)

	_, err = svc.Profile(ctx, "gone")
	assert.ErrorIs(t, err, ErrNotFound)
}
