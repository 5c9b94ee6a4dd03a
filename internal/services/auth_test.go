package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guestportal/internal/domain"
)

// fakeUserRepo implements domain.UserRepository for service tests.
type fakeUserRepo struct {
	user *domain.User
	err  error

	lastEmail string
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error { return f.err }

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	f.lastEmail = email
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

// fakeHasher implements domain.PasswordHasher. Compare succeeds only for
// the configured password.
type fakeHasher struct {
	password string
}

func (f *fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (f *fakeHasher) Compare(hash, password string) error {
	if password != f.password {
		return errors.New("mismatch")
	}
	return nil
}

// fakeTokenIssuer implements domain.TokenIssuer.
type fakeTokenIssuer struct {
	token string
	err   error
}

func (f *fakeTokenIssuer) Issue(userID int64, role domain.Role, expiry time.Duration) (string, error) {
	return f.token, f.err
}

func TestAuthService_Login(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	staffUser := &domain.User{ID: 7, Email: "staff@college.edu", PasswordHash: "hash", Role: domain.RoleStaff}

	tests := []struct {
		name        string
		repo        *fakeUserRepo
		password    string
		claimedRole domain.Role
		issuer      *fakeTokenIssuer
		wantErr     error
		wantToken   string
	}{
		{
			name:        "success",
			repo:        &fakeUserRepo{user: staffUser},
			password:    "secret123",
			claimedRole: domain.RoleStaff,
			issuer:      &fakeTokenIssuer{token: "jwt-token"},
			wantToken:   "jwt-token",
		},
		{
			name:        "unknown email",
			repo:        &fakeUserRepo{err: domain.ErrUserNotFound},
			password:    "secret123",
			claimedRole: domain.RoleStaff,
			issuer:      &fakeTokenIssuer{token: "jwt-token"},
			wantErr:     domain.ErrInvalidCredentials,
		},
		{
			name:        "wrong password",
			repo:        &fakeUserRepo{user: staffUser},
			password:    "wrong",
			claimedRole: domain.RoleStaff,
			issuer:      &fakeTokenIssuer{token: "jwt-token"},
			wantErr:     domain.ErrInvalidCredentials,
		},
		{
			name:        "right password wrong claimed role",
			repo:        &fakeUserRepo{user: staffUser},
			password:    "secret123",
			claimedRole: domain.RoleAdmin,
			issuer:      &fakeTokenIssuer{token: "jwt-token"},
			wantErr:     domain.ErrRoleMismatch,
		},
		{
			name:        "token signing failure",
			repo:        &fakeUserRepo{user: staffUser},
			password:    "secret123",
			claimedRole: domain.RoleStaff,
			issuer:      &fakeTokenIssuer{err: errors.New("boom")},
			wantErr:     nil, // wrapped, checked below
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthService(tt.repo, &fakeHasher{password: "secret123"}, tt.issuer, time.Hour, logger)

			token, user, err := svc.Login(context.Background(), "staff@college.edu", tt.password, tt.claimedRole)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				assert.Nil(t, user)
				return
			}
			if tt.issuer.err != nil {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
			require.NotNil(t, user)
			assert.Equal(t, staffUser.ID, user.ID)
		})
	}
}

func TestAuthService_Login_NormalizesEmail(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := &fakeUserRepo{user: &domain.User{ID: 1, Email: "staff@college.edu", Role: domain.RoleStaff}}
	svc := NewAuthService(repo, &fakeHasher{password: "pw"}, &fakeTokenIssuer{token: "t"}, time.Hour, logger)

	_, _, err := svc.Login(context.Background(), "  Staff@College.EDU ", "pw", domain.RoleStaff)
	require.NoError(t, err)
	assert.Equal(t, "staff@college.edu", repo.lastEmail)
}
