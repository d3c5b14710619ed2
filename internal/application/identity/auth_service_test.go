package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pos/backend/internal/domain/identity"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/infrastructure/auth"
	"github.com/pos/backend/internal/infrastructure/config"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*identity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*identity.User)}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*identity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, user *identity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Save(_ context.Context, user *identity.User) error {
	r.users[user.ID] = user
	return nil
}

func authFixture(t *testing.T) (*AuthService, *fakeUserRepo, *identity.User) {
	t.Helper()

	repo := newFakeUserRepo()
	user, err := identity.NewUser("maria", "maria@store.com", "s3cret-pass", identity.UserRoleOperator)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), user))

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "pos-test",
		MaxRefreshCount:        5,
	})

	svc := NewAuthService(repo, jwtService, auth.NewInMemoryTokenBlacklist())
	return svc, repo, user
}

func TestLogin_Success(t *testing.T) {
	svc, _, user := authFixture(t)

	resp, err := svc.Login(context.Background(), LoginRequest{Username: "maria", Password: "s3cret-pass"})

	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), resp.User.ID)
	assert.Equal(t, "operator", resp.User.Role)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
	assert.NotEmpty(t, resp.Tokens.RefreshToken)
	assert.NotNil(t, user.LastLoginAt)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _ := authFixture(t)

	_, err := svc.Login(context.Background(), LoginRequest{Username: "maria", Password: "wrong-pass"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestLogin_UnknownUserSameError(t *testing.T) {
	svc, _, _ := authFixture(t)

	_, err := svc.Login(context.Background(), LoginRequest{Username: "nobody", Password: "whatever1"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestLogin_InactiveAccount(t *testing.T) {
	svc, repo, user := authFixture(t)
	user.Deactivate()
	require.NoError(t, repo.Save(context.Background(), user))

	_, err := svc.Login(context.Background(), LoginRequest{Username: "maria", Password: "s3cret-pass"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ACCOUNT_INACTIVE", domainErr.Code)
}

func TestRefresh_IssuesNewPair(t *testing.T) {
	svc, _, _ := authFixture(t)
	ctx := context.Background()

	resp, err := svc.Login(ctx, LoginRequest{Username: "maria", Password: "s3cret-pass"})
	require.NoError(t, err)

	pair, err := svc.Refresh(ctx, RefreshRequest{RefreshToken: resp.Tokens.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEqual(t, resp.Tokens.RefreshToken, pair.RefreshToken)
}

func TestRefresh_RevokedTokenRejected(t *testing.T) {
	svc, _, _ := authFixture(t)
	ctx := context.Background()

	resp, err := svc.Login(ctx, LoginRequest{Username: "maria", Password: "s3cret-pass"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, resp.Tokens.RefreshToken))

	_, err = svc.Refresh(ctx, RefreshRequest{RefreshToken: resp.Tokens.RefreshToken})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_TOKEN", domainErr.Code)
}

func TestRefresh_DeactivatedUserRejected(t *testing.T) {
	svc, repo, user := authFixture(t)
	ctx := context.Background()

	resp, err := svc.Login(ctx, LoginRequest{Username: "maria", Password: "s3cret-pass"})
	require.NoError(t, err)

	user.Deactivate()
	require.NoError(t, repo.Save(ctx, user))

	_, err = svc.Refresh(ctx, RefreshRequest{RefreshToken: resp.Tokens.RefreshToken})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ACCOUNT_INACTIVE", domainErr.Code)
}

func TestChangePassword(t *testing.T) {
	svc, _, user := authFixture(t)
	ctx := context.Background()

	err := svc.ChangePassword(ctx, user.ID, ChangePasswordRequest{
		CurrentPassword: "s3cret-pass",
		NewPassword:     "even-more-secret",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginRequest{Username: "maria", Password: "even-more-secret"})
	assert.NoError(t, err)
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	svc, _, user := authFixture(t)

	err := svc.ChangePassword(context.Background(), user.ID, ChangePasswordRequest{
		CurrentPassword: "wrong-pass",
		NewPassword:     "even-more-secret",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestUserService_CreateAndDuplicate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()

	resp, err := svc.Create(ctx, CreateUserRequest{
		Username: "Carlos",
		Email:    "carlos@store.com",
		Password: "s3cret-pass",
		Role:     "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, "carlos", resp.Username)
	assert.Equal(t, "admin", resp.Role)

	_, err = svc.Create(ctx, CreateUserRequest{
		Username: "carlos",
		Email:    "carlos2@store.com",
		Password: "s3cret-pass",
		Role:     "operator",
	})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "USERNAME_TAKEN", domainErr.Code)
}

func TestUserService_Deactivate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()

	resp, err := svc.Create(ctx, CreateUserRequest{
		Username: "carlos",
		Email:    "carlos@store.com",
		Password: "s3cret-pass",
		Role:     "operator",
	})
	require.NoError(t, err)

	id := uuid.MustParse(resp.ID)
	require.NoError(t, svc.Deactivate(ctx, id))

	got, err := svc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "inactive", got.Status)
}
