package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openvet/clinic-api/internal/model"
	"github.com/openvet/clinic-api/pkg/auth"
	apperrors "github.com/openvet/clinic-api/pkg/errors"
	"github.com/openvet/clinic-api/pkg/logger"
	"github.com/openvet/clinic-api/pkg/security"
)

type fakeUserRepo struct {
	nextID  int64
	byID    map[int64]*model.User
	byEmail map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[int64]*model.User{}, byEmail: map[string]*model.User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	if _, ok := r.byEmail[user.Email]; ok {
		return apperrors.Conflict("email already registered", nil)
	}
	r.nextID++
	user.ID = r.nextID
	cp := *user
	r.byID[user.ID] = &cp
	r.byEmail[user.Email] = &cp
	return nil
}

func (r *fakeUserRepo) Get(ctx context.Context, id int64) (*model.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, apperrors.NotFound("user", nil)
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, apperrors.NotFound("user", nil)
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *model.User) error {
	if _, ok := r.byID[user.ID]; !ok {
		return apperrors.NotFound("user", nil)
	}
	cp := *user
	r.byID[user.ID] = &cp
	r.byEmail[user.Email] = &cp
	return nil
}

func (r *fakeUserRepo) SoftDelete(ctx context.Context, id int64) error {
	u, ok := r.byID[id]
	if !ok {
		return apperrors.NotFound("user", nil)
	}
	u.Active = false
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context) ([]*model.User, error) {
	out := []*model.User{}
	for _, u := range r.byID {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

type fakeTokenRepo struct {
	byToken map[string]*model.RefreshToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{byToken: map[string]*model.RefreshToken{}}
}

func (r *fakeTokenRepo) Save(ctx context.Context, token *model.RefreshToken) error {
	cp := *token
	r.byToken[token.Token] = &cp
	return nil
}

func (r *fakeTokenRepo) Get(ctx context.Context, token string) (*model.RefreshToken, error) {
	t, ok := r.byToken[token]
	if !ok || t.ExpiresAt.Before(time.Now()) {
		return nil, apperrors.NotFound("refresh token", nil)
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTokenRepo) Delete(ctx context.Context, token string) error {
	delete(r.byToken, token)
	return nil
}

func (r *fakeTokenRepo) DeleteForUser(ctx context.Context, userID int64) error {
	for k, t := range r.byToken {
		if t.UserID == userID {
			delete(r.byToken, k)
		}
	}
	return nil
}

func (r *fakeTokenRepo) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

func newTestService(t *testing.T) (*Service, *fakeUserRepo, *fakeTokenRepo) {
	t.Helper()
	users := newFakeUserRepo()
	tokens := newFakeTokenRepo()
	jwtSvc := auth.NewJWTService(auth.Config{Secret: "test-secret", RefreshSecret: "test-refresh"})
	svc := NewService(users, tokens, jwtSvc, security.NewBcryptHasher(4), time.Hour, logger.NewLogger(nil))
	return svc, users, tokens
}

func register(t *testing.T, svc *Service) *model.User {
	t.Helper()
	user, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:     "maria@example.com",
		Password:  "s3cret!",
		FirstName: "Maria",
		LastName:  "Lopez",
	})
	require.NoError(t, err)
	return user
}

func TestRegisterDefaultsToClientRole(t *testing.T) {
	svc, _, _ := newTestService(t)

	user := register(t, svc)
	assert.Equal(t, model.RoleClient, user.Role)
	assert.True(t, user.Active)
	assert.NotEqual(t, "s3cret!", user.PasswordHash)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email: "x@example.com", Password: "s3cret!", FirstName: "X", LastName: "Y", Role: "superuser",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(t)

	register(t, svc)
	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email: "maria@example.com", Password: "s3cret!", FirstName: "M", LastName: "L",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestLoginAndRefreshRotation(t *testing.T) {
	svc, _, tokens := newTestService(t)
	register(t, svc)

	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		Email: "maria@example.com", Password: "s3cret!",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Positive(t, resp.ExpiresIn)

	refreshed, err := svc.Refresh(context.Background(), resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// The used token was rotated out.
	_, ok := tokens.byToken[resp.RefreshToken]
	assert.False(t, ok)
	_, err = svc.Refresh(context.Background(), resp.RefreshToken)
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newTestService(t)
	register(t, svc)

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email: "maria@example.com", Password: "wrong",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))
}

func TestLoginUnknownAccountSameAnswer(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email: "nobody@example.com", Password: "whatever",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))
}

func TestLoginLockoutAfterRepeatedFailures(t *testing.T) {
	svc, _, _ := newTestService(t)
	register(t, svc)

	for i := 0; i < maxLoginAttempts; i++ {
		_, err := svc.Login(context.Background(), &model.LoginRequest{
			Email: "maria@example.com", Password: "wrong",
		})
		require.Error(t, err)
	}

	// Even the right password is refused while locked.
	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email: "maria@example.com", Password: "s3cret!",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))
}

func TestLoginSuccessResetsAttempts(t *testing.T) {
	svc, users, _ := newTestService(t)
	user := register(t, svc)

	for i := 0; i < maxLoginAttempts-1; i++ {
		_, _ = svc.Login(context.Background(), &model.LoginRequest{
			Email: "maria@example.com", Password: "wrong",
		})
	}
	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email: "maria@example.com", Password: "s3cret!",
	})
	require.NoError(t, err)

	stored, err := users.Get(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.LoginAttempts)
	assert.NotNil(t, stored.LastLoginAt)
}

func TestLogoutRevokesRefreshTokens(t *testing.T) {
	svc, _, tokens := newTestService(t)
	user := register(t, svc)

	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		Email: "maria@example.com", Password: "s3cret!",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), user.ID))
	assert.Empty(t, tokens.byToken)
	_, err = svc.Refresh(context.Background(), resp.RefreshToken)
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))
}

func TestDeleteUserDisablesLogin(t *testing.T) {
	svc, _, _ := newTestService(t)
	user := register(t, svc)

	require.NoError(t, svc.DeleteUser(context.Background(), user.ID))

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email: "maria@example.com", Password: "s3cret!",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))
}

func TestUpdateUserRole(t *testing.T) {
	svc, _, _ := newTestService(t)
	user := register(t, svc)

	role := "veterinarian"
	updated, err := svc.UpdateUser(context.Background(), user.ID, &model.UpdateUserRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, model.RoleVeterinarian, updated.Role)

	bad := "superuser"
	_, err = svc.UpdateUser(context.Background(), user.ID, &model.UpdateUserRequest{Role: &bad})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}
