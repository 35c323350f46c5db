package service

import (
	"context"
	"testing"

	"github.com/Jaysins/inventory-mgt-backend/internal/apperr"
	"github.com/Jaysins/inventory-mgt-backend/internal/config"
	"github.com/Jaysins/inventory-mgt-backend/internal/dto"
	"github.com/Jaysins/inventory-mgt-backend/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	users map[uuid.UUID]model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = *u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	if u, ok := r.users[id]; ok {
		return &u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username && u.IsActive {
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) List(_ context.Context, includeInactive bool) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		if includeInactive || u.IsActive {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = *u
	return nil
}

func (r *stubUserRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	u := r.users[id]
	u.IsActive = false
	r.users[id] = u
	return nil
}

func (r *stubUserRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	u := r.users[id]
	u.IsActive = true
	r.users[id] = u
	return nil
}

func newAuthFixture(t *testing.T) (AuthService, *stubUserRepo) {
	t.Helper()
	repo := newStubUserRepo()
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
	return NewAuthService(repo, cfg), repo
}

func seedUser(t *testing.T, svc AuthService, username, password, role string) *dto.UserResponse {
	t.Helper()
	resp, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: username,
		Name:     "Test User",
		Password: password,
		Role:     role,
	})
	require.NoError(t, err)
	return resp
}

func TestLoginIssuesTokens(t *testing.T) {
	svc, _ := newAuthFixture(t)
	seedUser(t, svc, "operator1", "correct horse", "operator")

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "operator1", Password: "correct horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, "operator", resp.User.Role)
}

func TestLoginWrongPasswordRejected(t *testing.T) {
	svc, _ := newAuthFixture(t)
	seedUser(t, svc, "operator1", "correct horse", "operator")

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "operator1", Password: "battery staple",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidArgument))
}

func TestLoginUnknownUserRejected(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "ghost", Password: "whatever",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidArgument))
}

func TestRefreshRoundTrip(t *testing.T) {
	svc, _ := newAuthFixture(t)
	seedUser(t, svc, "manager1", "correct horse", "manager")

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "manager1", Password: "correct horse",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, "manager1", refreshed.User.Username)
}

func TestRefreshRejectsGarbageToken(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Refresh(context.Background(), "not.a.token")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidArgument))
}

func TestRefreshRejectsDeactivatedUser(t *testing.T) {
	svc, _ := newAuthFixture(t)
	created := seedUser(t, svc, "operator1", "correct horse", "operator")

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "operator1", Password: "correct horse",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeactivateUser(context.Background(), uuid.MustParse(created.ID)))

	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestCreateUserRejectsDuplicateUsername(t *testing.T) {
	svc, _ := newAuthFixture(t)
	seedUser(t, svc, "operator1", "correct horse", "operator")

	_, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "operator1", Name: "Other", Password: "irrelevant1", Role: "admin",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}
