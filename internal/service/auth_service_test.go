package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/startupathon-api/internal/models"
	"github.com/noah-isme/startupathon-api/internal/repository"
	"github.com/noah-isme/startupathon-api/internal/repository/memstore"
	appErrors "github.com/noah-isme/startupathon-api/pkg/errors"
)

type mockUserRepo struct {
	users     map[string]*models.User
	countErr  error
	createErr error
}

func newMockUserRepo(users ...*models.User) *mockUserRepo {
	repo := &mockUserRepo{users: map[string]*models.User{}}
	for _, u := range users {
		repo.users[u.Email] = u
	}
	return repo
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := m.users[email]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) Count(ctx context.Context) (int, error) {
	return len(m.users), m.countErr
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.users[user.Email]; ok {
		return repository.ErrDuplicate
	}
	user.ID = "user-" + user.Email
	m.users[user.Email] = user
	return nil
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func newTestAuthService(repo UserRepository) *AuthService {
	return NewAuthService(repo, nil, nil, AuthConfig{Secret: "test-secret", Expiry: time.Hour, Issuer: "test"}, NewMetricsService())
}

func TestAuthServiceLoginSuccess(t *testing.T) {
	repo := newMockUserRepo(&models.User{ID: "u1", Email: "admin@startupathon.io", Name: "Ada", PasswordHash: hashed(t, "secret1"), Role: models.RoleAdmin})
	svc := newTestAuthService(repo)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "  Admin@Startupathon.io ", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, "Ada", resp.User.Name)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, "admin@startupathon.io", claims.Email)
}

func TestAuthServiceLoginInvalidCredentials(t *testing.T) {
	repo := newMockUserRepo(&models.User{ID: "u1", Email: "admin@startupathon.io", PasswordHash: hashed(t, "secret1"), Role: models.RoleAdmin})
	svc := newTestAuthService(repo)

	_, wrongPassword := svc.Login(context.Background(), models.LoginRequest{Email: "admin@startupathon.io", Password: "nope"})
	_, unknownUser := svc.Login(context.Background(), models.LoginRequest{Email: "ghost@startupathon.io", Password: "secret1"})

	for _, err := range []error{wrongPassword, unknownUser} {
		var appErr *appErrors.Error
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
		assert.Equal(t, "Invalid credentials", appErr.Message)
	}
}

func TestAuthServiceLoginRejectsNonAdmin(t *testing.T) {
	repo := newMockUserRepo(&models.User{ID: "u2", Email: "editor@startupathon.io", PasswordHash: hashed(t, "secret1"), Role: "editor"})
	svc := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "editor@startupathon.io", Password: "secret1"})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
}

func TestAuthServiceLoginValidation(t *testing.T) {
	svc := newTestAuthService(newMockUserRepo())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "not-an-email"})
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.ElementsMatch(t, []string{"email", "password"}, appErr.Fields)
}

func TestAuthServiceRegisterBootstrapThenProtected(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestAuthService(repo)
	ctx := context.Background()

	info, err := svc.Register(ctx, models.RegisterRequest{Email: "First@Startupathon.io", Password: "secret1", Name: " First "}, nil)
	require.NoError(t, err)
	assert.Equal(t, "first@startupathon.io", info.Email)
	assert.Equal(t, "First", info.Name)
	assert.Equal(t, models.RoleAdmin, info.Role)
	stored := repo.users["first@startupathon.io"]
	require.NotNil(t, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")))

	_, err = svc.Register(ctx, models.RegisterRequest{Email: "second@startupathon.io", Password: "secret1"}, nil)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)

	_, err = svc.Register(ctx, models.RegisterRequest{Email: "second@startupathon.io", Password: "secret1"}, &models.JWTClaims{Role: "editor"})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	_, err = svc.Register(ctx, models.RegisterRequest{Email: "second@startupathon.io", Password: "secret1"}, &models.JWTClaims{Role: models.RoleAdmin})
	require.NoError(t, err)
}

func TestAuthServiceRegisterConcurrentBootstrapAdmitsOne(t *testing.T) {
	repo := memstore.NewUserRepository()
	svc := newTestAuthService(repo)

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := models.RegisterRequest{Email: fmt.Sprintf("admin%d@startupathon.io", i), Password: "secret1"}
			_, errs[i] = svc.Register(context.Background(), req, nil)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
	}
	assert.Equal(t, 1, succeeded)

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestAuthServiceRegisterDuplicateAndShortPassword(t *testing.T) {
	repo := newMockUserRepo(&models.User{ID: "u1", Email: "admin@startupathon.io", Role: models.RoleAdmin})
	svc := newTestAuthService(repo)
	admin := &models.JWTClaims{Role: models.RoleAdmin}

	_, err := svc.Register(context.Background(), models.RegisterRequest{Email: "admin@startupathon.io", Password: "secret1"}, admin)
	assert.ErrorIs(t, err, appErrors.ErrConflict)

	_, err = svc.Register(context.Background(), models.RegisterRequest{Email: "new@startupathon.io", Password: "123"}, admin)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, []string{"password"}, appErr.Fields)
}

func TestAuthServiceValidateTokenFailures(t *testing.T) {
	svc := newTestAuthService(newMockUserRepo())

	_, err := svc.ValidateToken("garbage")
	assert.ErrorIs(t, err, appErrors.ErrTokenInvalid)

	other := NewAuthService(newMockUserRepo(), nil, nil, AuthConfig{Secret: "other", Expiry: time.Hour}, nil)
	token, err := other.sign(&models.User{ID: "u1", Role: models.RoleAdmin}, time.Now())
	require.NoError(t, err)
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, appErrors.ErrTokenInvalid)

	expired, err := svc.sign(&models.User{ID: "u1", Role: models.RoleAdmin}, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	_, err = svc.ValidateToken(expired)
	assert.ErrorIs(t, err, appErrors.ErrTokenInvalid)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &models.JWTClaims{UserID: "u1", Role: models.RoleAdmin})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.ValidateToken(unsigned)
	assert.ErrorIs(t, err, appErrors.ErrTokenInvalid)
}

func TestAuthServiceMe(t *testing.T) {
	svc := newTestAuthService(newMockUserRepo())

	info, err := svc.Me(&models.JWTClaims{UserID: "u1", Email: "admin@startupathon.io", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, "u1", info.ID)

	_, err = svc.Me(nil)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}
