package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ratehub/internal/domain/entity"
	"ratehub/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTokenService validates exactly one token string.
type fakeTokenService struct {
	token  string
	claims *service.Claims
}

func (s *fakeTokenService) Issue(userID uuid.UUID, role entity.Role) (string, error) {
	return s.token, nil
}

func (s *fakeTokenService) Validate(tokenString string) (*service.Claims, error) {
	if tokenString != s.token {
		return nil, errors.New("invalid token")
	}

	return s.claims, nil
}

func (s *fakeTokenService) AccessTokenDuration() time.Duration {
	return 24 * time.Hour
}

func newAuthTestContext(t *testing.T, authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestAuthenticate_ValidToken(t *testing.T) {
	userID := uuid.New()
	m := NewAuthMiddleware(&fakeTokenService{
		token:  "good-token",
		claims: &service.Claims{UserID: userID, Role: entity.RoleUser},
	})

	c, rec := newAuthTestContext(t, "Bearer good-token")

	err := m.Authenticate(func(c echo.Context) error {
		gotID, ok := UserID(c)
		require.True(t, ok)
		assert.Equal(t, userID, gotID)

		gotRole, ok := Role(c)
		require.True(t, ok)
		assert.Equal(t, entity.RoleUser, gotRole)

		return c.NoContent(http.StatusOK)
	})(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	m := NewAuthMiddleware(&fakeTokenService{token: "good-token"})

	c, rec := newAuthTestContext(t, "")

	err := m.Authenticate(okHandler)(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_NotBearer(t *testing.T) {
	m := NewAuthMiddleware(&fakeTokenService{token: "good-token"})

	c, rec := newAuthTestContext(t, "Basic good-token")

	err := m.Authenticate(okHandler)(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	m := NewAuthMiddleware(&fakeTokenService{token: "good-token"})

	c, rec := newAuthTestContext(t, "Bearer tampered-token")

	err := m.Authenticate(okHandler)(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_ClaimsWithoutRole(t *testing.T) {
	m := NewAuthMiddleware(&fakeTokenService{
		token:  "good-token",
		claims: &service.Claims{UserID: uuid.New()},
	})

	c, rec := newAuthTestContext(t, "Bearer good-token")

	err := m.Authenticate(okHandler)(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole_AllowsMatchingRole(t *testing.T) {
	m := NewAuthMiddleware(&fakeTokenService{})

	c, rec := newAuthTestContext(t, "")
	c.Set(ContextKeyRole, entity.RoleAdmin)

	err := m.RequireRole(entity.RoleAdmin)(okHandler)(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole_AllowsAnyListedRole(t *testing.T) {
	m := NewAuthMiddleware(&fakeTokenService{})

	c, rec := newAuthTestContext(t, "")
	c.Set(ContextKeyRole, entity.RoleStoreOwner)

	err := m.RequireRole(entity.RoleStoreOwner, entity.RoleAdmin)(okHandler)(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole_RejectsOtherRole(t *testing.T) {
	m := NewAuthMiddleware(&fakeTokenService{})

	c, rec := newAuthTestContext(t, "")
	c.Set(ContextKeyRole, entity.RoleUser)

	err := m.RequireRole(entity.RoleAdmin)(okHandler)(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRole_AdminNotImplicitlyAllowed(t *testing.T) {
	m := NewAuthMiddleware(&fakeTokenService{})

	c, rec := newAuthTestContext(t, "")
	c.Set(ContextKeyRole, entity.RoleAdmin)

	err := m.RequireRole(entity.RoleUser)(okHandler)(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRole_RejectsWhenRoleMissing(t *testing.T) {
	m := NewAuthMiddleware(&fakeTokenService{})

	c, rec := newAuthTestContext(t, "")

	err := m.RequireRole(entity.RoleAdmin)(okHandler)(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
