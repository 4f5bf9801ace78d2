package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/balikhane/handlers"
	"github.com/akinalp/balikhane/models"
	"github.com/akinalp/balikhane/pkg"
	"github.com/akinalp/balikhane/services"
)

const testSecret = "middleware-test-secret"

// stubUserRepo, sabit bir kullanıcı dönen repository.
// Middleware'ın kullandığı tek metod GetByID — gerisi çağrılmaz.
type stubUserRepo struct {
	user *models.User
}

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	if r.user != nil && r.user.ID == id {
		cp := *r.user
		return &cp, nil
	}
	return nil, pkg.ErrNotFound
}

func (r *stubUserRepo) Create(context.Context, *models.User) error { panic("not used") }
func (r *stubUserRepo) GetByPhone(context.Context, string) (*models.User, error) {
	panic("not used")
}
func (r *stubUserRepo) GetAll(context.Context) ([]models.User, error)        { panic("not used") }
func (r *stubUserRepo) UpdatePassword(context.Context, string, string) error { panic("not used") }
func (r *stubUserRepo) UpdateStatus(context.Context, string, models.UserStatus) error {
	panic("not used")
}
func (r *stubUserRepo) Count(context.Context) (int, error) { panic("not used") }

// signTestToken, test secret'ı ile imzalı bir access token üretir.
func signTestToken(t *testing.T, user *models.User) string {
	t.Helper()
	claims := &models.TokenClaims{
		UserID: user.ID,
		Phone:  user.Phone,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(15 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

// newTestChain, auth (+ opsiyonel admin) middleware zinciri kurar.
// Token doğrulama gerçek JWT imza kontrolüdür — repo'lar devrede değildir.
func newTestChain(user *models.User, withAdmin bool) http.Handler {
	authService := services.NewAuthService(nil, nil, nil, nil, nil, testSecret, 15, 60, 7)
	authMw := NewAuthMiddleware(authService, &stubUserRepo{user: user})

	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxUser, ok := r.Context().Value(handlers.UserContextKey).(*models.User)
		if !ok {
			http.Error(w, "no user in context", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(ctxUser.ID))
	})

	if withAdmin {
		return authMw.Require(NewAdminMiddleware().Require(final))
	}
	return authMw.Require(final)
}

func testUser(role models.UserRole) *models.User {
	return &models.User{
		ID:     "user-1",
		Name:   "Test Kullanıcı",
		Phone:  "+905551112233",
		Status: models.UserStatusVerified,
		Role:   role,
	}
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	chain := newTestChain(testUser(models.RoleUser), false)

	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	chain := newTestChain(testUser(models.RoleUser), false)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	chain := newTestChain(testUser(models.RoleUser), false)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")

	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewarePassesUserToHandler(t *testing.T) {
	user := testUser(models.RoleUser)
	chain := newTestChain(user, false)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, user))

	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", rec.Body.String())
}

// Token geçerli ama hesap silinmiş — 401 döner.
func TestAuthMiddlewareDeletedAccount(t *testing.T) {
	user := testUser(models.RoleUser)
	chain := newTestChain(nil, false) // repo'da kullanıcı yok

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, user))

	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// 401/403 ayrımı: kimliği belli olmayan 401, kimliği belli ama yetkisiz 403.
func TestAdminMiddlewareForbiddenForUser(t *testing.T) {
	user := testUser(models.RoleUser)
	chain := newTestChain(user, true)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, user))

	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminMiddlewareAllowsAdmin(t *testing.T) {
	admin := testUser(models.RoleAdmin)
	chain := newTestChain(admin, true)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, admin))

	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminMiddlewareNoTokenIs401Not403(t *testing.T) {
	chain := newTestChain(testUser(models.RoleAdmin), true)

	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
