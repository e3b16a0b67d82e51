package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tavola/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_jwt_secret_32_chars_minimum!"

func init() { gin.SetMode(gin.TestMode) }

// stubChecker grants the permissions listed per username.
type stubChecker struct {
	grants map[string][]string
	err    error
}

func (s *stubChecker) HasPermission(_ context.Context, username, perm string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	for _, p := range s.grants[username] {
		if p == perm {
			return true, nil
		}
	}
	return false, nil
}

func signToken(t *testing.T, secret, username string, ttl time.Duration) string {
	t.Helper()
	claims := JWTClaims{
		UserID: 7,
		Role:   "staff",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func protected(checker PermissionChecker, perm string) *gin.Engine {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/x", JWTAuth(testSecret), RequirePermission(checker, perm), func(c *gin.Context) {
		claims := GetClaims(c)
		c.JSON(http.StatusOK, gin.H{"user": claims.Username(), "id": claims.UserID})
	})
	return r
}

func get(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	checker := &stubChecker{grants: map[string][]string{"ana": {"manage_menu"}}}
	r := protected(checker, "manage_menu")

	cases := []struct {
		name   string
		token  string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"garbage", "not.a.jwt", http.StatusUnauthorized},
		{"wrong secret", signToken(t, "other-secret", "ana", time.Hour), http.StatusUnauthorized},
		{"expired", signToken(t, testSecret, "ana", -time.Minute), http.StatusUnauthorized},
		{"valid", signToken(t, testSecret, "ana", time.Hour), http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, get(r, tc.token).Code)
		})
	}
}

func TestJWTAuth_RejectsNonBearerScheme(t *testing.T) {
	r := protected(&stubChecker{}, "manage_menu")
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Basic YWRtaW46YWRtaW4=")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequirePermission(t *testing.T) {
	checker := &stubChecker{grants: map[string][]string{"ana": {"manage_orders"}}}
	r := protected(checker, "manage_menu")

	w := get(r, signToken(t, testSecret, "ana", time.Hour))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "permission denied: manage_menu")
}

func TestRequirePermission_InactiveUserIs401(t *testing.T) {
	checker := &stubChecker{err: &service.Error{Kind: service.ErrInvalidToken, Msg: "user is inactive"}}
	w := get(protected(checker, "manage_menu"), signToken(t, testSecret, "ana", time.Hour))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "user is inactive")
}

func TestRequirePermission_LookupFailureIs500(t *testing.T) {
	checker := &stubChecker{err: errors.New("connection reset")}
	w := get(protected(checker, "manage_menu"), signToken(t, testSecret, "ana", time.Hour))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection reset")
}

func TestGetClaims_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, GetClaims(c))
}
