package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testKey    = "test-key"
	testIssuer = "hostel-test"
)

func TestIssueAndParse(t *testing.T) {
	token, exp, err := Issue(RoleWarden, "warden", testIssuer, testKey, time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := Parse(token, testKey, testIssuer)

	require.NoError(t, err)
	assert.Equal(t, RoleWarden, claims.Role)
	assert.Equal(t, "warden", claims.Subject)
}

func TestParse_Rejects(t *testing.T) {
	valid, _, err := Issue(RoleStudent, "student", testIssuer, testKey, time.Hour)
	require.NoError(t, err)
	expired, _, err := Issue(RoleStudent, "student", testIssuer, testKey, -time.Minute)
	require.NoError(t, err)
	badRole, _, err := Issue(Role("admin"), "root", testIssuer, testKey, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		key    string
		issuer string
	}{
		{name: "wrong key", token: valid, key: "other", issuer: testIssuer},
		{name: "wrong issuer", token: valid, key: testKey, issuer: "someone-else"},
		{name: "expired", token: expired, key: testKey, issuer: testIssuer},
		{name: "unknown role", token: badRole, key: testKey, issuer: testIssuer},
		{name: "garbage", token: "abc.def.ghi", key: testKey, issuer: testIssuer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.token, tt.key, tt.issuer)
			assert.Error(t, err)
		})
	}
}

func TestSessionMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Session(testKey, testIssuer))
	r.GET("/who", RequireSession(), func(c *gin.Context) {
		claims, _ := ClaimsFrom(c)
		c.String(http.StatusOK, string(claims.Role))
	})

	token, _, err := Issue(RoleStudent, "student", testIssuer, testKey, time.Hour)
	require.NoError(t, err)

	t.Run("no cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/who", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("bad cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/who", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "nope"})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/who", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "student", w.Body.String())
	})
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Session(testKey, testIssuer))
	r.GET("/warden-only", RequireRole(RoleWarden), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	tests := []struct {
		name     string
		role     Role
		expected int
	}{
		{name: "anonymous", expected: http.StatusUnauthorized},
		{name: "student", role: RoleStudent, expected: http.StatusForbidden},
		{name: "warden", role: RoleWarden, expected: http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/warden-only", nil)
			if tt.role != "" {
				token, _, err := Issue(tt.role, string(tt.role), testIssuer, testKey, time.Hour)
				require.NoError(t, err)
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.expected, w.Code)
		})
	}
}
