package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-jwt-secret-key-32-characters")

func newAuthTestRouter(secret []byte) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", RequireAuth(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetUint("userID"),
			"role":    c.GetString("userRole"),
		})
	})
	router.GET("/admin", RequireAuth(secret), RequireRole("admin"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func signToken(t *testing.T, claims jwt.MapClaims, secret []byte) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	require.NoError(t, err)
	return signed
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"uid":  float64(42),
		"role": "user",
		"exp":  time.Now().Add(time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}
}

func doRequest(router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	router := newAuthTestRouter(testSecret)

	token := signToken(t, validClaims(), testSecret)
	w := doRequest(router, "/protected", "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":42`)
}

func TestRequireAuthRejectsBadRequests(t *testing.T) {
	router := newAuthTestRouter(testSecret)

	expired := validClaims()
	expired["exp"] = time.Now().Add(-time.Hour).Unix()

	wrongKey := signToken(t, validClaims(), []byte("some-other-secret"))

	noUID := validClaims()
	delete(noUID, "uid")

	noRole := validClaims()
	delete(noRole, "role")

	badRole := validClaims()
	badRole["role"] = "superuser"

	testCases := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer scheme", header: "Token abc123"},
		{name: "empty token", header: "Bearer "},
		{name: "garbage token", header: "Bearer not.a.jwt"},
		{name: "wrong signing key", header: "Bearer " + wrongKey},
		{name: "expired token", header: "Bearer " + signToken(t, expired, testSecret)},
		{name: "missing uid claim", header: "Bearer " + signToken(t, noUID, testSecret)},
		{name: "missing role claim", header: "Bearer " + signToken(t, noRole, testSecret)},
		{name: "unknown role", header: "Bearer " + signToken(t, badRole, testSecret)},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, "/protected", tt.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestRequireAuthRejectsNonHMACAlgorithm(t *testing.T) {
	router := newAuthTestRouter(testSecret)

	// alg=none tokens must never be accepted
	token := jwt.NewWithClaims(jwt.SigningMethodNone, validClaims())
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	w := doRequest(router, "/protected", "Bearer "+signed)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	router := newAuthTestRouter(testSecret)

	userToken := signToken(t, validClaims(), testSecret)
	w := doRequest(router, "/admin", "Bearer "+userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	adminClaims := validClaims()
	adminClaims["role"] = "admin"
	adminToken := signToken(t, adminClaims, testSecret)
	w = doRequest(router, "/admin", "Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuthAcceptsStringUID(t *testing.T) {
	router := newAuthTestRouter(testSecret)

	// The OAuth2 token service emits uid as a numeric string
	claims := validClaims()
	claims["uid"] = "42"
	w := doRequest(router, "/protected", "Bearer "+signToken(t, claims, testSecret))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":42`)
}
