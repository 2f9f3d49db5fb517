package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/littlelemon/littlelemon-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testJWTSecret = "test-jwt-secret-key-32-characters"

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&models.User{}, &models.OAuthClient{}, &models.OAuthToken{}, &models.OAuthCode{})
	require.NoError(t, err)

	return db
}

func createClientWithUser(t *testing.T, db *gorm.DB, clientID, plainSecret, role string) *models.User {
	t.Helper()

	user := &models.User{
		Username: clientID + "-owner",
		Email:    clientID + "@example.com",
		Password: "irrelevant",
		Role:     role,
	}
	require.NoError(t, user.HashPassword())
	require.NoError(t, db.Create(user).Error)

	hashedSecret, err := bcrypt.GenerateFromPassword([]byte(plainSecret), bcrypt.DefaultCost)
	require.NoError(t, err)

	client := &models.OAuthClient{
		ID:         clientID,
		Secret:     string(hashedSecret),
		Domain:     "http://localhost",
		Scopes:     "read write",
		UserID:     user.ID,
		GrantTypes: "client_credentials",
	}
	require.NoError(t, db.Create(client).Error)
	return user
}

func newTokenRouter(oauthService *OAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/oauth/token", oauthService.HandleToken)
	return router
}

func postForm(router *gin.Engine, form string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/oauth/token", bytes.NewBufferString(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestOAuthServiceInitialization(t *testing.T) {
	db := setupTestDB(t)

	oauthService := NewOAuthService(db, testJWTSecret)
	assert.NotNil(t, oauthService)
	assert.NotNil(t, oauthService.GetServer())
}

func TestClientCredentialsFlow(t *testing.T) {
	db := setupTestDB(t)
	oauthService := NewOAuthService(db, testJWTSecret)
	user := createClientWithUser(t, db, "test_client_id", "test_secret", "admin")

	router := newTokenRouter(oauthService)
	w := postForm(router, "grant_type=client_credentials&client_id=test_client_id&client_secret=test_secret")

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(t, response, "access_token")
	assert.Equal(t, "Bearer", response["token_type"])

	// The access token is a JWT carrying the client owner's identity
	accessToken := response["access_token"].(string)
	token, err := jwt.Parse(accessToken, func(token *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, fmt.Sprintf("%d", user.ID), claims["uid"])
	assert.Equal(t, "admin", claims["role"])
	assert.Equal(t, "test_client_id", claims["aud"])
}

func TestClientCredentialsInvalidSecret(t *testing.T) {
	db := setupTestDB(t)
	oauthService := NewOAuthService(db, testJWTSecret)
	createClientWithUser(t, db, "test_client_id", "correct_secret", "user")

	router := newTokenRouter(oauthService)
	w := postForm(router, "grant_type=client_credentials&client_id=test_client_id&client_secret=wrong_secret")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestClientCredentialsUnknownClient(t *testing.T) {
	db := setupTestDB(t)
	oauthService := NewOAuthService(db, testJWTSecret)

	router := newTokenRouter(oauthService)
	w := postForm(router, "grant_type=client_credentials&client_id=nope&client_secret=whatever")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUnsupportedGrantType(t *testing.T) {
	db := setupTestDB(t)
	oauthService := NewOAuthService(db, testJWTSecret)

	router := newTokenRouter(oauthService)
	w := postForm(router, "grant_type=password&client_id=a&client_secret=b")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unsupported_grant_type")
}

func TestClientStoreIntegration(t *testing.T) {
	db := setupTestDB(t)
	createClientWithUser(t, db, "integration_test_client", "secret", "user")

	clientStore := NewClientStore(db)
	retrieved, err := clientStore.GetByID(context.Background(), "integration_test_client")
	require.NoError(t, err)
	assert.Equal(t, "integration_test_client", retrieved.GetID())
	assert.False(t, retrieved.IsPublic())
}
