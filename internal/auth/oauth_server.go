package auth

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-oauth2/oauth2/v4"
	"github.com/go-oauth2/oauth2/v4/manage"
	"github.com/go-oauth2/oauth2/v4/server"
	"github.com/golang-jwt/jwt/v5"
	"github.com/littlelemon/littlelemon-api/internal/models"
	"gorm.io/gorm"
)

// OAuthService wraps the go-oauth2 server with GORM-backed storage and a
// JWT access-token generator that embeds the caller's identity.
type OAuthService struct {
	server *server.Server
	db     *gorm.DB
}

func NewOAuthService(db *gorm.DB, jwtSecret string) *OAuthService {
	manager := manage.NewDefaultManager()

	// Access tokens are JWTs carrying uid/role so the API middleware can
	// resolve the caller without a storage lookup
	manager.MapAccessGenerate(NewJWTAccessGenerate([]byte(jwtSecret), jwt.SigningMethodHS512, db))
	manager.MustTokenStorage(NewTokenStore(db), nil)
	manager.MapClientStorage(NewClientStore(db))

	srv := server.NewDefaultServer(manager)
	srv.SetAllowGetAccessRequest(true)
	srv.SetClientInfoHandler(server.ClientFormHandler)

	return &OAuthService{
		server: srv,
		db:     db,
	}
}

func (o *OAuthService) GetServer() *server.Server {
	return o.server
}

// JWTAccessGenerate produces JWT access tokens whose claims identify the
// user behind the grant, not just the client.
type JWTAccessGenerate struct {
	SignedKey    []byte
	SignedMethod jwt.SigningMethod
	DB           *gorm.DB
}

func NewJWTAccessGenerate(key []byte, method jwt.SigningMethod, db *gorm.DB) *JWTAccessGenerate {
	return &JWTAccessGenerate{
		SignedKey:    key,
		SignedMethod: method,
		DB:           db,
	}
}

// Token implements oauth2.AccessGenerate
func (g *JWTAccessGenerate) Token(ctx context.Context, data *oauth2.GenerateBasic, isGenRefresh bool) (string, string, error) {
	claims := jwt.MapClaims{
		"aud": data.Client.GetID(),
		"exp": data.TokenInfo.GetAccessCreateAt().Add(data.TokenInfo.GetAccessExpiresIn()).Unix(),
	}

	// The client-credentials grant carries no user of its own; fall back to
	// the user the client is registered under
	userID := data.UserID
	if userID == "" {
		userID = data.Client.GetUserID()
	}
	if userID == "" {
		return "", "", fmt.Errorf("cannot generate token: no user ID available")
	}
	claims["uid"] = userID

	// Role always comes from the user record so a stale or forged request
	// cannot escalate privileges
	role, err := g.lookupRole(userID)
	if err != nil {
		return "", "", fmt.Errorf("failed to fetch user role: %w", err)
	}
	claims["role"] = role

	if data.TokenInfo.GetScope() != "" {
		claims["scope"] = data.TokenInfo.GetScope()
	}

	token := jwt.NewWithClaims(g.SignedMethod, claims)
	access, err := token.SignedString(g.SignedKey)
	if err != nil {
		return "", "", err
	}

	refresh := ""
	if isGenRefresh {
		refreshClaims := jwt.MapClaims{
			"id":  data.TokenInfo.GetAccess(),
			"exp": data.TokenInfo.GetRefreshCreateAt().Add(data.TokenInfo.GetRefreshExpiresIn()).Unix(),
		}
		t := jwt.NewWithClaims(g.SignedMethod, refreshClaims)
		refresh, err = t.SignedString(g.SignedKey)
		if err != nil {
			return "", "", err
		}
	}

	return access, refresh, nil
}

func (g *JWTAccessGenerate) lookupRole(userIDStr string) (string, error) {
	userID, err := strconv.ParseUint(userIDStr, 10, 32)
	if err != nil {
		return "", fmt.Errorf("invalid user ID format: %w", err)
	}

	var user models.User
	if err := g.DB.First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", fmt.Errorf("user with ID %d not found", userID)
		}
		return "", fmt.Errorf("database error: %w", err)
	}

	if user.Role == "" {
		return "user", nil
	}
	return user.Role, nil
}
