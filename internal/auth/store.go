package auth

import (
	"context"
	"time"

	"github.com/go-oauth2/oauth2/v4"
	oauthmodels "github.com/go-oauth2/oauth2/v4/models"
	"github.com/littlelemon/littlelemon-api/internal/models"
	"gorm.io/gorm"
)

// ClientStore resolves OAuth clients from the relational store
type ClientStore struct {
	db *gorm.DB
}

func NewClientStore(db *gorm.DB) *ClientStore {
	return &ClientStore{db: db}
}

func (s *ClientStore) GetByID(ctx context.Context, id string) (oauth2.ClientInfo, error) {
	var client models.OAuthClient
	if err := s.db.Where("id = ?", id).First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// TokenStore persists issued tokens and pending authorization codes
type TokenStore struct {
	db *gorm.DB
}

func NewTokenStore(db *gorm.DB) *TokenStore {
	return &TokenStore{db: db}
}

func (s *TokenStore) Create(ctx context.Context, info oauth2.TokenInfo) error {
	if info.GetCode() != "" {
		return s.createCode(info)
	}

	userID := info.GetUserID()
	refreshToken := info.GetRefresh()

	token := &models.OAuthToken{
		ClientID:     info.GetClientID(),
		UserID:       &userID,
		AccessToken:  info.GetAccess(),
		RefreshToken: &refreshToken,
		Scopes:       info.GetScope(),
		ExpiresAt:    time.Now().Add(info.GetAccessExpiresIn()),
	}
	return s.db.Create(token).Error
}

func (s *TokenStore) createCode(info oauth2.TokenInfo) error {
	code := &models.OAuthCode{
		Code:                info.GetCode(),
		ClientID:            info.GetClientID(),
		UserID:              info.GetUserID(),
		Scopes:              info.GetScope(),
		RedirectURI:         info.GetRedirectURI(),
		CodeChallenge:       info.GetCodeChallenge(),
		CodeChallengeMethod: info.GetCodeChallengeMethod().String(),
		ExpiresAt:           info.GetCodeCreateAt().Add(info.GetCodeExpiresIn()),
	}
	return s.db.Create(code).Error
}

func (s *TokenStore) RemoveByCode(ctx context.Context, code string) error {
	return s.db.Where("code = ?", code).Delete(&models.OAuthCode{}).Error
}

func (s *TokenStore) RemoveByAccess(ctx context.Context, access string) error {
	return s.db.Where("access_token = ?", access).Delete(&models.OAuthToken{}).Error
}

func (s *TokenStore) RemoveByRefresh(ctx context.Context, refresh string) error {
	return s.db.Where("refresh_token = ?", refresh).Delete(&models.OAuthToken{}).Error
}

func (s *TokenStore) GetByCode(ctx context.Context, code string) (oauth2.TokenInfo, error) {
	var oauthCode models.OAuthCode
	if err := s.db.Where("code = ?", code).First(&oauthCode).Error; err != nil {
		return nil, err
	}

	if time.Now().After(oauthCode.ExpiresAt) {
		return nil, gorm.ErrRecordNotFound
	}

	return &oauthmodels.Token{
		ClientID:            oauthCode.ClientID,
		UserID:              oauthCode.UserID,
		Code:                oauthCode.Code,
		CodeCreateAt:        oauthCode.CreatedAt,
		CodeExpiresIn:       oauthCode.ExpiresAt.Sub(oauthCode.CreatedAt),
		CodeChallenge:       oauthCode.CodeChallenge,
		CodeChallengeMethod: oauthCode.CodeChallengeMethod,
		RedirectURI:         oauthCode.RedirectURI,
		Scope:               oauthCode.Scopes,
	}, nil
}

func (s *TokenStore) GetByAccess(ctx context.Context, access string) (oauth2.TokenInfo, error) {
	var token models.OAuthToken
	if err := s.db.Where("access_token = ?", access).First(&token).Error; err != nil {
		return nil, err
	}
	return tokenInfo(&token), nil
}

func (s *TokenStore) GetByRefresh(ctx context.Context, refresh string) (oauth2.TokenInfo, error) {
	var token models.OAuthToken
	if err := s.db.Where("refresh_token = ?", refresh).First(&token).Error; err != nil {
		return nil, err
	}
	return tokenInfo(&token), nil
}

func tokenInfo(token *models.OAuthToken) oauth2.TokenInfo {
	info := &oauthmodels.Token{
		ClientID:        token.ClientID,
		Access:          token.AccessToken,
		AccessExpiresIn: time.Until(token.ExpiresAt),
		Scope:           token.Scopes,
	}
	if token.UserID != nil {
		info.UserID = *token.UserID
	}
	if token.RefreshToken != nil {
		info.Refresh = *token.RefreshToken
	}
	return info
}
