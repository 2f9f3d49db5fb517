package models

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// OAuthClient is a registered API client allowed to request tokens.
// UserID links the client to the user whose identity its tokens carry.
type OAuthClient struct {
	ID          string `gorm:"primaryKey"`
	Secret      string `gorm:"not null"` // bcrypt hash, never the plaintext
	Name        string
	Domain      string
	UserID      uint
	Scopes      string // space-separated
	GrantTypes  string // space-separated: "authorization_code client_credentials"
	RedirectURI string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (OAuthClient) TableName() string {
	return "oauth_clients"
}

// oauth2.ClientInfo implementation

func (c *OAuthClient) GetID() string     { return c.ID }
func (c *OAuthClient) GetSecret() string { return c.Secret }
func (c *OAuthClient) GetDomain() string { return c.Domain }
func (c *OAuthClient) IsPublic() bool    { return false }
func (c *OAuthClient) GetUserID() string { return fmt.Sprintf("%d", c.UserID) }

// VerifyPassword implements oauth2.ClientPasswordVerifier against the
// stored bcrypt hash
func (c *OAuthClient) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(c.Secret), []byte(password)) == nil
}

// OAuthToken is an issued access token (plus optional refresh token)
type OAuthToken struct {
	ID           uint   `gorm:"primaryKey"`
	ClientID     string `gorm:"not null"`
	UserID       *string
	AccessToken  string `gorm:"uniqueIndex;not null"`
	RefreshToken *string
	Scopes       string
	ExpiresAt    time.Time `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (OAuthToken) TableName() string {
	return "oauth_tokens"
}

// OAuthCode is a short-lived authorization code pending exchange
type OAuthCode struct {
	Code                string `gorm:"primaryKey"`
	ClientID            string `gorm:"not null"`
	UserID              string `gorm:"not null"`
	Scopes              string
	RedirectURI         string
	CodeChallenge       string
	CodeChallengeMethod string
	ExpiresAt           time.Time `gorm:"not null"`
	CreatedAt           time.Time
}

func (OAuthCode) TableName() string {
	return "oauth_codes"
}
