package auth

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-oauth2/oauth2/v4"
	"github.com/google/uuid"
	"github.com/littlelemon/littlelemon-api/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// HandleToken is the token endpoint for client_credentials and
// authorization_code grants
// @Summary Token endpoint
// @Description Obtain an access token using client credentials or an authorization code
// @Tags oauth2
// @Accept application/x-www-form-urlencoded
// @Produce json
// @Param grant_type formData string true "Grant type: client_credentials or authorization_code"
// @Param client_id formData string true "Client ID"
// @Param client_secret formData string true "Client Secret"
// @Param code formData string false "Authorization code (authorization_code grant only)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.OAuth2Error
// @Failure 401 {object} models.OAuth2Error
// @Router /api/oauth/token [post]
func (o *OAuthService) HandleToken(c *gin.Context) {
	switch c.PostForm("grant_type") {
	case "client_credentials":
		o.handleClientCredentials(c)
	case "authorization_code":
		o.handleAuthorizationCode(c)
	default:
		c.JSON(http.StatusBadRequest, models.NewOAuth2Error(models.ErrUnsupportedGrantType, ""))
	}
}

func (o *OAuthService) handleClientCredentials(c *gin.Context) {
	clientID := c.PostForm("client_id")
	clientSecret := c.PostForm("client_secret")

	client, ok := o.verifyClient(c, clientID, clientSecret)
	if !ok {
		return
	}

	ti, err := o.server.Manager.GenerateAccessToken(c, oauth2.ClientCredentials, &oauth2.TokenGenerateRequest{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Scope:        client.Scopes,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token_generation_failed"})
		return
	}

	respondWithToken(c, ti)
}

func (o *OAuthService) handleAuthorizationCode(c *gin.Context) {
	code := c.PostForm("code")
	clientID := c.PostForm("client_id")
	clientSecret := c.PostForm("client_secret")

	var authCode models.OAuthCode
	if err := o.db.Where("code = ?", code).First(&authCode).Error; err != nil {
		c.JSON(http.StatusBadRequest, models.NewOAuth2Error(models.ErrInvalidGrant, ""))
		return
	}

	if time.Now().After(authCode.ExpiresAt) {
		c.JSON(http.StatusBadRequest, models.NewOAuth2Error(models.ErrInvalidGrant, "authorization code expired"))
		return
	}

	if authCode.ClientID != clientID {
		c.JSON(http.StatusBadRequest, models.NewOAuth2Error(models.ErrInvalidGrant, ""))
		return
	}

	if _, ok := o.verifyClient(c, clientID, clientSecret); !ok {
		return
	}

	// The manager resolves the user from the stored code and consumes it,
	// so codes are single-use
	ti, err := o.server.Manager.GenerateAccessToken(c, oauth2.AuthorizationCode, &oauth2.TokenGenerateRequest{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Code:         code,
		RedirectURI:  authCode.RedirectURI,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token_generation_failed"})
		return
	}

	respondWithToken(c, ti)
}

// verifyClient loads the client and checks its secret; writes the 401
// itself on failure
func (o *OAuthService) verifyClient(c *gin.Context, clientID, clientSecret string) (*models.OAuthClient, bool) {
	var client models.OAuthClient
	if err := o.db.Where("id = ?", clientID).First(&client).Error; err != nil {
		c.JSON(http.StatusUnauthorized, models.NewOAuth2Error(models.ErrInvalidClient, ""))
		return nil, false
	}

	if err := bcrypt.CompareHashAndPassword([]byte(client.Secret), []byte(clientSecret)); err != nil {
		c.JSON(http.StatusUnauthorized, models.NewOAuth2Error(models.ErrInvalidClient, ""))
		return nil, false
	}

	return &client, true
}

func respondWithToken(c *gin.Context, ti oauth2.TokenInfo) {
	c.JSON(http.StatusOK, gin.H{
		"access_token": ti.GetAccess(),
		"token_type":   "Bearer",
		"expires_in":   int64(ti.GetAccessExpiresIn() / time.Second),
		"scope":        ti.GetScope(),
	})
}

// HandleAuthorize begins the authorization-code flow: validates the client
// and redirect URI, issues a short-lived code, and redirects back
func (o *OAuthService) HandleAuthorize(c *gin.Context) {
	clientID := c.Query("client_id")
	redirectURI := c.Query("redirect_uri")
	scope := c.Query("scope")
	state := c.Query("state")

	var client models.OAuthClient
	if err := o.db.Where("id = ?", clientID).First(&client).Error; err != nil {
		c.JSON(http.StatusBadRequest, models.NewOAuth2Error(models.ErrInvalidClient, ""))
		return
	}

	if redirectURI != "" && redirectURI != client.RedirectURI {
		c.JSON(http.StatusBadRequest, models.NewOAuth2Error(models.ErrInvalidRequest, "redirect_uri mismatch"))
		return
	}

	userID := c.GetString("userID")
	if userID == "" {
		loginURL := "/login?redirect=" + url.QueryEscape(c.Request.URL.String())
		c.Redirect(http.StatusFound, loginURL)
		return
	}

	code := uuid.New().String()
	authCode := &models.OAuthCode{
		Code:        code,
		ClientID:    clientID,
		UserID:      userID,
		Scopes:      scope,
		RedirectURI: redirectURI,
		ExpiresAt:   time.Now().Add(10 * time.Minute),
	}

	if err := o.db.Create(authCode).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "code_generation_failed"})
		return
	}

	redirectURL := redirectURI + "?code=" + code
	if state != "" {
		redirectURL += "&state=" + state
	}
	c.Redirect(http.StatusFound, redirectURL)
}
