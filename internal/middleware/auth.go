package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/littlelemon/littlelemon-api/internal/models"
)

// RequireAuth validates the Bearer JWT on the request and loads the caller's
// identity into the Gin context. Tokens come either from the login endpoint
// or from the OAuth2 token service; both carry "uid" and "role" claims.
// Any failure aborts with 401 and an RFC 6750 style error body.
func RequireAuth(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "authorization_required",
				"Missing Authorization header. A valid Bearer token is required.")
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c, models.ErrInvalidRequest,
				"Authorization header must use Bearer scheme. Format: 'Bearer <token>'")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			abortUnauthorized(c, "invalid_token", "Bearer token is empty")
			return
		}

		claims, err := validateToken(tokenString, jwtSecret)
		if err != nil {
			abortUnauthorized(c, "invalid_token", err.Error())
			return
		}

		if err := setCallerContext(c, claims); err != nil {
			abortUnauthorized(c, "invalid_token", err.Error())
			return
		}

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, errorCode, description string) {
	c.JSON(http.StatusUnauthorized, models.NewOAuth2Error(errorCode, description))
	c.Abort()
}

// validateToken parses the JWT, pinning the signing method to HMAC, and
// checks the exp/nbf/iat time claims against the current time.
func validateToken(tokenString string, jwtSecret []byte) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Reject any non-HMAC algorithm to prevent algorithm confusion attacks
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v. Expected HMAC", token.Header["alg"])
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token parsing failed: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims format")
	}

	now := time.Now()

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("invalid exp claim: %w", err)
	}
	if exp != nil && exp.Before(now) {
		return nil, fmt.Errorf("token has expired")
	}

	nbf, err := claims.GetNotBefore()
	if err != nil {
		return nil, fmt.Errorf("invalid nbf claim: %w", err)
	}
	if nbf != nil && nbf.After(now) {
		return nil, fmt.Errorf("token not yet valid")
	}

	iat, err := claims.GetIssuedAt()
	if err != nil {
		return nil, fmt.Errorf("invalid iat claim: %w", err)
	}
	if iat != nil && iat.After(now) {
		return nil, fmt.Errorf("token issued in the future")
	}

	return claims, nil
}

// setCallerContext extracts the caller identity from JWT claims into the
// Gin context: userID (uint), userRole, and optionally clientID and scopes.
func setCallerContext(c *gin.Context, claims jwt.MapClaims) error {
	userID, err := extractUserID(claims)
	if err != nil {
		return err
	}
	if userID == 0 {
		return fmt.Errorf("invalid user identifier: cannot be zero")
	}
	c.Set("userID", userID)

	role, err := extractRole(claims)
	if err != nil {
		return err
	}
	c.Set("userRole", role)

	// Audience identifies the OAuth client for service-issued tokens
	if aud, ok := claims["aud"].(string); ok && aud != "" {
		c.Set("clientID", aud)
	} else if audArray, ok := claims["aud"].([]interface{}); ok && len(audArray) > 0 {
		if firstAud, ok := audArray[0].(string); ok && firstAud != "" {
			c.Set("clientID", firstAud)
		}
	}

	if scope, ok := claims["scope"].(string); ok && scope != "" {
		c.Set("scopes", scope)
	}

	return nil
}

// extractUserID reads the required "uid" claim, accepting both the string
// form emitted by the OAuth2 token service and the numeric form emitted by
// the login endpoint (JSON numbers decode as float64).
func extractUserID(claims jwt.MapClaims) (uint, error) {
	if uid, ok := claims["uid"].(string); ok && uid != "" {
		parsedID, err := strconv.ParseUint(uid, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid uid claim format: must be a numeric string, got: %s", uid)
		}
		return uint(parsedID), nil
	}

	if uid, ok := claims["uid"].(float64); ok {
		if uid <= 0 {
			return 0, fmt.Errorf("invalid uid claim: must be positive, got: %f", uid)
		}
		return uint(uid), nil
	}

	return 0, fmt.Errorf("token missing required 'uid' claim. This token is not valid for this API")
}

// extractRole reads the required "role" claim. No default is applied: a
// token without an explicit role is rejected.
func extractRole(claims jwt.MapClaims) (string, error) {
	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return "", fmt.Errorf("token missing required 'role' claim. Tokens must explicitly specify user roles")
	}

	allowedRoles := map[string]bool{
		"admin": true,
		"user":  true,
	}
	if !allowedRoles[role] {
		return "", fmt.Errorf("invalid role '%s'. Allowed roles: admin, user", role)
	}

	return role, nil
}
