package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/savourie/recettes-api/pkg/helpers"
	"github.com/savourie/recettes-api/pkg/response"
)

// Context keys set by Auth and OptionalAuth.
const (
	CtxUserIDKey    = "userID"
	CtxUserEmailKey = "userEmail"
	CtxUserNomKey   = "userNom"
)

const (
	msgTokenMissing   = "Accès non autorisé. Token manquant."
	msgTokenBadFormat = "Format du token invalide. Utilisez: Bearer <token>"
	msgTokenInvalid   = "Token invalide"
	msgTokenExpired   = "Token expiré. Veuillez vous reconnecter."
)

// bearerToken extracts the credential from "Authorization: Bearer <token>".
func bearerToken(c *gin.Context) (string, string) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", msgTokenMissing
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", msgTokenBadFormat
	}
	return parts[1], ""
}

// Auth validates the bearer token and injects the user identity into the
// context. Each failure mode gets its own message: missing header,
// malformed scheme, expired token, invalid token.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, failMsg := bearerToken(c)
		if failMsg != "" {
			response.Error(c, http.StatusUnauthorized, failMsg, nil)
			c.Abort()
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			msg := msgTokenInvalid
			if errors.Is(err, helpers.ErrTokenExpired) {
				msg = msgTokenExpired
			}
			response.Error(c, http.StatusUnauthorized, msg, nil)
			c.Abort()
			return
		}
		c.Set(CtxUserIDKey, claims.ID)
		c.Set(CtxUserEmailKey, claims.Email)
		c.Set(CtxUserNomKey, claims.Nom)
		c.Next()
	}
}

// OptionalAuth attaches the identity when a valid token is presented and
// silently proceeds unauthenticated otherwise. It never fails the request.
func OptionalAuth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, failMsg := bearerToken(c)
		if failMsg != "" {
			c.Next()
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			c.Next()
			return
		}
		c.Set(CtxUserIDKey, claims.ID)
		c.Set(CtxUserEmailKey, claims.Email)
		c.Set(CtxUserNomKey, claims.Nom)
		c.Next()
	}
}
