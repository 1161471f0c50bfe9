package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lms-ledger-api/internal/middleware"
	"github.com/noah-isme/lms-ledger-api/internal/models"
	appErrors "github.com/noah-isme/lms-ledger-api/pkg/errors"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// callerID returns the authenticated user id or an UNAUTHORIZED error.
func callerID(c *gin.Context) (string, error) {
	claims := claimsFromContext(c)
	if claims == nil || claims.UserID == "" {
		return "", appErrors.ErrUnauthorized
	}
	return claims.UserID, nil
}
