package middleware

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/princinho/schoolpanel/auth"
	"github.com/princinho/schoolpanel/models"
	"github.com/princinho/schoolpanel/utils"
)

const accountKey = "account"

// RequestAuthenticator resolves a bearer token to a live account.
type RequestAuthenticator interface {
	AuthenticateRequest(ctx context.Context, token string) (*models.User, error)
}

// AuthMiddleware rejects requests without a valid "Authorization: Bearer"
// token and stores the resolved account on the context.
func AuthMiddleware(authn RequestAuthenticator, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c.GetHeader("Authorization"))
		if !ok {
			utils.RespondError(c, logger, auth.ErrInvalidToken)
			return
		}

		user, err := authn.AuthenticateRequest(c.Request.Context(), token)
		if err != nil {
			utils.RespondError(c, logger, err)
			return
		}

		c.Set(accountKey, user)
		c.Next()
	}
}

// RequireRole must run after AuthMiddleware.
func RequireRole(min models.Role, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := auth.RequireRole(CurrentUser(c), min); err != nil {
			utils.RespondError(c, logger, err)
			return
		}
		c.Next()
	}
}

// CurrentUser returns the account set by AuthMiddleware, or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(accountKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

func BearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
