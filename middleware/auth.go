package middleware

import (
	"strings"
	"time"

	"openboard-api/helper"
	"openboard-api/models"
	"openboard-api/services"

	"github.com/gin-gonic/gin"
)

var httpHelper = &helper.HTTPHelper{}

const userContextKey = "current_user"

// Auth resolves the bearer token and aborts unless it maps to a live user.
func Auth(authService services.AuthService) gin.HandlerFunc {
	return resolve(authService, true)
}

// OptionalAuth resolves the bearer token when one is present; anonymous
// requests proceed with no user in the context.
func OptionalAuth(authService services.AuthService) gin.HandlerFunc {
	return resolve(authService, false)
}

func resolve(authService services.AuthService, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := authService.ResolveToken(bearerToken(c), required, time.Now())
		if err != nil {
			httpHelper.SendAppError(c, err)
			c.Abort()
			return
		}
		if user != nil {
			c.Set(userContextKey, user)
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	tok := strings.TrimPrefix(header, "Bearer ")
	if tok == header {
		return ""
	}
	return tok
}

// CurrentUser returns the user stashed by Auth/OptionalAuth, or nil for an
// anonymous request.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	return v.(*models.User)
}
