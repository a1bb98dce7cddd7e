package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lenshive/backend/internal/common"
	"github.com/lenshive/backend/internal/models"
)

// authScheme is the Authorization header scheme clients present tokens with.
const authScheme = "Token"

// contextUserKey is the gin context key holding the authenticated user.
const contextUserKey = "auth.user"

// requireToken validates the Authorization header and loads the token's
// owner into the request context. Failure responses use the detail-style
// bodies the API's clients were written against.
func (s *Server) requireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"detail": "Authentication credentials were not provided.",
			})
			return
		}

		// The scheme keyword matches case-insensitively.
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], authScheme) || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"detail": "Invalid token.",
			})
			return
		}

		user, err := s.auth.ResolveToken(c.Request.Context(), parts[1])
		if err != nil {
			detail := "Invalid token."
			if errors.Is(err, common.ErrorUserDisabled) {
				detail = "User inactive or deleted."
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": detail})
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

// currentUser returns the user placed in the context by requireToken.
func currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(contextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
