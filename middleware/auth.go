package middleware

import (
	"errors"
	"strings"

	"food-ordering-api/apperror"
	"food-ordering-api/auth"
	"food-ordering-api/repository"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// Authenticate validates the bearer token and resolves the caller with the
// roles they hold right now. Blocked accounts are refused even with a valid token.
func Authenticate(tokens *auth.TokenManager, users *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			AbortWithError(c, apperror.Unauthenticated("Authorization header required (Bearer <token>)"))
			return
		}

		claims, err := tokens.Parse(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			AbortWithError(c, apperror.Unauthenticated("Invalid or expired token"))
			return
		}

		user, err := users.FindByID(c.Request.Context(), claims.UserID)
		if errors.Is(err, repository.ErrNotFound) {
			AbortWithError(c, apperror.Unauthenticated("Invalid or expired token"))
			return
		}
		if err != nil {
			AbortWithError(c, apperror.Internal(err))
			return
		}
		if !user.Active {
			AbortWithError(c, apperror.Forbidden("This account has been blocked."))
			return
		}

		c.Set(principalKey, auth.NewPrincipal(user))
		c.Next()
	}
}

// Require enforces that the caller holds capability. It must run after Authenticate.
func Require(capability auth.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CurrentPrincipal(c).Can(capability) {
			AbortWithError(c, apperror.Forbidden("Access denied. Required capability: "+string(capability)))
			return
		}
		c.Next()
	}
}

// CurrentPrincipal returns the authenticated caller, nil on public routes
func CurrentPrincipal(c *gin.Context) *auth.Principal {
	val, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	p, _ := val.(*auth.Principal)
	return p
}
