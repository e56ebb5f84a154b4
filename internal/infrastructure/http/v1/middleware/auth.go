package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"storechain/internal/core/apperror"
	appctx "storechain/internal/core/context"
)

// JWTValidator interface for token validation.
type JWTValidator interface {
	ValidateToken(tokenString string) (*appctx.UserContext, error)
}

// Auth middleware validates JWT tokens and populates user context.
func Auth(validator JWTValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}

		user, err := validator.ValidateToken(parts[1])
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		ctx := appctx.WithUser(c.Request.Context(), user)
		c.Request = c.Request.WithContext(ctx)

		c.Set("user_id", user.UserID)
		c.Set("user_kind", user.Kind)

		c.Next()
	}
}

// RequireEmployee rejects requests not made by store staff.
func RequireEmployee() gin.HandlerFunc {
	return requireFlag("employee access required", func(u *appctx.UserContext) bool {
		return u.Kind == appctx.KindEmployee
	})
}

// RequireShipping guards the cart fulfillment pipeline: shipping staff and
// admins only.
func RequireShipping() gin.HandlerFunc {
	return requireFlag("shipping role required", func(u *appctx.UserContext) bool {
		return u.Kind == appctx.KindEmployee && (u.Shipping || u.Admin)
	})
}

// RequireReceiving guards the inventory intake pipeline: receiving staff
// and admins only.
func RequireReceiving() gin.HandlerFunc {
	return requireFlag("receiving role required", func(u *appctx.UserContext) bool {
		return u.Kind == appctx.KindEmployee && (u.Receiving || u.Admin)
	})
}

// RequireAdmin guards store and staff management.
func RequireAdmin() gin.HandlerFunc {
	return requireFlag("admin role required", func(u *appctx.UserContext) bool {
		return u.Kind == appctx.KindEmployee && u.Admin
	})
}

func requireFlag(message string, allowed func(*appctx.UserContext) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := appctx.GetUser(c.Request.Context())
		if user == nil {
			abortUnauthorized(c, "authentication required")
			return
		}
		if !allowed(user) {
			_ = c.Error(apperror.NewForbidden(message))
			c.Abort()
			return
		}
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	_ = c.Error(apperror.NewUnauthorized(message))
	c.Abort()
}
