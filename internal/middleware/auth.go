package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/01moynul/marketpro-admin/internal/auth"
	"github.com/01moynul/marketpro-admin/internal/logging"
	"github.com/01moynul/marketpro-admin/internal/models"
	"github.com/01moynul/marketpro-admin/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

const (
	ContextUserID = "userID"
	ContextUser   = "user"
)

// UserLookup loads the user a token was issued to.
type UserLookup interface {
	GetUser(ctx context.Context, id int64) (models.User, error)
}

// Authenticator guards routes with a bearer token and keeps recently seen
// users in memory so most requests skip the users table.
type Authenticator struct {
	tokens *auth.Tokens
	users  UserLookup
	cache  *cache.Cache
}

func NewAuthenticator(tokens *auth.Tokens, users UserLookup, ttl time.Duration) *Authenticator {
	return &Authenticator{
		tokens: tokens,
		users:  users,
		cache:  cache.New(ttl, 2*ttl),
	}
}

func userCacheKey(id int64) string {
	return fmt.Sprintf("user:%d", id)
}

// RequireAuth rejects requests without a valid "Authorization: Bearer <token>"
// header. On success the user id and user are stored on the context.
func (a *Authenticator) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, "Authorization header required")
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abort(c, "Invalid token format (must be Bearer)")
			return
		}

		claims, err := a.tokens.Validate(parts[1])
		if errors.Is(err, auth.ErrTokenExpired) {
			abort(c, "Token expired")
			return
		}
		if err != nil {
			abort(c, "Invalid or expired token")
			return
		}

		key := userCacheKey(claims.UserID)
		if cached, found := a.cache.Get(key); found {
			if user, ok := cached.(models.User); ok {
				setUser(c, user)
				c.Next()
				return
			}
		}

		user, err := a.users.GetUser(c.Request.Context(), claims.UserID)
		if errors.Is(err, store.ErrNotFound) {
			abort(c, "User not found")
			return
		}
		if err != nil {
			logging.FromContext(c.Request.Context()).Error("load authenticated user", "user_id", claims.UserID, "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		a.cache.Set(key, user, cache.DefaultExpiration)
		setUser(c, user)
		c.Next()
	}
}

func setUser(c *gin.Context, u models.User) {
	c.Set(ContextUserID, u.ID)
	c.Set(ContextUser, u)
}

// CurrentUser returns the user RequireAuth attached to the request.
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(ContextUser)
	if !ok {
		return models.User{}, false
	}
	u, ok := v.(models.User)
	return u, ok
}

func abort(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}
