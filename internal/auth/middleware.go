package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"tasktrack/internal/models"
	"tasktrack/internal/rbac"
	"tasktrack/internal/store"
)

const (
	principalKey = "principal"
	userKey      = "user"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrInactiveUser = errors.New("account suspended")
)

// Claims represents the JWT claims structure.
type Claims struct {
	UserID int64  `json:"uid"`
	OrgID  int64  `json:"oid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Resolver turns a bearer token into a principal.
type Resolver struct {
	Users  store.UserStore
	Secret []byte
}

func NewResolver(users store.UserStore, secret string) *Resolver {
	return &Resolver{Users: users, Secret: []byte(secret)}
}

// Resolve validates the token and reloads the user, so a suspended account
// or a changed role or organization takes effect before the token expires.
func (r *Resolver) Resolve(ctx context.Context, tokenStr string) (*rbac.Principal, error) {
	p, _, err := r.ResolveUser(ctx, tokenStr)
	return p, err
}

// ResolveUser is Resolve that also hands back the user record it loaded.
func (r *Resolver) ResolveUser(ctx context.Context, tokenStr string) (*rbac.Principal, *models.User, error) {
	tokenStr = strings.TrimSpace(strings.TrimPrefix(tokenStr, "Bearer "))
	if tokenStr == "" {
		return nil, nil, ErrMissingToken
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return r.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, nil, ErrInvalidToken
	}

	user, err := r.Users.FindUser(ctx, claims.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil, ErrInvalidToken
	}
	if err != nil {
		return nil, nil, fmt.Errorf("resolve principal: %w", err)
	}
	if user.Status == models.UserSuspended {
		return nil, nil, ErrInactiveUser
	}
	role, err := rbac.ParseRole(user.Role)
	if err != nil {
		return nil, nil, ErrInvalidToken
	}

	return &rbac.Principal{UserID: user.ID, OrgID: user.OrgID, Role: role}, user, nil
}

// JWT returns a Gin middleware that resolves the principal from either the
// Authorization header or a "token" cookie.
func JWT(r *Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.GetHeader("Authorization")
		if tokenStr == "" {
			if cookie, err := c.Cookie("token"); err == nil {
				tokenStr = cookie
			}
		}

		p, user, err := r.ResolveUser(c.Request.Context(), tokenStr)
		switch {
		case err == nil:
		case errors.Is(err, ErrInactiveUser):
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		case errors.Is(err, ErrMissingToken), errors.Is(err, ErrInvalidToken):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "unable to resolve principal"})
			return
		}

		c.Set(principalKey, p)
		c.Set(userKey, user)
		c.Next()
	}
}

// PrincipalFrom returns the principal set by JWT, or nil.
func PrincipalFrom(c *gin.Context) *rbac.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*rbac.Principal)
	return p
}

// UserFrom returns the user record loaded by JWT for this request, or nil.
func UserFrom(c *gin.Context) *models.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	u, _ := v.(*models.User)
	return u
}
