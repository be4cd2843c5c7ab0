package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/FinFellows/Server/internal/auth"
	"github.com/FinFellows/Server/internal/user"
)

const principalKey = "principal"

// TokenVerifier checks an access token and reports its subject.
type TokenVerifier interface {
	Validate(tokenString string) bool
	Subject(tokenString string) (string, error)
}

// IdentityResolver re-derives the principal behind a verified subject.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, email string) (auth.Principal, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
	resolver IdentityResolver
}

func NewAuthMiddleware(verifier TokenVerifier, resolver IdentityResolver) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier, resolver: resolver}
}

// PrincipalFromContext returns the authenticated principal attached by
// RequireAuth or OptionalAuth.
func PrincipalFromContext(c *gin.Context) (auth.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return auth.Principal{}, false
	}
	p, ok := v.(auth.Principal)
	return p, ok
}

// RequireAuth rejects requests without a valid bearer access token.
func (a *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := a.resolve(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "unauthorized",
			})
			return
		}
		c.Set(principalKey, p)
		c.Next()
	}
}

// OptionalAuth attaches a principal when a valid token is present and
// lets the request through either way. Listings use it to add per-user
// bookmark flags for signed-in callers.
func (a *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if p, ok := a.resolve(c); ok {
			c.Set(principalKey, p)
		}
		c.Next()
	}
}

// RequireAdmin rejects authenticated principals without the ADMIN role.
func (a *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := a.resolve(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "unauthorized",
			})
			return
		}
		if p.Role != user.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "forbidden",
			})
			return
		}
		c.Set(principalKey, p)
		c.Next()
	}
}

func (a *AuthMiddleware) resolve(c *gin.Context) (auth.Principal, bool) {
	header := c.GetHeader("Authorization")
	tokenString, found := strings.CutPrefix(header, "Bearer ")
	if !found || tokenString == "" {
		return auth.Principal{}, false
	}

	if !a.verifier.Validate(tokenString) {
		return auth.Principal{}, false
	}

	email, err := a.verifier.Subject(tokenString)
	if err != nil {
		return auth.Principal{}, false
	}

	p, err := a.resolver.ResolveIdentity(c.Request.Context(), email)
	if err != nil {
		return auth.Principal{}, false
	}
	return p, true
}
