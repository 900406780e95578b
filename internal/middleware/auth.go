package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gladgrade/gladgrade-server/internal/service"
	"github.com/gladgrade/gladgrade-server/pkg/apperror"
	"github.com/gladgrade/gladgrade-server/pkg/response"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware verifies bearer tokens from the external identity provider
// and resolves them to an internal actor.
type AuthMiddleware struct {
	authService service.AuthService
	signingKey  string
	projectID   string
}

func NewAuthMiddleware(authService service.AuthService, signingKey, projectID string) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		signingKey:  signingKey,
		projectID:   projectID,
	}
}

// verifySubject parses and validates the bearer token and returns the
// provider subject id.
func (m *AuthMiddleware) verifySubject(c *gin.Context) (string, error) {
	tokenString := ""
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			tokenString = parts[1]
		}
	}
	if tokenString == "" {
		return "", apperror.New(401, "authorization required", apperror.ErrUnauthorized)
	}

	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.signingKey), nil
	})
	if err != nil || !token.Valid {
		return "", apperror.New(401, "invalid or expired token", apperror.ErrUnauthorized)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", apperror.New(401, "invalid token claims", apperror.ErrUnauthorized)
	}
	if m.projectID != "" {
		found := false
		for _, aud := range claims.Audience {
			if aud == m.projectID {
				found = true
				break
			}
		}
		if !found {
			return "", apperror.New(401, "token issued for another project", apperror.ErrUnauthorized)
		}
	}

	return claims.Subject, nil
}

// RequireAuth verifies the token, resolves the actor and stores it on the
// context. Requests without a valid account are rejected.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, err := m.verifySubject(c)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		actor, err := m.authService.ResolveActor(c.Request.Context(), subject)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		response.SetActor(c, actor)
		c.Set("subject_id", subject)
		c.Next()
	}
}

// OptionalAuth resolves the actor when a valid bearer token is present and
// lets the request through anonymously otherwise. Public read routes use it
// so owners and staff keep their extended visibility without requiring a
// token from anonymous callers.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}

		subject, err := m.verifySubject(c)
		if err != nil {
			c.Next()
			return
		}

		actor, err := m.authService.ResolveActor(c.Request.Context(), subject)
		if err != nil {
			c.Next()
			return
		}

		response.SetActor(c, actor)
		c.Set("subject_id", subject)
		c.Next()
	}
}

// RequireToken verifies the token but does not require an existing account.
// Used by registration and guest login where the user row may not exist yet.
func (m *AuthMiddleware) RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, err := m.verifySubject(c)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set("subject_id", subject)
		c.Next()
	}
}

// RequireRoles allows the request through when the actor holds at least one
// of the named roles. Must run after RequireAuth.
func RequireRoles(names ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := response.GetActor(c)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		if !actor.HasRole(names...) {
			response.Error(c, apperror.New(403, "insufficient role", apperror.ErrForbidden))
			c.Abort()
			return
		}

		c.Next()
	}
}
