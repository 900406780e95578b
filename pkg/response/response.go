package response

import (
	"log"
	"net/http"
	"os"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/gladgrade/gladgrade-server/pkg/apperror"
	"github.com/gladgrade/gladgrade-server/pkg/dto"
)

// Actor is the resolved identity for the current request, set by the auth
// middleware and consumed by handlers for ownership checks.
type Actor struct {
	UserID uint
	Roles  []string
}

// HasRole reports whether the actor holds any of the given role names.
func (a Actor) HasRole(names ...string) bool {
	for _, n := range names {
		for _, r := range a.Roles {
			if r == n {
				return true
			}
		}
	}
	return false
}

const actorKey = "actor"

// SetActor stores the resolved actor on the request context.
func SetActor(c *gin.Context, actor Actor) {
	c.Set(actorKey, actor)
}

// GetActor retrieves the authenticated actor from the context.
func GetActor(c *gin.Context) (Actor, error) {
	v, exists := c.Get(actorKey)
	if !exists {
		return Actor{}, apperror.ErrUnauthorized
	}
	actor, ok := v.(Actor)
	if !ok {
		return Actor{}, apperror.ErrUnauthorized
	}
	return actor, nil
}

type errorBody struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
	Stack   string `json:"stack,omitempty"`
}

// Error renders the standardized error envelope {error: {message, status}}.
// Stack traces are attached only outside production.
func Error(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	// Log internal errors
	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error]: %v", err)
	}

	body := errorBody{Message: err.Error(), Status: code}
	if code >= http.StatusInternalServerError && os.Getenv("APP_ENV") == "development" {
		body.Stack = string(debug.Stack())
	}

	c.JSON(code, gin.H{"error": body})
}

// List renders the {data, pagination} envelope for paged collections.
func List(c *gin.Context, data any, pagination dto.Pagination) {
	c.JSON(http.StatusOK, gin.H{"data": data, "pagination": pagination})
}

// OK renders a single-item payload.
func OK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// Created renders a single-item payload with 201.
func Created(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
