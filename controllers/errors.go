package controllers

import (
	"errors"
	"log"
	"net/http"

	"smartclaim-api/services"

	"github.com/gin-gonic/gin"
)

// respondError maps a service error to its HTTP status. Persistence and
// unknown errors are logged with their cause and surfaced generically.
func respondError(c *gin.Context, err error) {
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		if svcErr.Kind == services.KindPersistence {
			log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, svcErr.Err)
		}
		c.JSON(svcErr.Kind.HTTPStatus(), gin.H{"error": svcErr.Message})
		return
	}

	log.Printf("%s %s: unexpected error: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// identityFromContext rebuilds the caller identity set by AuthMiddleware.
func identityFromContext(c *gin.Context) services.Identity {
	return services.Identity{
		UserID: c.GetString("userID"),
		Email:  c.GetString("email"),
		Name:   c.GetString("name"),
	}
}
