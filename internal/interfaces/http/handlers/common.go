// Package handlers holds the gin handlers of the recognition API.
package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/PlasmidCatalog/internal/interfaces/http/middleware"
	"github.com/turtacn/PlasmidCatalog/pkg/errors"
)

// respondError writes err through the shared error envelope.
func respondError(c *gin.Context, err error) {
	middleware.AbortWithError(c, err)
}

// bindJSON decodes the body into dst.  An empty body is reported as a
// missing request rather than a syntax error.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if err == io.EOF {
			respondError(c, errors.InvalidParam("request body is required"))
			return false
		}
		respondError(c, errors.Wrap(err, errors.ErrCodeBadRequest, "invalid request body"))
		return false
	}
	return true
}

//Personal.AI order the ending
