package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/PlasmidCatalog/pkg/errors"
)

const HeaderAPIKey = "X-API-Key"

// APIKey requires the shared key in X-API-Key or as a Bearer token.  An
// empty key disables the check.
func APIKey(key string) gin.HandlerFunc {
	if key == "" {
		return func(c *gin.Context) { c.Next() }
	}
	want := []byte(key)
	return func(c *gin.Context) {
		got := c.GetHeader(HeaderAPIKey)
		if got == "" {
			if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
				got = strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			}
		}
		if got == "" || subtle.ConstantTimeCompare([]byte(got), want) != 1 {
			AbortWithError(c, errors.New(errors.ErrCodeUnauthorized, "missing or invalid API key"))
			return
		}
		c.Next()
	}
}

//Personal.AI order the ending
