package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/PlasmidCatalog/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/PlasmidCatalog/pkg/errors"
)

// Recovery turns a handler panic into a COMMON_001 reply.
func Recovery(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if p := recover(); p != nil {
				logger.Error("Panic recovered",
					logging.String("path", c.Request.URL.Path),
					logging.String(logging.FieldRequestID, GetRequestID(c)),
					logging.Any("panic", p),
					logging.String("stack", string(debug.Stack())))
				AbortWithError(c, errors.Internal(fmt.Sprintf("panic: %v", p)))
			}
		}()
		c.Next()
	}
}

//Personal.AI order the ending
