// Package middleware holds the gin middleware chain of the recognition API:
// request IDs, access logging, panic recovery, CORS, API key checks and a
// per-client rate limit.
package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/turtacn/PlasmidCatalog/pkg/errors"
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Detail    string `json:"detail,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// AbortWithError writes err as an ErrorResponse with the status mapped from
// its code and stops the chain.  Non-AppErrors become COMMON_001; server
// errors carry only the default message for their code.
func AbortWithError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	if code == errors.CodeUnknown || code == errors.CodeOK {
		code = errors.ErrCodeInternal
	}
	resp := ErrorResponse{Code: string(code), RequestID: GetRequestID(c)}

	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		resp.Message = appErr.Message
		resp.Detail = appErr.Detail
	} else {
		resp.Message = errors.DefaultMessageForCode(code)
	}
	if errors.IsServerError(code) {
		resp.Message = errors.DefaultMessageForCode(code)
		resp.Detail = ""
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(errors.HTTPStatusForCode(code), resp)
}

//Personal.AI order the ending
