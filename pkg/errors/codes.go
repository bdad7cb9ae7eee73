package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
// Codes are grouped by module prefix: COMMON, REC, RULE, CORR, CORPUS, OBJ, MQ.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Sentinel codes.
const (
	CodeOK      ErrorCode = "OK"
	CodeUnknown ErrorCode = "UNKNOWN"
)

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeUnauthorized       ErrorCode = "COMMON_003"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeConflict           ErrorCode = "COMMON_006"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeTimeout            ErrorCode = "COMMON_009"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodeSerialization      ErrorCode = "COMMON_011"
	ErrCodeDatabaseError      ErrorCode = "COMMON_012"
	ErrCodeCacheError         ErrorCode = "COMMON_013"
	ErrCodeRateLimited        ErrorCode = "COMMON_014"
	ErrCodeNotImplemented     ErrorCode = "COMMON_016"
)

// Recognition Module Error Codes
const (
	ErrCodeRecognitionFailed   ErrorCode = "REC_001"
	ErrCodeContentTooLarge     ErrorCode = "REC_002"
	ErrCodeContentUndecodable  ErrorCode = "REC_003"
	ErrCodeCategoryUnknown     ErrorCode = "REC_004"
	ErrCodeBatchTooLarge       ErrorCode = "REC_005"
	ErrCodeRecognitionCanceled ErrorCode = "REC_006"
)

// Rules Document Error Codes
const (
	ErrCodeRulesDocumentInvalid     ErrorCode = "RULE_001"
	ErrCodeRulesDocumentUnavailable ErrorCode = "RULE_002"
)

// Correction Error Codes
const (
	ErrCodeCorrectionInvalid  ErrorCode = "CORR_001"
	ErrCodeCorrectionNotFound ErrorCode = "CORR_002"
	ErrCodeCorrectionStore    ErrorCode = "CORR_003"
)

// Corpus / record store Error Codes
const (
	ErrCodeCorpusUnavailable ErrorCode = "CORPUS_001"
	ErrCodeCorpusMalformed   ErrorCode = "CORPUS_002"
	ErrCodeRecordNotFound    ErrorCode = "CORPUS_003"
)

// Object storage and messaging Error Codes
const (
	ErrCodeObjectNotFound   ErrorCode = "OBJ_001"
	ErrCodeObjectStorage    ErrorCode = "OBJ_002"
	ErrCodePublishFailed    ErrorCode = "MQ_001"
	ErrCodeConsumerClosed   ErrorCode = "MQ_002"
	ErrCodeMessageMalformed ErrorCode = "MQ_003"
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeRateLimited:        http.StatusTooManyRequests,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeDatabaseError:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeNotImplemented:     http.StatusNotImplemented,

	ErrCodeRecognitionFailed:   http.StatusInternalServerError,
	ErrCodeContentTooLarge:     http.StatusRequestEntityTooLarge,
	ErrCodeContentUndecodable:  http.StatusUnprocessableEntity,
	ErrCodeCategoryUnknown:     http.StatusBadRequest,
	ErrCodeBatchTooLarge:       http.StatusRequestEntityTooLarge,
	ErrCodeRecognitionCanceled: http.StatusGatewayTimeout,

	ErrCodeRulesDocumentInvalid:     http.StatusUnprocessableEntity,
	ErrCodeRulesDocumentUnavailable: http.StatusServiceUnavailable,

	ErrCodeCorrectionInvalid:  http.StatusBadRequest,
	ErrCodeCorrectionNotFound: http.StatusNotFound,
	ErrCodeCorrectionStore:    http.StatusInternalServerError,

	ErrCodeCorpusUnavailable: http.StatusServiceUnavailable,
	ErrCodeCorpusMalformed:   http.StatusUnprocessableEntity,
	ErrCodeRecordNotFound:    http.StatusNotFound,

	ErrCodeObjectNotFound:   http.StatusNotFound,
	ErrCodeObjectStorage:    http.StatusBadGateway,
	ErrCodePublishFailed:    http.StatusBadGateway,
	ErrCodeConsumerClosed:   http.StatusServiceUnavailable,
	ErrCodeMessageMalformed: http.StatusBadRequest,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeUnauthorized:       "authentication required",
	ErrCodeRateLimited:        "rate limit exceeded",
	ErrCodeNotFound:           "resource not found",
	ErrCodeConflict:           "resource conflict",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeDatabaseError:      "database error",
	ErrCodeCacheError:         "cache error",
	ErrCodeNotImplemented:     "not implemented",

	ErrCodeRecognitionFailed:   "recognition failed",
	ErrCodeContentTooLarge:     "content exceeds the configured size limit",
	ErrCodeContentUndecodable:  "content could not be decoded",
	ErrCodeCategoryUnknown:     "unknown category",
	ErrCodeBatchTooLarge:       "batch exceeds the configured size limit",
	ErrCodeRecognitionCanceled: "recognition canceled",

	ErrCodeRulesDocumentInvalid:     "invalid rules document",
	ErrCodeRulesDocumentUnavailable: "rules document unavailable",

	ErrCodeCorrectionInvalid:  "invalid correction",
	ErrCodeCorrectionNotFound: "correction not found",
	ErrCodeCorrectionStore:    "correction store error",

	ErrCodeCorpusUnavailable: "record corpus unavailable",
	ErrCodeCorpusMalformed:   "record corpus malformed",
	ErrCodeRecordNotFound:    "record not found",

	ErrCodeObjectNotFound:   "object not found",
	ErrCodeObjectStorage:    "object storage error",
	ErrCodePublishFailed:    "failed to publish message",
	ErrCodeConsumerClosed:   "consumer closed",
	ErrCodeMessageMalformed: "malformed message",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 1 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}

//Personal.AI order the ending
