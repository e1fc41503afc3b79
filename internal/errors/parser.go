package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo is the parsed representation of an unexpected error
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts a raw database or driver error into an API error code
// and a message safe to show to users. Context is a short resource label
// ("hotel", "review", ...) used to pick a specific message.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "An unexpected error occurred",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: notFoundMessage(context),
		}
	}

	// PostgreSQL constraint violations

	// unique_violation (23505)
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStrLower)
	}

	// foreign_key_violation (23503)
	if strings.Contains(errStrLower, "foreign key constraint") {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: "A referenced record does not exist or is still in use",
		}
	}

	// not_null_violation (23502)
	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "not-null constraint") {
		return ErrorInfo{
			Code:    ValidationRequired,
			Message: "A required field is missing",
		}
	}

	// Connectivity problems surface as external failures
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "A backing service is unavailable, please try again later",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: "An unexpected error occurred",
	}
}

// ParseAndRespond parses err and writes the standard error payload.
func ParseAndRespond(c interface{ JSON(int, interface{}) }, statusCode int, err error, context string) {
	errorInfo := ParseError(err, context)
	c.JSON(statusCode, ErrorResponse{
		Error:   errorInfo.Code,
		Message: errorInfo.Message,
	})
}

func parseDuplicateKeyError(errLower string) ErrorInfo {
	if strings.Contains(errLower, "email") || strings.Contains(errLower, "idx_users_email") {
		return ErrorInfo{
			Code:    AuthEmailAlreadyExists,
			Message: "This email address is already registered",
		}
	}

	if strings.Contains(errLower, "idx_entity_user_review") {
		return ErrorInfo{
			Code:    ReviewAlreadyExists,
			Message: "You have already reviewed this place",
		}
	}

	if strings.Contains(errLower, "idx_entity_user_favorite") || strings.Contains(errLower, "idx_target_user_like") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "This action was already recorded",
		}
	}

	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "A record with these values already exists",
	}
}

func notFoundMessage(context string) string {
	switch context {
	case "hotel":
		return "Hotel not found"
	case "event":
		return "Event not found"
	case "treasure":
		return "Cultural site not found"
	case "region":
		return "Region not found"
	case "popular_place":
		return "Popular place not found"
	case "review":
		return "Review not found"
	case "reply":
		return "Reply not found"
	case "comment":
		return "Comment not found"
	case "photo":
		return "Photo not found"
	case "user":
		return "User not found"
	default:
		return "Resource not found"
	}
}
