package errors

// Error code constants returned in API responses.
// Format: CATEGORY_SPECIFIC_DETAIL — the frontend maps these to messages.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"       // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"      // no access
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND" // role missing from context
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"
	AuthzOwnerOnly    = "AUTHZ_OWNER_ONLY" // author-or-admin checks

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationInvalidRange = "VALIDATION_INVALID_RANGE"
	ValidationTooLong      = "VALIDATION_TOO_LONG"
	ValidationRequired     = "VALIDATION_REQUIRED"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Entities (ENTITY_) ====================
	EntityNotFound    = "ENTITY_NOT_FOUND"    // hotel/event/treasure/region/place missing
	EntityInvalidKind = "ENTITY_INVALID_KIND" // unknown entity collection in path

	// ==================== Reviews (REVIEW_) ====================
	ReviewNotFound      = "REVIEW_NOT_FOUND"
	ReviewInvalidRating = "REVIEW_INVALID_RATING" // rating outside 1-5
	ReviewTooLong       = "REVIEW_TOO_LONG"
	ReviewAlreadyExists = "REVIEW_ALREADY_EXISTS" // one review per user per entity

	// ==================== Replies / comments / photos ====================
	ReplyNotFound      = "REPLY_NOT_FOUND"
	CommentNotFound    = "COMMENT_NOT_FOUND"
	CommentUnsupported = "COMMENT_UNSUPPORTED" // kind has no comment wall
	PhotoNotFound      = "PHOTO_NOT_FOUND"

	// ==================== Engagement (ENGAGEMENT_) ====================
	EngagementTargetNotFound = "ENGAGEMENT_TARGET_NOT_FOUND" // like target missing
	EngagementConflict       = "ENGAGEMENT_CONFLICT"         // concurrent update retries exhausted

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
)
