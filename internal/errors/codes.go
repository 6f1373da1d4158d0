package errors

// Error codes returned in the "error" field of every failure response.
// Format: CATEGORY_SPECIFIC_DETAIL. Clients map these to their own copy.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong username or password
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED" // logged out
	AuthAccountDisabled    = "AUTH_ACCOUNT_DISABLED"
	AuthUsernameExists     = "AUTH_USERNAME_EXISTS"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden      = "AUTHZ_FORBIDDEN"
	AuthzRoleNotFound   = "AUTHZ_ROLE_NOT_FOUND"
	AuthzSelfDeletion   = "AUTHZ_SELF_DELETION"
	AuthzSuperAdminOnly = "AUTHZ_SUPER_ADMIN_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT"
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"
	ValidationTooShort      = "VALIDATION_TOO_SHORT"
	ValidationRequired      = "VALIDATION_REQUIRED"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Catalog (CATALOG_) ====================
	DoctorNotFound           = "DOCTOR_NOT_FOUND"
	AttractionNotFound       = "ATTRACTION_NOT_FOUND"
	CategoryNotFound         = "CATEGORY_NOT_FOUND"
	CategoryInUse            = "CATEGORY_IN_USE" // listings still attached
	CatalogInvalidSubject    = "CATALOG_INVALID_SUBJECT"
	CatalogInvalidPriceRange = "CATALOG_INVALID_PRICE_RANGE"

	// ==================== Reviews (REVIEW_) ====================
	ReviewNotFound      = "REVIEW_NOT_FOUND"
	ReviewInvalidRating = "REVIEW_INVALID_RATING"
	ReviewNameRequired  = "REVIEW_NAME_REQUIRED"
	ReviewReplyRequired = "REVIEW_REPLY_REQUIRED"

	// ==================== Users (USER_) ====================
	UserNotFound    = "USER_NOT_FOUND"
	UserInvalidRole = "USER_INVALID_ROLE"

	// ==================== Uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"
	UploadNotConfigured   = "UPLOAD_NOT_CONFIGURED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
)
