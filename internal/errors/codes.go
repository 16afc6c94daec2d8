package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// The storefront maps these codes to user-facing messages.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden = "AUTHZ_FORBIDDEN"
	AuthzAdminOnly = "AUTHZ_ADMIN_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationInvalidRange = "VALIDATION_INVALID_RANGE"
	ValidationRequired     = "VALIDATION_REQUIRED"

	// ==================== Products (PRODUCT_) ====================
	ProductNotFound        = "PRODUCT_NOT_FOUND"
	ProductInvalidCategory = "PRODUCT_INVALID_CATEGORY"
	ProductInvalidPrice    = "PRODUCT_INVALID_PRICE"

	// ==================== Orders (ORDER_) ====================
	OrderNotFound       = "ORDER_NOT_FOUND"
	OrderEmptyItems     = "ORDER_EMPTY_ITEMS"
	OrderInvalidStatus  = "ORDER_INVALID_STATUS"
	OrderInvalidPayment = "ORDER_INVALID_PAYMENT"

	// ==================== Upload (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)
