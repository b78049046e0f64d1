// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthLoginSuccess       = "auth.login_success"

	// Access
	KeyAccessDenied = "access.denied"

	// Users
	KeyUserNotFound = "user.not_found"
	KeyUserCreated  = "user.created"
	KeyUserExists   = "user.exists"

	// Catalog
	KeyProductNotFound  = "product.not_found"
	KeyProductCreated   = "product.created"
	KeyProductUpdated   = "product.updated"
	KeyCategoryNotFound = "category.not_found"
	KeyCategoryCreated  = "category.created"
	KeyCategoryExists   = "category.exists"
	KeyResourceNotFound = "resource.not_found"
	KeyIntegrityFailure = "database.integrity_violation"

	// Orders
	KeyOrderNotFound = "order.not_found"
	KeyOrderCreated  = "order.created"

	// Validation
	KeyValidationInvalid = "validation.invalid"
	KeyValidationID      = "validation.invalid_id"

	// File Upload
	KeyFileUploadFailed = "file.upload_failed"
	KeyFileInvalidType  = "file.invalid_type"

	// Generic
	KeyInternalError     = "error.internal"
	KeyRateLimitExceeded = "error.rate_limit"
)
