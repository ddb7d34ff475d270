package apperrors

// Error codes grouped by domain.
const (
	// Authentication and authorization
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	CodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"

	// Validation
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeInvalidEmail     ErrorCode = "INVALID_EMAIL"
	CodeWeakPassword     ErrorCode = "WEAK_PASSWORD"

	// Resources
	CodeNotFound              ErrorCode = "NOT_FOUND"
	CodeUserNotFound          ErrorCode = "USER_NOT_FOUND"
	CodeEventNotFound         ErrorCode = "EVENT_NOT_FOUND"
	CodeParticipationNotFound ErrorCode = "PARTICIPATION_NOT_FOUND"
	CodeNotificationNotFound  ErrorCode = "NOTIFICATION_NOT_FOUND"
	CodeCommentNotFound       ErrorCode = "COMMENT_NOT_FOUND"

	// Business logic
	CodeConflict            ErrorCode = "CONFLICT"
	CodeEmailAlreadyExists  ErrorCode = "EMAIL_ALREADY_EXISTS"
	CodeCapacityExceeded    ErrorCode = "CAPACITY_EXCEEDED"
	CodeAlreadyParticipant  ErrorCode = "ALREADY_PARTICIPANT"
	CodeEventNotJoinable    ErrorCode = "EVENT_NOT_JOINABLE"
	CodePersistFailed       ErrorCode = "PERSIST_FAILED"
	CodeNotificationFailed  ErrorCode = "NOTIFICATION_FAILED"
	CodeInvalidUploadFormat ErrorCode = "INVALID_UPLOAD_FORMAT"
	CodeFileTooLarge        ErrorCode = "FILE_TOO_LARGE"

	// System errors
	CodeInternalError  ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError  ErrorCode = "DATABASE_ERROR"
	CodeConfigMissing  ErrorCode = "CONFIG_MISSING"
	CodeUploadFailed   ErrorCode = "UPLOAD_FAILED"
	CodeExternalFailed ErrorCode = "EXTERNAL_SERVICE_ERROR"
)
