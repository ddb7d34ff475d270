package apperrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies a class of application error.
type ErrorCode string

// AppError is the application-wide error structure. HTTPCode and the
// wrapped cause never leave the process; Code/Message/Details do.
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New builds a bare AppError.
func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

// Wrap builds an AppError carrying an underlying cause.
func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

// WithDetails returns a copy of the error with attached details, so the
// predefined sentinels stay immutable.
func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

// WithError returns a copy of the error with an attached cause.
func (e *AppError) WithError(err error) *AppError {
	clone := *e
	clone.Err = err
	return &clone
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}

// Is wraps the standard errors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As wraps the standard errors.As.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Predefined errors.
var (
	// Authentication
	ErrInvalidCredentials = New(CodeInvalidCredentials, "Invalid email or password", http.StatusUnauthorized)
	ErrUnauthorized       = New(CodeUnauthorized, "Authentication required", http.StatusUnauthorized)
	ErrForbidden          = New(CodeForbidden, "Access denied", http.StatusForbidden)
	ErrInvalidToken       = New(CodeInvalidToken, "Invalid or expired token", http.StatusUnauthorized)

	// Users
	ErrUserNotFound       = New(CodeUserNotFound, "User not found", http.StatusNotFound)
	ErrEmailAlreadyExists = New(CodeEmailAlreadyExists, "Email already exists", http.StatusConflict)
	ErrWeakPassword       = New(CodeWeakPassword, "Password must be at least 8 characters", http.StatusBadRequest)

	// Events
	ErrEventNotFound    = New(CodeEventNotFound, "Event not found", http.StatusNotFound)
	ErrEventNotJoinable = New(CodeEventNotJoinable, "Event is not open for participation", http.StatusBadRequest)

	// Participations
	ErrParticipationNotFound = New(CodeParticipationNotFound, "Participation not found", http.StatusNotFound)
	ErrAlreadyParticipant    = New(CodeAlreadyParticipant, "Already requested participation in this event", http.StatusConflict)

	// Notifications
	ErrNotificationNotFound = New(CodeNotificationNotFound, "Notification not found", http.StatusNotFound)

	// Comments
	ErrCommentNotFound = New(CodeCommentNotFound, "Comment not found", http.StatusNotFound)

	// Validation
	ErrValidationFailed = New(CodeValidationFailed, "Validation failed", http.StatusBadRequest)

	// Uploads
	ErrInvalidUploadFormat = New(CodeInvalidUploadFormat, "Unsupported file type", http.StatusBadRequest)
	ErrFileTooLarge        = New(CodeFileTooLarge, "File too large", http.StatusBadRequest)

	// System configuration
	ErrSettingsMissing = New(CodeConfigMissing, "System settings are not configured", http.StatusInternalServerError)
)

// CapacityExceeded reports a requested attendee cap above the
// system-wide ceiling. The ceiling is part of the user-facing message.
func CapacityExceeded(ceiling int) *AppError {
	return New(CodeCapacityExceeded,
		fmt.Sprintf("Maximum attendees cannot exceed %d", ceiling),
		http.StatusBadRequest)
}

// PersistError wraps a document validation or storage failure during a
// transactional write.
func PersistError(err error) *AppError {
	return Wrap(err, CodePersistFailed, "Failed to persist changes", http.StatusBadRequest)
}

// UploadError wraps a media storage transport/auth failure. Upload
// failures always abort before any database mutation.
func UploadError(err error) *AppError {
	return Wrap(err, CodeUploadFailed, "Failed to upload file", http.StatusInternalServerError)
}

// NotificationError wraps a failed notification batch insert. The batch
// shares the update's transaction, so this is fatal to the whole update.
func NotificationError(err error) *AppError {
	return Wrap(err, CodeNotificationFailed, "Failed to create notifications", http.StatusInternalServerError)
}

// ValidationError attaches per-field details to the validation sentinel.
func ValidationError(details interface{}) *AppError {
	return ErrValidationFailed.WithDetails(details)
}

// InternalError wraps an unexpected failure.
func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "Internal server error", http.StatusInternalServerError)
}

func NewNotFoundError(message string) *AppError {
	return New(CodeNotFound, message, http.StatusNotFound)
}

func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, message, http.StatusBadRequest)
}

func NewForbiddenError(message string) *AppError {
	return New(CodeForbidden, message, http.StatusForbidden)
}

func NewUnauthorizedError(message string) *AppError {
	return New(CodeUnauthorized, message, http.StatusUnauthorized)
}

func NewConflictError(message string) *AppError {
	return New(CodeConflict, message, http.StatusConflict)
}
