package apperrors

import (
	"net/http"
)

// =========================================================================
// Фабрики
// =========================================================================

// ErrNotFound - ошибка репозитория (gorm.ErrRecordNotFound и т.п.) -> 404
func ErrNotFound(err error, domain, message string) *AppError {
	return Wrap(err, CodeNotFound, domain, message, http.StatusNotFound)
}

// ErrAlreadyExists - нарушение уникальности -> 409
func ErrAlreadyExists(err error, domain, message string) *AppError {
	return Wrap(err, CodeAlreadyExists, domain, message, http.StatusConflict)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// =========================================================================
// Предопределенные ошибки
// =========================================================================

// --- Auth ---

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password must be at least 8 characters long",
	http.StatusBadRequest,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrPhoneAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Phone number already in use",
	http.StatusConflict,
)

var ErrNotOwner = New(
	CodeForbidden,
	"auth",
	"You can only modify your own profile",
	http.StatusForbidden,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// --- Profiles ---

var ErrProviderNotFound = New(
	CodeNotFound,
	"provider",
	"Service provider not found",
	http.StatusNotFound,
)

var ErrTalentNotFound = New(
	CodeNotFound,
	"talent",
	"Talent not found",
	http.StatusNotFound,
)

var ErrCannotRateSelf = New(
	CodeForbidden,
	"rating",
	"You cannot rate your own profile",
	http.StatusForbidden,
)

// --- Uploads ---

var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"upload",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

var ErrTooManyFiles = New(
	CodeLimitExceeded,
	"upload",
	"Too many files in one request",
	http.StatusBadRequest,
)

var ErrNoFiles = New(
	CodeValidationFailed,
	"upload",
	"No files uploaded",
	http.StatusBadRequest,
)

var ErrInvalidFileType = New(
	CodeValidationFailed,
	"upload",
	"Only image and video files are allowed",
	http.StatusUnsupportedMediaType,
)

var ErrStorageUnavailable = New(
	CodeExternalServiceError,
	"upload",
	"Media storage is unavailable",
	http.StatusBadGateway,
)

// --- Transport ---

var ErrTooManyRequests = New(
	CodeTooManyRequests,
	"http",
	"Too many requests from this client, please try again later",
	http.StatusTooManyRequests,
)
