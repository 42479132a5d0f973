package apperrors

import (
	"fmt"
	"net/http"
)

// =========================================================================
// Factories
// =========================================================================

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

func ErrLearningPostNotFound(id string) *AppError {
	return NewNotFoundError("learning_post", fmt.Sprintf("Learning post with ID %s not found", id))
}

func ErrSessionNotFound(id string) *AppError {
	return NewNotFoundError("session", fmt.Sprintf("Session with ID %s not found", id))
}

// =========================================================================
// Predefined errors
// =========================================================================

// --- Auth ---

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrUsernameTaken = New(
	CodeAlreadyExists,
	"user",
	"Username already taken",
	http.StatusConflict,
)

// ErrInvalidCredentials covers both an unknown email and a wrong password.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid credentials",
	http.StatusUnauthorized,
)

var ErrEmailNotVerified = New(
	CodeUnauthorized,
	"auth",
	"Email not verified",
	http.StatusUnauthorized,
)

var ErrEmailAlreadyVerified = NewConflictError("auth", "Email already verified")

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid token",
	http.StatusUnauthorized,
)

var ErrTokenExpired = New(
	CodeTokenExpired,
	"auth",
	"Token has expired",
	http.StatusUnauthorized,
)

var ErrMissingToken = New(
	CodeUnauthorized,
	"auth",
	"Authorization header missing or invalid",
	http.StatusUnauthorized,
)

var ErrInvalidVerificationToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired verification token",
	http.StatusUnauthorized,
)

var ErrInsufficientPermissions = NewForbiddenError("Insufficient permissions")

// --- Users ---

var ErrUserNotFound = New(
	CodeNotFound,
	"user",
	"User not found",
	http.StatusNotFound,
)

// --- Learning posts ---

var ErrNotPostOwnerUpdate = New(
	CodeForbidden,
	"learning_post",
	"You can only update your own posts",
	http.StatusForbidden,
)

var ErrNotPostOwnerDelete = New(
	CodeForbidden,
	"learning_post",
	"You can only delete your own posts",
	http.StatusForbidden,
)

// --- Sessions ---

var ErrNotSessionMember = New(
	CodeForbidden,
	"session",
	"Only the host or the participant can modify this session",
	http.StatusForbidden,
)

var ErrNotSessionHost = New(
	CodeForbidden,
	"session",
	"Only the host can delete this session",
	http.StatusForbidden,
)

var ErrSessionCreateForbidden = New(
	CodeForbidden,
	"session",
	"You can only create sessions you take part in",
	http.StatusForbidden,
)

var ErrSelfSession = ErrInvalidOperation("session", "Host and participant must be different users")
