package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes for the domain error kinds. Every failure in the core is a
// logical rejection reported to the caller; none are fatal and none are
// transient, so there is no retry concept anywhere.
const (
	CodeDuplicateUsername  = "DUPLICATE_USERNAME"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUnknownAccount     = "UNKNOWN_ACCOUNT"
	CodeInvalidPost        = "INVALID_POST"
	CodePostNotFound       = "POST_NOT_FOUND"
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeEmptyComment       = "EMPTY_COMMENT"
	CodeValidation         = "VALIDATION_ERROR"
	CodeInternal           = "INTERNAL_ERROR"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors

func NewDuplicateUsernameError(username string) *AppError {
	return &AppError{
		Code:    CodeDuplicateUsername,
		Message: fmt.Sprintf("username %q is already taken", username),
	}
}

func NewInvalidCredentialsError() *AppError {
	return &AppError{
		Code:    CodeInvalidCredentials,
		Message: "invalid username or password",
	}
}

func NewUnknownAccountError(username string) *AppError {
	return &AppError{
		Code:    CodeUnknownAccount,
		Message: fmt.Sprintf("no account registered as %q", username),
	}
}

func NewInvalidPostError() *AppError {
	return &AppError{
		Code:    CodeInvalidPost,
		Message: "a post needs content or an image",
	}
}

func NewPostNotFoundError(id int64) *AppError {
	return &AppError{
		Code:    CodePostNotFound,
		Message: fmt.Sprintf("post %d not found", id),
	}
}

func NewUnauthenticatedError() *AppError {
	return &AppError{
		Code:    CodeUnauthenticated,
		Message: "no active session",
	}
}

func NewEmptyCommentError() *AppError {
	return &AppError{
		Code:    CodeEmptyComment,
		Message: "comment text must not be empty",
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// ErrorCode extracts the AppError code from err, or empty string if err is not
// an AppError.
func ErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// StatusFor maps a domain error to the HTTP status the API layer responds with.
func StatusFor(err error) int {
	switch ErrorCode(err) {
	case CodeDuplicateUsername:
		return fiber.StatusConflict
	case CodeInvalidCredentials, CodeUnauthenticated:
		return fiber.StatusUnauthorized
	case CodeUnknownAccount, CodePostNotFound:
		return fiber.StatusNotFound
	case CodeInvalidPost, CodeEmptyComment, CodeValidation:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondWithError creates a standardized error response
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	var appErr *AppError
	if errors.As(err, &appErr) {
		response = ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		}
		if appErr.Err != nil {
			response.Details = appErr.Err.Error()
		}
	} else {
		response = ErrorResponse{
			Error: err.Error(),
		}
	}

	return c.Status(status).JSON(response)
}
