package routes

import (
	"errors"
	"net/http"

	"gift-registry/internal/storage"
)

// HTTPError represents an error with an associated HTTP status code and user message
type HTTPError struct {
	Err        error    // The underlying error
	StatusCode int      // HTTP status code
	Message    string   // User-friendly message
	StopCodes  []string // Optional stop codes for client-side handling
	Internal   bool     // Whether this is an internal error (hide details from user)
}

// ErrorInfo contains error metadata for user-facing errors
type ErrorInfo struct {
	Message   string   // User-friendly message
	StopCodes []string // Optional stop codes for client-side application
}

// Error implements the error interface
func (e *HTTPError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *HTTPError) Unwrap() error {
	return e.Err
}

// NewHTTPError creates a new HTTPError
func NewHTTPError(statusCode int, err error, message string, stopCodes ...string) *HTTPError {
	return &HTTPError{
		Err:        err,
		StatusCode: statusCode,
		Message:    message,
		StopCodes:  stopCodes,
		Internal:   statusCode >= 500,
	}
}

// Routes-specific errors (that don't conflict with the storage package)
var (
	// Authentication errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Authorization errors
	ErrForbidden    = errors.New("forbidden")
	ErrNameMismatch = errors.New("guest name does not match the reservation")

	// Validation errors
	ErrInvalidRequest    = errors.New("invalid request")
	ErrMissingGuestName  = errors.New("guest name is required")
	ErrInvalidAmount     = errors.New("contribution amount must be positive")
	ErrMissingTitle      = errors.New("item title is required")
	ErrInvalidStatus     = errors.New("invalid item status")
	ErrInvalidCompanions = errors.New("companion count must be between 0 and 10")
	ErrGoalRequired      = errors.New("goal_cents is required for group gifts")
	ErrGoalNotAllowed    = errors.New("goal_cents must not be set for regular items")
	ErrUploadMissing     = errors.New("no file uploaded")
	ErrUploadType        = errors.New("unsupported image type")
	ErrUploadTooLarge    = errors.New("uploaded file exceeds the size limit")
	ErrBulkTooManyItems  = errors.New("too many items in bulk import")

	// Internal errors
	ErrInternalServer = errors.New("internal server error")
	ErrDatabaseError  = errors.New("database error")
	ErrMediaError     = errors.New("media storage error")
	ErrConfigMissing  = errors.New("server configuration missing")
)

// errorStatusMap maps errors to HTTP status codes
var errorStatusMap = map[error]int{
	// 400 Bad Request
	ErrInvalidRequest:    http.StatusBadRequest,
	ErrMissingGuestName:  http.StatusBadRequest,
	ErrInvalidAmount:     http.StatusBadRequest,
	ErrMissingTitle:      http.StatusBadRequest,
	ErrInvalidStatus:     http.StatusBadRequest,
	ErrInvalidCompanions: http.StatusBadRequest,
	ErrGoalRequired:      http.StatusBadRequest,
	ErrGoalNotAllowed:    http.StatusBadRequest,
	ErrUploadMissing:     http.StatusBadRequest,
	ErrUploadType:        http.StatusBadRequest,
	ErrUploadTooLarge:    http.StatusBadRequest,
	ErrBulkTooManyItems:  http.StatusBadRequest,

	storage.ErrNotReservable: http.StatusBadRequest,
	storage.ErrNotGroupGift:  http.StatusBadRequest,

	// 401 Unauthorized
	ErrUnauthorized:       http.StatusUnauthorized,
	ErrInvalidCredentials: http.StatusUnauthorized,

	// 403 Forbidden
	ErrForbidden:    http.StatusForbidden,
	ErrNameMismatch: http.StatusForbidden,

	// 404 Not Found
	storage.ErrNotFound: http.StatusNotFound,

	// 409 Conflict
	storage.ErrAlreadyReserved:  http.StatusConflict,
	storage.ErrAlreadyCancelled: http.StatusConflict,

	// 500 Internal Server Error
	ErrInternalServer: http.StatusInternalServerError,
	ErrDatabaseError:  http.StatusInternalServerError,
	ErrMediaError:     http.StatusInternalServerError,
	ErrConfigMissing:  http.StatusInternalServerError,
}

// errorInfoMap maps errors to user-friendly messages and optional stop codes
var errorInfoMap = map[error]ErrorInfo{
	// Authentication
	ErrUnauthorized: {
		Message:   "Authentication required",
		StopCodes: []string{"AUTH_REQUIRED"},
	},
	ErrInvalidCredentials: {
		Message:   "Incorrect passcode",
		StopCodes: []string{"AUTH_INVALID_CREDENTIALS"},
	},

	// Authorization
	ErrForbidden: {
		Message:   "Access denied",
		StopCodes: []string{"FORBIDDEN"},
	},
	ErrNameMismatch: {
		Message:   "The name does not match this reservation",
		StopCodes: []string{"NAME_MISMATCH"},
	},

	// Validation
	ErrInvalidRequest: {
		Message:   "Invalid request format",
		StopCodes: []string{"INVALID_REQUEST"},
	},
	ErrMissingGuestName: {
		Message:   "Guest name is required",
		StopCodes: []string{"GUEST_NAME_REQUIRED"},
	},
	ErrInvalidAmount: {
		Message:   "Contribution amount must be a positive value",
		StopCodes: []string{"INVALID_AMOUNT"},
	},
	ErrMissingTitle: {
		Message:   "Item title is required",
		StopCodes: []string{"TITLE_REQUIRED"},
	},
	ErrInvalidStatus: {
		Message:   "Item status must be active, delivered or archived",
		StopCodes: []string{"INVALID_STATUS"},
	},
	ErrInvalidCompanions: {
		Message:   "Companion count must be between 0 and 10",
		StopCodes: []string{"INVALID_COMPANIONS"},
	},
	ErrGoalRequired: {
		Message:   "A goal is required for group gifts",
		StopCodes: []string{"GOAL_REQUIRED"},
	},
	ErrGoalNotAllowed: {
		Message:   "A goal must not be set for regular items",
		StopCodes: []string{"GOAL_NOT_ALLOWED"},
	},
	ErrUploadMissing: {
		Message:   "No file was uploaded",
		StopCodes: []string{"UPLOAD_MISSING"},
	},
	ErrUploadType: {
		Message:   "Unsupported file type. Use JPG, PNG, WebP or GIF.",
		StopCodes: []string{"UPLOAD_TYPE"},
	},
	ErrUploadTooLarge: {
		Message:   "File too large. Maximum 5MB.",
		StopCodes: []string{"UPLOAD_TOO_LARGE"},
	},
	ErrBulkTooManyItems: {
		Message:   "Bulk import accepts at most 50 items",
		StopCodes: []string{"BULK_TOO_MANY"},
	},

	// Domain conflicts
	storage.ErrAlreadyReserved: {
		Message:   "This item has already been reserved",
		StopCodes: []string{"ALREADY_RESERVED"},
	},
	storage.ErrAlreadyCancelled: {
		Message:   "This reservation has already been cancelled",
		StopCodes: []string{"ALREADY_CANCELLED"},
	},
	storage.ErrNotFound: {
		Message:   "Not found",
		StopCodes: []string{"NOT_FOUND"},
	},
	storage.ErrNotReservable: {
		Message:   "This item cannot be reserved",
		StopCodes: []string{"NOT_RESERVABLE"},
	},
	storage.ErrNotGroupGift: {
		Message:   "This item does not accept contributions",
		StopCodes: []string{"NOT_GROUP_GIFT"},
	},

	// Internal (no stop codes for internal errors)
	ErrInternalServer: {
		Message: "An internal error occurred",
	},
	ErrDatabaseError: {
		Message: "Database operation failed",
	},
	ErrMediaError: {
		Message: "Image storage is not available",
	},
	ErrConfigMissing: {
		Message: "Server configuration is incomplete",
	},
}

// GetErrorStatus returns the HTTP status code for an error
func GetErrorStatus(err error) int {
	// Check if it's already an HTTPError
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}

	// Check direct match
	if status, ok := errorStatusMap[err]; ok {
		return status
	}

	// Check if error wraps a known error
	for knownErr, status := range errorStatusMap {
		if errors.Is(err, knownErr) {
			return status
		}
	}

	// Default to 500 Internal Server Error
	return http.StatusInternalServerError
}

// GetErrorInfo returns error information including message and stop codes
func GetErrorInfo(err error) ErrorInfo {
	// Check if it's an HTTPError with custom info
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return ErrorInfo{
			Message:   httpErr.Message,
			StopCodes: httpErr.StopCodes,
		}
	}

	// Check direct match
	if info, ok := errorInfoMap[err]; ok {
		return info
	}

	// Check if error wraps a known error
	for knownErr, info := range errorInfoMap {
		if errors.Is(err, knownErr) {
			return info
		}
	}

	// For unknown errors, return a generic message for 5xx, specific for others
	status := GetErrorStatus(err)
	if status >= 500 {
		return ErrorInfo{Message: "An internal error occurred"}
	}
	return ErrorInfo{Message: err.Error()}
}

// GetErrorMessage returns a user-friendly message for an error
func GetErrorMessage(err error) string {
	return GetErrorInfo(err).Message
}

// GetErrorStopCodes returns stop codes for an error
func GetErrorStopCodes(err error) []string {
	return GetErrorInfo(err).StopCodes
}
