package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned when login identifier or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDuplicate is returned when a username or email is already registered.
	ErrDuplicate = errors.New("username or email already exists")
	// ErrUnauthenticated is returned when a bearer token is missing, malformed or expired.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden is returned when the caller does not own the record.
	ErrForbidden = errors.New("not allowed to modify this resource")
	// ErrNotFound is returned when a record does not exist or its id is malformed.
	ErrNotFound = errors.New("resource not found")
	// ErrUnsupportedMediaType is returned when an upload is not an allowed image type.
	ErrUnsupportedMediaType = errors.New("only image files (JPEG, PNG, GIF) are allowed")
	// ErrPayloadTooLarge is returned when an upload exceeds the size limit.
	ErrPayloadTooLarge = errors.New("file exceeds the maximum upload size")
	// ErrConflict is returned when a record changed between read and write.
	ErrConflict = errors.New("resource was modified concurrently")
	// ErrMissingSecret is returned when the token signing secret is not configured.
	ErrMissingSecret = errors.New("token signing secret is not configured")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error  string       `json:"error"`
	Code   string       `json:"code"`
	Fields []FieldError `json:"fields,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Fields     []FieldError
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error:  e.Message,
		Code:   e.Code,
		Fields: e.Fields,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var verr *ValidationError
	if errors.As(err, &verr) {
		e := NewHTTPError(http.StatusBadRequest, verr.Error(), "VALIDATION_ERROR")
		e.Fields = verr.Fields
		return e
	}

	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrDuplicate):
		return NewHTTPError(http.StatusBadRequest, ErrDuplicate.Error(), "DUPLICATE")
	case errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, ErrUnauthenticated.Error(), "UNAUTHENTICATED")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, ErrForbidden.Error(), "FORBIDDEN")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, ErrNotFound.Error(), "NOT_FOUND")
	case errors.Is(err, ErrUnsupportedMediaType):
		return NewHTTPError(http.StatusBadRequest, ErrUnsupportedMediaType.Error(), "UNSUPPORTED_MEDIA_TYPE")
	case errors.Is(err, ErrPayloadTooLarge):
		return NewHTTPError(http.StatusBadRequest, ErrPayloadTooLarge.Error(), "PAYLOAD_TOO_LARGE")
	case errors.Is(err, ErrConflict):
		return NewHTTPError(http.StatusConflict, ErrConflict.Error(), "CONFLICT")
	case errors.Is(err, ErrMissingSecret):
		return NewHTTPError(http.StatusInternalServerError, "server configuration error", "CONFIG_ERROR")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
