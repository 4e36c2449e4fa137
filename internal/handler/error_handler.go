package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	apperrors "showcase/internal/errors"
)

// MessageResponse is returned by endpoints that only confirm an action.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorHandler renders every error returned by a handler as an errors.ErrorResponse.
// Server-side failures are logged with their cause; clients only see a generic message.
func ErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := renderError(err)
		if status >= http.StatusInternalServerError {
			log.Error().Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Msg("request failed")
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			log.Warn().Err(err).Msg("failed to write error response")
		}
	}
}

// StatusOf returns the status code ErrorHandler will render for err.
func StatusOf(err error) int {
	status, _ := renderError(err)
	return status
}

func renderError(err error) (int, apperrors.ErrorResponse) {
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code == http.StatusRequestEntityTooLarge {
		err = apperrors.ErrPayloadTooLarge
	} else if errors.As(err, &he) {
		switch msg := he.Message.(type) {
		case apperrors.ErrorResponse:
			return he.Code, msg
		case string:
			return he.Code, apperrors.ErrorResponse{Error: msg, Code: statusCode(he.Code)}
		case error:
			return he.Code, apperrors.ErrorResponse{Error: msg.Error(), Code: statusCode(he.Code)}
		default:
			return he.Code, apperrors.ErrorResponse{Error: http.StatusText(he.Code), Code: statusCode(he.Code)}
		}
	}

	httpErr := apperrors.MapErrorToHTTP(err)
	return httpErr.StatusCode, httpErr.ToErrorResponse()
}

// statusCode turns an HTTP status into an upper snake case error code, e.g. NOT_FOUND.
func statusCode(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return "ERROR"
	}
	return strings.ToUpper(strings.ReplaceAll(text, " ", "_"))
}
