package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/techBikashRepo/jobbee-api/internal/apperr"
	"github.com/techBikashRepo/jobbee-api/pkg/logger"
)

// NewHTTPErrorHandler returns the central error boundary. Every error
// becomes the uniform {success:false, message} envelope; unrecognized errors
// get a generic message in production and their real message otherwise.
func NewHTTPErrorHandler(production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "Internal server error."

		var appErr *apperr.Error
		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &appErr):
			status = appErr.Status()
			message = appErr.Message
		case errors.Is(err, gorm.ErrRecordNotFound):
			status = http.StatusNotFound
			message = "Resource not found."
		case errors.Is(err, gorm.ErrDuplicatedKey):
			status = http.StatusConflict
			message = "Duplicate value entered for a unique field."
		case errors.As(err, &httpErr):
			status = httpErr.Code
			if msg, ok := httpErr.Message.(string); ok {
				message = msg
			}
		default:
			if !production {
				message = err.Error()
			}
		}

		if status >= http.StatusInternalServerError {
			logger.FromEcho(c).Error("Request failed", zap.Int("status", status), zap.Error(err))
		}

		if jsonErr := c.JSON(status, echo.Map{
			"success": false,
			"message": message,
		}); jsonErr != nil {
			logger.FromEcho(c).Error("Failed to write error response", zap.Error(jsonErr))
		}
	}
}
