package middleware

import (
	"net/http"

	"myTerpMarket/pkg/logger"
	jsonres "myTerpMarket/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler is the echo HTTP error handler, keeps error payloads in the
// same envelope as the rest of the API.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal Server Error"

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("Unhandled HTTP error", err)
	}

	if err := c.JSON(code, jsonres.Error(http.StatusText(code), message, nil)); err != nil {
		logger.Error("Failed to write error response", err)
	}
}
