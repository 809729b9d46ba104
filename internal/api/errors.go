package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorHandler is the top-level Echo error handler. Expected HTTP errors
// pass through with their status; anything unexpected becomes a generic
// message with a remediation hint plus the diagnostic detail, and the
// session keeps running.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		_ = c.JSON(he.Code, map[string]interface{}{
			"message": fmt.Sprint(he.Message),
		})
		return
	}

	slog.Error("unhandled dashboard error", "path", c.Path(), "error", err)
	_ = c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"message": "error loading dashboard data",
		"hint":    "ensure the processing pipeline has populated the data directory",
		"detail":  err.Error(),
	})
}
