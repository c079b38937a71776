package logger

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// FromContext returns a request-scoped logger carrying the request ID set by
// the request ID middleware.
func FromContext(c echo.Context) *zap.Logger {
	if log, ok := c.Get("logger").(*zap.Logger); ok {
		return log
	}
	reqID, ok := c.Get("request_id").(string)
	if !ok {
		reqID = "unknown"
	}
	return GetLogger().With(zap.String("request_id", reqID))
}
