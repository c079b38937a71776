package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Root handles the liveness endpoint
func Root(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Backend is running!",
		"status":  "ok",
	})
}

// HealthCheck handles the health check endpoint
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "healthy",
		"service": "buildsite-service",
	})
}
