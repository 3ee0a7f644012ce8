// Package handler contains the HTTP handlers for the API.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shortlink/internal/delivery/api/response"
)

// HealthCheck reports that the process is serving.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}
