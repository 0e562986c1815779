package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// APIVersion is reported by the welcome document and the Swagger info.
const APIVersion = "1.0.0"

// Welcome handles GET /.
//
// @Summary  API welcome document
// @Tags     meta
// @Produce  json
// @Success  200  {object}  welcomeResponse
// @Router   / [get]
func Welcome(c echo.Context) error {
	return c.JSON(http.StatusOK, welcomeResponse{
		Message: "Welcome to " + serviceName,
		Version: APIVersion,
		Endpoints: map[string]string{
			"parcels":      parcelsBasePath,
			"track":        parcelsBasePath + "/track/{trackingNumber}",
			"user_parcels": parcelsBasePath + "/user/{email}",
			"docs":         "/swagger/index.html",
		},
	})
}
