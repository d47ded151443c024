package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/profilenet/backend/pkg/logger"
)

// GetRequestsHandler lists the archived engine requests submitted for a
// project. Deployments without an archive get an empty list.
func GetRequestsHandler(c echo.Context) error {
	type getRequestsResponse struct {
		Requests []string `json:"requests"`
	}

	id := c.Param("id")
	app := appContext(c).App

	if _, err := app.Store.GetProject(id); err != nil {
		return storeError(c, err)
	}

	keys, err := app.Archive.ListRequests(c.Request().Context(), id)
	if err != nil {
		logger.Error("Failed to list request archive", "project", id, "err", err)
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "Request archive unavailable"})
	}
	if keys == nil {
		keys = []string{}
	}

	return c.JSON(http.StatusOK, getRequestsResponse{Requests: keys})
}
